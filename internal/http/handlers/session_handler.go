// Session HTTP handlers.
//
// This file exposes REST endpoints for interview session resources:
//   - POST   /biography/sessions        (create)
//   - GET    /biography/sessions        (list, paginated, ETag support)
//   - GET    /biography/sessions/{id}   (detail with responses and resume cursor)
//   - DELETE /biography/sessions/{id}   (cascade delete)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-biography-backend/internal/domain"
	"github.com/tbourn/go-biography-backend/internal/interview"
	"github.com/tbourn/go-biography-backend/internal/repo"
	"github.com/tbourn/go-biography-backend/internal/search"
	"github.com/tbourn/go-biography-backend/internal/services"
	"github.com/tbourn/go-biography-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// SessionService defines session lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type SessionService interface {
	// Create starts a new interview session for a subject at a detail level.
	Create(ctx context.Context, subjectName, detailLevel string) (*domain.Session, error)
	// Get returns a session with its responses and the resume cursor.
	Get(ctx context.Context, id uint) (*domain.Session, []domain.Response, interview.Cursor, error)
	// ListPage returns a page of sessions and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]repo.SessionWithCount, int64, error)
	// Delete removes a session and all of its responses.
	Delete(ctx context.Context, id uint) error
}

// ResponseService defines answer persistence operations.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ResponseService interface {
	// Save upserts the answer stored for (session, topic, question).
	Save(ctx context.Context, sessionID uint, topic, question, answer string) (*domain.Response, error)
	// Delete removes a single response; absent responses are a no-op.
	Delete(ctx context.Context, sessionID, responseID uint) error
}

// DraftService defines narrative draft generation.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type DraftService interface {
	// Generate weaves stored answers into a Markdown draft and persists it.
	Generate(ctx context.Context, sessionID uint) (*domain.Session, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for the question bank, sessions, responses,
// and drafts. It depends on abstract service interfaces to keep transport
// concerns separate from business logic.
type Handlers struct {
	sessionSvc SessionService
	respSvc    ResponseService
	draftSvc   DraftService
	catalog    *search.Catalog
}

// New constructs and returns a Handlers instance bound to the given services.
func New(sessionSvc SessionService, respSvc ResponseService, draftSvc DraftService, catalog *search.Catalog) *Handlers {
	return &Handlers{sessionSvc: sessionSvc, respSvc: respSvc, draftSvc: draftSvc, catalog: catalog}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

//
// DTOs
//

// CreateSessionRequest is the JSON payload for starting an interview session.
type CreateSessionRequest struct {
	// SubjectName is the person the biography is about.
	SubjectName string `json:"subject_name" binding:"required,min=1,max=255" example:"Margaret Papadimitriou"`
	// DetailLevel selects interview depth (ultra_brief…comprehensive).
	DetailLevel string `json:"detail_level" binding:"required" example:"moderate"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListSessionsResponse wraps a page of sessions and pagination information.
type ListSessionsResponse struct {
	Sessions   []repo.SessionWithCount `json:"sessions"`
	Pagination Pagination              `json:"pagination"`
}

// SessionDetailResponse is the full view of one session: the record, its
// responses in arrival order, and the cursor to resume the interview at.
type SessionDetailResponse struct {
	Session   *domain.Session   `json:"session"`
	Responses []domain.Response `json:"responses"`
	Cursor    interview.Cursor  `json:"cursor"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// sessionIDParam parses the :id path parameter as a positive integer. On
// failure it writes a 400 response and reports false.
func sessionIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "session id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

//
// Handlers
//

// CreateSession godoc
// @ID          createSession
// @Summary     Start a new interview session
// @Description Creates an interview session for a subject at the requested detail level.
// @Tags        Sessions
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.CreateSessionRequest  true  "Create session payload"
//
// @Success     201  {object}  domain.Session
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request / invalid level"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /biography/sessions [post]
func (h *Handlers) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	sess, err := h.sessionSvc.Create(c.Request.Context(), req.SubjectName, req.DetailLevel)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidLevel):
			fail(c, http.StatusBadRequest, ErrCodeInvalidLevel, err.Error())
		case errors.Is(err, services.ErrEmptySubject):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, sess)
}

// ListSessions godoc
// @ID          listSessions
// @Summary     List interview sessions (paginated)
// @Description Returns sessions most recently updated first, each annotated with its response count. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Sessions
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       page           query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"               minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListSessionsResponse
// @Header      200  {string} ETag           "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /biography/sessions [get]
func (h *Handlers) ListSessions(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, ok := h.sessionSvc.(*services.SessionService); ok {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.SessionsStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"sessions:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	// Fetch page.
	items, total, err := h.sessionSvc.ListPage(ctx, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	resp := ListSessionsResponse{
		Sessions: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	}
	ok(c, http.StatusOK, resp)
}

// GetSession godoc
// @ID          getSession
// @Summary     Fetch one session
// @Description Returns the session, its responses in arrival order, and the cursor to resume the interview at.
// @Tags        Sessions
// @Produce     json
//
// @Param       id  path  int  true  "Session ID"  minimum(1) example(7)
//
// @Success     200  {object} handlers.SessionDetailResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Session not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /biography/sessions/{id} [get]
func (h *Handlers) GetSession(c *gin.Context) {
	id, okID := sessionIDParam(c)
	if !okID {
		return
	}

	sess, responses, cursor, err := h.sessionSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "session not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if responses == nil {
		responses = []domain.Response{}
	}
	ok(c, http.StatusOK, SessionDetailResponse{Session: sess, Responses: responses, Cursor: cursor})
}

// DeleteSession godoc
// @ID          deleteSession
// @Summary     Delete a session
// @Description Removes a session together with all of its responses in one transaction.
// @Tags        Sessions
//
// @Param       id  path  int  true  "Session ID"  minimum(1) example(7)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Session not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /biography/sessions/{id} [delete]
func (h *Handlers) DeleteSession(c *gin.Context) {
	id, okID := sessionIDParam(c)
	if !okID {
		return
	}

	if err := h.sessionSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "session not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
