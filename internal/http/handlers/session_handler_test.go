package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-biography-backend/internal/domain"
	"github.com/tbourn/go-biography-backend/internal/interview"
	"github.com/tbourn/go-biography-backend/internal/repo"
	"github.com/tbourn/go-biography-backend/internal/search"
	"github.com/tbourn/go-biography-backend/internal/services"
)

// ---------- test DB + repo shim ----------

func newSessionDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:session_handlers_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Enforce FKs and migrate schemas
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := db.AutoMigrate(&domain.Session{}, &domain.Response{}, &domain.Idempotency{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Minimal shim implementing services.SessionRepo using repo package (like router.go)
type testSessionRepo struct{}

func (testSessionRepo) CreateSession(ctx context.Context, db *gorm.DB, subjectName, detailLevel string) (*domain.Session, error) {
	return repo.CreateSession(ctx, db, subjectName, detailLevel)
}

func (testSessionRepo) GetSession(ctx context.Context, db *gorm.DB, id uint) (*domain.Session, error) {
	return repo.GetSession(ctx, db, id)
}

func (testSessionRepo) ListSessionsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]repo.SessionWithCount, error) {
	return repo.ListSessionsPage(ctx, db, offset, limit)
}

func (testSessionRepo) CountSessions(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountSessions(ctx, db)
}

func (testSessionRepo) ListResponses(ctx context.Context, db *gorm.DB, sessionID uint) ([]domain.Response, error) {
	return repo.ListResponses(ctx, db, sessionID)
}

func (testSessionRepo) DeleteSession(ctx context.Context, db *gorm.DB, id uint) error {
	return repo.DeleteSession(ctx, db, id)
}

// ---------- flexible service stubs ----------

type stubSessionSvc struct {
	create   func(context.Context, string, string) (*domain.Session, error)
	get      func(context.Context, uint) (*domain.Session, []domain.Response, interview.Cursor, error)
	listPage func(context.Context, int, int) ([]repo.SessionWithCount, int64, error)
	delete   func(context.Context, uint) error
}

func (s stubSessionSvc) Create(ctx context.Context, subject, level string) (*domain.Session, error) {
	if s.create != nil {
		return s.create(ctx, subject, level)
	}
	return &domain.Session{ID: 1, SubjectName: subject, DetailLevel: level, Status: domain.StatusInProgress}, nil
}

func (s stubSessionSvc) Get(ctx context.Context, id uint) (*domain.Session, []domain.Response, interview.Cursor, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return &domain.Session{ID: id}, nil, interview.Cursor{}, nil
}

func (s stubSessionSvc) ListPage(ctx context.Context, page, pageSize int) ([]repo.SessionWithCount, int64, error) {
	if s.listPage != nil {
		return s.listPage(ctx, page, pageSize)
	}
	return nil, 0, nil
}

func (s stubSessionSvc) Delete(ctx context.Context, id uint) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return nil
}

type stubRespSvc struct {
	save func(context.Context, uint, string, string, string) (*domain.Response, error)
	del  func(context.Context, uint, uint) error
}

func (s stubRespSvc) Save(ctx context.Context, sessionID uint, topic, question, answer string) (*domain.Response, error) {
	if s.save != nil {
		return s.save(ctx, sessionID, topic, question, answer)
	}
	return &domain.Response{ID: 1, SessionID: sessionID, Topic: topic, Question: question, Answer: answer}, nil
}

func (s stubRespSvc) Delete(ctx context.Context, sessionID, responseID uint) error {
	if s.del != nil {
		return s.del(ctx, sessionID, responseID)
	}
	return nil
}

type stubDraftSvc struct {
	generate func(context.Context, uint) (*domain.Session, error)
}

func (s stubDraftSvc) Generate(ctx context.Context, sessionID uint) (*domain.Session, error) {
	if s.generate != nil {
		return s.generate(ctx, sessionID)
	}
	return &domain.Session{ID: sessionID, Status: domain.StatusDraftGenerated}, nil
}

func newStubHandlers() *Handlers {
	return New(stubSessionSvc{}, stubRespSvc{}, stubDraftSvc{}, search.NewCatalog())
}

// ---------- helpers-only tests ----------

func Test_userID_and_clampPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// userID helper
	rc := gin.CreateTestContextOnly(httptest.NewRecorder(), gin.New())
	if got := userID(rc); got != "demo-user" {
		t.Fatalf("fallback userID = %q", got)
	}
	rc.Set("userID", "u1")
	if got := userID(rc); got != "u1" {
		t.Fatalf("ctx userID = %q", got)
	}
	rc.Set("userID", 123) // wrong type → fallback
	if got := userID(rc); got != "demo-user" {
		t.Fatalf("wrong-type fallback userID = %q", got)
	}

	// header fallback
	cH, _ := gin.CreateTestContext(httptest.NewRecorder())
	reqH := httptest.NewRequest("GET", "/", nil)
	reqH.Header.Set("X-User-ID", "u-123")
	cH.Request = reqH
	if got := userID(cH); got != "u-123" {
		t.Fatalf("header fallback userID = %q", got)
	}

	// clampPagination bounds
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?page=-5&page_size=9999", nil)
	p, ps := clampPagination(c)
	if p != 1 || ps != 100 {
		t.Fatalf("clamp bounds got p=%d ps=%d", p, ps)
	}
	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?page=&page_size=0", nil)
	p, ps = clampPagination(c)
	if p != 1 || ps != 1 {
		t.Fatalf("clamp defaults got p=%d ps=%d", p, ps)
	}
}

// ---------- CreateSession ----------

func TestCreateSession_BadJSON_InvalidLevel_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Bad JSON -> 400
	{
		h := newStubHandlers()
		r := gin.New()
		r.POST("/biography/sessions", h.CreateSession)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/biography/sessions", bytes.NewBufferString("{bad"))
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("bad json -> %d", w.Code)
		}
	}

	// Unknown level -> 400 with invalid_level code
	{
		db := newSessionDB(t)
		svc := services.NewSessionService(db, testSessionRepo{})
		h := New(svc, stubRespSvc{}, stubDraftSvc{}, search.NewCatalog())
		r := gin.New()
		r.POST("/biography/sessions", h.CreateSession)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/biography/sessions",
			bytes.NewBufferString(`{"subject_name":"Jane Doe","detail_level":"epic"}`))
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("invalid level -> %d body=%s", w.Code, w.Body.String())
		}
		var e ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
			t.Fatalf("json: %v", err)
		}
		if e.Code != ErrCodeInvalidLevel {
			t.Fatalf("code = %q, want %q", e.Code, ErrCodeInvalidLevel)
		}
	}

	// Success -> 201, subject normalized
	{
		db := newSessionDB(t)
		svc := services.NewSessionService(db, testSessionRepo{})
		h := New(svc, stubRespSvc{}, stubDraftSvc{}, search.NewCatalog())
		r := gin.New()
		r.POST("/biography/sessions", h.CreateSession)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/biography/sessions",
			bytes.NewBufferString(`{"subject_name":"  jane   doe ","detail_level":"moderate"}`))
		r.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("create -> %d body=%s", w.Code, w.Body.String())
		}
		var out domain.Session
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("json: %v", err)
		}
		if out.ID == 0 || out.SubjectName != "Jane Doe" || out.Status != domain.StatusInProgress {
			t.Fatalf("unexpected session: %#v", out)
		}
	}
}

// ---------- ListSessions ----------

func TestListSessions_ETag304_and_SuccessPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newSessionDB(t)
	svc := services.NewSessionService(db, testSessionRepo{})
	h := New(svc, stubRespSvc{}, stubDraftSvc{}, search.NewCatalog())

	ctx := context.Background()
	if _, err := repo.CreateSession(ctx, db, "Alice", "brief"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	bSess, err := repo.CreateSession(ctx, db, "Bob", "brief")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := repo.UpsertResponse(ctx, db, bSess.ID, "early_life", "q1", "a1"); err != nil {
		t.Fatalf("seed response: %v", err)
	}

	r := gin.New()
	r.GET("/biography/sessions", h.ListSessions)

	// First call: 200 with ETag and pagination metadata
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/biography/sessions?page=1&page_size=10", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list -> %d body=%s", w.Code, w.Body.String())
	}
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag header")
	}

	var out ListSessionsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(out.Sessions) != 2 || out.Pagination.Total != 2 || out.Pagination.HasNext {
		t.Fatalf("unexpected page: %+v", out)
	}
	// Bob was touched by the response save, so he lists first with count 1
	if out.Sessions[0].SubjectName != "Bob" || out.Sessions[0].ResponseCount != 1 {
		t.Fatalf("ordering/count wrong: %+v", out.Sessions)
	}

	// Replay with If-None-Match -> 304
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/biography/sessions", nil)
	req2.Header.Set("If-None-Match", etag)
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusNotModified {
		t.Fatalf("etag replay -> %d", w2.Code)
	}
}

func TestListSessions_InternalError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New(stubSessionSvc{
		listPage: func(ctx context.Context, p, ps int) ([]repo.SessionWithCount, int64, error) {
			return nil, 0, gorm.ErrInvalidDB
		},
	}, stubRespSvc{}, stubDraftSvc{}, search.NewCatalog())

	r := gin.New()
	r.GET("/biography/sessions", h.ListSessions)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/biography/sessions", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("internal -> %d", w.Code)
	}
	var e ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("json: %v", err)
	}
	if e.Code != ErrCodeListFailed {
		t.Fatalf("code = %q, want %q", e.Code, ErrCodeListFailed)
	}
}

// ---------- GetSession ----------

func TestGetSession_BadID_NotFound_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newSessionDB(t)
	svc := services.NewSessionService(db, testSessionRepo{})
	h := New(svc, stubRespSvc{}, stubDraftSvc{}, search.NewCatalog())

	r := gin.New()
	r.GET("/biography/sessions/:id", h.GetSession)

	// Non-numeric id -> 400
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/biography/sessions/abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad id -> %d", w.Code)
	}

	// Unknown id -> 404
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/biography/sessions/999", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing session -> %d", w.Code)
	}

	// Seed one session with an answer; detail view carries the resume cursor
	ctx := context.Background()
	sess, err := repo.CreateSession(ctx, db, "Jane Doe", string(interview.LevelUltraBrief))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	plan, _ := interview.BuildPlan(interview.LevelUltraBrief)
	if _, err := repo.UpsertResponse(ctx, db, sess.ID, plan[0].ID, plan[0].Questions[0], "Jane"); err != nil {
		t.Fatalf("seed response: %v", err)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/biography/sessions/%d", sess.ID), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get -> %d body=%s", w.Code, w.Body.String())
	}
	var out SessionDetailResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if out.Session == nil || out.Session.ID != sess.ID {
		t.Fatalf("session missing: %+v", out)
	}
	if len(out.Responses) != 1 {
		t.Fatalf("responses = %d, want 1", len(out.Responses))
	}
	if out.Cursor != (interview.Cursor{Topic: 0, Question: 1}) {
		t.Fatalf("cursor = %+v, want {0 1}", out.Cursor)
	}
}

func TestGetSession_EmptyResponsesSerializeAsArray(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newStubHandlers() // stub Get returns nil responses

	r := gin.New()
	r.GET("/biography/sessions/:id", h.GetSession)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/biography/sessions/1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get -> %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"responses":[]`)) {
		t.Fatalf("nil responses should serialize as []: %s", w.Body.String())
	}
}

// ---------- DeleteSession ----------

func TestDeleteSession_Flow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newSessionDB(t)
	svc := services.NewSessionService(db, testSessionRepo{})
	h := New(svc, stubRespSvc{}, stubDraftSvc{}, search.NewCatalog())

	r := gin.New()
	r.DELETE("/biography/sessions/:id", h.DeleteSession)

	sess, err := repo.CreateSession(context.Background(), db, "Jane Doe", "brief")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Delete -> 204
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/biography/sessions/%d", sess.ID), nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete -> %d", w.Code)
	}

	// Second delete -> 404
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/biography/sessions/%d", sess.ID), nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("repeat delete -> %d", w.Code)
	}

	// Zero id -> 400
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/biography/sessions/0", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("zero id -> %d", w.Code)
	}
}
