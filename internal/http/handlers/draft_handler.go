// Draft HTTP handlers.
//
// This file exposes the narrative generation endpoint:
//   - POST /biography/sessions/{id}/generate
//
// Generation is deterministic over the stored responses, so repeating the
// call without new answers returns an identical draft.
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-biography-backend/internal/repo"
	"github.com/tbourn/go-biography-backend/internal/services"
)

// DraftResponse wraps a generated biography draft.
type DraftResponse struct {
	// SessionID identifies the session the draft belongs to.
	SessionID uint `json:"session_id" example:"7"`
	// Status is the session status after generation (draft_generated).
	Status string `json:"status" example:"draft_generated"`
	// Draft is the full Markdown biography text.
	Draft string `json:"draft"`
}

// GenerateDraft godoc
// @ID          generateDraft
// @Summary     Generate the biography draft
// @Description Weaves the session's stored answers into a Markdown biography, persists it on the session, and flips the session status to draft_generated.
// @Tags        Drafts
// @Produce     json
//
// @Param       id  path  int  true  "Session ID"  minimum(1) example(7)
//
// @Success     200  {object} handlers.DraftResponse
// @Failure     400  {object} handlers.ErrorResponse "No responses yet"
// @Failure     404  {object} handlers.ErrorResponse "Session not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /biography/sessions/{id}/generate [post]
func (h *Handlers) GenerateDraft(c *gin.Context) {
	ctx := c.Request.Context()
	id, okID := sessionIDParam(c)
	if !okID {
		return
	}

	currentUser := userID(c)
	sessionKey := strconv.FormatUint(uint64(id), 10)

	// Replay path: serve the draft persisted by the first delivery of this key.
	idemKey := idempotencyKey(c)
	if idemKey != "" {
		if svc, okSvc := h.draftSvc.(*services.DraftService); okSvc && svc.DB != nil {
			if rec, err := repo.GetIdempotency(ctx, svc.DB, currentUser, sessionKey, idemKey, time.Now().UTC()); err == nil && rec != nil {
				if prev, err2 := repo.GetSession(ctx, svc.DB, id); err2 == nil && prev.Draft != nil {
					c.Header("Idempotency-Replayed", "true")
					ok(c, http.StatusOK, DraftResponse{SessionID: prev.ID, Status: prev.Status, Draft: *prev.Draft})
					return
				}
			}
		}
	}

	sess, err := h.draftSvc.Generate(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "session not found")
		case errors.Is(err, services.ErrNoResponses):
			fail(c, http.StatusBadRequest, ErrCodeNoResponses, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeGenerateFailed, err.Error())
		}
		return
	}

	// Store path, best effort. A lost record only costs replay detection.
	if idemKey != "" {
		if svc, okSvc := h.draftSvc.(*services.DraftService); okSvc && svc.DB != nil {
			_, _ = repo.CreateIdempotency(ctx, svc.DB, currentUser, sessionKey, idemKey,
				sessionKey, http.StatusOK, idempotencyTTL)
		}
	}

	draft := ""
	if sess.Draft != nil {
		draft = *sess.Draft
	}
	ok(c, http.StatusOK, DraftResponse{SessionID: sess.ID, Status: sess.Status, Draft: draft})
}
