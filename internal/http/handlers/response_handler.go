// Response HTTP handlers.
//
// This file exposes REST endpoints for interview answers:
//   - POST   /biography/sessions/{id}/responses                (save/revise)
//   - DELETE /biography/sessions/{id}/responses/{responseId}   (remove)
//
// Saving is an upsert keyed by (session, topic, question): answering the same
// question twice revises the stored answer in place.
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-biography-backend/internal/http/middleware"
	"github.com/tbourn/go-biography-backend/internal/repo"
	"github.com/tbourn/go-biography-backend/internal/services"
)

// idempotencyTTL is the replay window for unsafe POSTs. A retry arriving
// after the window is treated as a fresh request.
const idempotencyTTL = 24 * time.Hour

// idempotencyKey returns the request's dedup token: the validated key stashed
// by the idempotency middleware when wired, or the raw header otherwise.
func idempotencyKey(c *gin.Context) string {
	if key, ok := middleware.GetIdempotencyKey(c); ok {
		return key
	}
	return strings.TrimSpace(c.GetHeader(middleware.HeaderIdempotencyKey))
}

// SaveResponseRequest is the JSON payload for storing an interview answer.
type SaveResponseRequest struct {
	// Topic is the question bank topic id.
	Topic string `json:"topic" binding:"required" example:"early_life"`
	// Question is the verbatim question text being answered.
	Question string `json:"question" binding:"required" example:"Where were you born?"`
	// Answer is the interviewee's free-text answer.
	Answer string `json:"answer" binding:"required" example:"In a small village outside Kalamata."`
}

// SaveResponse godoc
// @ID          saveResponse
// @Summary     Save an interview answer
// @Description Stores the answer for (session, topic, question). Re-answering the same question revises the stored answer in place; the session's updated_at is bumped atomically.
// @Tags        Responses
// @Accept      json
// @Produce     json
//
// @Param       id    path  int  true  "Session ID"  minimum(1) example(7)
// @Param       body  body  handlers.SaveResponseRequest  true  "Answer payload"
//
// @Success     201  {object} domain.Response
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Session not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /biography/sessions/{id}/responses [post]
func (h *Handlers) SaveResponse(c *gin.Context) {
	ctx := c.Request.Context()
	id, okID := sessionIDParam(c)
	if !okID {
		return
	}

	var req SaveResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "topic, question and answer are required")
		return
	}

	currentUser := userID(c)
	sessionKey := strconv.FormatUint(uint64(id), 10)

	// Replay path: a completed save already exists under this key.
	idemKey := idempotencyKey(c)
	if idemKey != "" {
		if svc, okSvc := h.respSvc.(*services.ResponseService); okSvc && svc.DB != nil {
			if rec, err := repo.GetIdempotency(ctx, svc.DB, currentUser, sessionKey, idemKey, time.Now().UTC()); err == nil && rec != nil {
				if respID, err2 := strconv.ParseUint(rec.ResourceID, 10, 32); err2 == nil {
					if prev, err3 := repo.GetResponse(ctx, svc.DB, id, uint(respID)); err3 == nil {
						c.Header("Idempotency-Replayed", "true")
						ok(c, http.StatusOK, prev)
						return
					}
				}
			}
		}
	}

	resp, err := h.respSvc.Save(ctx, id, req.Topic, req.Question, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "session not found")
		case errors.Is(err, services.ErrInvalidResponse), errors.Is(err, services.ErrAnswerTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeSaveFailed, err.Error())
		}
		return
	}

	// Store path, best effort. A lost record only costs replay detection.
	if idemKey != "" {
		if svc, okSvc := h.respSvc.(*services.ResponseService); okSvc && svc.DB != nil {
			_, _ = repo.CreateIdempotency(ctx, svc.DB, currentUser, sessionKey, idemKey,
				strconv.FormatUint(uint64(resp.ID), 10), http.StatusCreated, idempotencyTTL)
		}
	}

	ok(c, http.StatusCreated, resp)
}

// DeleteResponse godoc
// @ID          deleteResponse
// @Summary     Delete an interview answer
// @Description Removes one response from a session. Idempotent: deleting an absent response, or one belonging to another session, still returns 204.
// @Tags        Responses
//
// @Param       id          path  int  true  "Session ID"   minimum(1) example(7)
// @Param       responseId  path  int  true  "Response ID"  minimum(1) example(42)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /biography/sessions/{id}/responses/{responseId} [delete]
func (h *Handlers) DeleteResponse(c *gin.Context) {
	id, okID := sessionIDParam(c)
	if !okID {
		return
	}
	respID, err := strconv.ParseUint(c.Param("responseId"), 10, 32)
	if err != nil || respID == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "response id must be a positive integer")
		return
	}

	if err := h.respSvc.Delete(c.Request.Context(), id, uint(respID)); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
