// Package services – ResponseService
//
// This file implements ResponseService, the application-level component that
// owns the lifecycle of interview answers. It validates inputs, checks that
// the owning session exists, and persists answers with upsert semantics: one
// stored answer per (session, topic, question), revised in place on re-save.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// include session identifiers and topic names where applicable.
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/tbourn/go-biography-backend/internal/domain"
	"github.com/tbourn/go-biography-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ResponseService coordinates persistence of interview answers.
type ResponseService struct {
	DB *gorm.DB

	// MaxAnswerRunes optionally caps answer length.
	MaxAnswerRunes int
}

// Save stores an answer for (sessionID, topic, question), revising the
// existing one in place when the triple has been answered before. The owning
// session's updated_at is bumped in the same transaction.
func (s *ResponseService) Save(ctx context.Context, sessionID uint, topic, question, answer string) (*domain.Response, error) {
	tr := otel.Tracer("services/ResponseService")
	ctx, span := tr.Start(ctx, "Save",
		trace.WithAttributes(
			attribute.Int("session.id", int(sessionID)),
			attribute.String("response.topic", topic),
		),
	)
	defer span.End()

	topic = strings.TrimSpace(topic)
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if topic == "" || question == "" || answer == "" {
		return nil, ErrInvalidResponse
	}
	if s.MaxAnswerRunes > 0 && utf8.RuneCountInString(answer) > s.MaxAnswerRunes {
		return nil, ErrAnswerTooLong
	}

	// Ensure the session exists before writing.
	if _, err := repo.GetSession(ctx, s.DB, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return repo.UpsertResponse(ctx, s.DB, sessionID, topic, question, answer)
}

// Delete removes a single response from a session. It is idempotent: an
// absent response, or one belonging to another session, is a no-op.
func (s *ResponseService) Delete(ctx context.Context, sessionID, responseID uint) error {
	tr := otel.Tracer("services/ResponseService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(
			attribute.Int("session.id", int(sessionID)),
			attribute.Int("response.id", int(responseID)),
		),
	)
	defer span.End()

	return repo.DeleteResponse(ctx, s.DB, sessionID, responseID)
}
