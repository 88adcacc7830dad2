// Package services – DraftService
//
// This file implements DraftService, which turns a session's stored answers
// into a Markdown biography draft. Generation is deterministic: the weaver is
// a pure function of the subject name, detail level, and ordered answers, so
// regenerating over unchanged responses yields byte-identical output. The
// resulting draft is persisted on the session, which also flips its status.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-biography-backend/internal/domain"
	"github.com/tbourn/go-biography-backend/internal/interview"
	"github.com/tbourn/go-biography-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DraftService generates and persists biography drafts.
type DraftService struct {
	DB *gorm.DB
}

// Generate weaves the session's responses into a Markdown draft, stores it on
// the session, and returns the updated session with the draft populated.
// A session with no responses yields ErrNoResponses; an unknown session
// yields ErrSessionNotFound.
func (s *DraftService) Generate(ctx context.Context, sessionID uint) (*domain.Session, error) {
	tr := otel.Tracer("services/DraftService")
	ctx, span := tr.Start(ctx, "Generate",
		trace.WithAttributes(attribute.Int("session.id", int(sessionID))),
	)
	defer span.End()

	sess, err := repo.GetSession(ctx, s.DB, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	responses, err := repo.ListResponses(ctx, s.DB, sessionID)
	if err != nil {
		return nil, err
	}
	answers := make([]interview.Answer, 0, len(responses))
	for _, r := range responses {
		answers = append(answers, interview.Answer{Topic: r.Topic, Question: r.Question, Text: r.Answer})
	}

	draft, err := interview.GenerateDraft(sess.SubjectName, interview.DetailLevel(sess.DetailLevel), answers)
	if err != nil {
		if errors.Is(err, interview.ErrNoResponses) {
			return nil, ErrNoResponses
		}
		return nil, err
	}

	if err := repo.SaveDraft(ctx, s.DB, sessionID, draft); err != nil {
		return nil, err
	}
	sess.Draft = &draft
	sess.Status = domain.StatusDraftGenerated
	return sess, nil
}
