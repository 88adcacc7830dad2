// Package services – SessionService
//
// This file implements the SessionService, which manages the lifecycle of
// biography interview sessions. It validates detail levels against the
// question bank, normalizes subject names, and coordinates repository
// operations for creating, fetching (with responses and resume cursor),
// listing (with pagination), and deleting sessions.
//
// Service-level errors (e.g., ErrSessionNotFound) are returned for predictable
// cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/tbourn/go-biography-backend/internal/domain"
	"github.com/tbourn/go-biography-backend/internal/interview"
	"github.com/tbourn/go-biography-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SessionRepo defines the repository contract required by SessionService.
// Implementations are responsible for persistence of session aggregates.
type SessionRepo interface {
	// CreateSession inserts a new in-progress session row.
	CreateSession(ctx context.Context, db *gorm.DB, subjectName, detailLevel string) (*domain.Session, error)

	// GetSession fetches a session by ID.
	GetSession(ctx context.Context, db *gorm.DB, id uint) (*domain.Session, error)

	// ListSessionsPage returns a page of sessions, most recently updated
	// first, annotated with their response counts.
	ListSessionsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]repo.SessionWithCount, error)

	// CountSessions returns the total number of sessions for pagination.
	CountSessions(ctx context.Context, db *gorm.DB) (int64, error)

	// ListResponses returns a session's responses in arrival order.
	ListResponses(ctx context.Context, db *gorm.DB, sessionID uint) ([]domain.Response, error)

	// DeleteSession removes a session together with its responses.
	DeleteSession(ctx context.Context, db *gorm.DB, id uint) error
}

// SessionService provides session-level operations such as creating,
// fetching, listing, and deleting interview sessions. It enforces
// subject-name rules and detail-level validity.
type SessionService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the session repository used by this service.
	Repo SessionRepo

	// SubjectMaxLen caps stored subject names by rune length.
	SubjectMaxLen int
	// SubjectLocale selects casing rules for subject-name repair.
	SubjectLocale language.Tag
}

// NewSessionService constructs a SessionService with sane defaults for
// subject handling.
func NewSessionService(db *gorm.DB, r SessionRepo) *SessionService {
	return &SessionService{
		DB:            db,
		Repo:          r,
		SubjectMaxLen: 80,
		SubjectLocale: language.Und,
	}
}

// Create inserts a new interview session for the given subject at the given
// detail level. Subject names are normalized, case-repaired, and clipped;
// the level must be one of the recognized detail levels.
func (s *SessionService) Create(ctx context.Context, subjectName, detailLevel string) (*domain.Session, error) {
	tr := otel.Tracer("services/SessionService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(attribute.String("session.detail_level", detailLevel)),
	)
	defer span.End()

	subjectName = normalizeSubject(subjectName)
	if subjectName == "" {
		return nil, ErrEmptySubject
	}
	if _, ok := interview.LevelIndex(interview.DetailLevel(detailLevel)); !ok {
		return nil, ErrInvalidLevel
	}
	return s.Repo.CreateSession(ctx, s.DB, s.clip(s.repairCase(subjectName)), detailLevel)
}

// Get fetches a session by ID together with its responses in arrival order
// and the resume cursor computed from them.
func (s *SessionService) Get(ctx context.Context, id uint) (*domain.Session, []domain.Response, interview.Cursor, error) {
	tr := otel.Tracer("services/SessionService")
	ctx, span := tr.Start(ctx, "Get",
		trace.WithAttributes(attribute.Int("session.id", int(id))),
	)
	defer span.End()

	sess, err := s.Repo.GetSession(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, interview.Cursor{}, ErrSessionNotFound
		}
		return nil, nil, interview.Cursor{}, err
	}
	responses, err := s.Repo.ListResponses(ctx, s.DB, id)
	if err != nil {
		return nil, nil, interview.Cursor{}, err
	}

	// The stored level is valid by construction, so the plan always builds.
	plan, err := interview.BuildPlan(interview.DetailLevel(sess.DetailLevel))
	if err != nil {
		return nil, nil, interview.Cursor{}, err
	}
	answered := make([]interview.Answer, 0, len(responses))
	for _, r := range responses {
		answered = append(answered, interview.Answer{Topic: r.Topic, Question: r.Question, Text: r.Answer})
	}
	return sess, responses, interview.InitialCursor(plan, answered), nil
}

// ListPage returns a page of sessions, most recently updated first,
// annotated with response counts. It applies defaults for invalid
// page/pageSize and returns the total count.
func (s *SessionService) ListPage(ctx context.Context, page, pageSize int) ([]repo.SessionWithCount, int64, error) {
	tr := otel.Tracer("services/SessionService")
	ctx, span := tr.Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountSessions(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []repo.SessionWithCount{}, 0, nil
	}

	items, err := s.Repo.ListSessionsPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}

// Delete removes a session together with all of its responses in one
// transaction. Deleting an absent session yields ErrSessionNotFound.
func (s *SessionService) Delete(ctx context.Context, id uint) error {
	tr := otel.Tracer("services/SessionService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(attribute.Int("session.id", int(id))),
	)
	defer span.End()

	if err := s.Repo.DeleteSession(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}

// repairCase title-cases a subject entered entirely in lowercase; mixed-case
// input is assumed intentional and preserved verbatim.
func (s *SessionService) repairCase(subject string) string {
	if subject != strings.ToLower(subject) {
		return subject
	}
	return cases.Title(s.SubjectLocaleOrDefault()).String(subject)
}

// clip truncates a subject name to the configured maximum rune length.
func (s *SessionService) clip(subject string) string {
	if s.SubjectMaxLen > 0 && utf8.RuneCountInString(subject) > s.SubjectMaxLen {
		return string([]rune(subject)[:s.SubjectMaxLen])
	}
	return subject
}

// SubjectLocaleOrDefault returns the configured locale for casing or English if unset.
func (s *SessionService) SubjectLocaleOrDefault() language.Tag {
	if s.SubjectLocale == language.Und {
		return language.English
	}
	return s.SubjectLocale
}

// normalizeSubject trims whitespace and collapses multiple spaces to one.
func normalizeSubject(s string) string {
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
}

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)
