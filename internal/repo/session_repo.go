// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Session
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a session is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-biography-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// SessionWithCount is a Session annotated with the number of live responses
// it owns. Used by the session list endpoint.
type SessionWithCount struct {
	domain.Session
	ResponseCount int64 `json:"response_count"`
}

// CreateSession inserts a new Session row with status in_progress and UTC
// timestamps. On success, it returns the persisted Session (with its
// server-assigned id). On failure, it returns a DB error.
func CreateSession(ctx context.Context, db *gorm.DB, subjectName, detailLevel string) (*domain.Session, error) {
	now := time.Now().UTC()
	s := &domain.Session{
		SubjectName: subjectName,
		DetailLevel: detailLevel,
		Status:      domain.StatusInProgress,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetSession fetches a single session by id, or ErrNotFound if missing.
func GetSession(ctx context.Context, db *gorm.DB, id uint) (*domain.Session, error) {
	var s domain.Session
	if err := db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSessionsPage returns a page of sessions ordered by UpdatedAt descending
// (most recently touched first), each annotated with its live response count.
// Use CountSessions to obtain the total for pagination metadata.
func ListSessionsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]SessionWithCount, error) {
	var out []SessionWithCount
	err := db.WithContext(ctx).
		Model(&domain.Session{}).
		Select("biography_sessions.*, (?) AS response_count",
			db.Model(&domain.Response{}).
				Select("COUNT(*)").
				Where("biography_responses.session_id = biography_sessions.id"),
		).
		Order("updated_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountSessions returns the total number of live sessions.
func CountSessions(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Session{}).Count(&total).Error
	return total, err
}

// TouchSession bumps a session's updated_at so recency ordering reflects
// response activity. Returns ErrNotFound when the session does not exist.
func TouchSession(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("id = ?", id).
		Update("updated_at", time.Now().UTC())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SaveDraft stores the generated narrative and flips the session status to
// draft_generated in a single UPDATE. Returns ErrNotFound when the session
// does not exist.
func SaveDraft(ctx context.Context, db *gorm.DB, id uint, draft string) error {
	res := db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"draft":      draft,
			"status":     domain.StatusDraftGenerated,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteSession removes a session and all of its responses atomically.
// Partial deletion is never observable: both deletes run in one transaction
// and roll back together. Returns ErrNotFound when the session does not
// exist.
func DeleteSession(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Session{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("session_id = ?", id).Delete(&domain.Response{}).Error
	})
}
