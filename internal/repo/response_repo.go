// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Response
// model.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-biography-backend/internal/domain"
)

// FindResponse fetches the live response for (sessionID, topic, question),
// or ErrNotFound when no such answer has been stored yet.
func FindResponse(ctx context.Context, db *gorm.DB, sessionID uint, topic, question string) (*domain.Response, error) {
	var r domain.Response
	err := db.WithContext(ctx).
		Where("session_id = ? AND topic = ? AND question = ?", sessionID, topic, question).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetResponse fetches a single response by primary key, scoped to its
// session, or ErrNotFound.
func GetResponse(ctx context.Context, db *gorm.DB, sessionID, id uint) (*domain.Response, error) {
	var r domain.Response
	err := db.WithContext(ctx).
		Where("id = ? AND session_id = ?", id, sessionID).
		First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpsertResponse stores an answer for (sessionID, topic, question).
//
// If a response already exists for the triple, its answer text is overwritten
// in place and the row keeps its identity and created_at (arrival order is
// what drives resumption and narrative grouping, so an update must not move
// the answer). Otherwise a new row is inserted. Either way the owning
// session's updated_at is bumped inside the same transaction, keeping the
// upsert-and-touch pair atomic.
func UpsertResponse(ctx context.Context, db *gorm.DB, sessionID uint, topic, question, answer string) (*domain.Response, error) {
	var out *domain.Response
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := FindResponse(ctx, tx, sessionID, topic, question)
		switch {
		case err == nil:
			existing.Answer = answer
			if err := tx.Model(existing).Update("answer", answer).Error; err != nil {
				return err
			}
			out = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			r := &domain.Response{
				SessionID: sessionID,
				Topic:     topic,
				Question:  question,
				Answer:    answer,
				CreatedAt: time.Now().UTC(),
			}
			if err := tx.Create(r).Error; err != nil {
				return err
			}
			out = r
		default:
			return err
		}
		return TouchSession(ctx, tx, sessionID)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListResponses returns all responses of a session in arrival order
// (CreatedAt ASC, ID ASC). It returns an empty slice when the session has no
// responses.
func ListResponses(ctx context.Context, db *gorm.DB, sessionID uint) ([]domain.Response, error) {
	var out []domain.Response
	err := db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// CountResponses returns the number of live responses owned by a session.
func CountResponses(ctx context.Context, db *gorm.DB, sessionID uint) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Response{}).
		Where("session_id = ?", sessionID).
		Count(&total).Error
	return total, err
}

// DeleteResponse removes the response identified by (sessionID, responseID).
// The operation is idempotent: deleting an absent response, or one that
// belongs to a different session, affects nothing and is not an error.
func DeleteResponse(ctx context.Context, db *gorm.DB, sessionID, responseID uint) error {
	return db.WithContext(ctx).
		Where("id = ? AND session_id = ?", responseID, sessionID).
		Delete(&domain.Response{}).Error
}
