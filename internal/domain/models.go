// Package domain defines the persistence models for biography interview
// sessions and their stored responses. These types are mapped with GORM and
// form the core data layer of the biography backend.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Session status values. A session starts in progress and flips to
// draft_generated the first time a narrative draft is produced.
const (
	StatusInProgress     = "in_progress"
	StatusDraftGenerated = "draft_generated"
)

// Session represents one biography interview: a subject, a chosen detail
// level, and (eventually) a generated narrative draft.
//
// Fields:
//   - ID: auto-incrementing numeric primary key.
//   - SubjectName: full name of the person being interviewed.
//   - DetailLevel: one of the five canonical detail levels (ultra_brief …
//     comprehensive); validated against the question bank before insert.
//   - Status: "in_progress" or "draft_generated" (enforced by DB constraint).
//   - Draft: generated Markdown narrative; nil until generation succeeds.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM. UpdatedAt is also
//     touched by every stored response, so "most recently updated" orders the
//     session list.
//   - DeletedAt: soft deletion marker (retains row for audit/history).
type Session struct {
	ID          uint           `json:"id"           gorm:"primaryKey;autoIncrement"`
	SubjectName string         `json:"subject_name" gorm:"type:varchar(255);not null"`
	DetailLevel string         `json:"detail_level" gorm:"type:varchar(32);not null"`
	Status      string         `json:"status"       gorm:"type:varchar(32);not null;default:'in_progress';check:status IN ('in_progress','draft_generated')"`
	Draft       *string        `json:"draft,omitempty" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"   gorm:"index"`
	DeletedAt   gorm.DeletedAt `json:"-"            gorm:"index"`
}

// TableName returns the database table name for Session.
func (Session) TableName() string { return "biography_sessions" }

// Response represents one stored answer to one specific (topic, question)
// pair within a session. The question text is stored verbatim rather than as
// a foreign key into the question bank, so the bank can evolve independently
// of already-recorded interviews.
//
// At most one live Response exists per (session, topic, question) triple;
// a second save for the same triple updates the answer in place. That
// invariant is enforced transactionally in the repository (the soft-delete
// column rules out a plain unique index).
//
// Fields:
//   - ID: auto-incrementing numeric primary key.
//   - SessionID: foreign key to the owning session (indexed).
//   - Topic: stable topic id from the question bank (e.g. "early_life").
//   - Question: the literal prompt the answer responds to.
//   - Answer: free-text answer.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM. CreatedAt order is
//     the arrival order that drives resumption and narrative grouping.
//   - DeletedAt: soft deletion marker.
//   - Session: FK association, ensures cascade delete/update.
type Response struct {
	ID        uint           `json:"id"         gorm:"primaryKey;autoIncrement"`
	SessionID uint           `json:"session_id" gorm:"not null;index:idx_session_responses,priority:1"`
	Topic     string         `json:"topic"      gorm:"type:varchar(64);not null"`
	Question  string         `json:"question"   gorm:"type:text;not null"`
	Answer    string         `json:"answer"     gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"created_at" gorm:"index:idx_session_responses,priority:2"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`

	// Session is the owning interview. Responses are cascade-deleted
	// if their session is removed.
	Session Session `json:"-" gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Response.
func (Response) TableName() string { return "biography_responses" }
