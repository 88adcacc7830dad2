// Package services defines the business logic for interview sessions,
// responses, and draft generation. This file centralizes common service-level
// error values so that they can be consistently returned by service methods
// and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

// Session-related errors.
var (
	// ErrSessionNotFound indicates that the requested interview session does
	// not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidLevel is returned when a detail level is not one of the five
	// recognized levels.
	ErrInvalidLevel = errors.New("invalid detail level")

	// ErrEmptySubject is returned when a request to create a session contains
	// a blank subject name.
	ErrEmptySubject = errors.New("subject name is empty")

	// ErrInvalidResponse is returned when a response save is missing its
	// topic, question, or answer text.
	ErrInvalidResponse = errors.New("topic, question and answer are required")

	// ErrAnswerTooLong is returned when an answer exceeds the maximum
	// configured length limit.
	ErrAnswerTooLong = errors.New("answer too long")

	// ErrNoResponses is returned when draft generation is requested for a
	// session that has no stored responses yet.
	ErrNoResponses = errors.New("session has no responses")
)
