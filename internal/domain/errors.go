package domain

import "errors"

var (
	// ErrNoQuestions is returned when the filtered question pool is empty.
	ErrNoQuestions = errors.New("no questions available")
	// ErrSessionInProgress is returned when starting over a running session.
	ErrSessionInProgress = errors.New("session already in progress")
	// ErrSessionNotFound is returned when a game session has not been opened.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrSessionClosed is returned by operations on a closed engine.
	ErrSessionClosed = errors.New("game session closed")
	// ErrSessionFull is returned when the roster has reached its limit.
	ErrSessionFull = errors.New("game session is full")
	// ErrJoinCodeNotFound indicates no host session is registered under a code.
	ErrJoinCodeNotFound = errors.New("join code not found")
	// ErrParticipantNotFound is returned when a roster lookup misses.
	ErrParticipantNotFound = errors.New("participant not found in session")
	// ErrDeckNotReady is returned to a guest starting before the host has
	// published a new question order.
	ErrDeckNotReady = errors.New("host has not published questions")
	// ErrQuestionNotFound is returned when a published question id is unknown.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrInvalidQuestion indicates malformed question content.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrUnknownCategory indicates a category outside the closed set.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownMode indicates an unsupported session mode.
	ErrUnknownMode = errors.New("unknown session mode")
)
