package controller

import "errors"

// User-facing messages for failures detected before any request is sent.
const (
	MsgSelectPDF        = "Please select or drop a PDF file."
	MsgOnlyPDF          = "Please select or drop a PDF file only."
	MsgTooLarge         = "The PDF file is too large."
	MsgMissingSelection = "Missing PDF/Question ID. Please retry."
	MsgNoQuestions      = "No questions found in this PDF."
)

// Prefixes of stage messages for failed network transitions.
const (
	prefixExtraction = "Extraction failed: "
	prefixLesson     = "Failed to generate lesson: "
)

// ErrBusy is returned when a transition is already in flight for the session.
var ErrBusy = errors.New("controller: a request is already in flight")

// ValidationError is a local precondition failure. No request was sent.
type ValidationError struct {
	Stage   Stage
	Message string
	Wrapped error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}
