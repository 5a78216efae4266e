package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/lessongenie/web/internal/domain/lesson"
	"github.com/lessongenie/web/internal/domain/pdffile"
)

// Backend is the external service that extracts questions and generates lessons.
// Implementations may call the real HTTP API or return canned results (for tests).
type Backend interface {
	// ExtractQuestions uploads the PDF and returns the file handle plus
	// the candidate questions found in it.
	ExtractQuestions(ctx context.Context, file *pdffile.File) (*lesson.QuestionList, error)

	// GenerateLesson produces the lesson for one previously extracted question.
	GenerateLesson(ctx context.Context, req lesson.Request) (*lesson.Data, error)
}

// InvalidDataMessage is shown when a response lacks required fields.
const InvalidDataMessage = "Invalid data received."

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	StatusCode int
	Detail     string // server-supplied "detail", may be empty
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("HTTP error, status %d", e.StatusCode)
}

// ContractError is returned when a 2xx response does not carry the
// fields the caller depends on.
type ContractError struct {
	Reason  string
	Wrapped error
}

func (e *ContractError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("invalid data received: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("invalid data received: %s", e.Reason)
}

func (e *ContractError) Unwrap() error {
	return e.Wrapped
}

// Message converts err into the text shown to the user.
func Message(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Error()
	}
	var contractErr *ContractError
	if errors.As(err, &contractErr) {
		return InvalidDataMessage
	}
	return err.Error()
}
