// Package controller implements the lesson view controller: a state machine
// over Upload, QuestionList and Lesson screens driven by user actions and
// two backend calls.
//
// Every network transition is split in three steps so the caller decides
// where the wait happens:
//
//	p, err := c.BeginUpload(s, file) // validate, show skeleton, mark busy
//	o := c.Run(ctx, p)               // network only, no session access
//	c.Apply(s, o)                    // swap skeleton for content or error
//
// SubmitUpload and SelectQuestion chain the three synchronously.
package controller

import (
	"context"
	"errors"

	"github.com/lessongenie/web/internal/backend"
	"github.com/lessongenie/web/internal/domain/lesson"
	"github.com/lessongenie/web/internal/domain/pdffile"
)

// Transition names a network-backed state change.
type Transition string

const (
	TransitionExtract Transition = "extract"
	TransitionLesson  Transition = "lesson"
)

// Pending is a begun transition waiting for its network call.
type Pending struct {
	Transition Transition
	SessionID  string
	Generation uint64

	file    *pdffile.File
	request lesson.Request
}

// Outcome is the typed result of running a Pending transition.
type Outcome struct {
	Transition Transition
	SessionID  string
	Generation uint64

	Questions *lesson.QuestionList
	Lesson    *lesson.Data
	Err       error
}

// Controller drives sessions through their screens.
// It holds no session state itself and is safe for concurrent use.
type Controller struct {
	backend backend.Backend
}

// New creates a Controller backed by b.
func New(b backend.Backend) *Controller {
	return &Controller{backend: b}
}

// ============================================================================
// File selection
// ============================================================================

// SelectFile handles a file picked or dropped on the upload form.
// A nil file clears the current selection.
func (c *Controller) SelectFile(s *Session, f *pdffile.File) error {
	if f == nil {
		s.SelectedFileName = ""
		return nil
	}
	if err := pdffile.Validate(f); err != nil {
		s.SelectedFileName = ""
		return c.reject(s, StageUpload, MsgOnlyPDF, err)
	}
	s.SelectedFileName = "Selected: " + f.Name
	s.hideError(StageUpload)
	return nil
}

// RejectUpload records an upload that never reached validation, such as a
// body over the size limit.
func (c *Controller) RejectUpload(s *Session, cause error) error {
	if s.Busy {
		return ErrBusy
	}
	s.SelectedFileName = ""
	switch {
	case errors.Is(cause, pdffile.ErrTooLarge):
		return c.reject(s, StageUpload, MsgTooLarge, cause)
	case errors.Is(cause, pdffile.ErrMissing):
		return c.reject(s, StageUpload, MsgSelectPDF, cause)
	default:
		return c.reject(s, StageUpload, MsgOnlyPDF, cause)
	}
}

// ============================================================================
// Upload → QuestionList
// ============================================================================

// BeginUpload validates the file and switches the session to the question
// list skeleton. The returned Pending must be Run and its Outcome applied.
func (c *Controller) BeginUpload(s *Session, f *pdffile.File) (*Pending, error) {
	if s.Busy {
		return nil, ErrBusy
	}

	switch err := pdffile.Validate(f); {
	case errors.Is(err, pdffile.ErrMissing):
		return nil, c.reject(s, StageUpload, MsgSelectPDF, err)
	case err != nil:
		s.SelectedFileName = ""
		return nil, c.reject(s, StageUpload, MsgOnlyPDF, err)
	}

	s.SelectedFileName = "Selected: " + f.Name
	s.hideAllErrors()
	s.PDFFileID = ""
	s.Questions = nil
	s.Lesson = nil
	s.LessonSkeleton = false
	s.Screen = ScreenQuestionList
	s.ListSkeleton = true
	s.Busy = true
	s.SubmitLabel = LabelExtracting
	s.Generation++

	return &Pending{
		Transition: TransitionExtract,
		SessionID:  s.ID,
		Generation: s.Generation,
		file:       f,
	}, nil
}

// SubmitUpload runs the whole upload transition synchronously.
// The returned error is the one also recorded on the session.
func (c *Controller) SubmitUpload(ctx context.Context, s *Session, f *pdffile.File) error {
	p, err := c.BeginUpload(s, f)
	if err != nil {
		return err
	}
	o := c.Run(ctx, p)
	c.Apply(s, o)
	return o.Err
}

// ============================================================================
// QuestionList → Lesson
// ============================================================================

// BeginSelect starts a lesson request for the clicked row. The id and text
// come from the row itself, not from the cached question list.
func (c *Controller) BeginSelect(s *Session, questionID, questionText string) (*Pending, error) {
	if s.Busy {
		return nil, ErrBusy
	}
	if s.PDFFileID == "" || questionID == "" {
		return nil, c.reject(s, stageOf(s.Screen), MsgMissingSelection, nil)
	}

	s.Screen = ScreenLesson
	s.ListSkeleton = false
	s.Lesson = nil
	s.LessonSkeleton = true
	s.hideError(StageLesson)
	s.Busy = true
	s.Generation++

	return &Pending{
		Transition: TransitionLesson,
		SessionID:  s.ID,
		Generation: s.Generation,
		request: lesson.Request{
			PDFFileID:            s.PDFFileID,
			SelectedQuestionID:   questionID,
			SelectedQuestionText: questionText,
		},
	}, nil
}

// SelectQuestion runs the whole lesson transition synchronously.
func (c *Controller) SelectQuestion(ctx context.Context, s *Session, questionID, questionText string) error {
	p, err := c.BeginSelect(s, questionID, questionText)
	if err != nil {
		return err
	}
	o := c.Run(ctx, p)
	c.Apply(s, o)
	return o.Err
}

// ============================================================================
// Resolution
// ============================================================================

// Run performs the network call of p. It does not touch any session.
func (c *Controller) Run(ctx context.Context, p *Pending) Outcome {
	o := Outcome{
		Transition: p.Transition,
		SessionID:  p.SessionID,
		Generation: p.Generation,
	}
	switch p.Transition {
	case TransitionExtract:
		o.Questions, o.Err = c.backend.ExtractQuestions(ctx, p.file)
	case TransitionLesson:
		o.Lesson, o.Err = c.backend.GenerateLesson(ctx, p.request)
	}
	if o.Err == nil && o.Questions == nil && o.Lesson == nil {
		o.Err = &backend.ContractError{Reason: "empty result"}
	}
	return o
}

// Apply swaps the skeleton for content or an error. It reports false and
// leaves s untouched when o belongs to a transition that was reset.
func (c *Controller) Apply(s *Session, o Outcome) bool {
	if !s.Busy || o.Generation != s.Generation {
		return false
	}

	switch o.Transition {
	case TransitionExtract:
		s.ListSkeleton = false
		if o.Err != nil {
			s.Screen = ScreenUpload
			s.setError(StageUpload, prefixExtraction+backend.Message(o.Err))
			break
		}
		s.PDFFileID = o.Questions.PDFFileID
		s.Questions = lesson.NormalizeQuestions(o.Questions.Questions)
		s.Screen = ScreenQuestionList

	case TransitionLesson:
		s.LessonSkeleton = false
		if o.Err != nil {
			s.Lesson = nil
			s.setError(StageLesson, prefixLesson+backend.Message(o.Err))
			break
		}
		s.Lesson = o.Lesson
	}

	s.Busy = false
	s.SubmitLabel = LabelExtract
	return true
}

// ============================================================================
// Navigation
// ============================================================================

// BackToQuestions leaves the lesson and shows the cached question list.
// Without a cached extraction it behaves like Reset.
func (c *Controller) BackToQuestions(s *Session) error {
	if s.Busy {
		return ErrBusy
	}
	if s.PDFFileID == "" {
		c.Reset(s)
		return nil
	}
	s.Lesson = nil
	s.LessonSkeleton = false
	s.hideError(StageLesson)
	s.hideError(StageQuestionList)
	s.Screen = ScreenQuestionList
	return nil
}

// Reset returns to the Upload screen and drops all cached data.
// An in-flight transition is invalidated; its outcome will be discarded.
func (c *Controller) Reset(s *Session) {
	if s.Busy {
		s.Generation++
	}
	s.clear()
}

func (c *Controller) reject(s *Session, stage Stage, msg string, cause error) error {
	s.setError(stage, msg)
	return &ValidationError{Stage: stage, Message: msg, Wrapped: cause}
}
