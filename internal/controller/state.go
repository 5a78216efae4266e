package controller

import (
	"time"

	"github.com/lessongenie/web/internal/domain/lesson"
)

// Screen is one of the three top-level views.
type Screen string

const (
	ScreenUpload       Screen = "upload"
	ScreenQuestionList Screen = "question-list"
	ScreenLesson       Screen = "lesson"
)

// Stage names an error region. Each transition reports into exactly one.
type Stage string

const (
	StageUpload       Stage = "upload"
	StageQuestionList Stage = "question-list"
	StageLesson       Stage = "lesson"
)

// Stages lists every stage that has an error region on the page.
var Stages = []Stage{StageUpload, StageQuestionList, StageLesson}

// Submit control labels.
const (
	LabelExtract    = "Extract Questions"
	LabelExtracting = "Extracting Questions..."
)

// Session is the state of one browser session: the cached extraction
// result plus everything needed to redraw the current screen.
type Session struct {
	ID string `json:"id"`

	// PDFFileID is the server-issued handle from the last successful
	// extraction. Required before a lesson can be requested.
	PDFFileID string            `json:"pdfFileId,omitempty"`
	Questions []lesson.Question `json:"questions,omitempty"`

	Screen           Screen `json:"screen"`
	Busy             bool   `json:"busy"`
	SubmitLabel      string `json:"submitLabel"`
	SelectedFileName string `json:"selectedFileName,omitempty"`
	ListSkeleton     bool   `json:"listSkeleton"`
	LessonSkeleton   bool   `json:"lessonSkeleton"`

	// Lesson is the last generated lesson, nil when the lesson region is empty.
	Lesson *lesson.Data `json:"lesson,omitempty"`

	Errors map[Stage]string `json:"errors,omitempty"`

	// Generation identifies the in-flight transition. Outcomes carrying
	// an older generation are discarded.
	Generation uint64 `json:"generation"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSession returns a session on the Upload screen.
func NewSession(id string) *Session {
	s := &Session{ID: id}
	s.clear()
	return s
}

// Clone returns a deep copy safe to mutate independently.
func (s *Session) Clone() *Session {
	c := *s
	if s.Questions != nil {
		c.Questions = make([]lesson.Question, len(s.Questions))
		copy(c.Questions, s.Questions)
	}
	if s.Lesson != nil {
		l := *s.Lesson
		l.Steps = append([]lesson.Step(nil), s.Lesson.Steps...)
		l.Hints = append([]string(nil), s.Lesson.Hints...)
		if s.Lesson.VisualAid != nil {
			va := *s.Lesson.VisualAid
			l.VisualAid = &va
		}
		c.Lesson = &l
	}
	if s.Errors != nil {
		c.Errors = make(map[Stage]string, len(s.Errors))
		for k, v := range s.Errors {
			c.Errors[k] = v
		}
	}
	return &c
}

// Error returns the message recorded for stage, or "".
func (s *Session) Error(stage Stage) string {
	return s.Errors[stage]
}

func (s *Session) setError(stage Stage, msg string) {
	if s.Errors == nil {
		s.Errors = make(map[Stage]string)
	}
	s.Errors[stage] = msg
}

func (s *Session) hideError(stage Stage) {
	delete(s.Errors, stage)
}

func (s *Session) hideAllErrors() {
	s.Errors = nil
}

// clear puts the session back to the initial Upload screen.
func (s *Session) clear() {
	s.PDFFileID = ""
	s.Questions = nil
	s.Screen = ScreenUpload
	s.Busy = false
	s.SubmitLabel = LabelExtract
	s.SelectedFileName = ""
	s.ListSkeleton = false
	s.LessonSkeleton = false
	s.Lesson = nil
	s.hideAllErrors()
}

// stageOf maps a screen to the error region shown on it.
func stageOf(screen Screen) Stage {
	switch screen {
	case ScreenQuestionList:
		return StageQuestionList
	case ScreenLesson:
		return StageLesson
	default:
		return StageUpload
	}
}
