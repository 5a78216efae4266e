package controller

import "github.com/lessongenie/web/internal/domain/lesson"

// View is the render model of a session: which regions are visible and
// what they contain. It is derived, never stored.
type View struct {
	Screen Screen `json:"screen"`

	UploadVisible    bool   `json:"uploadVisible"`
	SubmitDisabled   bool   `json:"submitDisabled"`
	SubmitLabel      string `json:"submitLabel"`
	SpinnerVisible   bool   `json:"spinnerVisible"`
	SelectedFileName string `json:"selectedFileName,omitempty"`

	QuestionListVisible bool         `json:"questionListVisible"`
	ListSkeleton        bool         `json:"listSkeleton"`
	Rows                []lesson.Row `json:"rows,omitempty"`
	Placeholder         string       `json:"placeholder,omitempty"`

	LessonVisible  bool        `json:"lessonVisible"`
	LessonSkeleton bool        `json:"lessonSkeleton"`
	Lesson         *LessonView `json:"lesson,omitempty"`

	Errors map[Stage]string `json:"errors,omitempty"`

	// Refresh is true while a transition is in flight.
	Refresh bool `json:"refresh"`
}

// LessonView is the populated lesson region.
type LessonView struct {
	Title           string                 `json:"title"`
	Subheader       string                 `json:"subheader"`
	CoreConceptHTML string                 `json:"coreConceptHtml"`
	Timeline        []lesson.TimelineEntry `json:"timeline"`
	VisualAid       bool                   `json:"visualAid"`
	Hints           []string               `json:"hints,omitempty"`
	HintsVisible    bool                   `json:"hintsVisible"`
}

// View derives the render model for s.
func (c *Controller) View(s *Session) View {
	v := View{
		Screen:              s.Screen,
		UploadVisible:       s.Screen == ScreenUpload,
		SubmitDisabled:      s.Busy,
		SubmitLabel:         s.SubmitLabel,
		SpinnerVisible:      s.Busy && s.Screen != ScreenLesson,
		SelectedFileName:    s.SelectedFileName,
		QuestionListVisible: s.Screen == ScreenQuestionList,
		ListSkeleton:        s.Screen == ScreenQuestionList && s.ListSkeleton,
		LessonVisible:       s.Screen == ScreenLesson,
		LessonSkeleton:      s.Screen == ScreenLesson && s.LessonSkeleton,
		Refresh:             s.Busy,
	}

	if v.QuestionListVisible && !v.ListSkeleton {
		if len(s.Questions) == 0 {
			v.Placeholder = MsgNoQuestions
		} else {
			v.Rows = lesson.Rows(s.Questions)
		}
	}

	if v.LessonVisible && !v.LessonSkeleton && s.Lesson != nil {
		v.Lesson = &LessonView{
			Title:           s.Lesson.Title(),
			Subheader:       s.Lesson.Subheader(),
			CoreConceptHTML: s.Lesson.CoreConceptHTML,
			Timeline:        s.Lesson.Timeline(),
			VisualAid:       s.Lesson.HasVisualAid(),
			Hints:           s.Lesson.Hints,
			HintsVisible:    s.Lesson.HasHints(),
		}
	}

	if len(s.Errors) > 0 {
		v.Errors = make(map[Stage]string, len(s.Errors))
		for k, msg := range s.Errors {
			v.Errors[k] = msg
		}
	}
	return v
}
