package render_test

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/lessongenie/web/internal/controller"
	"github.com/lessongenie/web/internal/domain/lesson"
	"github.com/lessongenie/web/internal/render"
)

func newRenderer(t *testing.T, sanitize bool) *render.Renderer {
	t.Helper()
	r, err := render.New(sanitize, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	return r
}

func renderPage(t *testing.T, r *render.Renderer, v controller.View) string {
	t.Helper()
	var buf bytes.Buffer
	if err := r.Page(&buf, v); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return buf.String()
}

func assertContains(t *testing.T, html string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(html, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func assertNotContains(t *testing.T, html string, unwanted ...string) {
	t.Helper()
	for _, u := range unwanted {
		if strings.Contains(html, u) {
			t.Errorf("expected page not to contain %q", u)
		}
	}
}

func TestPage_UploadScreen(t *testing.T) {
	r := newRenderer(t, true)
	html := renderPage(t, r, controller.View{
		Screen:        controller.ScreenUpload,
		UploadVisible: true,
		SubmitLabel:   controller.LabelExtract,
		Errors:        map[controller.Stage]string{controller.StageUpload: controller.MsgOnlyPDF},
	})

	assertContains(t, html,
		`<section id="upload-section">`,
		`<section id="question-list-section" hidden>`,
		`<section id="lesson-section" hidden>`,
		`name="pdf_file"`,
		`>Extract Questions</button>`,
		`<p id="upload-error-message" class="error" role="alert">Please select or drop a PDF file only.</p>`,
		`<p id="lesson-error-message" class="error" role="alert" hidden>`,
	)
	assertNotContains(t, html, `http-equiv="refresh"`)
}

func TestPage_BusyRefreshesAndDisablesSubmit(t *testing.T) {
	r := newRenderer(t, true)
	html := renderPage(t, r, controller.View{
		Screen:              controller.ScreenQuestionList,
		QuestionListVisible: true,
		ListSkeleton:        true,
		SubmitDisabled:      true,
		SpinnerVisible:      true,
		SubmitLabel:         controller.LabelExtracting,
		Refresh:             true,
	})

	assertContains(t, html,
		`<meta http-equiv="refresh" content="1">`,
		`<button id="extract-button" type="submit" disabled>Extracting Questions...</button>`,
		`<div id="question-list-skeleton" class="skeleton">`,
	)
}

func TestPage_QuestionRowsCarryTheirOwnData(t *testing.T) {
	r := newRenderer(t, true)
	html := renderPage(t, r, controller.View{
		Screen:              controller.ScreenQuestionList,
		QuestionListVisible: true,
		Rows: lesson.Rows([]lesson.Question{
			{QuestionID: "q1", QuestionText: `Is 1 < 2 "really"?`},
		}),
	})

	assertContains(t, html,
		`<input type="hidden" name="question_id" value="q1">`,
		`value="Is 1 &lt; 2 &#34;really&#34;?"`,
		`Detected Question (ID: q1)`,
		`<div id="question-list-skeleton" class="skeleton" hidden>`,
	)
}

func TestPage_EmptyQuestionList(t *testing.T) {
	r := newRenderer(t, true)
	html := renderPage(t, r, controller.View{
		Screen:              controller.ScreenQuestionList,
		QuestionListVisible: true,
		Placeholder:         controller.MsgNoQuestions,
	})

	assertContains(t, html, `No questions found in this PDF.`)
	assertNotContains(t, html, `class="question-row"`)
}

func lessonView() controller.View {
	d := &lesson.Data{
		QuestionID:      "q1",
		QuestionText:    "What is X?",
		Subject:         "Math",
		Topic:           "Algebra",
		CoreConceptHTML: `<p>Concept<script>alert(1)</script></p>`,
		Steps: []lesson.Step{
			{StepNumber: 1, Title: "First", DescriptionHTML: `<b onclick="x()">one</b>`},
			{StepNumber: 2, Title: "Second", DescriptionHTML: "<i>two</i>"},
		},
	}
	return controller.View{
		Screen:        controller.ScreenLesson,
		LessonVisible: true,
		Lesson: &controller.LessonView{
			Title:           d.Title(),
			Subheader:       d.Subheader(),
			CoreConceptHTML: d.CoreConceptHTML,
			Timeline:        d.Timeline(),
		},
	}
}

func TestPage_LessonSanitized(t *testing.T) {
	r := newRenderer(t, true)
	html := renderPage(t, r, lessonView())

	assertContains(t, html,
		`<h2 id="lesson-title">Lesson for: What is X?</h2>`,
		`Subject: Math | Topic: Algebra | Q-ID: q1`,
		`<div id="lesson-concept"><p>Concept</p></div>`,
		`style="animation-delay: 0s"`,
		`style="animation-delay: 0.1s"`,
		`<b>one</b>`,
		`<div id="lesson-image-container" hidden>`,
		`<div id="lesson-hints-container" hidden>`,
	)
	assertNotContains(t, html, `alert(1)`, `onclick`)
}

func TestPage_LessonVerbatimWhenSanitizeOff(t *testing.T) {
	r := newRenderer(t, false)
	html := renderPage(t, r, lessonView())

	assertContains(t, html, `<b onclick="x()">one</b>`)
}

func TestPage_LessonOptionalRegions(t *testing.T) {
	r := newRenderer(t, true)
	v := lessonView()
	v.Lesson.VisualAid = true
	v.Lesson.Hints = []string{"Try <b>this</b>", "<script>bad()</script>Second"}
	v.Lesson.HintsVisible = true
	html := renderPage(t, r, v)

	assertContains(t, html,
		`<div id="lesson-image-container">`,
		`<div id="lesson-hints-container">`,
		`<li>Try <b>this</b></li>`,
		`<li>Second</li>`,
	)
	assertNotContains(t, html, `bad()`)
}

func TestPage_UnknownStageFallsBackToAlert(t *testing.T) {
	r := newRenderer(t, true)
	html := renderPage(t, r, controller.View{
		Screen:        controller.ScreenUpload,
		UploadVisible: true,
		Errors:        map[controller.Stage]string{"settings": "Something broke"},
	})

	assertContains(t, html, `<div class="alert" role="alert">Something broke</div>`)
}
