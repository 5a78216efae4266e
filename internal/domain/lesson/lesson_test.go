package lesson_test

import (
	"strings"
	"testing"

	"github.com/lessongenie/web/internal/domain/lesson"
)

func TestNormalizeQuestions_FillsMissingFields(t *testing.T) {
	in := []lesson.Question{
		{QuestionID: "q1", QuestionText: "What is X?"},
		{QuestionID: "", QuestionText: "No id here"},
		{QuestionID: "q3", QuestionText: ""},
	}

	out := lesson.NormalizeQuestions(in)

	if out[0] != in[0] {
		t.Errorf("expected complete question to be unchanged, got %+v", out[0])
	}
	if out[1].QuestionID != "item-1" {
		t.Errorf("expected fallback id %q, got %q", "item-1", out[1].QuestionID)
	}
	if out[2].QuestionText != lesson.MissingQuestionText {
		t.Errorf("expected placeholder text, got %q", out[2].QuestionText)
	}
	if in[1].QuestionID != "" {
		t.Error("expected input slice to be left untouched")
	}
}

func TestRows_LabelAndPreview(t *testing.T) {
	rows := lesson.Rows([]lesson.Question{{QuestionID: "q1", QuestionText: "What is X?"}})

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Label != "Detected Question (ID: q1)" {
		t.Errorf("unexpected label %q", rows[0].Label)
	}
	if rows[0].Preview != "What is X?..." {
		t.Errorf("unexpected preview %q", rows[0].Preview)
	}
	if rows[0].QuestionText != "What is X?" {
		t.Errorf("expected row to carry full text, got %q", rows[0].QuestionText)
	}
}

func TestPreview_TruncatesTo120Runes(t *testing.T) {
	long := strings.Repeat("é", 200)

	got := lesson.Preview(long)

	want := strings.Repeat("é", lesson.PreviewLength) + "..."
	if got != want {
		t.Errorf("expected %d runes plus ellipsis, got %d runes", lesson.PreviewLength, len([]rune(got)))
	}
}

func TestTimeline_OrderAndDelays(t *testing.T) {
	data := &lesson.Data{
		Steps: []lesson.Step{
			{StepNumber: 1, Title: "A"},
			{StepNumber: 2, Title: "B"},
			{StepNumber: 3, Title: "C"},
			{StepNumber: 4, Title: "D"},
		},
	}

	entries := data.Timeline()

	if len(entries) != len(data.Steps) {
		t.Fatalf("expected %d entries, got %d", len(data.Steps), len(entries))
	}
	wantDelays := []string{"0s", "0.1s", "0.2s", "0.3s"}
	for i, e := range entries {
		if e.Title != data.Steps[i].Title {
			t.Errorf("entry %d: expected title %q, got %q", i, data.Steps[i].Title, e.Title)
		}
		if e.DelayCSS() != wantDelays[i] {
			t.Errorf("entry %d: expected delay %s, got %s", i, wantDelays[i], e.DelayCSS())
		}
	}
}

func TestData_HeaderAndRegions(t *testing.T) {
	data := &lesson.Data{
		QuestionID:   "q1",
		QuestionText: "What is X?",
		Subject:      "Math",
		Topic:        "Algebra",
	}

	if got := data.Title(); got != "Lesson for: What is X?" {
		t.Errorf("unexpected title %q", got)
	}
	if got := data.Subheader(); got != "Subject: Math | Topic: Algebra | Q-ID: q1" {
		t.Errorf("unexpected subheader %q", got)
	}
	if data.HasVisualAid() {
		t.Error("expected no visual aid when field is absent")
	}
	if data.HasHints() {
		t.Error("expected no hints region for empty hints")
	}

	data.VisualAid = &lesson.VisualAid{IsPresent: true}
	data.Hints = []string{"<b>think</b>"}
	if !data.HasVisualAid() || !data.HasHints() {
		t.Error("expected visual aid and hints regions to be visible")
	}
}
