package lesson

import (
	"fmt"
	"strconv"
)

// StepDelayIncrement is the reveal delay, in seconds, added per timeline step.
const StepDelayIncrement = 0.1

// Step is one entry of a lesson's step-by-step guide.
type Step struct {
	StepNumber      int    `json:"stepNumber"`
	Title           string `json:"title"`
	DescriptionHTML string `json:"descriptionHtml"`
}

// VisualAid describes an optional figure attached to the lesson.
type VisualAid struct {
	ImageURL  *string `json:"imageUrl,omitempty"`
	IsPresent bool    `json:"isPresent"`
}

// Data is the generated lesson for one question.
type Data struct {
	QuestionID      string     `json:"questionId"`
	QuestionText    string     `json:"questionText"`
	Subject         string     `json:"subject"`
	Topic           string     `json:"topic"`
	CoreConceptHTML string     `json:"coreConceptHtml"`
	Steps           []Step     `json:"steps"`
	VisualAid       *VisualAid `json:"visualAid,omitempty"`
	Hints           []string   `json:"hints"`
}

// Response is the lesson endpoint's success payload.
type Response struct {
	LessonData *Data `json:"lessonData"`
}

// Request asks the backend for a lesson on one extracted question.
type Request struct {
	PDFFileID            string `json:"pdfFileId"`
	SelectedQuestionID   string `json:"selectedQuestionId"`
	SelectedQuestionText string `json:"selectedQuestionText"`
}

// TimelineEntry is a rendered step with its staggered reveal delay.
type TimelineEntry struct {
	Number          int     `json:"number"`
	Title           string  `json:"title"`
	DescriptionHTML string  `json:"descriptionHtml"`
	Delay           float64 `json:"delay"`
}

// DelayCSS formats the delay as a CSS time value, e.g. "0.2s".
func (e TimelineEntry) DelayCSS() string {
	return strconv.FormatFloat(e.Delay, 'f', -1, 64) + "s"
}

// Title is the lesson heading.
func (d *Data) Title() string {
	return "Lesson for: " + d.QuestionText
}

// Subheader summarizes subject, topic and question id.
func (d *Data) Subheader() string {
	return fmt.Sprintf("Subject: %s | Topic: %s | Q-ID: %s", d.Subject, d.Topic, d.QuestionID)
}

// HasVisualAid reports whether the visual aid region should be shown.
func (d *Data) HasVisualAid() bool {
	return d.VisualAid != nil && d.VisualAid.IsPresent
}

// HasHints reports whether the hints region should be shown.
func (d *Data) HasHints() bool {
	return len(d.Hints) > 0
}

// Timeline returns the steps in array order with delays 0, 0.1, 0.2, ...
func (d *Data) Timeline() []TimelineEntry {
	entries := make([]TimelineEntry, len(d.Steps))
	for i, s := range d.Steps {
		// Rounded to one decimal so 0.1*3 reads 0.3.
		delay, _ := strconv.ParseFloat(strconv.FormatFloat(float64(i)*StepDelayIncrement, 'f', 1, 64), 64)
		entries[i] = TimelineEntry{
			Number:          s.StepNumber,
			Title:           s.Title,
			DescriptionHTML: s.DescriptionHTML,
			Delay:           delay,
		}
	}
	return entries
}
