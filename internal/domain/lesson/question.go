package lesson

import "fmt"

// PreviewLength is the number of characters of a question shown in its list row.
const PreviewLength = 120

// MissingQuestionText replaces an empty questionText in a list row.
const MissingQuestionText = "Question text missing"

// Question is one candidate question extracted from a PDF.
type Question struct {
	QuestionID   string `json:"questionId"`
	QuestionText string `json:"questionText"`
}

// QuestionList is the extraction endpoint's success payload.
// Questions is nil when the field was absent from the response.
type QuestionList struct {
	PDFFileID string     `json:"pdfFileId"`
	Questions []Question `json:"questions"`
}

// Row is a selectable entry of the question list.
type Row struct {
	QuestionID   string `json:"questionId"`
	QuestionText string `json:"questionText"`
	Label        string `json:"label"`
	Preview      string `json:"preview"`
}

// NormalizeQuestions applies the defaulting rules for incomplete entries:
// a missing id becomes "item-{index}" and missing text a placeholder.
// The input is not modified.
func NormalizeQuestions(questions []Question) []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		if q.QuestionID == "" {
			q.QuestionID = fmt.Sprintf("item-%d", i)
		}
		if q.QuestionText == "" {
			q.QuestionText = MissingQuestionText
		}
		out[i] = q
	}
	return out
}

// Rows builds the list rows for already normalized questions.
func Rows(questions []Question) []Row {
	rows := make([]Row, len(questions))
	for i, q := range questions {
		rows[i] = Row{
			QuestionID:   q.QuestionID,
			QuestionText: q.QuestionText,
			Label:        fmt.Sprintf("Detected Question (ID: %s)", q.QuestionID),
			Preview:      Preview(q.QuestionText),
		}
	}
	return rows
}

// Preview truncates text to PreviewLength characters and appends an ellipsis.
// The ellipsis is appended even when nothing was cut.
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) > PreviewLength {
		runes = runes[:PreviewLength]
	}
	return string(runes) + "..."
}
