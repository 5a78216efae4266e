// Package render draws a session view as a single HTML page. Every region
// and error message has a fixed element id; hidden regions stay in the
// document with the hidden attribute.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"sort"

	"github.com/lessongenie/web/internal/controller"
)

//go:embed templates/index.html
var templateFS embed.FS

// Renderer executes the page template.
type Renderer struct {
	tmpl     *template.Template
	sanitize bool
	logger   *slog.Logger
}

func New(sanitize bool, logger *slog.Logger) (*Renderer, error) {
	tmpl, err := template.New("index.html").ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, sanitize: sanitize, logger: logger}, nil
}

type step struct {
	Number      int
	Title       string
	Description template.HTML
	Delay       string
}

type page struct {
	controller.View

	UploadError string
	ListError   string
	LessonError string
	// Alerts holds messages for stages without a region on the page.
	Alerts []string

	CoreConcept template.HTML
	Steps       []step
	Hints       []template.HTML
}

// Page writes the full document for v. The template runs into a buffer so
// a failure never leaves a half-written page.
func (r *Renderer) Page(w io.Writer, v controller.View) error {
	p := r.build(v)

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, p); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) build(v controller.View) page {
	p := page{View: v}

	stages := make([]string, 0, len(v.Errors))
	for stage := range v.Errors {
		stages = append(stages, string(stage))
	}
	sort.Strings(stages)

	for _, name := range stages {
		stage := controller.Stage(name)
		msg := v.Errors[stage]
		switch stage {
		case controller.StageUpload:
			p.UploadError = msg
		case controller.StageQuestionList:
			p.ListError = msg
		case controller.StageLesson:
			p.LessonError = msg
		default:
			r.logger.Warn("no error region for stage", "stage", name, "message", msg)
			p.Alerts = append(p.Alerts, msg)
		}
	}

	if v.Lesson != nil {
		p.CoreConcept = TrustedHTML(v.Lesson.CoreConceptHTML, r.sanitize)
		p.Steps = make([]step, len(v.Lesson.Timeline))
		for i, e := range v.Lesson.Timeline {
			p.Steps[i] = step{
				Number:      e.Number,
				Title:       e.Title,
				Description: TrustedHTML(e.DescriptionHTML, r.sanitize),
				Delay:       e.DelayCSS(),
			}
		}
		for _, hint := range v.Lesson.Hints {
			p.Hints = append(p.Hints, TrustedHTML(hint, r.sanitize))
		}
	}
	return p
}
