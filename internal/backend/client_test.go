package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lessongenie/web/internal/backend"
	"github.com/lessongenie/web/internal/domain/lesson"
	"github.com/lessongenie/web/internal/domain/pdffile"
)

type recordingObserver struct {
	mu       sync.Mutex
	statuses map[string]int
}

func (o *recordingObserver) ObserveRequest(endpoint string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.statuses == nil {
		o.statuses = make(map[string]int)
	}
	o.statuses[endpoint] = status
}

func samplePDF() *pdffile.File {
	return pdffile.New("sample.pdf", "application/pdf", []byte("%PDF-1.4 test"))
}

func TestExtractQuestions_SendsMultipartAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != backend.EndpointExtract {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if _, err := uuid.Parse(r.Header.Get(backend.RequestIDHeader)); err != nil {
			t.Errorf("expected a uuid request id header: %v", err)
		}
		file, header, err := r.FormFile(backend.FileField)
		if err != nil {
			t.Errorf("expected form file %q: %v", backend.FileField, err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)
		if string(content) != "%PDF-1.4 test" {
			t.Errorf("unexpected file content %q", content)
		}
		if header.Filename != "sample.pdf" {
			t.Errorf("unexpected filename %q", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("expected part content type application/pdf, got %q", ct)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"pdfFileId":"f1","questions":[{"questionId":"q1","questionText":"What is X?"}]}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := backend.NewClient(srv.URL+"/", 0, obs)

	got, err := client.ExtractQuestions(context.Background(), samplePDF())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PDFFileID != "f1" {
		t.Errorf("expected pdfFileId f1, got %q", got.PDFFileID)
	}
	if len(got.Questions) != 1 || got.Questions[0].QuestionID != "q1" {
		t.Errorf("unexpected questions %+v", got.Questions)
	}
	if obs.statuses[backend.EndpointExtract] != http.StatusOK {
		t.Errorf("expected observer to record 200, got %d", obs.statuses[backend.EndpointExtract])
	}
}

func TestExtractQuestions_EmptyQuestionArrayIsValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pdfFileId":"f1","questions":[]}`))
	}))
	defer srv.Close()

	got, err := backend.NewClient(srv.URL, 0, nil).ExtractQuestions(context.Background(), samplePDF())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Questions == nil || len(got.Questions) != 0 {
		t.Errorf("expected empty non-nil question list, got %#v", got.Questions)
	}
}

func TestExtractQuestions_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantHTTP    bool
	}{
		{"detail", http.StatusInternalServerError, `{"detail":"parse failed"}`, "parse failed", true},
		{"no detail", http.StatusBadGateway, `{}`, "HTTP error, status 502", true},
		{"non json error", http.StatusServiceUnavailable, `<html>down</html>`, "HTTP error, status 503", true},
		{"missing file id", http.StatusOK, `{"questions":[]}`, backend.InvalidDataMessage, false},
		{"missing questions", http.StatusOK, `{"pdfFileId":"f1"}`, backend.InvalidDataMessage, false},
		{"null questions", http.StatusOK, `{"pdfFileId":"f1","questions":null}`, backend.InvalidDataMessage, false},
		{"not json", http.StatusOK, `oops`, backend.InvalidDataMessage, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := backend.NewClient(srv.URL, 0, nil).ExtractQuestions(context.Background(), samplePDF())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := backend.Message(err); got != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, got)
			}

			var httpErr *backend.HTTPError
			if errors.As(err, &httpErr) != tt.wantHTTP {
				t.Errorf("HTTPError match = %v, want %v", !tt.wantHTTP, tt.wantHTTP)
			}
			if tt.wantHTTP && httpErr.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, httpErr.StatusCode)
			}
		})
	}
}

func TestExtractQuestions_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	obs := &recordingObserver{}
	_, err := backend.NewClient(url, 0, obs).ExtractQuestions(context.Background(), samplePDF())
	if err == nil {
		t.Fatal("expected transport error, got nil")
	}
	var httpErr *backend.HTTPError
	if errors.As(err, &httpErr) {
		t.Error("transport failure must not look like an HTTP status error")
	}
	if status, ok := obs.statuses[backend.EndpointExtract]; !ok || status != 0 {
		t.Errorf("expected observer to record status 0, got %d (recorded=%v)", status, ok)
	}
}

func TestGenerateLesson_SendsSelectionAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != backend.EndpointLesson {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON request, got %q", ct)
		}
		var req lesson.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("invalid request body: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		want := lesson.Request{PDFFileID: "f1", SelectedQuestionID: "q1", SelectedQuestionText: "What is X?"}
		if req != want {
			t.Errorf("expected %+v, got %+v", want, req)
		}
		w.Write([]byte(`{"lessonData":{"questionId":"q1","questionText":"What is X?","subject":"Math","topic":"Algebra",
			"coreConceptHtml":"<p>...</p>","steps":[{"stepNumber":1,"title":"Step 1","descriptionHtml":"<p>do this</p>"}],
			"visualAid":{"isPresent":false},"hints":[]}}`))
	}))
	defer srv.Close()

	data, err := backend.NewClient(srv.URL, 0, nil).GenerateLesson(context.Background(), lesson.Request{
		PDFFileID:            "f1",
		SelectedQuestionID:   "q1",
		SelectedQuestionText: "What is X?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Subject != "Math" || len(data.Steps) != 1 || data.HasVisualAid() || data.HasHints() {
		t.Errorf("unexpected lesson %+v", data)
	}
}

func TestGenerateLesson_MissingLessonData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"somethingElse":true}`))
	}))
	defer srv.Close()

	_, err := backend.NewClient(srv.URL, 0, nil).GenerateLesson(context.Background(), lesson.Request{PDFFileID: "f1"})

	var contractErr *backend.ContractError
	if !errors.As(err, &contractErr) {
		t.Fatalf("expected ContractError, got %v", err)
	}
}
