package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/lessongenie/web/internal/domain/lesson"
	"github.com/lessongenie/web/internal/domain/pdffile"
	"github.com/lessongenie/web/internal/id"
)

const (
	EndpointExtract = "/extract-questions"
	EndpointLesson  = "/generate-specific-lesson"

	// FileField is the multipart field the extraction endpoint reads.
	FileField = "pdf_file"

	RequestIDHeader = "X-Request-ID"
)

// Observer receives one call per completed request.
// status is 0 when no response was received.
type Observer interface {
	ObserveRequest(endpoint string, status int, elapsed time.Duration)
}

// Client calls the lesson backend over HTTP.
type Client struct {
	baseURL  string       // e.g. "http://localhost:8000"
	client   *http.Client // reused across calls
	observer Observer     // optional
}

// Compile-time check: *Client satisfies the Backend interface.
var _ Backend = (*Client)(nil)

// NewClient creates a client for the backend at baseURL.
// A zero timeout leaves the transport's own behavior in charge.
func NewClient(baseURL string, timeout time.Duration, observer Observer) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		observer: observer,
	}
}

// ============================================================================
// Backend interface
// ============================================================================

// ExtractQuestions posts the PDF as multipart form data.
func (c *Client) ExtractQuestions(ctx context.Context, file *pdffile.File) (*lesson.QuestionList, error) {
	body, contentType, err := encodeMultipart(file)
	if err != nil {
		return nil, err
	}

	var result lesson.QuestionList
	if err := c.post(ctx, EndpointExtract, contentType, body, &result); err != nil {
		return nil, err
	}

	if result.PDFFileID == "" {
		return nil, &ContractError{Reason: "missing pdfFileId"}
	}
	if result.Questions == nil {
		return nil, &ContractError{Reason: "missing questions"}
	}
	return &result, nil
}

// GenerateLesson posts the selection as JSON.
func (c *Client) GenerateLesson(ctx context.Context, req lesson.Request) (*lesson.Data, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var result lesson.Response
	if err := c.post(ctx, EndpointLesson, "application/json", bytes.NewReader(payload), &result); err != nil {
		return nil, err
	}

	if result.LessonData == nil {
		return nil, &ContractError{Reason: "missing lessonData"}
	}
	return result.LessonData, nil
}

// ============================================================================
// HTTP plumbing
// ============================================================================

type errorBody struct {
	Detail string `json:"detail"`
}

// post sends one request and decodes a 2xx body into out.
func (c *Client) post(ctx context.Context, endpoint, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, id.New())

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.observe(endpoint, 0, start)
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()
	c.observe(endpoint, resp.StatusCode, start)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorBody
		// A non-JSON error body falls back to the generic status message.
		_ = json.Unmarshal(raw, &e)
		return &HTTPError{StatusCode: resp.StatusCode, Detail: e.Detail}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &ContractError{Reason: "response is not valid JSON", Wrapped: err}
	}
	return nil
}

func (c *Client) observe(endpoint string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveRequest(endpoint, status, time.Since(start))
	}
}

// encodeMultipart builds the form body with the file under FileField,
// keeping the declared content type on the part.
func encodeMultipart(file *pdffile.File) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, FileField, file.Name))
	h.Set("Content-Type", file.ContentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, "", fmt.Errorf("failed to write form part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
