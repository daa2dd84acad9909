package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// HTTPExtractor forwards a document to the external extraction service and
// decodes its {record, raw_text} response.
type HTTPExtractor struct {
	url    string
	apiKey string
	client *http.Client
	log    *slog.Logger
}

func NewHTTPExtractor(url, apiKey string, timeout time.Duration, log *slog.Logger) *HTTPExtractor {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &HTTPExtractor{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Extract uploads the file as multipart form data and returns the decoded
// extraction result.
func (e *HTTPExtractor) Extract(ctx context.Context, filePath string) (ExtractionResult, error) {
	reqID := uuid.New().String()
	start := time.Now()

	f, err := os.Open(filePath)
	if err != nil {
		return ExtractionResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return ExtractionResult{}, fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return ExtractionResult{}, fmt.Errorf("copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return ExtractionResult{}, fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, &body)
	if err != nil {
		return ExtractionResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	e.log.Info("extract.http.request", "req_id", reqID, "file", filepath.Base(filePath))

	resp, err := e.client.Do(req)
	if err != nil {
		e.log.Error("extract.http.send_error", "req_id", reqID, "error", err)
		return ExtractionResult{}, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	e.log.Info("extract.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	if resp.StatusCode/100 != 2 {
		return ExtractionResult{}, fmt.Errorf("extraction service status %d", resp.StatusCode)
	}

	var res ExtractionResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return ExtractionResult{}, fmt.Errorf("decode extraction response: %w", err)
	}
	return res, nil
}
