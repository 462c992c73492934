package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/studyshelf/catalog-api/model"
)

const (
	// DefaultMirrorTimeout is the HTTP client timeout for mirror calls
	DefaultMirrorTimeout = 30 * time.Second
)

// MirrorClient reads from the optional remote mirror, an HTTP surface
// structurally compatible with the local entities. It is a read-only
// alternate data source used when the local store cannot be opened;
// nothing is ever written through it.
type MirrorClient struct {
	baseURL    string
	httpClient *http.Client
}

// MirrorConfig holds configuration for the mirror client
type MirrorConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewMirrorClient creates a new mirror client
func NewMirrorClient(cfg MirrorConfig) *MirrorClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultMirrorTimeout
	}

	return &MirrorClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// mirrorEnvelope is the response wrapper the mirror serves
type mirrorEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// Subjects fetches all subjects from the mirror.
func (c *MirrorClient) Subjects(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	if err := c.get(ctx, "/api/v1/subjects", &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// FilesBySubject fetches the files of one subject from the mirror.
func (c *MirrorClient) FilesBySubject(ctx context.Context, subjectID uint) ([]model.File, error) {
	var files []model.File
	if err := c.get(ctx, fmt.Sprintf("/api/v1/files/%d", subjectID), &files); err != nil {
		return nil, err
	}
	return files, nil
}

// Statistics fetches the aggregate snapshot from the mirror.
func (c *MirrorClient) Statistics(ctx context.Context) (*model.Statistics, error) {
	var stats model.Statistics
	if err := c.get(ctx, "/api/v1/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// get performs a GET request and decodes the enveloped payload into out.
func (c *MirrorClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build mirror request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mirror request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read mirror response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mirror returned status %d: %s", resp.StatusCode, string(body))
	}

	var envelope mirrorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to decode mirror envelope: %w", err)
	}
	if !envelope.Success {
		return fmt.Errorf("mirror reported failure for %s", path)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode mirror payload: %w", err)
	}
	return nil
}
