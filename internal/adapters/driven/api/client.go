package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/docsight-labs/docsight-cli/internal/core/domain"
	"github.com/docsight-labs/docsight-cli/internal/core/ports/driven"
	"github.com/docsight-labs/docsight-cli/internal/logger"
)

const (
	// DefaultBaseURL is where the backend listens when run locally.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout is the default HTTP request timeout. Query requests
	// use UploadTimeout instead because answer generation is slow.
	DefaultTimeout = 30 * time.Second

	// UploadTimeout covers uploads and query answering, both of which run
	// document processing or model inference server-side.
	UploadTimeout = 5 * time.Minute

	// requestsPerSecond and burstSize keep a fast key-repeat of page
	// navigations from flooding the backend.
	requestsPerSecond = 10.0
	burstSize         = 20
)

// Ensure Client implements the driven port.
var _ driven.Backend = (*Client)(nil)

// Client talks to the backend's REST API.
type Client struct {
	baseURL string
	http    *http.Client
	slow    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a client for the backend at baseURL. An empty baseURL
// falls back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		slow:    &http.Client{Timeout: UploadTimeout},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
}

// NewClientWithHTTPClient creates a client with a custom http.Client.
// Useful for testing.
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	c := NewClient(baseURL)
	c.http = httpClient
	c.slow = httpClient
	return c
}

// BaseURL returns the backend base URL the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Query asks a question and returns the backend's answer with citations.
func (c *Client) Query(ctx context.Context, question string, topK int) (*domain.Answer, error) {
	body := struct {
		Question string `json:"question"`
		TopK     int    `json:"top_k"`
	}{Question: question, TopK: topK}

	var answer domain.Answer
	if err := c.postJSON(ctx, c.slow, "/query", body, &answer); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return &answer, nil
}

// ListDocuments returns the backend's document catalog.
func (c *Client) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	var payload struct {
		Documents []domain.Document `json:"documents"`
	}
	if err := c.getJSON(ctx, "/documents", &payload); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return payload.Documents, nil
}

// PageChunks fetches the chunks of one page of a document, ordered by
// paragraph number. All failures are reported as *domain.ChunkFetchError.
func (c *Client) PageChunks(ctx context.Context, filename string, page int) ([]domain.Chunk, error) {
	path := "/document/" + url.PathEscape(filename) + "/chunks?page_number=" + strconv.Itoa(page)

	var payload struct {
		Chunks []domain.Chunk `json:"chunks"`
	}
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, &domain.ChunkFetchError{Document: filename, Page: page, Err: err}
	}

	// The backend promises paragraph order; sort anyway so a misbehaving
	// backend cannot scramble the viewer.
	sort.SliceStable(payload.Chunks, func(i, j int) bool {
		return payload.Chunks[i].ParagraphNumber < payload.Chunks[j].ParagraphNumber
	})
	return payload.Chunks, nil
}

// UploadFile uploads a local document for processing and indexing.
func (c *Client) UploadFile(ctx context.Context, path string) (*domain.UploadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload/file", &buf)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result domain.UploadResult
	if err := c.do(c.slow, req, &result); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	return &result, nil
}

// DeleteDocument removes a document and its chunks from the backend.
// Deleting an unknown document returns domain.ErrDocumentNotFound.
func (c *Client) DeleteDocument(ctx context.Context, filename string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/documents/"+url.PathEscape(filename), nil)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	err = c.do(c.http, req, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return domain.ErrDocumentNotFound
	}
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Health probes the backend's health endpoint.
func (c *Client) Health(ctx context.Context) (*domain.Health, error) {
	var payload map[string]string
	if err := c.getJSON(ctx, "/health", &payload); err != nil {
		return nil, fmt.Errorf("health: %w", err)
	}

	health := &domain.Health{
		Status:     payload["status"],
		Components: make(map[string]string),
	}
	for name, status := range payload {
		if name != "status" {
			health.Components[name] = status
		}
	}
	return health, nil
}

// newRequest builds a request against the backend base URL.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
}

// getJSON performs a rate-limited GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(c.http, req, out)
}

// postJSON performs a rate-limited POST with a JSON body and decodes the
// JSON response.
func (c *Client) postJSON(ctx context.Context, client *http.Client, path string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(client, req, out)
}

// do executes a request after waiting for the rate limiter, maps non-2xx
// responses to *APIError, and decodes a JSON body into out when non-nil.
func (c *Client) do(client *http.Client, req *http.Request, out any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	logger.Debug("HTTP %s %s", req.Method, req.URL)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorDetail(resp.Body),
			URL:        req.URL.String(),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorDetail extracts the backend's error message from a failure body.
// FastAPI reports errors as {"detail": "..."}.
func errorDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(raw))
}
