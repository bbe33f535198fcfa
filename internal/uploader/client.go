// Package uploader is the client side of the presigned upload workflow: for
// each file it asks the broker for an authorization and then sends the bytes
// straight to storage.
package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"uploadbroker/internal/domain"
	"uploadbroker/internal/logging"
)

const (
	// PresignPath is the broker route that issues authorizations.
	PresignPath = "/api/s3/presign"

	DefaultConcurrency = 4

	// maxMessageLen bounds the diagnostic text kept per failed file.
	maxMessageLen = 120
	// maxErrorBody bounds how much of a failure response is read.
	maxErrorBody = 4 << 10

	errCancelled = "upload cancelled"
)

// Client uploads batches through a broker.
type Client struct {
	brokerURL   string
	httpClient  *http.Client
	concurrency int
	token       string
	logger      *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the client used for both broker and storage calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithConcurrency caps simultaneous files in flight. n <= 0 keeps the default.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithToken sends a bearer token to the broker. It is never sent to storage.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = logging.OrNop(l) }
}

// New creates a Client for the broker at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		brokerURL:   strings.TrimRight(baseURL, "/") + PresignPath,
		httpClient:  &http.Client{Timeout: 5 * time.Minute},
		concurrency: DefaultConcurrency,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UploadBatch uploads every file and returns one outcome per file, index
// aligned with files. A failing file never stops the others. Files not yet
// started when ctx is cancelled get an "upload cancelled" outcome.
func (c *Client) UploadBatch(ctx context.Context, files []File) []Outcome {
	outcomes := make([]Outcome, len(files))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, f := range files {
		g.Go(func() error {
			if ctx.Err() != nil {
				outcomes[i] = Outcome{Filename: f.Name, Error: errCancelled}
				return nil
			}
			outcomes[i] = c.Upload(ctx, f)
			return nil
		})
	}
	_ = g.Wait()

	s := Summarize(outcomes)
	c.logger.Info("upload batch finished",
		zap.Int("attempted", s.Attempted), zap.Int("succeeded", s.Succeeded), zap.Int("failed", s.Failed))
	return outcomes
}

// Upload runs the two phases for a single file. The transfer only starts
// after a successful authorization.
func (c *Client) Upload(ctx context.Context, f File) Outcome {
	auth, err := c.authorize(ctx, f)
	if err != nil {
		c.logger.Warn("authorization failed", zap.String("file", f.Name), zap.Error(err))
		return Outcome{Filename: f.Name, Error: err.Error()}
	}

	if err := c.transfer(ctx, f, auth); err != nil {
		c.logger.Warn("transfer failed", zap.String("file", f.Name), zap.String("key", auth.Key), zap.Error(err))
		return Outcome{Filename: f.Name, Error: err.Error()}
	}

	c.logger.Debug("file stored", zap.String("file", f.Name), zap.String("key", auth.Key))
	return Outcome{Filename: f.Name, Key: auth.Key}
}

type presignRequest struct {
	Filename string `json:"filename"`
	Type     string `json:"type,omitempty"`
}

func (c *Client) authorize(ctx context.Context, f File) (*domain.UploadAuthorization, error) {
	payload, err := json.Marshal(presignRequest{Filename: f.Name, Type: f.ContentType})
	if err != nil {
		return nil, fmt.Errorf("requesting authorization: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.brokerURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("requesting authorization: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting authorization: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("requesting authorization failed (%d): %s", resp.StatusCode, brokerMessage(resp.Body))
	}

	var auth domain.UploadAuthorization
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil || auth.URL == "" || auth.Key == "" {
		return nil, errors.New("invalid authorization response")
	}
	return &auth, nil
}

func (c *Client) transfer(ctx context.Context, f File, auth *domain.UploadAuthorization) error {
	if f.Open == nil {
		return errors.New("uploading: no content")
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("uploading: opening file: %w", err)
	}
	defer func() { _ = rc.Close() }()

	method := auth.Method
	if method == "" {
		method = http.MethodPut
	}

	var body io.Reader = rc
	if f.Size == 0 {
		body = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, method, auth.URL, body)
	if err != nil {
		return fmt.Errorf("uploading: %w", err)
	}
	if f.Size >= 0 {
		req.ContentLength = f.Size
	}
	for k, v := range auth.Headers {
		if strings.EqualFold(k, "Host") {
			continue
		}
		req.Header.Set(k, v)
	}
	if req.Header.Get("Content-Type") == "" {
		ct := f.ContentType
		if ct == "" {
			ct = domain.DefaultContentType
		}
		req.Header.Set("Content-Type", ct)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("uploading: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("uploading failed (%d): %s", resp.StatusCode, truncate(string(text)))
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	return nil
}

// brokerMessage prefers the "error" field of a broker error body and falls
// back to the raw text.
func brokerMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return truncate(body.Error)
	}
	return truncate(string(raw))
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= maxMessageLen {
		return s
	}
	return string(r[:maxMessageLen])
}
