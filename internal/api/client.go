package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"sync"
	"time"

	"MindTrace/pkg/errors"
	"MindTrace/pkg/logger"
	"MindTrace/pkg/metrics"

	"go.uber.org/zap"
)

// Client wraps HTTP access to the MindTrace backend. It is a plain
// request/response mapper: no retries, no backoff, no caching. Callers own
// any local state built from responses.
type Client struct {
	baseURL string
	http    *http.Client
	met     *metrics.Metrics

	mu    sync.RWMutex
	token string
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		met:     metrics.Global(),
	}
}

// SetToken installs the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Health probes the server-status endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, "health", http.MethodGet, "/", nil, nil)
}

type detailBody struct {
	Detail string `json:"detail"`
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "marshal %s request", op)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrapf(err, "create %s request", op)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, op, out)
}

func (c *Client) doMultipart(ctx context.Context, op, path string, fields map[string]string, fileField, filename string, file []byte, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return errors.Wrapf(err, "build %s form", op)
		}
	}
	part, err := w.CreateFormFile(fileField, filename)
	if err != nil {
		return errors.Wrapf(err, "build %s form", op)
	}
	if _, err := part.Write(file); err != nil {
		return errors.Wrapf(err, "build %s form", op)
	}
	if err := w.Close(); err != nil {
		return errors.Wrapf(err, "build %s form", op)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return errors.Wrapf(err, "create %s request", op)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(req, op, out)
}

func (c *Client) send(req *http.Request, op string, out any) error {
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.met.ObserveAPIRequest(op, "transport_error", time.Since(start))
		return errors.WrapCode(errors.CodeAPI, err, errors.FallbackMessage)
	}
	defer resp.Body.Close()
	c.met.ObserveAPIRequest(op, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode >= 400 {
		return c.apiError(op, resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s response", op)
	}
	return nil
}

func (c *Client) apiError(op string, resp *http.Response) error {
	code := errors.CodeAPI
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		code = errors.CodeAuth
	case http.StatusNotFound:
		code = errors.CodeNotFound
	}

	var body detailBody
	msg := errors.FallbackMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		msg = body.Detail
	}
	logger.Warn("api request failed",
		zap.String("operation", op),
		zap.Int("status", resp.StatusCode),
		zap.String("detail", msg))
	return errors.WithCode(code, msg)
}

// pathID builds a path with a numeric id segment.
func pathID(prefix string, id int) string { return fmt.Sprintf("%s/%d", prefix, id) }
