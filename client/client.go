// Package client is the console side of the API: a typed HTTP client, the
// signed-in session, the feed watcher and the filter-backed views built on them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Asadel-Surveillance/asadel-console/models"
)

const maxResponseBytes = 32 << 20

// envelope mirrors models.ApiResponse. Error stays raw: it is either a
// flag or a message string.
type envelope struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    json.RawMessage    `json:"data"`
	Error   json.RawMessage    `json:"error"`
	Meta    *models.Pagination `json:"meta"`
}

func (e envelope) errorMessage() string {
	var text string
	if len(e.Error) > 0 && json.Unmarshal(e.Error, &text) == nil && strings.TrimSpace(text) != "" {
		return text
	}
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	return genericErrorMessage
}

// Client talks to one console API, e.g. http://localhost:8081/api/v1
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

type Option func(*Client)

// WithHTTPClient swaps the transport, mostly for tests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func New(baseURL string, session *Session, opts ...Option) *Client {
	if session == nil {
		session = NewSession()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		session: session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Session { return c.session }

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// doJSON sends body (if any) as JSON and decodes the envelope's data into out
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) (*models.Pagination, error) {
	var reader io.Reader
	contentType := ""
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}
	req, err := c.newRequest(ctx, method, path, query, reader, contentType)
	if err != nil {
		return nil, err
	}
	return c.send(req, out)
}

// doMultipart sends a form built by fill
func (c *Client) doMultipart(ctx context.Context, method, path string, fill func(*multipart.Writer) error, out any) (*models.Pagination, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := fill(mw); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, method, path, nil, &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) (*models.Pagination, error) {
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if err := c.checkStatus(resp.StatusCode, raw); err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &ServerError{Status: resp.StatusCode, Message: genericErrorMessage}
	}
	if !env.Success {
		return nil, &ServerError{Status: resp.StatusCode, Message: env.errorMessage()}
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &ServerError{Status: resp.StatusCode, Message: genericErrorMessage}
		}
	}
	return env.Meta, nil
}

// checkStatus turns a non-2xx answer into a ServerError and drops the
// session on 401
func (c *Client) checkStatus(status int, body []byte) error {
	if status == http.StatusUnauthorized {
		c.session.Clear()
	}
	if status >= 200 && status < 300 {
		return nil
	}
	return &ServerError{Status: status, Message: decodeEnvelope(body).errorMessage()}
}

// decodeEnvelope yields the zero envelope for bodies that are not JSON
func decodeEnvelope(body []byte) envelope {
	var env envelope
	if json.Unmarshal(body, &env) != nil {
		return envelope{}
	}
	return env
}

// Download is a binary response such as a PDF or XLSX report
type Download struct {
	Filename    string
	ContentType string
	Body        []byte
}

func (c *Client) download(ctx context.Context, path string, query url.Values) (*Download, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if err := c.checkStatus(resp.StatusCode, raw); err != nil {
		return nil, err
	}

	d := &Download{ContentType: resp.Header.Get("Content-Type"), Body: raw}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		d.Filename = params["filename"]
	}
	return d, nil
}
