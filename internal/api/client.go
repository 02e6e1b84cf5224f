// Package api is the HTTP client for the finance backend. It attaches the
// session token to outgoing requests, bounds every request with a fixed
// timeout, and folds transport failures into a distinguishable error shape.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/log"
)

// DefaultTimeout bounds every request. Exceeding it is classified as a
// network error, not a distinct timeout kind.
const DefaultTimeout = 10 * time.Second

// TokenSource returns the current session token, or "" when there is no
// session. It is consulted on every request, never cached, so a login or
// logout takes effect immediately.
type TokenSource func() string

type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	logger  *log.Logger
}

func NewClient(baseURL string, timeout time.Duration, token TokenSource, logger *log.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		token:   token,
		logger:  logger.WithComponent(log.ComponentAPI),
	}
}

// errorEnvelope is the backend's failure payload.
type errorEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

// do issues one request and decodes the response body into out (when out
// is non-nil). All failures come back as *Error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: "invalid request payload", err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &Error{Message: "invalid request", err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	// The token is read fresh on every request. Absence never blocks the
	// call; unauthenticated requests simply go out without the header.
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start).Milliseconds()
	if err != nil {
		// No HTTP response: timeout, refused connection, DNS failure.
		c.logger.Warn("backend unreachable",
			log.FieldRequestID, requestID,
			log.FieldMethod, method,
			log.FieldPath, path,
			log.FieldDuration, duration,
			log.FieldError, err)
		return &Error{
			Message:        "Cannot connect to server. Please make sure the backend is running.",
			IsNetworkError: true,
			err:            err,
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{
			Message:        "Connection interrupted while reading the response.",
			IsNetworkError: true,
			err:            err,
		}
	}

	c.logger.Debug("request completed",
		log.FieldRequestID, requestID,
		log.FieldMethod, method,
		log.FieldPath, path,
		log.FieldStatusCode, resp.StatusCode,
		log.FieldDuration, duration)

	if resp.StatusCode >= 400 {
		return c.serverError(resp.StatusCode, data, requestID)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{StatusCode: resp.StatusCode, Message: "unexpected response from server", err: err}
		}
	}
	return nil
}

// serverError builds the failure for an HTTP error status. The backend's
// own message is surfaced verbatim; field validation errors are logged
// but left untouched.
func (c *Client) serverError(status int, body []byte, requestID string) *Error {
	var env errorEnvelope
	_ = json.Unmarshal(body, &env)

	message := env.Message
	if message == "" {
		message = env.Error
	}
	if message == "" {
		message = fmt.Sprintf("server returned status %d", status)
	}

	if len(env.Errors) > 0 {
		c.logger.Warn("validation errors from backend",
			log.FieldRequestID, requestID,
			log.FieldStatusCode, status,
			"fields", env.Errors)
	}

	return &Error{
		StatusCode: status,
		Message:    message,
		Fields:     env.Errors,
	}
}

// decodeList normalizes the two list shapes the backend produces, a bare
// array and a {"data": [...]} envelope, into out. Any other shape is a
// loud ErrUnrecognizedEnvelope failure rather than a silent guess.
func decodeList(data []byte, out any) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return ErrUnrecognizedEnvelope
	}

	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, out); err != nil {
			return fmt.Errorf("%w: %v", ErrUnrecognizedEnvelope, err)
		}
		return nil
	case '{':
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return fmt.Errorf("%w: %v", ErrUnrecognizedEnvelope, err)
		}
		inner := bytes.TrimLeft(envelope.Data, " \t\r\n")
		if len(inner) == 0 || inner[0] != '[' {
			return ErrUnrecognizedEnvelope
		}
		if err := json.Unmarshal(inner, out); err != nil {
			return fmt.Errorf("%w: %v", ErrUnrecognizedEnvelope, err)
		}
		return nil
	default:
		return ErrUnrecognizedEnvelope
	}
}

// getList fetches a list endpoint and applies envelope normalization.
func (c *Client) getList(ctx context.Context, path string, out any) error {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return err
	}
	if err := decodeList(raw, out); err != nil {
		return &Error{Message: "unexpected response from server", err: err}
	}
	return nil
}
