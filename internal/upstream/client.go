// Package upstream is the typed client for the photo-rally REST API. The
// gateway owns no rally data; every resource read or mutated here lives
// behind this interface.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrUnauthorized = errors.New("upstream rejected credential")
	ErrForbidden    = errors.New("upstream denied access")
	ErrNotFound     = errors.New("resource not found")
)

// StatusError carries any other non-2xx answer, with the upstream's own
// message when it sent one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Code)
}

type Client struct {
	base string
	http *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

type request struct {
	method string
	path   string
	query  url.Values
	token  string
	body   interface{}

	// raw overrides body with a prebuilt reader (multipart uploads).
	raw         io.Reader
	contentType string
}

func (c *Client) do(ctx context.Context, r request, out interface{}) error {
	u := c.base + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var payload io.Reader
	contentType := r.contentType
	if r.raw != nil {
		payload = r.raw
	} else if r.body != nil {
		buf, err := json.Marshal(r.body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		payload = bytes.NewReader(buf)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, payload)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", r.method, r.path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.statusError(resp, r)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s %s response", r.method, r.path)
	}
	return nil
}

func (c *Client) statusError(resp *http.Response, r request) error {
	var body struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	json.Unmarshal(raw, &body)

	log.WithFields(log.Fields{
		"method": r.method,
		"path":   r.path,
		"status": resp.StatusCode,
	}).Warn("upstream error")

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	}
	return &StatusError{Code: resp.StatusCode, Message: body.Message}
}
