// Package api is the single HTTP transport behind every client workflow.
//
// The bearer credential is not a process-wide default: it lives on the
// Client instance and only the session manager mutates it, always after the
// credential store has been written. A request can therefore never carry a
// token the store has not seen.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken mirrors the access credential onto all future requests.
// Called only by the session manager.
func (c *Client) SetToken(token string) { c.token = token }

// ClearToken strips the authorization header from all future requests.
// Called only by the session manager.
func (c *Client) ClearToken() { c.token = "" }

func (c *Client) HasToken() bool { return c.token != "" }

// GetJSON fetches path and decodes the response body into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// GetList fetches a collection endpoint and normalizes either a bare JSON
// array or a paginated {"results": [...]} envelope into out, which must be
// a pointer to a slice. Callers never see the envelope shape.
func (c *Client) GetList(ctx context.Context, path string, out any) error {
	var raw json.RawMessage
	if err := c.GetJSON(ctx, path, &raw); err != nil {
		return err
	}
	return DecodeList(raw, out)
}

// PostJSON marshals in, posts it and decodes the response into out.
// out may be nil when the response body is irrelevant.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// Upload posts content as a multipart form with a single file field.
// No local validation of the content happens here; the server owns that
// and rejections come back through the error path.
func (c *Client) Upload(ctx context.Context, path, field, filename string, content []byte, out any) error {
	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := fw.Write(content); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, mw.FormDataContentType(), buf)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// Delete issues a DELETE; any 2xx status is success.
func (c *Client) Delete(ctx context.Context, path string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, path, "", nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) newRequest(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}
