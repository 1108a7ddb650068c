package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/puzzlepizza/pos-admin/pkg/apperror"
)

// Client is a thin HTTP/JSON client for the pizza shop backend's /v1 API.
// It owns no state beyond the connection pool; every call is a single
// request/response with no retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client. baseURL is the server root without the
// /v1 prefix, e.g. "http://localhost:8080".
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/v1",
		httpClient: httpClient,
	}
}

// errorBody is the backend's error response shape.
type errorBody struct {
	Error string `json:"error"`
}

// do issues one request and decodes a 2xx response body into out (when out is
// non-nil). Non-2xx responses are surfaced using the body's "error" field
// when present, else a generic message. Transport failures become network
// errors; the caller's state is preserved so the user can retry.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperror.NewNetworkError(fmt.Sprintf("encode request: %v", err))
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return apperror.NewNetworkError(fmt.Sprintf("build request: %v", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.NewNetworkError(fmt.Sprintf("backend unreachable: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(resp)
	}

	if out == nil {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.NewNetworkError(fmt.Sprintf("decode response: %v", err))
	}
	return nil
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		if resp.StatusCode == http.StatusNotFound {
			return &apperror.AppError{Code: http.StatusNotFound, Message: body.Error, Kind: apperror.KindNotFound}
		}
		return apperror.NewNetworkError(body.Error)
	}

	if resp.StatusCode == http.StatusNotFound {
		return apperror.ErrNotFound
	}
	return apperror.NewNetworkError(fmt.Sprintf("backend returned %s", resp.Status))
}
