package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// RunPath is where the compute service accepts runs.
const RunPath = "/run"

// Dispatcher issues one run request and classifies how it resolved.
type Dispatcher interface {
	Dispatch(ctx context.Context, req RunRequest) Outcome
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// Client posts RunRequests to the compute endpoint. It imposes no timeout
// of its own; bound it with the context.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a client for the full endpoint URL (including /run).
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL runs are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Dispatch sends exactly one POST. The whole body is read and decoded
// before returning, so callers that stop a progress indicator afterwards
// keep it running through download and parsing.
func (c *Client) Dispatch(ctx context.Context, req RunRequest) Outcome {
	body, err := json.Marshal(req)
	if err != nil {
		return TransportFailed(fmt.Errorf("encoding request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return TransportFailed(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return TransportFailed(unwrapURLError(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return TransportFailed(fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// An unreadable error body still surfaces the status code.
		var payload ErrorPayload
		_ = json.Unmarshal(data, &payload)
		return ProtocolFailed(resp.StatusCode, payload)
	}

	result, err := decodeResult(data)
	if err != nil {
		return DecodeFailed(resp.StatusCode, err)
	}
	return Succeeded(resp.StatusCode, result)
}

// decodeResult requires a JSON object with a correlations array. An empty
// array is a valid result; a null or absent one is not.
func decodeResult(data []byte) (*RunResult, error) {
	var result *RunResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrNullResult
	}
	if result.Correlations == nil {
		return nil, ErrMissingCorrelations
	}
	return result, nil
}

// unwrapURLError drops the `Post "<url>":` prefix net/http adds so the
// user sees the cause only.
func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err
	}
	return err
}
