package request

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// Raw verbs return the full transport response instead of the unwrapped
// payload. Interception side effects (auth header, 401 token clearing,
// notifications) are identical to the typed verbs; only the unwrapping is
// skipped. On a business failure the response is returned alongside the
// Status so callers can still inspect the wire bytes.

// GetRaw issues a GET and returns the transport response.
func (c *Client) GetRaw(ctx context.Context, path string, opts ...Option) (*resty.Response, error) {
	return c.ExecuteRaw(ctx, http.MethodGet, path, opts...)
}

// PostRaw issues a POST and returns the transport response.
func (c *Client) PostRaw(ctx context.Context, path string, opts ...Option) (*resty.Response, error) {
	return c.ExecuteRaw(ctx, http.MethodPost, path, opts...)
}

// PutRaw issues a PUT and returns the transport response.
func (c *Client) PutRaw(ctx context.Context, path string, opts ...Option) (*resty.Response, error) {
	return c.ExecuteRaw(ctx, http.MethodPut, path, opts...)
}

// PatchRaw issues a PATCH and returns the transport response.
func (c *Client) PatchRaw(ctx context.Context, path string, opts ...Option) (*resty.Response, error) {
	return c.ExecuteRaw(ctx, http.MethodPatch, path, opts...)
}

// DeleteRaw issues a DELETE and returns the transport response.
func (c *Client) DeleteRaw(ctx context.Context, path string, opts ...Option) (*resty.Response, error) {
	return c.ExecuteRaw(ctx, http.MethodDelete, path, opts...)
}

// ExecuteRaw issues a request with an arbitrary method and returns the
// transport response.
func (c *Client) ExecuteRaw(ctx context.Context, method, path string, opts ...Option) (*resty.Response, error) {
	resp, err := c.do(ctx, method, path, opts...)
	if err != nil || resp.IsError() {
		return resp, c.fail(ctx, method, path, resp, err)
	}

	if isStructured(resp) {
		var probe envelopeProbe
		if jsonErr := json.Unmarshal(resp.Body(), &probe); jsonErr == nil && probe.Success != nil {
			if !*probe.Success {
				st := &Status{
					HTTPStatus: resp.StatusCode(),
					Code:       probe.Code,
					Message:    c.messages.CodeText(probe.Code, probe.Message),
				}
				if st.Message == "" {
					st.Message = c.messages.Unknown
				}
				c.notifier.Error(ctx, st.Notice())
				return resp, st
			}
			if probe.Message != "" {
				c.notifier.Info(ctx, probe.Message)
			}
		}
	}
	return resp, nil
}
