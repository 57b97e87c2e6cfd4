package request

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// Option customizes a single outbound request.
type Option func(*resty.Request)

// WithQuery sets query-string parameters.
func WithQuery(params map[string]string) Option {
	return func(r *resty.Request) { r.SetQueryParams(params) }
}

// WithBody sets a JSON request body.
func WithBody(body any) Option {
	return func(r *resty.Request) { r.SetBody(body) }
}

// WithForm sets URL-encoded form fields.
func WithForm(fields map[string]string) Option {
	return func(r *resty.Request) { r.SetFormData(fields) }
}

// WithHeader sets a single request header.
func WithHeader(key, value string) Option {
	return func(r *resty.Request) { r.SetHeader(key, value) }
}

// WithHeaders sets multiple request headers.
func WithHeaders(headers map[string]string) Option {
	return func(r *resty.Request) { r.SetHeaders(headers) }
}

// WithPathParams substitutes {name} placeholders in the request path.
func WithPathParams(params map[string]string) Option {
	return func(r *resty.Request) { r.SetPathParams(params) }
}

// Get issues a GET and unwraps the envelope into T.
func Get[T any](ctx context.Context, c *Client, path string, opts ...Option) (T, error) {
	return execute[T](ctx, c, http.MethodGet, path, opts...)
}

// Post issues a POST and unwraps the envelope into T.
func Post[T any](ctx context.Context, c *Client, path string, opts ...Option) (T, error) {
	return execute[T](ctx, c, http.MethodPost, path, opts...)
}

// Put issues a PUT and unwraps the envelope into T.
func Put[T any](ctx context.Context, c *Client, path string, opts ...Option) (T, error) {
	return execute[T](ctx, c, http.MethodPut, path, opts...)
}

// Patch issues a PATCH and unwraps the envelope into T.
func Patch[T any](ctx context.Context, c *Client, path string, opts ...Option) (T, error) {
	return execute[T](ctx, c, http.MethodPatch, path, opts...)
}

// Delete issues a DELETE and unwraps the envelope into T.
func Delete[T any](ctx context.Context, c *Client, path string, opts ...Option) (T, error) {
	return execute[T](ctx, c, http.MethodDelete, path, opts...)
}

// PostForm issues a form-encoded POST and unwraps the envelope into T.
func PostForm[T any](ctx context.Context, c *Client, path string, fields map[string]string, opts ...Option) (T, error) {
	return execute[T](ctx, c, http.MethodPost, path, append(opts, WithForm(fields))...)
}

// PutForm issues a form-encoded PUT and unwraps the envelope into T.
func PutForm[T any](ctx context.Context, c *Client, path string, fields map[string]string, opts ...Option) (T, error) {
	return execute[T](ctx, c, http.MethodPut, path, append(opts, WithForm(fields))...)
}

// PatchForm issues a form-encoded PATCH and unwraps the envelope into T.
func PatchForm[T any](ctx context.Context, c *Client, path string, fields map[string]string, opts ...Option) (T, error) {
	return execute[T](ctx, c, http.MethodPatch, path, append(opts, WithForm(fields))...)
}

// Blob issues a GET for a binary body, bypassing envelope parsing.
func Blob(ctx context.Context, c *Client, path string, opts ...Option) ([]byte, error) {
	return Get[[]byte](ctx, c, path, opts...)
}

// execute runs one call through the full interception pipeline: transport,
// failure classification, envelope unwrap, and notification side effects.
func execute[T any](ctx context.Context, c *Client, method, path string, opts ...Option) (T, error) {
	var zero T
	if c == nil {
		return zero, fmt.Errorf("request client is nil")
	}

	resp, err := c.do(ctx, method, path, opts...)
	if err != nil || resp.IsError() {
		return zero, c.fail(ctx, method, path, resp, err)
	}

	if !isStructured(resp) {
		// Binary responses skip the envelope and come back unmodified.
		if out, ok := any(resp.Body()).(T); ok {
			return out, nil
		}
		st := &Status{HTTPStatus: resp.StatusCode(), Message: c.messages.Unknown}
		c.log.ErrorObj("unexpected content type for typed call", "content_type", resp.Header().Get("Content-Type"))
		c.notifier.Error(ctx, st.Notice())
		return zero, st
	}

	var env Envelope[T]
	if jsonErr := json.Unmarshal(resp.Body(), &env); jsonErr != nil {
		st := &Status{HTTPStatus: resp.StatusCode(), Message: c.messages.Unknown, Err: jsonErr}
		c.log.ErrorObj("response body is not an envelope", "response_body", snippet(resp.Body()))
		c.notifier.Error(ctx, st.Notice())
		return zero, st
	}

	if !env.Success {
		st := &Status{
			HTTPStatus: resp.StatusCode(),
			Code:       env.Code,
			Message:    c.messages.CodeText(env.Code, env.Message),
		}
		if st.Message == "" {
			st.Message = c.messages.Unknown
		}
		c.log.WarnObj("business failure", "envelope", map[string]any{
			"method":  method,
			"path":    path,
			"code":    env.Code,
			"message": env.Message,
		})
		c.notifier.Error(ctx, st.Notice())
		return zero, st
	}

	if env.Message != "" {
		c.notifier.Info(ctx, env.Message)
	}
	return env.Data, nil
}
