package request

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Notifier is the user-facing notification surface the client emits to.
// Implementations are fire-and-forget; the client never consumes a result.
type Notifier interface {
	Success(ctx context.Context, text string)
	Error(ctx context.Context, text string)
	Info(ctx context.Context, text string)
}

// TokenSource supplies the access token attached to outbound requests and is
// cleared when the backend answers 401.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Logger defines the logging surface the client relies on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) InfoObj(string, string, interface{})  {}
func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
func (noopLogger) ErrorObj(string, string, interface{}) {}

type noopNotifier struct{}

func (noopNotifier) Success(context.Context, string) {}
func (noopNotifier) Error(context.Context, string)  {}
func (noopNotifier) Info(context.Context, string)   {}

const defaultTimeout = 10 * time.Second

// Options configures a Client. BaseURL is required; everything else has a
// working zero value.
type Options struct {
	BaseURL  string
	Timeout  time.Duration
	Notifier Notifier
	Tokens   TokenSource
	Messages *Messages
	Logger   Logger
}

// Client wraps a resty client configured once at startup. It unwraps the
// backend's response envelope, emits notifications as side effects, and maps
// every failure through a fixed taxonomy. Construct one in the application's
// composition root; the zero value is not usable.
type Client struct {
	http     *resty.Client
	notifier Notifier
	tokens   TokenSource
	messages *Messages
	log      Logger
}

// New builds a Client from options.
func New(opts Options) (*Client, error) {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base = strings.TrimSuffix(base, "/")

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		notifier: opts.Notifier,
		tokens:   opts.Tokens,
		messages: normalizeMessages(opts.Messages),
		log:      opts.Logger,
	}
	if c.notifier == nil {
		c.notifier = noopNotifier{}
	}
	if c.log == nil {
		c.log = noopLogger{}
	}

	rc := resty.New().
		SetBaseURL(base).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	rc.OnBeforeRequest(c.attachAuth)

	c.http = rc
	return c, nil
}

// attachAuth sets the Authorization header from the token source when a token
// is available. Requests without a token go out unauthenticated.
func (c *Client) attachAuth(_ *resty.Client, req *resty.Request) error {
	if c.tokens == nil {
		return nil
	}
	token, err := c.tokens.Token(req.Context())
	if err != nil {
		c.log.WarnObj("token source read failed", "token_error", err.Error())
		return nil
	}
	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.http.BaseURL }

// do executes one request through the configured transport.
func (c *Client) do(ctx context.Context, method, path string, opts ...Option) (*resty.Response, error) {
	req := c.http.R().SetContext(ctx)
	for _, opt := range opts {
		if opt != nil {
			opt(req)
		}
	}
	return req.Execute(method, path)
}

// fail resolves a failed call to its Status, clears the token on 401, logs the
// original error, and emits exactly one error notification.
func (c *Client) fail(ctx context.Context, method, path string, resp *resty.Response, err error) *Status {
	st := resolveFailure(resp, err, c.messages, c.log)

	if st.HTTPStatus == http.StatusUnauthorized && c.tokens != nil {
		if cerr := c.tokens.Clear(ctx); cerr != nil {
			c.log.WarnObj("token clear failed", "token_error", cerr.Error())
		}
	}

	c.log.ErrorObj("request failed", "request_error", map[string]any{
		"method":  method,
		"path":    path,
		"status":  st.HTTPStatus,
		"code":    st.Code,
		"message": st.Message,
		"error":   errText(err),
	})
	c.notifier.Error(ctx, st.Notice())
	return st
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
