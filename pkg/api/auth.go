package api

import (
	"context"

	"github.com/lumeo-hq/lumeo-api-client/pkg/request"
	"github.com/lumeo-hq/lumeo-api-client/pkg/tokenstore"
)

// LoginParams carries the sign-in form fields.
type LoginParams struct {
	Username string
	Password string
}

// LoginResult is the payload returned by a successful sign-in.
type LoginResult struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// AuthAPI maps the sign-in flow onto transport calls and keeps the token
// store in sync with the session.
type AuthAPI struct {
	client *request.Client
	tokens tokenstore.Store
}

// NewAuthAPI binds the auth resource to a request client and token store.
func NewAuthAPI(c *request.Client, tokens tokenstore.Store) *AuthAPI {
	return &AuthAPI{client: c, tokens: tokens}
}

// Login signs in with a form-encoded credential post and persists the
// returned token.
func (a *AuthAPI) Login(ctx context.Context, p LoginParams) (LoginResult, error) {
	res, err := request.PostForm[LoginResult](ctx, a.client, "/api/login", map[string]string{
		"username": p.Username,
		"password": p.Password,
	})
	if err != nil {
		return LoginResult{}, err
	}
	if a.tokens != nil && res.Token != "" {
		if serr := a.tokens.SetToken(ctx, res.Token); serr != nil {
			return res, serr
		}
	}
	return res, nil
}

// Logout ends the session server-side and clears the stored token either way.
func (a *AuthAPI) Logout(ctx context.Context) error {
	_, err := request.Post[any](ctx, a.client, "/api/logout")
	if a.tokens != nil {
		if cerr := a.tokens.Clear(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
