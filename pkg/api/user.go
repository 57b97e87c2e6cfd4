package api

import (
	"context"
	"strconv"

	"github.com/lumeo-hq/lumeo-api-client/pkg/request"
)

// UserItem is one user record as the backend returns it.
type UserItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// ListUsersParams selects the page of users to fetch.
type ListUsersParams struct {
	Page int
	Size int
}

// CreateUserParams carries the fields for a new user.
type CreateUserParams struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserAPI maps user operations onto transport calls. It holds no state beyond
// the client reference.
type UserAPI struct {
	client *request.Client
}

// NewUserAPI binds the user resource to a request client.
func NewUserAPI(c *request.Client) *UserAPI {
	return &UserAPI{client: c}
}

// List fetches one page of users.
func (a *UserAPI) List(ctx context.Context, p ListUsersParams) (request.Page[UserItem], error) {
	return request.Get[request.Page[UserItem]](ctx, a.client, "/api/users",
		request.WithQuery(map[string]string{
			"page": strconv.Itoa(p.Page),
			"size": strconv.Itoa(p.Size),
		}))
}

// Get fetches a single user by id.
func (a *UserAPI) Get(ctx context.Context, id string) (UserItem, error) {
	return request.Get[UserItem](ctx, a.client, "/api/users/{id}",
		request.WithPathParams(map[string]string{"id": id}))
}

// Create registers a new user.
func (a *UserAPI) Create(ctx context.Context, p CreateUserParams) (UserItem, error) {
	return request.Post[UserItem](ctx, a.client, "/api/users", request.WithBody(p))
}

// Delete removes a user by id.
func (a *UserAPI) Delete(ctx context.Context, id string) error {
	_, err := request.Delete[any](ctx, a.client, "/api/users/{id}",
		request.WithPathParams(map[string]string{"id": id}))
	return err
}

// Avatar fetches a user's avatar image as raw bytes.
func (a *UserAPI) Avatar(ctx context.Context, id string) ([]byte, error) {
	return request.Blob(ctx, a.client, "/api/users/{id}/avatar",
		request.WithPathParams(map[string]string{"id": id}))
}
