package upstream

import (
	"context"
	"fmt"
	"net/http"

	"rally-gateway/internal/domain/users"
)

func (c *Client) GetUser(ctx context.Context, id uint) (*users.Account, error) {
	var out users.Account
	err := c.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/usuarios/%d", id)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUserPrivate returns the account with its private fields; only the
// account owner's own token is accepted upstream.
func (c *Client) GetUserPrivate(ctx context.Context, token string, id uint) (*users.Account, error) {
	var out users.Account
	err := c.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/usuarios/%d/private", id), token: token}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]users.Account, error) {
	var out []users.Account
	err := c.do(ctx, request{method: http.MethodGet, path: "/usuarios", token: token}, &out)
	return out, err
}

type UpdateUserInput struct {
	Name     string `json:"nombre,omitempty"`
	Email    string `json:"email,omitempty"`
	RoleCode int    `json:"rol_id,omitempty"`
}

func (c *Client) UpdateUser(ctx context.Context, token string, id uint, in UpdateUserInput) error {
	return c.do(ctx, request{method: http.MethodPut, path: fmt.Sprintf("/usuarios/%d", id), token: token, body: in}, nil)
}

func (c *Client) DeleteUser(ctx context.Context, token string, id uint) error {
	return c.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/usuarios/%d", id), token: token}, nil)
}
