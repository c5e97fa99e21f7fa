package upstream

import (
	"context"
	"net/http"
	"net/url"

	"rally-gateway/internal/domain/users"
)

// VerifyCredential resolves a bearer token into the account it belongs to.
// Callers map every failure here to the anonymous viewer; nothing below this
// call distinguishes "expired", "forged" and "network down".
func (c *Client) VerifyCredential(ctx context.Context, token string) (*users.Account, error) {
	var out struct {
		User *users.Account `json:"user"`
	}
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/verify-token", token: token}, &out)
	if err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, ErrUnauthorized
	}
	return out.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: body}, &out)
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"nombre": name, "email": email, "password": password}
	return c.do(ctx, request{method: http.MethodPost, path: "/auth/register", body: body}, nil)
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, request{method: http.MethodPost, path: "/auth/request-password-reset", body: body}, nil)
}

func (c *Client) ResetPasswordInfo(ctx context.Context, resetToken string) (string, error) {
	q := url.Values{"token": {resetToken}}
	var out struct {
		Email string `json:"email"`
	}
	err := c.do(ctx, request{method: http.MethodGet, path: "/auth/reset-password/info", query: q}, &out)
	if err != nil {
		return "", err
	}
	return out.Email, nil
}

func (c *Client) ResetPassword(ctx context.Context, resetToken, password string) error {
	q := url.Values{"token": {resetToken}}
	body := map[string]string{"password": password}
	return c.do(ctx, request{method: http.MethodPost, path: "/auth/reset-password", query: q, body: body}, nil)
}
