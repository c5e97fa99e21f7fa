package upstream

import (
	"context"
	"fmt"
	"net/http"

	"rally-gateway/internal/domain/rally"
)

func (c *Client) GetRally(ctx context.Context, id uint) (*rally.Rally, error) {
	var out rally.Rally
	err := c.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/rallies/%d", id)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListRallies(ctx context.Context, token string) ([]rally.Rally, error) {
	var out []rally.Rally
	err := c.do(ctx, request{method: http.MethodGet, path: "/rallies", token: token}, &out)
	return out, err
}

// ListRallyCards returns the landing-page card feed, each rally annotated
// upstream with its most voted image.
func (c *Client) ListRallyCards(ctx context.Context) ([]rally.Rally, error) {
	var out []rally.Rally
	err := c.do(ctx, request{method: http.MethodGet, path: "/rallies/card"}, &out)
	return out, err
}

func (c *Client) ListRalliesByUser(ctx context.Context, userID uint) ([]rally.Rally, error) {
	var out []rally.Rally
	err := c.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/rallies/usuario/%d", userID)}, &out)
	return out, err
}

type CreateRallyInput struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	EndDate     string `json:"fecha_fin"`
	Categories  string `json:"categorias"`
	MaxPhotos   int    `json:"cantidad_fotos_max"`
}

func (c *Client) CreateRally(ctx context.Context, token string, in CreateRallyInput) (*rally.Rally, error) {
	var out rally.Rally
	err := c.do(ctx, request{method: http.MethodPost, path: "/rallies", token: token, body: in}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type UpdateRallyInput struct {
	Name        string `json:"nombre,omitempty"`
	Description string `json:"descripcion,omitempty"`
	EndDate     string `json:"fecha_fin,omitempty"`
	Categories  string `json:"categorias,omitempty"`
	MaxPhotos   int    `json:"cantidad_fotos_max,omitempty"`
}

func (c *Client) UpdateRally(ctx context.Context, token string, id uint, in UpdateRallyInput) error {
	return c.do(ctx, request{method: http.MethodPut, path: fmt.Sprintf("/rallies/%d", id), token: token, body: in}, nil)
}

// SetRallyState performs the moderation transition; the only value the
// upstream ever accepts here is "activo".
func (c *Client) SetRallyState(ctx context.Context, token string, id uint, state rally.State) error {
	body := map[string]string{"estado": string(state)}
	return c.do(ctx, request{method: http.MethodPut, path: fmt.Sprintf("/rallies/%d", id), token: token, body: body}, nil)
}

func (c *Client) DeleteRally(ctx context.Context, token string, id uint) error {
	return c.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/rallies/%d", id), token: token}, nil)
}
