package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"rally-gateway/internal/domain/comment"
)

func (c *Client) ListComments(ctx context.Context, postID uint) ([]comment.Comment, error) {
	q := url.Values{"publicacion_id": {strconv.FormatUint(uint64(postID), 10)}}
	var out []comment.Comment
	err := c.do(ctx, request{method: http.MethodGet, path: "/comentarios", query: q}, &out)
	return out, err
}

func (c *Client) CreateComment(ctx context.Context, token string, postID uint, body string) (*comment.Comment, error) {
	payload := map[string]interface{}{
		"publicacion_id": postID,
		"comentario":     body,
	}
	var out comment.Comment
	err := c.do(ctx, request{method: http.MethodPost, path: "/comentarios", token: token, body: payload}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetComment(ctx context.Context, id uint) (*comment.Comment, error) {
	var out comment.Comment
	err := c.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/comentarios/%d", id)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteComment(ctx context.Context, token string, id uint) error {
	return c.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/comentarios/%d", id), token: token}, nil)
}
