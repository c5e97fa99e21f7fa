package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"rally-gateway/internal/domain/post"
)

func (c *Client) GetPost(ctx context.Context, id uint) (*post.Post, error) {
	var out post.Post
	err := c.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/publicaciones/%d", id)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPostsForRally(ctx context.Context, rallyID uint) ([]post.Post, error) {
	q := url.Values{"rally_id": {strconv.FormatUint(uint64(rallyID), 10)}}
	var out []post.Post
	err := c.do(ctx, request{method: http.MethodGet, path: "/publicaciones", query: q}, &out)
	return out, err
}

func (c *Client) ListPostsByUser(ctx context.Context, userID uint) ([]post.Post, error) {
	q := url.Values{"usuario_id": {strconv.FormatUint(uint64(userID), 10)}}
	var out []post.Post
	err := c.do(ctx, request{method: http.MethodGet, path: "/publicaciones", query: q}, &out)
	return out, err
}

func (c *Client) ListPendingPosts(ctx context.Context, token string) ([]post.Post, error) {
	var out []post.Post
	err := c.do(ctx, request{method: http.MethodGet, path: "/publicaciones/estado/pendiente", token: token}, &out)
	return out, err
}

type CreatePostInput struct {
	RallyID     uint
	Description string
	Filename    string
	Photo       io.Reader
}

// CreatePost uploads a photo as multipart form data, the only non-JSON call
// in the whole collaborator contract.
func (c *Client) CreatePost(ctx context.Context, token string, in CreatePostInput) (*post.Post, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("fotografia", in.Filename)
	if err != nil {
		return nil, errors.Wrap(err, "build upload")
	}
	if _, err := io.Copy(part, in.Photo); err != nil {
		return nil, errors.Wrap(err, "copy photo")
	}
	w.WriteField("descripcion", in.Description)
	w.WriteField("rally_id", strconv.FormatUint(uint64(in.RallyID), 10))
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "finish upload")
	}

	var out post.Post
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/publicaciones",
		token:       token,
		raw:         &buf,
		contentType: w.FormDataContentType(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetPostState approves a pending publication. The doubled path segment is
// the upstream's actual route, not a typo on our side.
func (c *Client) SetPostState(ctx context.Context, token string, id uint, state post.State) error {
	body := map[string]string{"estado": string(state)}
	path := fmt.Sprintf("/publicaciones/publicaciones/%d/estado", id)
	return c.do(ctx, request{method: http.MethodPut, path: path, token: token, body: body}, nil)
}

func (c *Client) DeletePost(ctx context.Context, token string, id uint) error {
	return c.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/publicaciones/%d", id), token: token}, nil)
}
