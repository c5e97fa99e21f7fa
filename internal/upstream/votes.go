package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// VoteCount tolerates both shapes the upstream has been seen returning: a
// bare array of vote rows, or an object with a "votos" total.
func (c *Client) VoteCount(ctx context.Context, postID uint) (int, error) {
	q := url.Values{"publicacion_id": {strconv.FormatUint(uint64(postID), 10)}}
	var raw json.RawMessage
	err := c.do(ctx, request{method: http.MethodGet, path: "/votaciones", query: q}, &raw)
	if err != nil {
		return 0, err
	}

	var rows []json.RawMessage
	if json.Unmarshal(raw, &rows) == nil {
		return len(rows), nil
	}
	var obj struct {
		Votes int `json:"votos"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		return obj.Votes, nil
	}
	return 0, nil
}

// CastVote submits a vote with the client's IP as the upstream's weak
// anti-duplicate fingerprint. Session-level suppression happens before this
// is called; this is the fire-and-forget half.
func (c *Client) CastVote(ctx context.Context, token string, postID uint, fingerprint string) error {
	body := map[string]interface{}{
		"publicacion_id": postID,
		"ip":             fingerprint,
	}
	return c.do(ctx, request{method: http.MethodPost, path: "/votaciones", token: token, body: body}, nil)
}
