package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type RallyStats struct {
	Posts        int `json:"posts"`
	Participants int `json:"participants"`
	Votes        int `json:"votes"`
}

// GetRallyStats aggregates the three per-rally totals. A failing counter is
// reported as a whole failure; callers treat stats as optional decoration.
func (c *Client) GetRallyStats(ctx context.Context, rallyID uint) (*RallyStats, error) {
	posts, err := c.total(ctx, "/estadisticas/total-publicaciones", rallyID)
	if err != nil {
		return nil, err
	}
	participants, err := c.total(ctx, "/estadisticas/total-usuarios", rallyID)
	if err != nil {
		return nil, err
	}
	votes, err := c.total(ctx, "/estadisticas/total-votos", rallyID)
	if err != nil {
		return nil, err
	}
	return &RallyStats{Posts: posts, Participants: participants, Votes: votes}, nil
}

func (c *Client) total(ctx context.Context, path string, rallyID uint) (int, error) {
	q := url.Values{"rally_id": {strconv.FormatUint(uint64(rallyID), 10)}}
	var out struct {
		Total int `json:"total"`
	}
	err := c.do(ctx, request{method: http.MethodGet, path: path, query: q}, &out)
	if err != nil {
		return 0, err
	}
	return out.Total, nil
}
