package api

import (
	"context"

	"github.com/rs/zerolog/log"
)

const RouteCalls = "/calls"

// ListCalls returns the tenant's calls, newest first as ordered by the backend.
func (c *Client) ListCalls(ctx context.Context) ([]Call, error) {
	var calls []Call
	if err := c.get(ctx, RouteCalls, &calls); err != nil {
		log.Err(err).Msg("Error fetching calls")
		return nil, err
	}
	return calls, nil
}
