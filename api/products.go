package api

import (
	"context"

	"github.com/rs/zerolog/log"
)

// The trailing slash is part of the backend route.
const RouteProducts = "/products/"

// ListProducts returns the tenant's product catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.get(ctx, RouteProducts, &products); err != nil {
		log.Err(err).Msg("Error fetching products")
		return nil, err
	}
	return products, nil
}
