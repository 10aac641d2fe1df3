package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// OpenPageLimit is the page size requested for open events and markets.
// A temperature series never has more than a handful open at once, so a
// single page is always sufficient and no pagination is performed.
const OpenPageLimit = 100

// GetOpenEvents fetches open events for a series. An absent events field
// means nothing is open right now and yields an empty slice, not an error.
func (c *Client) GetOpenEvents(ctx context.Context, seriesTicker string) ([]Event, error) {
	query := url.Values{}
	query.Set("series_ticker", seriesTicker)
	query.Set("status", "open")
	query.Set("limit", strconv.Itoa(OpenPageLimit))

	var resp EventsResponse
	if err := c.get(ctx, "/events", query, &resp); err != nil {
		return nil, fmt.Errorf("get open events %s: %w", seriesTicker, err)
	}

	return resp.Events, nil
}
