package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetOpenMarkets fetches open markets for an event. An absent markets
// field yields an empty slice, not an error.
func (c *Client) GetOpenMarkets(ctx context.Context, eventTicker string) ([]Market, error) {
	query := url.Values{}
	query.Set("event_ticker", eventTicker)
	query.Set("status", "open")
	query.Set("limit", strconv.Itoa(OpenPageLimit))

	var resp MarketsResponse
	if err := c.get(ctx, "/markets", query, &resp); err != nil {
		return nil, fmt.Errorf("get open markets %s: %w", eventTicker, err)
	}

	return resp.Markets, nil
}

// GetOrderbook fetches the orderbook for a market. An absent orderbook
// field yields an empty book.
func (c *Client) GetOrderbook(ctx context.Context, ticker string) (Orderbook, error) {
	var resp OrderbookResponse
	if err := c.get(ctx, "/markets/"+ticker+"/orderbook", nil, &resp); err != nil {
		return Orderbook{}, fmt.Errorf("get orderbook %s: %w", ticker, err)
	}

	return resp.Orderbook, nil
}

// GetOrderbookDepth fetches the orderbook limited to the given number of
// levels per side.
func (c *Client) GetOrderbookDepth(ctx context.Context, ticker string, depth int) (Orderbook, error) {
	query := url.Values{}
	if depth > 0 {
		query.Set("depth", strconv.Itoa(depth))
	}

	var resp OrderbookResponse
	if err := c.get(ctx, "/markets/"+ticker+"/orderbook", query, &resp); err != nil {
		return Orderbook{}, fmt.Errorf("get orderbook %s: %w", ticker, err)
	}

	return resp.Orderbook, nil
}
