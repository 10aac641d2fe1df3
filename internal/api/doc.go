// Package api provides a signed REST client for the Kalshi trade API:
// open events, open markets within an event, and market orderbooks.
package api
