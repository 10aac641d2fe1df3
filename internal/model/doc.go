// Package model defines the shared domain types: markets, ladder buckets,
// depth levels, and the flat snapshot row persisted each cycle.
package model
