// Package database manages the PostgreSQL connection pool for snapshot
// persistence.
package database
