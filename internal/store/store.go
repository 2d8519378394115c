// Package store persists named collections of records.
//
// A collection is read and written as a whole, mirroring a key-value store
// where each key holds a JSON array.
package store

import (
	"context"
	"errors"
)

// Collection keys used by the application.
const (
	KeySpots    = "spots"
	KeySessions = "sessions"
	KeyPosts    = "community_posts"
	KeyEvents   = "events"
)

// ErrCorrupt is returned when stored data cannot be decoded.
var ErrCorrupt = errors.New("stored collection is corrupt")

// Collection reads and replaces a whole collection of T.
type Collection[T any] interface {
	// GetAll returns every record. A never-written collection returns an empty slice.
	GetAll(ctx context.Context) ([]T, error)

	// Save replaces the collection.
	Save(ctx context.Context, items []T) error

	// Initialized reports whether the collection has ever been saved.
	Initialized(ctx context.Context) (bool, error)
}
