// Package storage resolves avatar and thumbnail object keys held in the database
// into URLs a browser can load. Objects live in an S3-compatible bucket.
package storage

import (
	"context"
	"time"
)

// Storage is a reusable, S3-compatible object storage client interface.
type Storage interface {
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
