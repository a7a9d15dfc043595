// Package cache keeps search hit counts for a short time so repeated searches
// and tab switches do not re-run four COUNT queries.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"linkmono/internal/model"
)

// CountCache stores per-target hit counts for a search word.
type CountCache interface {
	// GetCount returns the cached count; ok is false on a miss.
	GetCount(ctx context.Context, target model.SearchTarget, q string) (n int, ok bool, err error)
	// SetCount stores a count.
	SetCount(ctx context.Context, target model.SearchTarget, q string, n int) error
}

// Noop never hits. It is used when no Redis address is configured.
type Noop struct{}

func (Noop) GetCount(context.Context, model.SearchTarget, string) (int, bool, error) {
	return 0, false, nil
}

func (Noop) SetCount(context.Context, model.SearchTarget, string, int) error { return nil }

// countKey hashes q so arbitrary user input never ends up verbatim in a key.
func countKey(target model.SearchTarget, q string) string {
	sum := sha256.Sum256([]byte(q))
	return "linkmono:search:count:" + string(target) + ":" + hex.EncodeToString(sum[:])
}
