package storage

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ImageResolver turns stored image references into loadable URLs.
// Absolute URLs (OAuth provider avatars) pass through; anything else is an object key.
// A nil *ImageResolver or one without a store returns references unchanged.
type ImageResolver struct {
	store  Storage
	expiry time.Duration
	log    zerolog.Logger
}

// NewImageResolver builds a resolver presigning keys with the given expiry.
func NewImageResolver(store Storage, expiry time.Duration, log zerolog.Logger) *ImageResolver {
	return &ImageResolver{store: store, expiry: expiry, log: log}
}

// IsAbsoluteURL reports whether ref already points at a fetchable location.
func IsAbsoluteURL(ref string) bool {
	return strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "//")
}

// Resolve returns a URL for ref. Presign failures are logged and yield "" so the page
// falls back to its placeholder image instead of failing.
func (r *ImageResolver) Resolve(ctx context.Context, ref string) string {
	if ref == "" || IsAbsoluteURL(ref) || r == nil || r.store == nil {
		return ref
	}
	u, err := r.store.PresignGet(ctx, strings.TrimPrefix(ref, "/"), r.expiry)
	if err != nil {
		r.log.Warn().Err(err).Str("key", ref).Msg("presign image failed")
		return ""
	}
	return u
}
