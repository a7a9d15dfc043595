package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"linkmono/internal/config"
	"linkmono/internal/storage"
	"linkmono/internal/storage/mocks"
)

func TestImageResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("passes absolute urls through", func(t *testing.T) {
		mStore := new(mocks.MockStorage)
		r := storage.NewImageResolver(mStore, time.Hour, zerolog.Nop())

		assert.Equal(t, "https://avatars.githubusercontent.com/u/1", r.Resolve(ctx, "https://avatars.githubusercontent.com/u/1"))
		assert.Equal(t, "//cdn.example.com/a.png", r.Resolve(ctx, "//cdn.example.com/a.png"))
		assert.Equal(t, "", r.Resolve(ctx, ""))
		mStore.AssertNotCalled(t, "PresignGet")
	})

	t.Run("presigns object keys", func(t *testing.T) {
		mStore := new(mocks.MockStorage)
		mStore.On("PresignGet", ctx, "avatars/hanako.png", time.Hour).
			Return("https://minio.local/images/avatars/hanako.png?X-Amz-Signature=abc", nil).Once()
		r := storage.NewImageResolver(mStore, time.Hour, zerolog.Nop())

		got := r.Resolve(ctx, "/avatars/hanako.png")

		assert.Equal(t, "https://minio.local/images/avatars/hanako.png?X-Amz-Signature=abc", got)
		mStore.AssertExpectations(t)
	})

	t.Run("presign failure yields empty url", func(t *testing.T) {
		mStore := new(mocks.MockStorage)
		mStore.On("PresignGet", ctx, "avatars/x.png", time.Minute).Return("", errors.New("denied")).Once()
		r := storage.NewImageResolver(mStore, time.Minute, zerolog.Nop())

		assert.Equal(t, "", r.Resolve(ctx, "avatars/x.png"))
	})

	t.Run("no store keeps keys", func(t *testing.T) {
		var r *storage.ImageResolver
		assert.Equal(t, "avatars/x.png", r.Resolve(ctx, "avatars/x.png"))

		r = storage.NewImageResolver(nil, time.Minute, zerolog.Nop())
		assert.Equal(t, "avatars/x.png", r.Resolve(ctx, "avatars/x.png"))
	})
}

func TestNewMinIO_Validation(t *testing.T) {
	_, err := storage.NewMinIO(context.Background(), configWith("", "k", "s", "b"))
	assert.ErrorContains(t, err, "endpoint is required")

	_, err = storage.NewMinIO(context.Background(), configWith("minio:9000", "", "s", "b"))
	assert.ErrorContains(t, err, "credentials are required")

	_, err = storage.NewMinIO(context.Background(), configWith("minio:9000", "k", "s", ""))
	assert.ErrorContains(t, err, "bucket is required")
}

func configWith(endpoint, access, secret, bucket string) config.MinIOConfig {
	return config.MinIOConfig{
		Endpoint:  endpoint,
		AccessKey: access,
		SecretKey: secret,
		Bucket:    bucket,
	}
}
