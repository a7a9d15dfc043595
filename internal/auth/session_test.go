package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("secret")
	token, err := v.Issue("hanako", time.Hour)
	require.NoError(t, err)

	name, err := v.Username(token)
	assert.NoError(t, err)
	assert.Equal(t, "hanako", name)
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier("secret")

	t.Run("empty token", func(t *testing.T) {
		_, err := v.Username("")
		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Username("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewVerifier("other").Issue("hanako", time.Hour)
		require.NoError(t, err)
		_, err = v.Username(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := v.Issue("hanako", -time.Minute)
		require.NoError(t, err)
		_, err = v.Username(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing name", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "x"}).SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = v.Username(token)
		assert.ErrorIs(t, err, ErrMissingSubject)
	})

	t.Run("other algorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{Name: "hanako"}).SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = v.Username(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestVerifier_Disabled(t *testing.T) {
	v := NewVerifier("")
	assert.False(t, v.Enabled())

	_, err := v.Username("anything")
	assert.ErrorIs(t, err, ErrSessionsOff)

	_, err = v.Issue("hanako", time.Hour)
	assert.ErrorIs(t, err, ErrSessionsOff)

	var nilVerifier *Verifier
	assert.False(t, nilVerifier.Enabled())
}
