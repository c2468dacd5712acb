package authn

import (
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Password(t *testing.T) {
	t.Parallel()
	s := NewService("test-secret", 0)

	hash, err := s.HashPassword("streng-geheim")
	require.NoError(t, err)
	assert.NotEqual(t, "streng-geheim", hash)

	assert.NoError(t, s.VerifyPassword(hash, "streng-geheim"))
	assert.ErrorIs(t, s.VerifyPassword(hash, "falsch"), ErrWrongPassword)
}

func TestService_TokenRoundTrip(t *testing.T) {
	t.Parallel()
	s := NewService("test-secret", 0)
	assert.Equal(t, DefaultTokenLifetime, s.Lifetime())

	userID := uuid.Must(uuid.NewV4())
	token, err := s.IssueToken(userID)
	require.NoError(t, err)

	got, err := s.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestService_VerifyTokenFailures(t *testing.T) {
	t.Parallel()
	s := NewService("test-secret", 0)
	userID := uuid.Must(uuid.NewV4())

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()
		_, err := s.VerifyToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		token, err := NewService("other-secret", 0).IssueToken(userID)
		require.NoError(t, err)
		_, err = s.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		token, err := NewService("test-secret", time.Nanosecond).IssueToken(userID)
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
		_, err = s.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
