package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"liquidator/core"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dappID = "a7c3f9e1-5b2d-4c8a-9e6f-1d3b5a7c9e0f"

type fakeUsers struct {
	mu    sync.Mutex
	calls int
}

func (u *fakeUsers) Login(_ context.Context, token string) (*core.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.calls++
	if token == "" {
		return nil, errors.New("empty token")
	}

	return &core.User{MixinID: "8e2b4d6f-1a3c-4e5b-9d7f-0c2e4a6b8d1f", AccessToken: token}, nil
}

func sign(t *testing.T, issuer, scope string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    issuer,
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
		Scope: scope,
	})

	s, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("issued for the dapp", func(t *testing.T) {
		users := &fakeUsers{}
		s := New(users, 0, []string{dappID})

		user, err := s.Login(ctx, sign(t, dappID, "PROFILE:READ"))
		require.NoError(t, err)
		assert.Equal(t, "8e2b4d6f-1a3c-4e5b-9d7f-0c2e4a6b8d1f", user.MixinID)
	})

	t.Run("full scope of any issuer", func(t *testing.T) {
		s := New(&fakeUsers{}, 0, []string{dappID})

		_, err := s.Login(ctx, sign(t, "another-dapp", "FULL"))
		assert.NoError(t, err)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		users := &fakeUsers{}
		s := New(users, 0, []string{dappID})

		_, err := s.Login(ctx, sign(t, "another-dapp", "PROFILE:READ"))
		assert.Equal(t, ErrInvalidIssuer, err)
		assert.Zero(t, users.calls)
	})

	t.Run("garbage token", func(t *testing.T) {
		s := New(&fakeUsers{}, 0, []string{dappID})

		_, err := s.Login(ctx, "not-a-jwt")
		assert.Equal(t, ErrInvalidIssuer, err)
	})
}

func TestLoginCache(t *testing.T) {
	users := &fakeUsers{}
	s := New(users, 16, []string{dappID})
	token := sign(t, dappID, "PROFILE:READ")

	for i := 0; i < 3; i++ {
		_, err := s.Login(context.Background(), token)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, users.calls)
}
