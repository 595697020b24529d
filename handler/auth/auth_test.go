package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"liquidator/core"
	"liquidator/handler/request"

	"github.com/stretchr/testify/assert"
)

const liquidator = "1c7e4f2a-8b3d-4e6f-9a0b-2c4d6e8f0a1b"

type fakeSession map[string]string

func (s fakeSession) Login(_ context.Context, accessToken string) (*core.User, error) {
	if id, ok := s[accessToken]; ok {
		return &core.User{MixinID: id}, nil
	}

	return nil, errors.New("invalid token")
}

func serve(h http.Handler, token string) *httptest.ResponseRecorder {
	r := httptest.NewRequest("GET", "/", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestHandleAuthentication(t *testing.T) {
	var got *core.User
	h := HandleAuthentication(fakeSession{"good": liquidator})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = request.UserFrom(r.Context())
	}))

	tests := []struct {
		name  string
		token string
		user  string
	}{
		{"valid token", "good", liquidator},
		{"invalid token", "bad", ""},
		{"no token", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = nil
			w := serve(h, tt.token)
			assert.Equal(t, http.StatusOK, w.Code)

			if tt.user == "" {
				assert.Nil(t, got)
				return
			}

			if assert.NotNil(t, got) {
				assert.Equal(t, tt.user, got.MixinID)
			}
		})
	}
}

func TestLoginRequired(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := HandleAuthentication(fakeSession{"good": liquidator})(LoginRequired(ok))

	assert.Equal(t, http.StatusOK, serve(h, "good").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "bad").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
}
