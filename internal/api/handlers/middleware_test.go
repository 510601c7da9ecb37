package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonhee/golddash/backend/internal/auth"
	"github.com/wonhee/golddash/backend/internal/user"
	"github.com/wonhee/golddash/backend/pkg/logger"
)

const testTokenTTL = time.Hour

type fakeUserFinder struct {
	users map[int64]*user.User
}

func (f *fakeUserFinder) GetByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func authTestSetup(t *testing.T) (*auth.TokenManager, http.Handler, *user.User) {
	t.Helper()

	tokens := auth.NewTokenManager("unit-test-secret", testTokenTTL)
	active := &user.User{ID: 1, Username: "wonhee", Email: "wonhee@example.com", IsActive: true}
	finder := &fakeUserFinder{users: map[int64]*user.User{
		1: active,
		2: {ID: 2, Username: "dormant", IsActive: false},
	}}

	mw := NewAuthMiddleware(tokens, finder, logger.NewWithWriter(io.Discard))
	protected := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := UserFromContext(r.Context())
		require.NotNil(t, u)
		w.WriteHeader(http.StatusOK)
	}))

	return tokens, protected, active
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	tokens, protected, active := authTestSetup(t)

	token, err := tokens.Issue(active.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	protected.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthMiddlewareRejections(t *testing.T) {
	tokens, protected, _ := authTestSetup(t)

	unknownUserToken, err := tokens.Issue(99)
	require.NoError(t, err)
	inactiveUserToken, err := tokens.Issue(2)
	require.NoError(t, err)
	wrongSecretToken, err := auth.NewTokenManager("other-secret", testTokenTTL).Issue(1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + wrongSecretToken},
		{"unknown user", "Bearer " + unknownUserToken},
		{"inactive user", "Bearer " + inactiveUserToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			protected.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestUserFromContextOutsideAuth(t *testing.T) {
	assert.Nil(t, UserFromContext(context.Background()))
}
