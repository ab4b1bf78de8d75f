package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier map[string]*auth.Token

func (f fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if t, ok := f[idToken]; ok {
		return t, nil
	}
	return nil, errors.New("bad token")
}

var verifier = fakeVerifier{
	"user-token":  {UID: "u1", Claims: map[string]any{"email": "u1@example.com", "name": "Uma"}},
	"admin-token": {UID: "a1", Claims: map[string]any{"admin": true}},
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	au, ok := GetAuthUser(r.Context())
	if !ok {
		_, _ = w.Write([]byte("anonymous"))
		return
	}
	_, _ = w.Write([]byte(au.UID))
}

func do(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestWithAuth(t *testing.T) {
	h := WithAuth(verifier)(http.HandlerFunc(echoUser))

	assert.Equal(t, http.StatusUnauthorized, do(h, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, "forged").Code)

	rec := do(h, "user-token")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	h := OptionalAuth(verifier)(http.HandlerFunc(echoUser))

	assert.Equal(t, "anonymous", do(h, "").Body.String())
	assert.Equal(t, "u1", do(h, "user-token").Body.String())
	assert.Equal(t, http.StatusUnauthorized, do(h, "forged").Code)
}

func TestRequireAdmin(t *testing.T) {
	h := WithAuth(verifier)(RequireAdmin(http.HandlerFunc(echoUser)))

	assert.Equal(t, http.StatusForbidden, do(h, "user-token").Code)
	assert.Equal(t, "a1", do(h, "admin-token").Body.String())
}

func TestIsAdmin(t *testing.T) {
	cases := []struct {
		name   string
		claims map[string]any
		want   bool
	}{
		{"nil", nil, false},
		{"admin flag", map[string]any{"admin": true}, true},
		{"admin false", map[string]any{"admin": false}, false},
		{"role", map[string]any{"role": "admin"}, true},
		{"roles map", map[string]any{"roles": map[string]any{"admin": true}}, true},
		{"roles list", map[string]any{"roles": []any{"editor", "admin"}}, true},
		{"other role", map[string]any{"role": "editor"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsAdmin(tc.claims))
		})
	}
}
