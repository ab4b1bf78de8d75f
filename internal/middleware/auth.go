package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
)

type ctxKey string

const authUserKey ctxKey = "authUser"

// TokenVerifier is satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type AuthUser struct {
	UID     string
	Email   string
	Name    string
	Picture string
	Admin   bool
	Claims  map[string]any
}

// WithAuth rejects requests without a valid Firebase ID token.
func WithAuth(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idToken, ok := bearerToken(r)
			if !ok {
				http.Error(w, "missing Authorization: Bearer <token>", http.StatusUnauthorized)
				return
			}
			au, err := verify(r.Context(), v, idToken)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authUserKey, au)))
		})
	}
}

// OptionalAuth attaches the user when a valid token is present and lets anonymous requests through.
// A present but invalid token is still rejected.
func OptionalAuth(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idToken, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			au, err := verify(r.Context(), v, idToken)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authUserKey, au)))
		})
	}
}

// RequireAdmin must run after WithAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		au, ok := GetAuthUser(r.Context())
		if !ok || !au.Admin {
			http.Error(w, "admin role required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetAuthUser(ctx context.Context) (*AuthUser, bool) {
	au, ok := ctx.Value(authUserKey).(*AuthUser)
	return au, ok && au != nil
}

// WithAuthUser is used by tests and internal callers that already resolved the user.
func WithAuthUser(ctx context.Context, au *AuthUser) context.Context {
	return context.WithValue(ctx, authUserKey, au)
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(h[len("Bearer "):])
	return tok, tok != ""
}

func verify(ctx context.Context, v TokenVerifier, idToken string) (*AuthUser, error) {
	tok, err := v.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	au := &AuthUser{
		UID:    tok.UID,
		Claims: tok.Claims,
		Admin:  IsAdmin(tok.Claims),
	}
	if s, ok := tok.Claims["email"].(string); ok {
		au.Email = s
	}
	if s, ok := tok.Claims["name"].(string); ok {
		au.Name = s
	}
	if s, ok := tok.Claims["picture"].(string); ok {
		au.Picture = s
	}
	return au, nil
}

// IsAdmin checks the custom claims set by cmd/set-admin.
func IsAdmin(claims map[string]any) bool {
	if claims == nil {
		return false
	}
	if admin, ok := claims["admin"].(bool); ok && admin {
		return true
	}
	if role, ok := claims["role"].(string); ok && role == "admin" {
		return true
	}
	if roles, ok := claims["roles"].(map[string]any); ok {
		if b, ok := roles["admin"].(bool); ok && b {
			return true
		}
	}
	if roles, ok := claims["roles"].([]any); ok {
		for _, r := range roles {
			if s, ok := r.(string); ok && s == "admin" {
				return true
			}
		}
	}
	return false
}
