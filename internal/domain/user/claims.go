package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
)

// ClaimsClient is satisfied by *auth.Client.
type ClaimsClient interface {
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
	GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error)
	SetCustomUserClaims(ctx context.Context, uid string, claims map[string]interface{}) error
}

// ResolveUID accepts either a uid or an email address.
func ResolveUID(ctx context.Context, c ClaimsClient, uid, email string) (string, error) {
	uid = strings.TrimSpace(uid)
	email = strings.TrimSpace(email)
	switch {
	case uid != "":
		return uid, nil
	case email != "":
		u, err := c.GetUserByEmail(ctx, email)
		if err != nil {
			return "", fmt.Errorf("lookup %s: %w", email, err)
		}
		return u.UID, nil
	}
	return "", fmt.Errorf("%w: uid or email is required", ErrBadRequest)
}

// SetAdmin sets or clears the admin custom claim, keeping the user's other claims, and mirrors
// the role on users/{uid}. The user must sign in again (or refresh the token) to see it.
func SetAdmin(ctx context.Context, c ClaimsClient, store Store, uid string, admin bool) error {
	u, err := c.GetUser(ctx, uid)
	if err != nil {
		return fmt.Errorf("get user %s: %w", uid, err)
	}

	claims := map[string]interface{}{}
	for k, v := range u.CustomClaims {
		claims[k] = v
	}
	if admin {
		claims["admin"] = true
	} else {
		delete(claims, "admin")
	}
	claims["claimsUpdatedAt"] = time.Now().Unix()

	if err := c.SetCustomUserClaims(ctx, uid, claims); err != nil {
		return fmt.Errorf("set claims: %w", err)
	}

	fields := map[string]any{"role": roleFor(admin)}
	if u.UserInfo != nil && u.Email != "" {
		fields["email"] = u.Email
	}
	return store.Merge(ctx, uid, fields)
}
