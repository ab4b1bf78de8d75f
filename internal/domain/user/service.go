package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"brainhints/backend/internal/validate"
)

type Store interface {
	Get(ctx context.Context, uid string) (*Profile, error)
	Merge(ctx context.Context, uid string, fields map[string]any) error
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// Me returns the caller's identity and profile, creating the profile on first sight.
func (s *Service) Me(ctx context.Context, id Identity) (*Me, error) {
	if id.UID == "" {
		return nil, fmt.Errorf("%w: not signed in", ErrUnauthorized)
	}
	p, err := s.store.Get(ctx, id.UID)
	if err != nil && !IsErrNotFound(err) {
		return nil, err
	}

	if p == nil {
		now := s.now()
		p = &Profile{
			UID:         id.UID,
			Email:       id.Email,
			DisplayName: id.Name,
			PhotoURL:    id.Picture,
			Role:        roleFor(id.Admin),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.store.Merge(ctx, id.UID, map[string]any{
			"email":       p.Email,
			"displayName": p.DisplayName,
			"photoURL":    p.PhotoURL,
			"role":        p.Role,
			"createdAt":   now,
			"updatedAt":   now,
		}); err != nil {
			return nil, err
		}
	}

	return &Me{UID: id.UID, Email: id.Email, Admin: id.Admin, Profile: p}, nil
}

func (s *Service) UpdateProfile(ctx context.Context, uid string, in UpdateProfileInput) (*Profile, error) {
	in.Trim()
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if err := s.store.Merge(ctx, uid, map[string]any{
		"displayName": in.DisplayName,
		"photoURL":    in.PhotoURL,
		"updatedAt":   s.now(),
	}); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, uid)
}

// RegisterDevice stores the FCM token used for push notifications. An empty token unregisters.
func (s *Service) RegisterDevice(ctx context.Context, uid, token string) error {
	token = strings.TrimSpace(token)
	if len(token) > 4096 {
		return fmt.Errorf("%w: token is too long", ErrBadRequest)
	}
	return s.store.Merge(ctx, uid, map[string]any{"fcmToken": token, "updatedAt": s.now()})
}

func roleFor(admin bool) string {
	if admin {
		return RoleAdmin
	}
	return RoleUser
}
