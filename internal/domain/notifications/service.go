package notifications

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"brainhints/backend/internal/validate"
)

type Store interface {
	Create(ctx context.Context, n Notification) (string, error)
	Get(ctx context.Context, id string) (*Notification, error)
	List(ctx context.Context, uid string, unreadOnly bool, limit int) ([]Notification, error)
	CountUnread(ctx context.Context, uid string) (int64, error)
	MarkRead(ctx context.Context, id string, at time.Time) error
	MarkAllRead(ctx context.Context, uid string, at time.Time) (int, error)
	Delete(ctx context.Context, id string) error
}

type Pusher interface {
	Push(ctx context.Context, n Notification) error
}

type Service struct {
	store  Store
	pusher Pusher
	now    func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// SetPusher enables device push for newly created notifications.
func (s *Service) SetPusher(p Pusher) {
	s.pusher = p
}

// GetNotifications gets notifications for a user
func (s *Service) GetNotifications(ctx context.Context, uid string, unreadOnly bool, limit int) (*NotificationsListResult, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	list, err := s.store.List(ctx, uid, unreadOnly, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.store.CountUnread(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &NotificationsListResult{Notifications: list, UnreadCount: unread}, nil
}

// MarkRead marks one notification or all of the user's unread notifications as read.
func (s *Service) MarkRead(ctx context.Context, uid string, input MarkReadInput) (int, error) {
	uid = strings.TrimSpace(uid)
	input.Trim()
	if uid == "" {
		return 0, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}

	now := s.now()
	if input.MarkAll {
		return s.store.MarkAllRead(ctx, uid, now)
	}
	if input.NotificationID == "" {
		return 0, fmt.Errorf("%w: notificationId or markAll is required", ErrBadRequest)
	}
	if _, err := s.owned(ctx, uid, input.NotificationID); err != nil {
		return 0, err
	}
	if err := s.store.MarkRead(ctx, input.NotificationID, now); err != nil {
		return 0, err
	}
	return 1, nil
}

func (s *Service) DeleteNotification(ctx context.Context, uid, notificationID string) error {
	uid = strings.TrimSpace(uid)
	notificationID = strings.TrimSpace(notificationID)
	if uid == "" || notificationID == "" {
		return fmt.Errorf("%w: uid and notificationId are required", ErrBadRequest)
	}
	if _, err := s.owned(ctx, uid, notificationID); err != nil {
		return err
	}
	return s.store.Delete(ctx, notificationID)
}

// CreateNotification stores a notification for the target user and pushes it when possible.
// Push failures are logged and never fail the call.
func (s *Service) CreateNotification(ctx context.Context, senderUID string, input CreateNotificationInput) (string, error) {
	input.Trim()
	if err := validate.Struct(input); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if !IsValidType(input.Type) {
		return "", fmt.Errorf("%w: type must be one of: %s", ErrBadRequest, strings.Join(ValidTypes, ", "))
	}
	if input.Type == "" {
		input.Type = TypeGeneral
	}

	n := Notification{
		UserID:    input.TargetUID,
		Title:     input.Title,
		Body:      input.Body,
		Type:      input.Type,
		Link:      input.Link,
		SenderUID: strings.TrimSpace(senderUID),
		CreatedAt: s.now(),
	}
	id, err := s.store.Create(ctx, n)
	if err != nil {
		return "", err
	}
	n.ID = id

	if s.pusher != nil {
		if err := s.pusher.Push(ctx, n); err != nil {
			log.Printf("[Notifications] push to %s failed: %v", n.UserID, err)
		}
	}
	return id, nil
}

// owned hides other users' notifications behind ErrNotFound.
func (s *Service) owned(ctx context.Context, uid, id string) (*Notification, error) {
	n, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != uid {
		return nil, fmt.Errorf("%w: notification %s", ErrNotFound, id)
	}
	return n, nil
}
