package support

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"brainhints/backend/internal/domain/notifications"
	"brainhints/backend/internal/textutil"
	"brainhints/backend/internal/validate"
)

type Store interface {
	Create(ctx context.Context, t Ticket) (*Ticket, error)
	Get(ctx context.Context, id string) (*Ticket, error)
	AppendResponse(ctx context.Context, id string, resp Response, newStatus string) (*Ticket, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	List(ctx context.Context, uid, status string) ([]Ticket, error)
}

// Notifier is implemented by *notifications.Service.
type Notifier interface {
	CreateNotification(ctx context.Context, senderUID string, in notifications.CreateNotificationInput) (string, error)
}

type Service struct {
	store    Store
	notifier Notifier
	now      func() time.Time
	newID    func() string
}

func NewService(store Store, notifier Notifier) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.NewString() },
	}
}

func (s *Service) Create(ctx context.Context, who Requester, in CreateTicketInput) (*Ticket, error) {
	if who.UID == "" {
		return nil, fmt.Errorf("%w: sign in to open a ticket", ErrUnauthorized)
	}
	in.Trim()
	in.Description = textutil.StripTags(in.Description)
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if in.Priority == "" {
		in.Priority = "medium"
	}

	now := s.now()
	return s.store.Create(ctx, Ticket{
		UserID:      who.UID,
		UserEmail:   who.Email,
		Subject:     in.Subject,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Status:      StatusOpen,
		Responses:   []Response{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *Service) ListMine(ctx context.Context, uid string) ([]Ticket, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrUnauthorized)
	}
	return s.store.List(ctx, uid, "")
}

func (s *Service) ListAll(ctx context.Context, status string) ([]Ticket, error) {
	status = strings.TrimSpace(status)
	if status != "" {
		if err := validate.Var("status", status, "oneof=open in_progress resolved closed"); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
	}
	return s.store.List(ctx, "", status)
}

func (s *Service) Get(ctx context.Context, who Requester, id string) (*Ticket, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != who.UID && !who.Admin {
		return nil, fmt.Errorf("%w: not your ticket", ErrUnauthorized)
	}
	return t, nil
}

// AddResponse appends to the conversation. An admin reply on an open ticket moves it to
// in_progress and notifies the owner.
func (s *Service) AddResponse(ctx context.Context, who Requester, id string, in AddResponseInput) (*Ticket, error) {
	in.Message = textutil.StripTags(in.Message)
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	t, err := s.Get(ctx, who, id)
	if err != nil {
		return nil, err
	}
	if t.Status == StatusClosed {
		return nil, fmt.Errorf("%w: ticket is closed", ErrBadRequest)
	}

	name := who.Name
	if name == "" {
		name = who.Email
	}
	if who.Admin && name == "" {
		name = "Support"
	}
	resp := Response{
		ID:         s.newID(),
		AuthorID:   who.UID,
		AuthorName: name,
		Message:    in.Message,
		IsAdmin:    who.Admin,
		CreatedAt:  s.now(),
	}

	next := ""
	if who.Admin && t.Status == StatusOpen {
		next = StatusInProgress
	}
	out, err := s.store.AppendResponse(ctx, id, resp, next)
	if err != nil {
		return nil, err
	}

	if who.Admin && out.UserID != who.UID && s.notifier != nil {
		_, err := s.notifier.CreateNotification(ctx, who.UID, notifications.CreateNotificationInput{
			TargetUID: out.UserID,
			Title:     "New response on: " + textutil.TrimMax(out.Subject, 120),
			Body:      textutil.TrimMax(resp.Message, 140),
			Type:      notifications.TypeTicketResponse,
			Link:      "/support/tickets/" + out.ID,
		})
		if err != nil {
			log.Printf("[Support] response notification failed: %v", err)
		}
	}
	return out, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, in UpdateStatusInput) (*Ticket, error) {
	in.Status = strings.TrimSpace(in.Status)
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.store.Update(ctx, id, map[string]interface{}{
		"status":    in.Status,
		"updatedAt": now,
	}); err != nil {
		return nil, err
	}
	t.Status = in.Status
	t.UpdatedAt = now
	return t, nil
}
