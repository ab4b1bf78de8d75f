package comment

import (
	"context"
	"fmt"
	"log"
	"time"

	"brainhints/backend/internal/domain/content"
	"brainhints/backend/internal/domain/notifications"
	"brainhints/backend/internal/textutil"
	"brainhints/backend/internal/validate"
)

type Store interface {
	Create(ctx context.Context, c Comment) (*Comment, error)
	Get(ctx context.Context, id string) (*Comment, error)
	ListByContent(ctx context.Context, ref content.Ref) ([]Comment, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	SetLike(ctx context.Context, id, uid string, like bool) error
}

// Notifier is implemented by *notifications.Service.
type Notifier interface {
	CreateNotification(ctx context.Context, senderUID string, in notifications.CreateNotificationInput) (string, error)
}

type Service struct {
	store    Store
	notifier Notifier
	now      func() time.Time
}

func NewService(store Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) Create(ctx context.Context, author Author, in CreateCommentInput) (*Comment, error) {
	in.Trim()
	in.Message = textutil.StripTags(in.Message)
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	var parent *Comment
	if in.ParentID != "" {
		p, err := s.store.Get(ctx, in.ParentID)
		if err != nil {
			return nil, err
		}
		if p.ContentType != in.ContentType || p.ContentID != in.ContentID {
			return nil, fmt.Errorf("%w: parent comment belongs to other content", ErrBadRequest)
		}
		if p.Deleted {
			return nil, fmt.Errorf("%w: cannot reply to a deleted comment", ErrBadRequest)
		}
		// threads are one level deep
		if p.ParentID != "" {
			root, err := s.store.Get(ctx, p.ParentID)
			if err != nil {
				return nil, err
			}
			in.ParentID = root.ID
		}
		parent = p
	}

	now := s.now()
	name := author.Name
	if name == "" {
		name = "Anonymous"
	}
	c := Comment{
		ContentType:    in.ContentType,
		ContentID:      in.ContentID,
		AuthorID:       author.UID,
		AuthorName:     name,
		AuthorPhotoURL: author.PhotoURL,
		Message:        in.Message,
		ParentID:       in.ParentID,
		Likes:          []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	out, err := s.store.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	if parent != nil && parent.AuthorID != author.UID && s.notifier != nil {
		_, err := s.notifier.CreateNotification(ctx, author.UID, notifications.CreateNotificationInput{
			TargetUID: parent.AuthorID,
			Title:     name + " replied to your comment",
			Body:      textutil.TrimMax(out.Message, 140),
			Type:      notifications.TypeCommentReply,
			Link:      fmt.Sprintf("/%ss/%s#comment-%s", out.ContentType, out.ContentID, out.ID),
		})
		if err != nil {
			log.Printf("[Comments] reply notification failed: %v", err)
		}
	}
	return out, nil
}

func (s *Service) ListThreads(ctx context.Context, ref content.Ref) ([]Thread, error) {
	if !ref.Valid() {
		return nil, fmt.Errorf("%w: contentType and contentId are required", ErrBadRequest)
	}
	all, err := s.store.ListByContent(ctx, ref)
	if err != nil {
		return nil, err
	}
	return BuildThreads(all), nil
}

// Count returns the number of visible comments on a content item.
func (s *Service) Count(ctx context.Context, ref content.Ref) (int, error) {
	if !ref.Valid() {
		return 0, fmt.Errorf("%w: contentType and contentId are required", ErrBadRequest)
	}
	all, err := s.store.ListByContent(ctx, ref)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, c := range all {
		if !c.Deleted {
			n++
		}
	}
	return n, nil
}

func (s *Service) Update(ctx context.Context, uid, id string, in UpdateCommentInput) (*Comment, error) {
	in.Message = textutil.StripTags(in.Message)
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	c, err := s.live(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.AuthorID != uid {
		return nil, fmt.Errorf("%w: only the author can edit a comment", ErrUnauthorized)
	}
	now := s.now()
	if err := s.store.Update(ctx, id, map[string]interface{}{
		"message":   in.Message,
		"edited":    true,
		"updatedAt": now,
	}); err != nil {
		return nil, err
	}
	c.Message = in.Message
	c.Edited = true
	c.UpdatedAt = now
	return c, nil
}

// Delete soft-deletes so that replies keep their place in the thread.
func (s *Service) Delete(ctx context.Context, author Author, id string) error {
	c, err := s.live(ctx, id)
	if err != nil {
		return err
	}
	if c.AuthorID != author.UID && !author.Admin {
		return fmt.Errorf("%w: only the author or an admin can delete a comment", ErrUnauthorized)
	}
	return s.store.Update(ctx, id, map[string]interface{}{
		"deleted":   true,
		"updatedAt": s.now(),
	})
}

// ToggleLike flips the caller's like and returns whether the comment is now liked.
func (s *Service) ToggleLike(ctx context.Context, uid, id string) (bool, error) {
	c, err := s.live(ctx, id)
	if err != nil {
		return false, err
	}
	like := !c.LikedBy(uid)
	if err := s.store.SetLike(ctx, id, uid, like); err != nil {
		return false, err
	}
	return like, nil
}

func (s *Service) live(ctx context.Context, id string) (*Comment, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrBadRequest)
	}
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Deleted {
		return nil, fmt.Errorf("%w: comment %s", ErrNotFound, id)
	}
	return c, nil
}
