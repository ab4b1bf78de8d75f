package feedback

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"brainhints/backend/internal/domain/content"
	"brainhints/backend/internal/textutil"
	"brainhints/backend/internal/validate"
)

type Store interface {
	GetContent(ctx context.Context, id string) (*ContentFeedback, error)
	PutContent(ctx context.Context, f ContentFeedback) error
	DeleteContent(ctx context.Context, id string) error
	ListContent(ctx context.Context, ref content.Ref) ([]ContentFeedback, error)

	CreateSite(ctx context.Context, f Feedback) (*Feedback, error)
	GetSite(ctx context.Context, id string) (*Feedback, error)
	PutSite(ctx context.Context, f Feedback) error
	ListSite(ctx context.Context, f SiteFilter) ([]Feedback, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// Submit records the caller's feedback on a content item, replacing any earlier submission.
func (s *Service) Submit(ctx context.Context, uid string, in SubmitContentInput) (*ContentFeedback, error) {
	if strings.TrimSpace(uid) == "" {
		return nil, fmt.Errorf("%w: sign in to leave feedback", ErrUnauthorized)
	}
	in.Trim()
	in.Comment = textutil.StripTags(in.Comment)
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	ref := content.Ref{Type: in.ContentType, ID: in.ContentID}
	now := s.now()
	f := ContentFeedback{
		ID:          ContentFeedbackID(ref, uid),
		ContentType: ref.Type,
		ContentID:   ref.ID,
		UserID:      uid,
		Helpful:     *in.Helpful,
		Rating:      in.Rating,
		Comment:     in.Comment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	prev, err := s.store.GetContent(ctx, f.ID)
	switch {
	case err == nil:
		f.CreatedAt = prev.CreatedAt
	case !IsErrNotFound(err):
		return nil, err
	}

	if err := s.store.PutContent(ctx, f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Mine returns the caller's feedback on a content item, or ErrNotFound.
func (s *Service) Mine(ctx context.Context, uid string, ref content.Ref) (*ContentFeedback, error) {
	if !ref.Valid() {
		return nil, fmt.Errorf("%w: contentType and contentId are required", ErrBadRequest)
	}
	return s.store.GetContent(ctx, ContentFeedbackID(ref, uid))
}

func (s *Service) Delete(ctx context.Context, uid string, ref content.Ref) error {
	if !ref.Valid() {
		return fmt.Errorf("%w: contentType and contentId are required", ErrBadRequest)
	}
	id := ContentFeedbackID(ref, uid)
	if _, err := s.store.GetContent(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteContent(ctx, id)
}

func (s *Service) ListForContent(ctx context.Context, ref content.Ref) ([]ContentFeedback, error) {
	if !ref.Valid() {
		return nil, fmt.Errorf("%w: contentType and contentId are required", ErrBadRequest)
	}
	return s.store.ListContent(ctx, ref)
}

func (s *Service) Summary(ctx context.Context, ref content.Ref) (*Summary, error) {
	list, err := s.ListForContent(ctx, ref)
	if err != nil {
		return nil, err
	}
	return Summarize(ref, list), nil
}

// Summarize tallies helpful votes and averages the ratings that were given.
func Summarize(ref content.Ref, list []ContentFeedback) *Summary {
	out := &Summary{ContentType: ref.Type, ContentID: ref.ID, Total: len(list)}
	sum := 0
	for _, f := range list {
		if f.Helpful {
			out.Helpful++
		} else {
			out.NotHelpful++
		}
		if f.Rating != nil {
			sum += *f.Rating
			out.RatingsCount++
		}
	}
	if out.RatingsCount > 0 {
		avg := float64(sum) / float64(out.RatingsCount)
		out.AverageRating = math.Round(avg*10) / 10
	}
	return out
}

// SubmitSite stores a site feedback form entry. uid is empty for anonymous visitors.
func (s *Service) SubmitSite(ctx context.Context, uid string, in SubmitSiteInput) (*Feedback, error) {
	in.Trim()
	in.Message = textutil.StripTags(in.Message)
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return s.store.CreateSite(ctx, Feedback{
		UserID:    strings.TrimSpace(uid),
		Email:     in.Email,
		Type:      in.Type,
		Message:   in.Message,
		Page:      in.Page,
		Status:    StatusNew,
		CreatedAt: s.now(),
	})
}

func (s *Service) ListSite(ctx context.Context, f SiteFilter) ([]Feedback, error) {
	f.Status = strings.TrimSpace(f.Status)
	if f.Status != "" && f.Status != StatusNew && f.Status != StatusReviewed {
		return nil, fmt.Errorf("%w: status must be new or reviewed", ErrBadRequest)
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 100
	}
	return s.store.ListSite(ctx, f)
}

func (s *Service) MarkReviewed(ctx context.Context, adminUID, id string) (*Feedback, error) {
	fb, err := s.store.GetSite(ctx, id)
	if err != nil {
		return nil, err
	}
	if fb.Status == StatusReviewed {
		return fb, nil
	}
	now := s.now()
	fb.Status = StatusReviewed
	fb.ReviewedBy = adminUID
	fb.ReviewedAt = &now
	if err := s.store.PutSite(ctx, *fb); err != nil {
		return nil, err
	}
	return fb, nil
}
