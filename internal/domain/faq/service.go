package faq

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"brainhints/backend/internal/cache"
	"brainhints/backend/internal/domain/content"
	"brainhints/backend/internal/textutil"
	"brainhints/backend/internal/validate"
)

type Store interface {
	Create(ctx context.Context, f FAQ) (*FAQ, error)
	Get(ctx context.Context, id string) (*FAQ, error)
	Put(ctx context.Context, f FAQ) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, st content.Status, category string) ([]FAQ, error)
}

type Service struct {
	store Store
	cache *cache.Cache
}

func NewService(store Store, c *cache.Cache) *Service {
	return &Service{store: store, cache: c}
}

func (s *Service) Create(ctx context.Context, uid string, in FAQInput) (*FAQ, error) {
	in.Trim()
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	now := time.Now().UTC()
	f := FAQ{
		Question:  in.Question,
		Answer:    textutil.SanitizeHTML(in.Answer),
		Category:  in.Category,
		Tags:      textutil.CleanTags(in.Tags),
		Status:    in.Status,
		Order:     in.Order,
		CreatedBy: uid,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if f.Status == "" {
		f.Status = content.StatusDraft
	}
	out, err := s.store.Create(ctx, f)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, out.Status)
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*FAQ, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrBadRequest)
	}
	return s.store.Get(ctx, id)
}

// List returns FAQs ordered by category, then display order, then question.
func (s *Service) List(ctx context.Context, st content.Status, category string) ([]FAQ, error) {
	if st != "" && st != content.StatusDraft && st != content.StatusPublished {
		return nil, fmt.Errorf("%w: unknown status %q", ErrBadRequest, st)
	}
	out, err := s.store.List(ctx, st, category)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Question < out[j].Question
	})
	return out, nil
}

func (s *Service) ListPublished(ctx context.Context) ([]FAQ, error) {
	return s.List(ctx, content.StatusPublished, "")
}

func (s *Service) Update(ctx context.Context, id string, in FAQInput) (*FAQ, error) {
	in.Trim()
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	prev := f.Status
	f.Question = in.Question
	f.Answer = textutil.SanitizeHTML(in.Answer)
	f.Category = in.Category
	f.Tags = textutil.CleanTags(in.Tags)
	f.Order = in.Order
	if in.Status != "" {
		f.Status = in.Status
	}
	f.UpdatedAt = time.Now().UTC()
	if err := s.store.Put(ctx, *f); err != nil {
		return nil, err
	}
	s.invalidate(ctx, prev, f.Status)
	return f, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	f, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, f.Status)
	return nil
}

func (s *Service) invalidate(ctx context.Context, statuses ...content.Status) {
	for _, st := range statuses {
		if st == content.StatusPublished {
			if err := s.cache.Delete(ctx, cache.KeyPublishedFAQs); err != nil {
				log.Printf("[FAQs] cache invalidate failed: %v", err)
			}
			return
		}
	}
}
