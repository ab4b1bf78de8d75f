package article

import (
	"context"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"brainhints/backend/internal/cache"
	"brainhints/backend/internal/domain/content"
	"brainhints/backend/internal/textutil"
	"brainhints/backend/internal/validate"
)

const (
	excerptLength = 160
	keywordCount  = 10
)

// Store is implemented by *Repo.
type Store interface {
	Create(ctx context.Context, a Article) (*Article, error)
	Get(ctx context.Context, id string) (*Article, error)
	Put(ctx context.Context, a Article) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ListFilter) ([]Article, error)
	RecordView(ctx context.Context, id, uid string) (bool, error)
}

type Service struct {
	store Store
	cache *cache.Cache
	now   func() time.Time
}

func NewService(store Store, c *cache.Cache) *Service {
	return &Service{store: store, cache: c, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) Create(ctx context.Context, author Author, in ArticleInput) (*Article, error) {
	in.Trim()
	if err := s.check(in); err != nil {
		return nil, err
	}

	now := s.now()
	a := Article{
		AuthorID:   author.UID,
		AuthorName: author.Name,
		Status:     content.StatusDraft,
		Tags:       []string{},
		ViewedBy:   []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.apply(&a, in, now)

	out, err := s.store.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, out.Status)
	log.Printf("[Articles] created %s (%s) by %s", out.ID, out.Status, author.UID)
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Article, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrBadRequest)
	}
	return s.store.Get(ctx, id)
}

// GetPublished hides drafts and scheduled articles from the public site.
func (s *Service) GetPublished(ctx context.Context, id string) (*Article, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != content.StatusPublished {
		return nil, fmt.Errorf("%w: article %s", ErrNotFound, id)
	}
	a.PendingDraft = nil
	return a, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Article, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrBadRequest, f.Status)
	}
	if f.Limit < 0 || f.Limit > 500 {
		f.Limit = 500
	}
	return s.store.List(ctx, f)
}

func (s *Service) ListPublished(ctx context.Context) ([]Article, error) {
	out, err := s.store.List(ctx, ListFilter{Status: content.StatusPublished})
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].PendingDraft = nil
	}
	return out, nil
}

// Update replaces the editable fields and clears any pending auto-saved draft.
func (s *Service) Update(ctx context.Context, id string, in ArticleInput) (*Article, error) {
	in.Trim()
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = a.Status
		if in.ScheduledAt == nil {
			in.ScheduledAt = a.ScheduledAt
		}
	}
	if err := s.check(in); err != nil {
		return nil, err
	}
	prev := a.Status
	now := s.now()
	s.apply(a, in, now)
	a.PendingDraft = nil
	a.UpdatedAt = now

	if err := s.store.Put(ctx, *a); err != nil {
		return nil, err
	}
	s.invalidate(ctx, prev, a.Status)
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, a.Status)
	log.Printf("[Articles] deleted %s", id)
	return nil
}

func (s *Service) Publish(ctx context.Context, id string) (*Article, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkPublishable(a.Title, a.Content, a.Category); err != nil {
		return nil, err
	}
	now := s.now()
	markPublished(a, now)
	a.UpdatedAt = now
	if err := s.store.Put(ctx, *a); err != nil {
		return nil, err
	}
	s.invalidate(ctx, content.StatusPublished)
	return a, nil
}

func (s *Service) Unpublish(ctx context.Context, id string) (*Article, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	prev := a.Status
	a.Status = content.StatusDraft
	a.ScheduledAt = nil
	a.UpdatedAt = s.now()
	if err := s.store.Put(ctx, *a); err != nil {
		return nil, err
	}
	s.invalidate(ctx, prev)
	return a, nil
}

func (s *Service) Schedule(ctx context.Context, id string, at time.Time) (*Article, error) {
	now := s.now()
	if !at.After(now) {
		return nil, fmt.Errorf("%w: scheduledAt must be in the future", ErrBadRequest)
	}
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkPublishable(a.Title, a.Content, a.Category); err != nil {
		return nil, err
	}
	prev := a.Status
	at = at.UTC()
	a.Status = content.StatusScheduled
	a.ScheduledAt = &at
	a.UpdatedAt = now
	if err := s.store.Put(ctx, *a); err != nil {
		return nil, err
	}
	s.invalidate(ctx, prev)
	return a, nil
}

// SaveDraft persists an auto-save snapshot. Drafts take the edits directly; live and scheduled
// articles keep them aside in PendingDraft until the editor saves explicitly.
func (s *Service) SaveDraft(ctx context.Context, id string, snap Snapshot) error {
	snap.Trim()
	if snap.Title == "" {
		return fmt.Errorf("%w: title is required", ErrBadRequest)
	}
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	now := s.now()
	snap.Content = textutil.SanitizeHTML(snap.Content)
	snap.Tags = textutil.CleanTags(snap.Tags)

	if a.Status == content.StatusDraft {
		a.Title = snap.Title
		a.Content = snap.Content
		a.Excerpt = snap.Excerpt
		a.Category = snap.Category
		a.Tags = snap.Tags
		a.FeaturedImage = snap.FeaturedImage
		derive(a)
	} else {
		a.PendingDraft = &snap
	}
	a.LastAutosavedAt = &now
	a.UpdatedAt = now
	return s.store.Put(ctx, *a)
}

// RecordView counts a view of a published article.
func (s *Service) RecordView(ctx context.Context, id, uid string) (bool, error) {
	if _, err := s.GetPublished(ctx, id); err != nil {
		return false, err
	}
	return s.store.RecordView(ctx, id, uid)
}

// PublishDue promotes scheduled articles whose time has come. It returns the ids published.
func (s *Service) PublishDue(ctx context.Context) ([]string, error) {
	scheduled, err := s.store.List(ctx, ListFilter{Status: content.StatusScheduled})
	if err != nil {
		return nil, err
	}
	now := s.now()
	published := []string{}
	for i := range scheduled {
		a := &scheduled[i]
		if a.ScheduledAt == nil || a.ScheduledAt.After(now) {
			continue
		}
		markPublished(a, now)
		a.UpdatedAt = now
		if err := s.store.Put(ctx, *a); err != nil {
			log.Printf("[Articles] scheduled publish of %s failed: %v", a.ID, err)
			continue
		}
		published = append(published, a.ID)
	}
	if len(published) > 0 {
		s.invalidate(ctx, content.StatusPublished)
	}
	return published, nil
}

func (s *Service) check(in ArticleInput) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	switch in.Status {
	case content.StatusPublished:
		return checkPublishable(in.Title, in.Content, in.Category)
	case content.StatusScheduled:
		if in.ScheduledAt == nil || !in.ScheduledAt.After(s.now()) {
			return fmt.Errorf("%w: scheduledAt must be in the future", ErrBadRequest)
		}
		return checkPublishable(in.Title, in.Content, in.Category)
	}
	return nil
}

func (s *Service) apply(a *Article, in ArticleInput, now time.Time) {
	a.Title = in.Title
	a.Content = textutil.SanitizeHTML(in.Content)
	a.Excerpt = in.Excerpt
	a.Category = in.Category
	a.Tags = textutil.CleanTags(in.Tags)
	a.FeaturedImage = in.FeaturedImage
	derive(a)

	switch in.Status {
	case content.StatusPublished:
		markPublished(a, now)
	case content.StatusScheduled:
		at := in.ScheduledAt.UTC()
		a.Status = content.StatusScheduled
		a.ScheduledAt = &at
	case content.StatusDraft:
		a.Status = content.StatusDraft
		a.ScheduledAt = nil
	}
}

func (s *Service) invalidate(ctx context.Context, statuses ...content.Status) {
	for _, st := range statuses {
		if st == content.StatusPublished {
			if err := s.cache.Delete(ctx, cache.KeyPublishedArticles); err != nil {
				log.Printf("[Articles] cache invalidate failed: %v", err)
			}
			return
		}
	}
}

// derive recomputes everything computed from the body.
func derive(a *Article) {
	a.Slug = textutil.Slugify(a.Title)
	if a.Excerpt == "" {
		a.Excerpt = textutil.Excerpt(a.Content, excerptLength)
	}
	a.Keywords = textutil.ExtractKeywords(a.Content, keywordCount)
	a.ReadTime = textutil.ReadTime(a.Content)
}

func markPublished(a *Article, now time.Time) {
	a.Status = content.StatusPublished
	a.ScheduledAt = nil
	if a.PublishedAt == nil {
		a.PublishedAt = &now
	}
}

func checkPublishable(title, body, category string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrBadRequest)
	}
	if category == "" {
		return fmt.Errorf("%w: category is required", ErrBadRequest)
	}
	if utf8.RuneCountInString(textutil.PlainText(body)) < minPublishedContent {
		return fmt.Errorf("%w: content must be at least %d characters to publish", ErrBadRequest, minPublishedContent)
	}
	return nil
}
