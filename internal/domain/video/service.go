package video

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"brainhints/backend/internal/cache"
	"brainhints/backend/internal/domain/content"
	"brainhints/backend/internal/textutil"
	"brainhints/backend/internal/validate"
)

type Store interface {
	Create(ctx context.Context, v Video) (*Video, error)
	Get(ctx context.Context, id string) (*Video, error)
	Put(ctx context.Context, v Video) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ListFilter) ([]Video, error)
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

func (s *Service) Create(ctx context.Context, authorUID string, in VideoInput) (*Video, error) {
	return s.create(ctx, "", authorUID, in)
}

// CreateWithID is used by the seeding command so reruns do not duplicate videos.
func (s *Service) CreateWithID(ctx context.Context, id, authorUID string, in VideoInput) (*Video, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrBadRequest)
	}
	return s.create(ctx, id, authorUID, in)
}

func (s *Service) create(ctx context.Context, id, authorUID string, in VideoInput) (*Video, error) {
	in.Trim()
	if err := s.check(in); err != nil {
		return nil, err
	}
	now := s.now()
	v := Video{
		ID:        id,
		AuthorID:  authorUID,
		Status:    content.StatusDraft,
		ViewedBy:  []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	apply(&v, in, now)

	out, err := s.store.Create(ctx, v)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, out.Status)
	log.Printf("[Videos] created %s (%s)", out.ID, out.Status)
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Video, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrBadRequest)
	}
	return s.store.Get(ctx, id)
}

func (s *Service) GetPublished(ctx context.Context, id string) (*Video, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.Status != content.StatusPublished {
		return nil, fmt.Errorf("%w: video %s", ErrNotFound, id)
	}
	v.PendingDraft = nil
	return v, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Video, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrBadRequest, f.Status)
	}
	return s.store.List(ctx, f)
}

func (s *Service) ListPublished(ctx context.Context) ([]Video, error) {
	out, err := s.store.List(ctx, ListFilter{Status: content.StatusPublished})
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].PendingDraft = nil
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, id string, in VideoInput) (*Video, error) {
	in.Trim()
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = v.Status
		if in.ScheduledAt == nil {
			in.ScheduledAt = v.ScheduledAt
		}
	}
	if err := s.check(in); err != nil {
		return nil, err
	}
	prev := v.Status
	now := s.now()
	apply(v, in, now)
	v.PendingDraft = nil
	v.UpdatedAt = now
	if err := s.store.Put(ctx, *v); err != nil {
		return nil, err
	}
	s.invalidate(ctx, prev, v.Status)
	return v, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	v, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, v.Status)
	log.Printf("[Videos] deleted %s", id)
	return nil
}

// SaveDraft persists an auto-save snapshot. Draft videos take the edits directly; live and
// scheduled videos keep them aside in PendingDraft until the editor saves explicitly.
func (s *Service) SaveDraft(ctx context.Context, id string, snap Snapshot) error {
	snap.Trim()
	if snap.Title == "" {
		return fmt.Errorf("%w: title is required", ErrBadRequest)
	}
	v, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	now := s.now()
	snap.Tags = textutil.CleanTags(snap.Tags)

	if v.Status == content.StatusDraft {
		v.Title = snap.Title
		v.Slug = textutil.Slugify(snap.Title)
		v.Description = snap.Description
		if snap.Category != "" {
			v.Category = snap.Category
		}
		v.Tags = snap.Tags
	} else {
		v.PendingDraft = &snap
	}
	v.LastAutosavedAt = &now
	v.UpdatedAt = now
	return s.store.Put(ctx, *v)
}

func (s *Service) Publish(ctx context.Context, id string) (*Video, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkPublishable(v); err != nil {
		return nil, err
	}
	now := s.now()
	markPublished(v, now)
	v.UpdatedAt = now
	if err := s.store.Put(ctx, *v); err != nil {
		return nil, err
	}
	s.invalidate(ctx, content.StatusPublished)
	return v, nil
}

func (s *Service) Unpublish(ctx context.Context, id string) (*Video, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	prev := v.Status
	v.Status = content.StatusDraft
	v.ScheduledAt = nil
	v.UpdatedAt = s.now()
	if err := s.store.Put(ctx, *v); err != nil {
		return nil, err
	}
	s.invalidate(ctx, prev)
	return v, nil
}

func (s *Service) Schedule(ctx context.Context, id string, at time.Time) (*Video, error) {
	now := s.now()
	if !at.After(now) {
		return nil, fmt.Errorf("%w: scheduledAt must be in the future", ErrBadRequest)
	}
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkPublishable(v); err != nil {
		return nil, err
	}
	prev := v.Status
	at = at.UTC()
	v.Status = content.StatusScheduled
	v.ScheduledAt = &at
	v.UpdatedAt = now
	if err := s.store.Put(ctx, *v); err != nil {
		return nil, err
	}
	s.invalidate(ctx, prev)
	return v, nil
}

func (s *Service) RecordView(ctx context.Context, id, uid string) (bool, error) {
	if _, err := s.GetPublished(ctx, id); err != nil {
		return false, err
	}
	return s.store.RecordView(ctx, id, uid)
}

func (s *Service) PublishDue(ctx context.Context) ([]string, error) {
	scheduled, err := s.store.List(ctx, ListFilter{Status: content.StatusScheduled})
	if err != nil {
		return nil, err
	}
	now := s.now()
	published := []string{}
	for i := range scheduled {
		v := &scheduled[i]
		if v.ScheduledAt == nil || v.ScheduledAt.After(now) {
			continue
		}
		markPublished(v, now)
		v.UpdatedAt = now
		if err := s.store.Put(ctx, *v); err != nil {
			log.Printf("[Videos] scheduled publish of %s failed: %v", v.ID, err)
			continue
		}
		published = append(published, v.ID)
	}
	if len(published) > 0 {
		s.invalidate(ctx, content.StatusPublished)
	}
	return published, nil
}

func (s *Service) check(in VideoInput) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if in.Duration != "" && !ValidDuration(in.Duration) {
		return fmt.Errorf("%w: duration must look like 4:05 or 1:02:03", ErrBadRequest)
	}
	if in.Status == content.StatusScheduled && (in.ScheduledAt == nil || !in.ScheduledAt.After(s.now())) {
		return fmt.Errorf("%w: scheduledAt must be in the future", ErrBadRequest)
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context, statuses ...content.Status) {
	for _, st := range statuses {
		if st == content.StatusPublished {
			if err := s.cache.Delete(ctx, cache.KeyPublishedVideos); err != nil {
				log.Printf("[Videos] cache invalidate failed: %v", err)
			}
			return
		}
	}
}

func apply(v *Video, in VideoInput, now time.Time) {
	v.Title = in.Title
	v.Slug = textutil.Slugify(in.Title)
	v.Description = in.Description
	v.VideoURL = in.VideoURL
	v.ThumbnailURL = in.ThumbnailURL
	v.PublicID = in.PublicID
	v.Category = in.Category
	v.Duration = in.Duration
	v.Tags = textutil.CleanTags(in.Tags)

	switch in.Status {
	case content.StatusPublished:
		markPublished(v, now)
	case content.StatusScheduled:
		at := in.ScheduledAt.UTC()
		v.Status = content.StatusScheduled
		v.ScheduledAt = &at
	case content.StatusDraft:
		v.Status = content.StatusDraft
		v.ScheduledAt = nil
	}
}

func markPublished(v *Video, now time.Time) {
	v.Status = content.StatusPublished
	v.ScheduledAt = nil
	if v.PublishedAt == nil {
		v.PublishedAt = &now
	}
}

func checkPublishable(v *Video) error {
	switch {
	case v.Title == "":
		return fmt.Errorf("%w: title is required", ErrBadRequest)
	case v.VideoURL == "":
		return fmt.Errorf("%w: videoUrl is required", ErrBadRequest)
	case v.Category == "":
		return fmt.Errorf("%w: category is required", ErrBadRequest)
	}
	return nil
}
