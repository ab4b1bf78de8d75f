package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brainhints/backend/internal/domain/content"
	"brainhints/backend/internal/domain/video"
)

type videoStore struct {
	mu   sync.Mutex
	docs map[string]video.Video
}

func (s *videoStore) Create(_ context.Context, v video.Video) (*video.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[v.ID] = v
	return &v, nil
}

func (s *videoStore) Get(_ context.Context, id string) (*video.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: video %s", video.ErrNotFound, id)
	}
	return &v, nil
}

func (s *videoStore) Put(_ context.Context, v video.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[v.ID] = v
	return nil
}

func (s *videoStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

func (s *videoStore) List(context.Context, video.ListFilter) ([]video.Video, error) {
	return nil, nil
}

func (s *videoStore) RecordView(context.Context, string, string) (bool, error) {
	return true, nil
}

func TestVideoPublishRoutes(t *testing.T) {
	st := &videoStore{docs: map[string]video.Video{}}
	svc := video.NewService(st, nil)
	_, err := svc.CreateWithID(context.Background(), "v1", "a1", video.VideoInput{
		Title:    "Setting up two-factor login",
		VideoURL: "https://res.cloudinary.com/demo/video/upload/2fa.mp4",
		Category: "Security",
		Duration: "4:05",
	})
	require.NoError(t, err)

	h := NewRouter(RouterDeps{Verifier: tokens, VideoSvc: svc})

	rec := call(h, http.MethodPost, "/v1/admin/videos/v1/publish", "user", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(h, http.MethodPost, "/v1/admin/videos/v1/publish", "admin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(content.StatusPublished), decodeBody(t, rec)["status"])

	rec = call(h, http.MethodPost, "/v1/admin/videos/v1/unpublish", "admin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(content.StatusDraft), decodeBody(t, rec)["status"])

	rec = call(h, http.MethodPost, "/v1/admin/videos/v1/schedule", "admin", `{"scheduledAt":"2001-01-01T00:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	at := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	rec = call(h, http.MethodPost, "/v1/admin/videos/v1/schedule", "admin", `{"scheduledAt":"`+at+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(content.StatusScheduled), decodeBody(t, rec)["status"])

	rec = call(h, http.MethodPost, "/v1/admin/videos/missing/publish", "admin", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
