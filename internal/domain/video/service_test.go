package video

import (
	"context"
	"fmt"
	"testing"
	"time"

	"brainhints/backend/internal/domain/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	seq  int
	docs map[string]Video
}

func (m *memStore) Create(_ context.Context, v Video) (*Video, error) {
	if v.ID == "" {
		m.seq++
		v.ID = fmt.Sprintf("v%d", m.seq)
	} else if _, ok := m.docs[v.ID]; ok {
		return nil, fmt.Errorf("%w: video %s already exists", ErrBadRequest, v.ID)
	}
	m.docs[v.ID] = v
	return &v, nil
}

func (m *memStore) Get(_ context.Context, id string) (*Video, error) {
	v, ok := m.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: video %s", ErrNotFound, id)
	}
	return &v, nil
}

// Put mirrors Repo.Put: the view counters are never written.
func (m *memStore) Put(_ context.Context, v Video) error {
	cur, ok := m.docs[v.ID]
	if !ok {
		return fmt.Errorf("%w: video %s", ErrNotFound, v.ID)
	}
	v.Views, v.ViewedBy, v.CreatedAt = cur.Views, cur.ViewedBy, cur.CreatedAt
	m.docs[v.ID] = v
	return nil
}
func (m *memStore) Delete(_ context.Context, id string) error {
	delete(m.docs, id)
	return nil
}

func (m *memStore) List(_ context.Context, f ListFilter) ([]Video, error) {
	out := []Video{}
	for _, v := range m.docs {
		if f.Status == "" || v.Status == f.Status {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memStore) RecordView(_ context.Context, id, _ string) (bool, error) {
	v := m.docs[id]
	v.Views++
	m.docs[id] = v
	return true, nil
}

var now = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func newTestService() (*Service, *memStore) {
	st := &memStore{docs: map[string]Video{}}
	svc := NewService(st, nil)
	svc.now = func() time.Time { return now }
	return svc, st
}

func validInput() VideoInput {
	return VideoInput{
		Title:    "Setting up two-factor login",
		VideoURL: "https://res.cloudinary.com/demo/video/upload/2fa.mp4",
		Category: "Security",
		Duration: "4:05",
		Tags:     []string{"2FA", "Security"},
	}
}

func TestValidDuration(t *testing.T) {
	for _, ok := range []string{"0:30", "4:05", "12:59", "1:02:03"} {
		assert.True(t, ValidDuration(ok), ok)
	}
	for _, bad := range []string{"", "4", "4:5", "4:60", "abc", "1:2:3"} {
		assert.False(t, ValidDuration(bad), bad)
	}
}

func TestCreate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	v, err := svc.Create(ctx, "admin", validInput())
	require.NoError(t, err)
	assert.Equal(t, content.StatusDraft, v.Status)
	assert.Equal(t, "setting-up-two-factor-login", v.Slug)
	assert.Equal(t, []string{"2fa", "security"}, v.Tags)

	bad := validInput()
	bad.Duration = "four minutes"
	_, err = svc.Create(ctx, "admin", bad)
	assert.True(t, IsErrBadRequest(err))

	bad = validInput()
	bad.VideoURL = "not a url"
	_, err = svc.Create(ctx, "admin", bad)
	assert.True(t, IsErrBadRequest(err))
}

func TestCreateWithID_Idempotent(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	_, err := svc.CreateWithID(ctx, "setup-2fa", "seed", validInput())
	require.NoError(t, err)
	_, err = svc.CreateWithID(ctx, "setup-2fa", "seed", validInput())
	assert.True(t, IsErrBadRequest(err))
	assert.Len(t, st.docs, 1)
}

func TestPublishDueAndViews(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	in := validInput()
	at := now.Add(time.Minute)
	in.Status = content.StatusScheduled
	in.ScheduledAt = &at
	v, err := svc.Create(ctx, "admin", in)
	require.NoError(t, err)

	_, err = svc.RecordView(ctx, v.ID, "u1")
	assert.True(t, IsErrNotFound(err), "scheduled videos are not public yet")

	svc.now = func() time.Time { return now.Add(time.Hour) }
	ids, err := svc.PublishDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{v.ID}, ids)

	_, err = svc.RecordView(ctx, v.ID, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, st.docs[v.ID].Views)
}

func TestSaveDraft(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	v, err := svc.Create(ctx, "admin", validInput())
	require.NoError(t, err)

	assert.True(t, IsErrBadRequest(svc.SaveDraft(ctx, v.ID, Snapshot{})))
	require.NoError(t, svc.SaveDraft(ctx, v.ID, Snapshot{Title: "New title here", Description: "desc"}))
	assert.Equal(t, "New title here", st.docs[v.ID].Title)
	assert.Equal(t, "Security", st.docs[v.ID].Category, "blank category keeps the old one")
	assert.Nil(t, st.docs[v.ID].PendingDraft)
	assert.NotNil(t, st.docs[v.ID].LastAutosavedAt)
}

func TestSaveDraft_LiveVideoKeepsEditsAside(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	in := validInput()
	in.Status = content.StatusPublished
	v, err := svc.Create(ctx, "admin", in)
	require.NoError(t, err)

	require.NoError(t, svc.SaveDraft(ctx, v.ID, Snapshot{Title: "Half typed ti", Tags: []string{"Draft"}}))
	got := st.docs[v.ID]
	assert.Equal(t, "Setting up two-factor login", got.Title, "live video is untouched")
	require.NotNil(t, got.PendingDraft)
	assert.Equal(t, "Half typed ti", got.PendingDraft.Title)
	assert.Equal(t, []string{"draft"}, got.PendingDraft.Tags)

	pub, err := svc.GetPublished(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Setting up two-factor login", pub.Title)
	assert.Nil(t, pub.PendingDraft)

	list, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].PendingDraft)

	// an explicit save replaces the pending edits
	_, err = svc.Update(ctx, v.ID, validInput())
	require.NoError(t, err)
	assert.Nil(t, st.docs[v.ID].PendingDraft)
}

func TestPublishUnpublishSchedule(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	v, err := svc.Create(ctx, "admin", validInput())
	require.NoError(t, err)

	out, err := svc.Publish(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, content.StatusPublished, out.Status)
	require.NotNil(t, out.PublishedAt)
	assert.Equal(t, now, *out.PublishedAt)

	out, err = svc.Unpublish(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, content.StatusDraft, out.Status)
	_, err = svc.GetPublished(ctx, v.ID)
	assert.True(t, IsErrNotFound(err))

	_, err = svc.Schedule(ctx, v.ID, now.Add(-time.Minute))
	assert.True(t, IsErrBadRequest(err))

	at := now.Add(2 * time.Hour)
	out, err = svc.Schedule(ctx, v.ID, at)
	require.NoError(t, err)
	assert.Equal(t, content.StatusScheduled, out.Status)
	require.NotNil(t, st.docs[v.ID].ScheduledAt)
	assert.Equal(t, at, *st.docs[v.ID].ScheduledAt)

	_, err = svc.Publish(ctx, "missing")
	assert.True(t, IsErrNotFound(err))
}

func TestEditsKeepViews(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	in := validInput()
	in.Status = content.StatusPublished
	v, err := svc.Create(ctx, "admin", in)
	require.NoError(t, err)
	_, err = svc.RecordView(ctx, v.ID, "u1")
	require.NoError(t, err)

	_, err = svc.Update(ctx, v.ID, validInput())
	require.NoError(t, err)
	assert.EqualValues(t, 1, st.docs[v.ID].Views)
}
