package article

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"brainhints/backend/internal/domain/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu   sync.Mutex
	seq  int
	docs map[string]Article

	afterGet func(id string)
}

func newMemStore() *memStore { return &memStore{docs: map[string]Article{}} }

func (m *memStore) Create(_ context.Context, a Article) (*Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	a.ID = fmt.Sprintf("a%d", m.seq)
	m.docs[a.ID] = a
	return &a, nil
}

func (m *memStore) Get(_ context.Context, id string) (*Article, error) {
	m.mu.Lock()
	a, ok := m.docs[id]
	m.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: article %s", ErrNotFound, id)
	}
	if m.afterGet != nil {
		m.afterGet(id)
	}
	return &a, nil
}

// Put mirrors Repo.Put: the view counters are never written.
func (m *memStore) Put(_ context.Context, a Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.docs[a.ID]
	if !ok {
		return fmt.Errorf("%w: article %s", ErrNotFound, a.ID)
	}
	a.Views, a.ViewedBy, a.CreatedAt = cur.Views, cur.ViewedBy, cur.CreatedAt
	m.docs[a.ID] = a
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
	return nil
}

func (m *memStore) List(_ context.Context, f ListFilter) ([]Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Article{}
	for _, a := range m.docs {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Category != "" && a.Category != f.Category {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *memStore) RecordView(_ context.Context, id, uid string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.docs[id]
	if uid != "" {
		for _, v := range a.ViewedBy {
			if v == uid {
				return false, nil
			}
		}
		a.ViewedBy = append(a.ViewedBy, uid)
	}
	a.Views++
	m.docs[id] = a
	return true, nil
}

var (
	author   = Author{UID: "admin-1", Name: "Ada"}
	longBody = "<p>" + strings.Repeat("Resetting your password takes a minute. ", 5) + "</p>"
	fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func newTestService() (*Service, *memStore) {
	st := newMemStore()
	svc := NewService(st, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc, st
}

func TestCreate_DerivesFields(t *testing.T) {
	svc, _ := newTestService()

	a, err := svc.Create(context.Background(), author, ArticleInput{
		Title:    "  Reset your password ",
		Content:  longBody + `<script>alert(1)</script>`,
		Category: "Account",
		Tags:     []string{"Password", "password", " security "},
	})
	require.NoError(t, err)

	assert.Equal(t, "Reset your password", a.Title)
	assert.Equal(t, "reset-your-password", a.Slug)
	assert.Equal(t, content.StatusDraft, a.Status)
	assert.Equal(t, []string{"password", "security"}, a.Tags)
	assert.NotContains(t, a.Content, "<script")
	assert.Equal(t, 1, a.ReadTime)
	assert.NotEmpty(t, a.Excerpt)
	assert.Contains(t, a.Keywords, "password")
	assert.Equal(t, "Ada", a.AuthorName)
	assert.Nil(t, a.PublishedAt)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	t.Run("short title", func(t *testing.T) {
		_, err := svc.Create(ctx, author, ArticleInput{Title: "Hey", Category: "x"})
		assert.True(t, IsErrBadRequest(err))
	})
	t.Run("missing category", func(t *testing.T) {
		_, err := svc.Create(ctx, author, ArticleInput{Title: "Valid title"})
		assert.True(t, IsErrBadRequest(err))
	})
	t.Run("publish with thin content", func(t *testing.T) {
		_, err := svc.Create(ctx, author, ArticleInput{Title: "Valid title", Category: "x", Content: "<p>short</p>", Status: content.StatusPublished})
		assert.True(t, IsErrBadRequest(err))
	})
	t.Run("schedule in the past", func(t *testing.T) {
		past := fixedNow.Add(-time.Hour)
		_, err := svc.Create(ctx, author, ArticleInput{Title: "Valid title", Category: "x", Content: longBody, Status: content.StatusScheduled, ScheduledAt: &past})
		assert.True(t, IsErrBadRequest(err))
	})
}

func TestPublishAndGetPublished(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, author, ArticleInput{Title: "Valid title", Category: "Account", Content: longBody})
	require.NoError(t, err)

	_, err = svc.GetPublished(ctx, a.ID)
	assert.True(t, IsErrNotFound(err), "drafts are hidden")

	p, err := svc.Publish(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, content.StatusPublished, p.Status)
	require.NotNil(t, p.PublishedAt)
	assert.Equal(t, fixedNow, *p.PublishedAt)

	got, err := svc.GetPublished(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	list, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestScheduleAndPublishDue(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, author, ArticleInput{Title: "Valid title", Category: "Account", Content: longBody})
	require.NoError(t, err)

	_, err = svc.Schedule(ctx, a.ID, fixedNow)
	assert.True(t, IsErrBadRequest(err), "now is not in the future")

	s, err := svc.Schedule(ctx, a.ID, fixedNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, content.StatusScheduled, s.Status)

	ids, err := svc.PublishDue(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	svc.now = func() time.Time { return fixedNow.Add(2 * time.Hour) }
	ids, err = svc.PublishDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, ids)
	assert.Equal(t, content.StatusPublished, st.docs[a.ID].Status)
	assert.Nil(t, st.docs[a.ID].ScheduledAt)
}

func TestUpdate_KeepsStatusAndChecksPublishable(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, author, ArticleInput{Title: "Valid title", Category: "Account", Content: longBody, Status: content.StatusPublished})
	require.NoError(t, err)

	_, err = svc.Update(ctx, a.ID, ArticleInput{Title: "Valid title", Category: "Account", Content: "<p>tiny</p>"})
	assert.True(t, IsErrBadRequest(err), "a live article cannot be emptied")

	u, err := svc.Update(ctx, a.ID, ArticleInput{Title: "A better title", Category: "Account", Content: longBody})
	require.NoError(t, err)
	assert.Equal(t, content.StatusPublished, u.Status)
	assert.Equal(t, "a-better-title", u.Slug)
	assert.Equal(t, a.PublishedAt, u.PublishedAt)
}

func TestSaveDraft(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	draft, err := svc.Create(ctx, author, ArticleInput{Title: "Draft title", Category: "Account"})
	require.NoError(t, err)
	live, err := svc.Create(ctx, author, ArticleInput{Title: "Live title", Category: "Account", Content: longBody, Status: content.StatusPublished})
	require.NoError(t, err)

	assert.True(t, IsErrBadRequest(svc.SaveDraft(ctx, draft.ID, Snapshot{Title: "  "})))

	require.NoError(t, svc.SaveDraft(ctx, draft.ID, Snapshot{Title: "Draft title v2", Content: longBody, Category: "Account"}))
	got := st.docs[draft.ID]
	assert.Equal(t, "Draft title v2", got.Title)
	assert.Nil(t, got.PendingDraft)
	require.NotNil(t, got.LastAutosavedAt)

	require.NoError(t, svc.SaveDraft(ctx, live.ID, Snapshot{Title: "Live title v2", Content: longBody, Category: "Account"}))
	got = st.docs[live.ID]
	assert.Equal(t, "Live title", got.Title, "live content is untouched")
	require.NotNil(t, got.PendingDraft)
	assert.Equal(t, "Live title v2", got.PendingDraft.Title)

	pub, err := svc.GetPublished(ctx, live.ID)
	require.NoError(t, err)
	assert.Nil(t, pub.PendingDraft)
}

func TestRecordView(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, author, ArticleInput{Title: "Valid title", Category: "Account", Content: longBody, Status: content.StatusPublished})
	require.NoError(t, err)

	counted, err := svc.RecordView(ctx, a.ID, "u1")
	require.NoError(t, err)
	assert.True(t, counted)
	counted, err = svc.RecordView(ctx, a.ID, "u1")
	require.NoError(t, err)
	assert.False(t, counted)
	_, err = svc.RecordView(ctx, a.ID, "")
	require.NoError(t, err)

	assert.EqualValues(t, 2, st.docs[a.ID].Views)
}

func TestEditsKeepConcurrentViews(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, author, ArticleInput{Title: "Valid title", Category: "Account", Content: longBody, Status: content.StatusPublished})
	require.NoError(t, err)

	// a reader's view lands between the editor's read and write
	st.afterGet = func(id string) {
		st.afterGet = nil
		_, _ = st.RecordView(ctx, id, "reader")
	}
	_, err = svc.Update(ctx, a.ID, ArticleInput{Title: "Valid title v2", Category: "Account", Content: longBody})
	require.NoError(t, err)

	got := st.docs[a.ID]
	assert.Equal(t, "Valid title v2", got.Title)
	assert.EqualValues(t, 1, got.Views)
	assert.Equal(t, []string{"reader"}, got.ViewedBy)
}

func TestDelete(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, author, ArticleInput{Title: "Valid title", Category: "Account"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.Empty(t, st.docs)
	assert.True(t, IsErrNotFound(svc.Delete(ctx, a.ID)))
}
