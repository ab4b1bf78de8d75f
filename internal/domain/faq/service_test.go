package faq

import (
	"context"
	"fmt"
	"testing"

	"brainhints/backend/internal/domain/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	seq  int
	docs map[string]FAQ
}

func (m *memStore) Create(_ context.Context, f FAQ) (*FAQ, error) {
	m.seq++
	f.ID = fmt.Sprintf("f%d", m.seq)
	m.docs[f.ID] = f
	return &f, nil
}

func (m *memStore) Get(_ context.Context, id string) (*FAQ, error) {
	f, ok := m.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: faq %s", ErrNotFound, id)
	}
	return &f, nil
}

func (m *memStore) Put(_ context.Context, f FAQ) error { m.docs[f.ID] = f; return nil }

func (m *memStore) Delete(_ context.Context, id string) error { delete(m.docs, id); return nil }

func (m *memStore) List(_ context.Context, st content.Status, category string) ([]FAQ, error) {
	out := []FAQ{}
	for _, f := range m.docs {
		if (st == "" || f.Status == st) && (category == "" || f.Category == category) {
			out = append(out, f)
		}
	}
	return out, nil
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(&memStore{docs: map[string]FAQ{}}, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "admin", FAQInput{Question: "Why?", Answer: "Because it is so.", Category: "General"})
	assert.True(t, IsErrBadRequest(err))

	_, err = svc.Create(ctx, "admin", FAQInput{Question: "How do I reset my password?", Answer: "Use the forgot password link.", Category: "General", Status: content.StatusScheduled})
	assert.True(t, IsErrBadRequest(err), "faqs cannot be scheduled")

	f, err := svc.Create(ctx, "admin", FAQInput{Question: "How do I reset my password?", Answer: "Use the <b>forgot password</b> link.", Category: "Account"})
	require.NoError(t, err)
	assert.Equal(t, content.StatusDraft, f.Status)
}

func TestListOrdering(t *testing.T) {
	st := &memStore{docs: map[string]FAQ{}}
	svc := NewService(st, nil)
	ctx := context.Background()

	mk := func(q, cat string, order int) {
		_, err := svc.Create(ctx, "admin", FAQInput{Question: q, Answer: "An answer long enough to pass.", Category: cat, Order: order, Status: content.StatusPublished})
		require.NoError(t, err)
	}
	mk("Second billing question?", "Billing", 2)
	mk("First billing question??", "Billing", 1)
	mk("Account question here?", "Account", 5)

	out, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "Account question here?", out[0].Question)
	assert.Equal(t, "First billing question??", out[1].Question)
	assert.Equal(t, "Second billing question?", out[2].Question)
}

func TestUpdateAndDelete(t *testing.T) {
	st := &memStore{docs: map[string]FAQ{}}
	svc := NewService(st, nil)
	ctx := context.Background()

	f, err := svc.Create(ctx, "admin", FAQInput{Question: "How do I reset my password?", Answer: "Use the forgot password link.", Category: "Account"})
	require.NoError(t, err)

	u, err := svc.Update(ctx, f.ID, FAQInput{Question: "How do I change my password?", Answer: "Open settings and pick security.", Category: "Account", Status: content.StatusPublished})
	require.NoError(t, err)
	assert.Equal(t, content.StatusPublished, u.Status)

	require.NoError(t, svc.Delete(ctx, f.ID))
	_, err = svc.Get(ctx, f.ID)
	assert.True(t, IsErrNotFound(err))
}
