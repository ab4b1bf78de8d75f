package article

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditableFieldsSkipCounters(t *testing.T) {
	paths := map[string]bool{}
	for _, u := range editableFields(Article{ID: "a1", Title: "t", Views: 7, ViewedBy: []string{"u1"}}) {
		paths[u.Path] = true
	}
	assert.False(t, paths["views"])
	assert.False(t, paths["viewedBy"])
	assert.False(t, paths["createdAt"])
	assert.False(t, paths["id"])
	for _, p := range []string{"title", "content", "status", "pendingDraft", "scheduledAt", "publishedAt", "updatedAt"} {
		assert.True(t, paths[p], p)
	}
}
