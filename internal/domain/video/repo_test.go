package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditableFieldsSkipCounters(t *testing.T) {
	paths := map[string]bool{}
	for _, u := range editableFields(Video{ID: "v1", Title: "t", Views: 3, ViewedBy: []string{"u1"}}) {
		paths[u.Path] = true
	}
	assert.False(t, paths["views"])
	assert.False(t, paths["viewedBy"])
	assert.False(t, paths["createdAt"])
	for _, p := range []string{"title", "videoUrl", "status", "pendingDraft", "scheduledAt", "updatedAt"} {
		assert.True(t, paths[p], p)
	}
}
