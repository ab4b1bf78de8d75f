package comment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(min int) time.Time {
	return time.Date(2025, 1, 1, 12, min, 0, 0, time.UTC)
}

func TestBuildThreads_Ordering(t *testing.T) {
	in := []Comment{
		{ID: "r1", ParentID: "old", Message: "second reply", CreatedAt: at(5)},
		{ID: "old", Message: "first", CreatedAt: at(0)},
		{ID: "new", Message: "latest", CreatedAt: at(10)},
		{ID: "r0", ParentID: "old", Message: "first reply", CreatedAt: at(1)},
	}

	out := BuildThreads(in)

	require.Len(t, out, 2)
	assert.Equal(t, "new", out[0].ID)
	assert.Equal(t, "old", out[1].ID)
	require.Len(t, out[1].Replies, 2)
	assert.Equal(t, "r0", out[1].Replies[0].ID)
	assert.Equal(t, "r1", out[1].Replies[1].ID)
	assert.NotNil(t, out[0].Replies)
}

func TestBuildThreads_DeletedPlaceholder(t *testing.T) {
	in := []Comment{
		{ID: "p", Message: "secret", AuthorName: "Ann", Deleted: true, Likes: []string{"u1"}, CreatedAt: at(0)},
		{ID: "r", ParentID: "p", Message: "still here", CreatedAt: at(1)},
		{ID: "gone", Message: "bye", Deleted: true, CreatedAt: at(2)},
		{ID: "dr", ParentID: "p", Message: "deleted reply", Deleted: true, CreatedAt: at(3)},
	}

	out := BuildThreads(in)

	require.Len(t, out, 1)
	assert.Equal(t, "p", out[0].ID)
	assert.True(t, out[0].Deleted)
	assert.Empty(t, out[0].Message)
	assert.Empty(t, out[0].AuthorName)
	assert.Equal(t, 0, out[0].LikeCount)
	require.Len(t, out[0].Replies, 1)
	assert.Equal(t, "r", out[0].Replies[0].ID)
}

func TestBuildThreads_OrphanPromoted(t *testing.T) {
	in := []Comment{
		{ID: "o", ParentID: "missing", Message: "orphan", Likes: []string{"a", "b"}, CreatedAt: at(0)},
	}

	out := BuildThreads(in)

	require.Len(t, out, 1)
	assert.Equal(t, "o", out[0].ID)
	assert.Equal(t, 2, out[0].LikeCount)
}

func TestBuildThreads_Empty(t *testing.T) {
	assert.Empty(t, BuildThreads(nil))
}
