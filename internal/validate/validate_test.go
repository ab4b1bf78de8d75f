package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title    string `json:"title" validate:"required,min=5"`
	Priority string `json:"priority" validate:"oneof=low high"`
	Rating   *int   `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(sample{Title: "Hello", Priority: "low"}))

	err := Struct(sample{Title: "Hi", Priority: "mid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title must be at least 5 characters")
	assert.Contains(t, err.Error(), "priority must be one of [low high]")

	six := 6
	err = Struct(sample{Title: "Hello", Priority: "high", Rating: &six})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rating is out of range")
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("status", "open", "oneof=open closed"))
	assert.EqualError(t, Var("status", "weird", "oneof=open closed"), "status is invalid")
}

func TestDocID(t *testing.T) {
	assert.True(t, DocID("getting-started"))
	assert.True(t, DocID("a_b.c"))
	assert.False(t, DocID(""))
	assert.False(t, DocID(".."))
	assert.False(t, DocID("x/evil/y"))
	assert.False(t, DocID("__name__"))

	type in struct {
		ContentID string `json:"contentId" validate:"required,docid"`
	}
	err := Struct(in{ContentID: "x/evil/y"})
	require.Error(t, err)
	assert.Equal(t, "contentId must be a plain id without slashes", err.Error())
	assert.NoError(t, Struct(in{ContentID: "a1"}))
}
