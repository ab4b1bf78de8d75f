package httpjson

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	var dst struct {
		Title string `json:"title"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"hi"}`))
	require.NoError(t, Read(httptest.NewRecorder(), req, &dst))
	assert.Equal(t, "hi", dst.Title)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"hi","extra":1}`))
	assert.Error(t, Read(httptest.NewRecorder(), req, &dst))
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusNotFound, "article not found")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"article not found"}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}
