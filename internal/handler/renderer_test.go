package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/dukerupert/ukpostcode/internal/postcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTemplates() fstest.MapFS {
	return fstest.MapFS{
		"layout.html": {Data: []byte(`{{define "base"}}<title>{{block "title" .}}default{{end}}</title>{{template "content" .}}{{end}}`)},
		"one.html":    {Data: []byte(`{{define "title"}}One{{end}}{{define "content"}}one:{{.}}{{end}}`)},
		"two.html":    {Data: []byte(`{{define "content"}}two:{{add 1 2}}{{end}}`)},
		"broken.html": {Data: []byte(`{{define "content"}}{{.Missing.Field}}{{end}}`)},
	}
}

func TestRenderer_IsolatesPages(t *testing.T) {
	r, err := NewRenderer(testTemplates())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "one", "x"))
	assert.Equal(t, "<title>One</title>one:x", buf.String())

	buf.Reset()
	require.NoError(t, r.Render(&buf, "two", nil))
	assert.Equal(t, "<title>default</title>two:3", buf.String())
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer(testTemplates())
	require.NoError(t, err)

	_, err = r.Execute("layout")
	assert.ErrorContains(t, err, `template "layout" not found`)
}

func TestRenderer_MissingLayout(t *testing.T) {
	_, err := NewRenderer(fstest.MapFS{"one.html": {Data: []byte(`x`)}})
	assert.ErrorContains(t, err, "failed to parse layout")
}

func TestRenderer_RenderHTTP(t *testing.T) {
	r, err := NewRenderer(testTemplates())
	require.NoError(t, err)

	t.Run("writes status and body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.RenderHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusTeapot, "one", "y")

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "<title>One</title>one:y", rec.Body.String())
	})

	t.Run("template error is a clean 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.RenderHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "broken", 42)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to render template\n", rec.Body.String())
	})
}

func TestStatusClass(t *testing.T) {
	tests := map[string]string{
		"SW1W 0NY": "valid",
		"QC1A 1BB": "invalid",
		"AB1 1AA":  "invalid",
		"EC1#1BB":  "error",
		"EC":       "error",
	}

	for input, want := range tests {
		assert.Equal(t, want, StatusClass(postcode.Check(input)), input)
	}
}
