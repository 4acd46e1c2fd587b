package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("download", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<schema/>"))
		}))
		defer srv.Close()

		f := New(t.TempDir())
		path, err := f.Fetch(ctx, srv.URL+"/en-v20240601.xml")
		require.NoError(t, err)
		assert.Equal(t, "en-v20240601.xml", filepath.Base(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<schema/>", string(data))
	})

	t.Run("server error falls back to cache", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		dir := t.TempDir()
		cached := filepath.Join(dir, "previous.xml")
		require.NoError(t, os.WriteFile(cached, []byte("<schema/>"), 0o644))

		f := New(dir)
		path, err := f.Fetch(ctx, srv.URL+"/feed.xml")
		require.NoError(t, err)
		assert.Equal(t, cached, path)
	})

	t.Run("server error with empty cache", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusInternalServerError)
		}))
		defer srv.Close()

		f := New(t.TempDir())
		_, err := f.Fetch(ctx, srv.URL+"/feed.xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no cached feed")
	})

	t.Run("unreachable host falls back to cache", func(t *testing.T) {
		dir := t.TempDir()
		cached := filepath.Join(dir, "previous.xml")
		require.NoError(t, os.WriteFile(cached, []byte("<schema/>"), 0o644))

		f := New(dir)
		path, err := f.Fetch(ctx, "http://127.0.0.1:1/feed.xml")
		require.NoError(t, err)
		assert.Equal(t, cached, path)
	})
}

func TestCacheName(t *testing.T) {
	assert.Equal(t, "en-v20240601.xml", cacheName("https://example.com/files/en-v20240601.xml"))
	assert.Equal(t, "gpc_feed.xml", cacheName("https://example.com/"))
	assert.Equal(t, "xml", cacheName("https://gpc-api.gs1.org/api/browser/xml?languageCode=en"))
}
