package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClassifier_Classify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req classifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://cdn.example.com/owner/assets/a.jpg", req.URL)

		_ = json.NewEncoder(w).Encode(classifyResponse{Label: "safe"})
	}))
	defer srv.Close()

	cli := NewHTTPClassifier(ClassifierConfig{URL: srv.URL, Timeout: time.Second})
	label, err := cli.Classify(context.Background(), "https://cdn.example.com/owner/assets/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "safe", label)
}

func TestHTTPClassifier_Failures(t *testing.T) {
	t.Run("non-200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		cli := NewHTTPClassifier(ClassifierConfig{URL: srv.URL, Timeout: time.Second})
		_, err := cli.Classify(context.Background(), "https://x/y")
		assert.Error(t, err)
	})

	t.Run("empty label", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(classifyResponse{})
		}))
		defer srv.Close()

		cli := NewHTTPClassifier(ClassifierConfig{URL: srv.URL, Timeout: time.Second})
		_, err := cli.Classify(context.Background(), "https://x/y")
		assert.Error(t, err)
	})
}

func TestSniffDimensions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 320, 200))))

	t.Run("png payload", func(t *testing.T) {
		w, h, ok := SniffDimensions(buf.Bytes(), "image/png")
		require.True(t, ok)
		assert.Equal(t, 320, w)
		assert.Equal(t, 200, h)
	})

	t.Run("non-image mime is skipped", func(t *testing.T) {
		_, _, ok := SniffDimensions(buf.Bytes(), "text/plain")
		assert.False(t, ok)
	})

	t.Run("garbage payload fails silently", func(t *testing.T) {
		_, _, ok := SniffDimensions([]byte("not an image"), "image/png")
		assert.False(t, ok)
	})
}
