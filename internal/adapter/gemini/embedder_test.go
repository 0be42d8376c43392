package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"docindex/internal/adapter/gemini"
)

func newTestServer(t *testing.T, payload map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
}

func TestEmbedder_Embed(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		ts := newTestServer(t, map[string]interface{}{
			"embedding": map[string]interface{}{
				"values": []float32{0.1, 0.2, 0.3},
			},
		})
		defer ts.Close()

		embedder, err := gemini.NewEmbedder(ctx, "test-key", "", option.WithEndpoint(ts.URL))
		require.NoError(t, err)
		defer embedder.Close()

		vec, err := embedder.Embed(ctx, "hello world")
		assert.NoError(t, err)
		if assert.Len(t, vec, 3) {
			assert.Equal(t, float32(0.1), vec[0])
		}
	})

	t.Run("Missing Embedding Is Malformed", func(t *testing.T) {
		ts := newTestServer(t, map[string]interface{}{})
		defer ts.Close()

		embedder, err := gemini.NewEmbedder(ctx, "test-key", "", option.WithEndpoint(ts.URL))
		require.NoError(t, err)
		defer embedder.Close()

		vec, err := embedder.Embed(ctx, "hello")
		assert.ErrorIs(t, err, gemini.ErrMalformedResponse)
		assert.Nil(t, vec)
	})

	t.Run("Empty Values Is Malformed", func(t *testing.T) {
		ts := newTestServer(t, map[string]interface{}{
			"embedding": map[string]interface{}{
				"values": []float32{},
			},
		})
		defer ts.Close()

		embedder, err := gemini.NewEmbedder(ctx, "test-key", "", option.WithEndpoint(ts.URL))
		require.NoError(t, err)
		defer embedder.Close()

		_, err = embedder.Embed(ctx, "hello")
		assert.ErrorIs(t, err, gemini.ErrMalformedResponse)
	})
}
