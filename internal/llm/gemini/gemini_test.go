package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekleptocracy/campaign-agent/internal/llm"
)

func TestNewModelRequiresKey(t *testing.T) {
	_, err := NewModel(context.Background(), "")
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": "Acme Corp || Chemicals, Germany"}},
				},
				"finishReason": "STOP",
			}},
		})
	}))
	defer srv.Close()

	m, err := NewModel(context.Background(), "test-key", func(o *Options) { o.BaseURL = srv.URL })
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, m.Name())

	out, err := m.Generate(context.Background(), "list companies")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp || Chemicals, Germany", out)
	assert.True(t, strings.HasSuffix(gotPath, "models/"+DefaultModel+":generateContent"), gotPath)
	assert.Contains(t, gotBody, "list companies")
	assert.Contains(t, gotBody, "0.8")
}

func TestGenerateError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)
	}))
	defer srv.Close()

	m, err := NewModel(context.Background(), "bad-key", func(o *Options) { o.BaseURL = srv.URL })
	require.NoError(t, err)

	_, err = m.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, llm.ErrGeneration)
}
