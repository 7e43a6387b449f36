package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseCandidates_PlainJSON(t *testing.T) {
	candidates, err := parseCandidates(`[{"label":"A","text":"first"},{"label":"B","text":"second"}]`)

	assert.NoError(t, err)
	assert.Len(t, candidates, 2)
	assert.Equal(t, "A", candidates[0].Label)
	assert.Equal(t, "second", candidates[1].Text)
}

func TestParseCandidates_CodeFenced(t *testing.T) {
	raw := "Here you go:\n```json\n[{\"label\":\"A\",\"text\":\"fenced\"}]\n```\nenjoy"

	candidates, err := parseCandidates(raw)

	assert.NoError(t, err)
	assert.Len(t, candidates, 1)
	assert.Equal(t, "fenced", candidates[0].Text)
}

func TestParseCandidates_DropsEmptyText(t *testing.T) {
	candidates, err := parseCandidates(`[{"label":"A","text":"  "},{"label":"B","text":"kept"}]`)

	assert.NoError(t, err)
	assert.Len(t, candidates, 1)
	assert.Equal(t, "kept", candidates[0].Text)
}

func TestParseCandidates_AllEmptyIsError(t *testing.T) {
	_, err := parseCandidates(`[{"label":"A","text":""}]`)

	assert.Error(t, err)
}

func TestParseCandidates_NotJSON(t *testing.T) {
	_, err := parseCandidates("sorry, I cannot do that")

	assert.Error(t, err)
}

func TestOpenAIProvider_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"[{\"label\":\"A\",\"text\":\"generated copy\"}]"}}]}`))
	}))
	defer server.Close()

	provider := NewOpenAIProvider(server.URL, "test-key", "test-model", 5*time.Second)

	candidates, err := provider.Generate(context.Background(), GenerationRequest{
		System: "system",
		Prompt: "prompt",
		Count:  1,
	})

	assert.NoError(t, err)
	assert.Len(t, candidates, 1)
	assert.Equal(t, "generated copy", candidates[0].Text)
}

func TestOpenAIProvider_ServerErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	provider := NewOpenAIProvider(server.URL, "", "test-model", 5*time.Second)

	_, err := provider.Generate(context.Background(), GenerationRequest{Prompt: "p"})

	assert.ErrorIs(t, err, ErrProviderTransient)
}

func TestOpenAIProvider_RateLimitIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewOpenAIProvider(server.URL, "", "test-model", 5*time.Second)

	_, err := provider.Generate(context.Background(), GenerationRequest{Prompt: "p"})

	assert.ErrorIs(t, err, ErrProviderTransient)
}

func TestOpenAIProvider_ClientErrorIsPermanent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	provider := NewOpenAIProvider(server.URL, "bad-key", "test-model", 5*time.Second)

	_, err := provider.Generate(context.Background(), GenerationRequest{Prompt: "p"})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrProviderTransient)
}
