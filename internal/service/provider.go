package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// ErrProviderTransient marks provider failures worth one retry
// (network/timeout class only).
var ErrProviderTransient = errors.New("transient provider error")

// GenerationRequest is the provider-agnostic generation call
type GenerationRequest struct {
	System string
	Prompt string
	Count  int
}

// RawCandidate is one unevaluated candidate from the provider
type RawCandidate struct {
	Label       string `json:"label"`
	Text        string `json:"text"`
	LayoutStyle string `json:"layout_style,omitempty"`
}

// GenerationProvider abstracts the external generation backend
type GenerationProvider interface {
	Generate(ctx context.Context, req GenerationRequest) ([]RawCandidate, error)
}

// OpenAIProvider calls an OpenAI-format chat-completions endpoint
type OpenAIProvider struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAIProvider creates a provider client
func NewOpenAIProvider(baseURL, apiKey, model string, timeout time.Duration) *OpenAIProvider {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &OpenAIProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Generate asks the model for Count candidates as a JSON array
func (p *OpenAIProvider) Generate(ctx context.Context, req GenerationRequest) ([]RawCandidate, error) {
	reqBody := map[string]interface{}{
		"model":      p.model,
		"max_tokens": 2048,
		"messages": []map[string]string{
			{"role": "system", "content": req.System},
			{"role": "user", "content": req.Prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := p.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: provider returned %d: %s", ErrProviderTransient, resp.StatusCode, truncateStr(string(respBody), 200))
		}
		return nil, fmt.Errorf("provider error (%d): %s", resp.StatusCode, truncateStr(string(respBody), 200))
	}

	// OpenAI format parsing
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parse provider response: %w", err)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("provider response contained no text")
	}

	return parseCandidates(result.Choices[0].Message.Content)
}

// classifyTransportError maps timeout/network failures to the transient
// class so the adapter retries exactly once.
func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrProviderTransient, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%w: %v", ErrProviderTransient, err)
	}
	return fmt.Errorf("provider request failed: %w", err)
}

// parseCandidates unpacks the model's JSON array reply, tolerating a
// markdown code fence around it
func parseCandidates(rawText string) ([]RawCandidate, error) {
	jsonStr := extractJSON(strings.TrimSpace(rawText))

	var candidates []RawCandidate
	if err := json.Unmarshal([]byte(jsonStr), &candidates); err != nil {
		return nil, fmt.Errorf("parse candidates JSON: %w", err)
	}

	out := make([]RawCandidate, 0, len(candidates))
	for _, c := range candidates {
		if strings.TrimSpace(c.Text) == "" {
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("provider returned no usable candidates")
	}
	return out, nil
}

// extractJSON pulls the payload out of a ``` code fence if present
func extractJSON(rawText string) string {
	if idx := strings.Index(rawText, "```"); idx >= 0 {
		start := strings.Index(rawText[idx:], "\n")
		if start >= 0 {
			end := strings.Index(rawText[idx+start+1:], "```")
			if end >= 0 {
				return strings.TrimSpace(rawText[idx+start+1 : idx+start+1+end])
			}
		}
	}
	return rawText
}

// truncateStr truncates a string to maxLen bytes
func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
