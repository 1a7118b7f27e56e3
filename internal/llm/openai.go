package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultCerebrasURL = "https://api.cerebras.ai/v1"

	maxErrorBody = 512
)

// OpenAICompatible implements Provider against any OpenAI-style
// /chat/completions endpoint. Cerebras is the default deployment.
type OpenAICompatible struct {
	name    string
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewCerebras(apiKey, baseURL string, timeout time.Duration) (*OpenAICompatible, error) {
	if baseURL == "" {
		baseURL = DefaultCerebrasURL
	}
	return NewOpenAICompatible("cerebras", apiKey, baseURL, &http.Client{Timeout: timeout})
}

func NewOpenAICompatible(name, apiKey, baseURL string, client *http.Client) (*OpenAICompatible, error) {
	if apiKey == "" {
		return nil, errors.New("api key cannot be empty")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenAICompatible{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}, nil
}

func (c *OpenAICompatible) Name() string { return c.name }

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

func (c *OpenAICompatible) Complete(ctx context.Context, req Request) (*Completion, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: marshaling request: %w", c.name, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: creating request: %w", c.name, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%s: unexpected status %d: %s", c.name, resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	var out chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: decoding response: %w", c.name, err)
	}

	completion := &Completion{}
	if len(out.Choices) > 0 {
		completion.Text = out.Choices[0].Message.Content
	}
	if out.Usage != nil {
		completion.TotalTokens = out.Usage.TotalTokens
	}
	return completion, nil
}
