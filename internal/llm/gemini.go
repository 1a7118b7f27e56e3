package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini implements Provider with the Google Generative AI SDK.
type Gemini struct {
	client *genai.Client
}

func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("api key cannot be empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Gemini{client: client}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Close() error {
	return g.client.Close()
}

func (g *Gemini) Complete(ctx context.Context, req Request) (*Completion, error) {
	// GenerativeModel carries per-call settings, so each call gets its own.
	model := g.client.GenerativeModel(req.Model)
	model.SetTemperature(float32(req.Temperature))
	model.SetMaxOutputTokens(int32(req.MaxTokens))

	system, parts := splitConversation(req.Messages)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	if len(parts) == 0 {
		return nil, errors.New("gemini: conversation has no user content")
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	completion := &Completion{Text: firstCandidateText(resp)}
	if resp.UsageMetadata != nil {
		completion.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return completion, nil
}

// splitConversation joins system turns into one instruction and returns the
// remaining turns as text parts.
func splitConversation(messages []Message) (string, []genai.Part) {
	var system []string
	var parts []genai.Part
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		parts = append(parts, genai.Text(m.Content))
	}
	return strings.Join(system, "\n\n"), parts
}

func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	var text strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String()
}
