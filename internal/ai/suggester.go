// Package ai wraps the Gemini API for item description drafts. The feature
// is optional: without an API key the endpoint reports itself unavailable.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Suggester interacts with Google Gemini API using the official SDK
type Suggester struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewSuggester creates a new Gemini-backed description suggester
func NewSuggester(ctx context.Context, apiKey, modelName string) (*Suggester, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	return &Suggester{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Close closes the client connection
func (s *Suggester) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// SuggestDescription drafts a short catalog description for an item from
// its name, category and material.
func (s *Suggester) SuggestDescription(ctx context.Context, name, category, material string) (string, error) {
	prompt := fmt.Sprintf(
		"Write a short, factual catalog description (2 sentences, no marketing fluff) "+
			"for a school uniform shop item.\nName: %s\nCategory: %s\nMaterial: %s",
		name, category, material)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var fullText string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			fullText += string(txt)
		}
	}

	return strings.TrimSpace(fullText), nil
}
