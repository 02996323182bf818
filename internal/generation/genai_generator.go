package generation

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/launchpad-labs/project-starter/internal/logging"
)

// GenAIGenerator sends prompts straight to Google's Gemini API.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

func NewGenAIGenerator(ctx context.Context, apiKey, model string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIGenerator{client: client, model: model}, nil
}

func (g *GenAIGenerator) Generate(ctx context.Context, req Request) (string, error) {
	logger := logging.NewLogger(ctx)
	start := time.Now()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: mimeFor(req.ResponseType),
	})
	recordCall(time.Since(start), err)
	if err != nil {
		logger.LogError("generate", err)
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	return resp.Text(), nil
}

func mimeFor(responseType string) string {
	if responseType == "json" {
		return "application/json"
	}
	return "text/plain"
}
