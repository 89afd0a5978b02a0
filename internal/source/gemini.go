package source

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// contentGenerator is the part of *genai.Models that Gemini uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiConfig configures a Gemini source.
type GeminiConfig struct {
	// APIKey is passed to the SDK. When empty the SDK reads GEMINI_API_KEY or
	// GOOGLE_API_KEY from the environment.
	APIKey string
	Model  string
	// JSONMode asks the API for an application/json response.
	JSONMode bool
}

// Gemini generates text with Google's Gemini API.
type Gemini struct {
	models   contentGenerator
	model    string
	jsonMode bool
}

// NewGemini creates a Gemini source.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newGemini(client.Models, cfg), nil
}

func newGemini(models contentGenerator, cfg GeminiConfig) *Gemini {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{
		models:   models,
		model:    model,
		jsonMode: cfg.JSONMode,
	}
}

// Model returns the model name requests are sent to.
func (g *Gemini) Model() string {
	return g.model
}

// Generate sends request as a single user turn and returns the response text.
// An empty string is returned as-is; callers decide whether that is an error.
func (g *Gemini) Generate(ctx context.Context, request string) (string, error) {
	var config *genai.GenerateContentConfig
	if g.jsonMode {
		config = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(request), config)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	if resp == nil {
		return "", nil
	}
	if len(resp.Candidates) == 0 && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("GenAI blocked the request: %s", resp.PromptFeedback.BlockReason)
	}
	return resp.Text(), nil
}
