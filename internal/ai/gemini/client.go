package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/modfit/modfit/internal/utils"
)

const (
	defaultModel = "gemini-2.5-flash"

	// Defaults mirror what works well for structured extraction tasks.
	defaultTemperature     = float32(0.7)
	defaultMaxOutputTokens = int32(4096)
	defaultMaxLogLength    = 200
)

// Generator wraps the Google GenAI client to provide simple prompt-based
// interactions returning concatenated text output.
type Generator struct {
	client          *genai.Client
	modelName       string
	temperature     float32
	maxOutputTokens int32
	logger          *zap.Logger
	maxLogLen       int
}

// GeneratorOptions tunes the generation request sent with every prompt.
type GeneratorOptions struct {
	Model           string
	Temperature     *float64
	MaxOutputTokens int32
	MaxLogLength    int
}

// NewGenerator creates a Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey string, opts GeneratorOptions, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	temperature := defaultTemperature
	if opts.Temperature != nil {
		temperature = float32(*opts.Temperature)
	}

	maxTokens := opts.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxOutputTokens
	}

	maxLogLen := opts.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		client:          client,
		modelName:       model,
		temperature:     temperature,
		maxOutputTokens: maxTokens,
		logger:          logger,
		maxLogLen:       maxLogLen,
	}, nil
}

// GenerateContent sends the prompt to Gemini under the given system
// instruction and returns the concatenated textual response.
func (g *Generator) GenerateContent(ctx context.Context, systemPrompt, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.temperature),
		MaxOutputTokens: g.maxOutputTokens,
	}

	if systemPrompt = strings.TrimSpace(systemPrompt); systemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}

	g.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, g.maxLogLen)),
	)

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	g.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", utils.TruncateForLog(output, g.maxLogLen)),
	)

	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
