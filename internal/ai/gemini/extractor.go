package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	_ "embed"

	"go.uber.org/zap"

	"github.com/modfit/modfit/internal/course"
)

//go:embed extract_prompt.md
var extractPromptTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, systemPrompt, prompt string) (string, error)
}

// Extractor asks the model for a module record embedded in free-form text.
type Extractor struct {
	generator contentGenerator
	logger    *zap.Logger
}

func NewExtractor(generator contentGenerator, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{generator: generator, logger: logger}
}

// ExtractOne prompts the model with the document text and decodes the JSON
// object it returns. A literal null answer is a clean miss, returned as
// (nil, nil). Anything that is not valid JSON or fails validation is an error.
func (e *Extractor) ExtractOne(ctx context.Context, documentText string) (*course.Module, error) {
	prompt := strings.ReplaceAll(extractPromptTemplate, "{{DOCUMENT}}", documentText)

	raw, err := e.generator.GenerateContent(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	cleaned := extractJSON(raw)
	if isNullResponse(cleaned) {
		e.logger.Debug("model reported no module in document")
		return nil, nil
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse module response: %w", err)
	}

	module, err := course.DecodeModule(data)
	if err != nil {
		return nil, fmt.Errorf("module response failed validation: %w", err)
	}

	return module, nil
}
