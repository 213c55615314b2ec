package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	_ "embed"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/modfit/modfit/internal/course"
)

//go:embed synthesize_prompt.md
var synthesizePromptTemplate string

// Synthesizer asks the model for a question set covering a module batch.
type Synthesizer struct {
	generator contentGenerator
	logger    *zap.Logger
}

func NewSynthesizer(generator contentGenerator, logger *zap.Logger) *Synthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synthesizer{generator: generator, logger: logger}
}

// SynthesizeAll prompts the model with the serialized module batch and decodes
// the JSON array it returns. Elements missing an id get a generated one and a
// missing weighting defaults to 1. Any element failing validation fails the
// whole batch; callers treat that as no usable output.
func (s *Synthesizer) SynthesizeAll(ctx context.Context, modules []*course.Module) ([]course.Question, error) {
	modulesJSON, err := json.MarshalIndent(modules, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal modules payload: %w", err)
	}

	prompt := strings.ReplaceAll(synthesizePromptTemplate, "{{MODULES_JSON}}", string(modulesJSON))

	raw, err := s.generator.GenerateContent(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var items []map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &items); err != nil {
		return nil, fmt.Errorf("parse questions response: %w", err)
	}

	questions := make([]course.Question, 0, len(items))
	for i, item := range items {
		question, err := course.DecodeQuestion(item)
		if err != nil {
			return nil, fmt.Errorf("question %d failed validation: %w", i, err)
		}

		base := question.Base()
		if base.ID == "" {
			base.ID = uuid.NewString()
		}

		questions = append(questions, question)
	}

	s.logger.Debug("model produced question set",
		zap.Int("modules", len(modules)),
		zap.Int("questions", len(questions)),
	)

	return questions, nil
}
