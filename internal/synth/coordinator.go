package synth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/modfit/modfit/internal/ai"
	"github.com/modfit/modfit/internal/course"
)

// DefaultTimeout bounds the single generative synthesis call for a batch.
const DefaultTimeout = 60 * time.Second

// Coordinator applies the fallback policy at the synthesis boundary. Unlike
// extraction, the fallback here replaces the whole output: a partial
// generative result with mismatched module coverage is worse than a complete
// deterministic set, so an empty or failed generative batch is discarded in
// full.
type Coordinator struct {
	Generative    ai.Synthesizer
	Deterministic ai.Synthesizer
	Logger        *zap.Logger
	Timeout       time.Duration
}

func NewCoordinator(generative, deterministic ai.Synthesizer, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		Generative:    generative,
		Deterministic: deterministic,
		Logger:        logger,
		Timeout:       DefaultTimeout,
	}
}

// SynthesizeAll returns the question set for the module batch. The generative
// strategy is attempted once; a failure or empty result switches to the
// deterministic strategy for the entire batch.
func (c *Coordinator) SynthesizeAll(ctx context.Context, modules []*course.Module) ([]course.Question, error) {
	if modules == nil {
		return nil, errors.New("modules list is required")
	}
	if c.Deterministic == nil {
		return nil, errors.New("deterministic synthesizer is required")
	}

	if questions := c.tryGenerative(ctx, modules); len(questions) > 0 {
		return questions, nil
	}

	return c.Deterministic.SynthesizeAll(ctx, modules)
}

func (c *Coordinator) tryGenerative(ctx context.Context, modules []*course.Module) []course.Question {
	if c.Generative == nil || len(modules) == 0 {
		return nil
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	questions, err := c.Generative.SynthesizeAll(callCtx, modules)
	if err != nil {
		c.Logger.Warn("generative synthesis failed, falling back", zap.Error(err))
		return nil
	}

	if len(questions) == 0 {
		c.Logger.Info("generative synthesis returned no questions, falling back")
		return nil
	}

	return questions
}
