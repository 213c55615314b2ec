package ai

import (
	"context"

	"github.com/modfit/modfit/internal/course"
)

// Extractor turns raw document text into a module record. A (nil, nil) result
// means the document contained no recognizable module; callers treat that the
// same way as an error when deciding whether to fall back.
type Extractor interface {
	ExtractOne(ctx context.Context, documentText string) (*course.Module, error)
}

// Synthesizer turns a module batch into a flat question list.
type Synthesizer interface {
	SynthesizeAll(ctx context.Context, modules []*course.Module) ([]course.Question, error)
}
