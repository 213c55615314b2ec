package extract

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/modfit/modfit/internal/ai"
	"github.com/modfit/modfit/internal/course"
)

// DefaultTimeout bounds a single generative extraction call. Expiry feeds the
// ordinary fallback path.
const DefaultTimeout = 60 * time.Second

// Document is one raw input to extraction. Name appears in issue strings.
type Document struct {
	Name string
	Text string
}

// Result is the batch output: accepted modules plus one human-readable issue
// per rejected document, in input order.
type Result struct {
	Modules []*course.Module `json:"modules"`
	Issues  []string         `json:"issues"`
}

// Batch drives extraction over a document list. The generative strategy is
// attempted first when present; any failure, clean miss or invalid output
// falls through to the deterministic strategy for that document only.
type Batch struct {
	Generative    ai.Extractor
	Deterministic ai.Extractor
	Logger        *zap.Logger
	Timeout       time.Duration
}

func NewBatch(generative, deterministic ai.Extractor, logger *zap.Logger) *Batch {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Batch{
		Generative:    generative,
		Deterministic: deterministic,
		Logger:        logger,
		Timeout:       DefaultTimeout,
	}
}

// ExtractAll processes every document independently. A document that both
// strategies miss, fails validation, or duplicates an earlier reference is
// excluded and reported; the rest of the batch continues. First-seen wins on
// duplicate references, in input order.
func (b *Batch) ExtractAll(ctx context.Context, documents []Document) *Result {
	result := &Result{
		Modules: make([]*course.Module, 0, len(documents)),
		Issues:  make([]string, 0),
	}

	seen := make(map[string]bool)

	for _, doc := range documents {
		module := b.extractOne(ctx, doc)

		if module == nil {
			result.Issues = append(result.Issues,
				fmt.Sprintf("%s: could not parse (expected Reference/Title/Description markers)", doc.Name))
			continue
		}

		if err := module.Validate(); err != nil {
			result.Issues = append(result.Issues, fmt.Sprintf("%s: %s", doc.Name, err))
			continue
		}

		if seen[module.Reference] {
			result.Issues = append(result.Issues,
				fmt.Sprintf("%s: duplicate reference %s", doc.Name, module.Reference))
			continue
		}

		seen[module.Reference] = true
		result.Modules = append(result.Modules, module)

		b.Logger.Debug("module accepted",
			zap.String("document", doc.Name),
			zap.String("reference", module.Reference),
		)
	}

	return result
}

func (b *Batch) extractOne(ctx context.Context, doc Document) *course.Module {
	if module := b.tryGenerative(ctx, doc); module != nil {
		return module
	}

	if b.Deterministic == nil {
		return nil
	}

	module, err := b.Deterministic.ExtractOne(ctx, doc.Text)
	if err != nil {
		b.Logger.Warn("deterministic extraction failed",
			zap.String("document", doc.Name),
			zap.Error(err),
		)
		return nil
	}
	return module
}

// tryGenerative runs the generative strategy under the batch timeout. All
// failure modes collapse into a nil result so callers never distinguish
// disabled from errored from garbage output.
func (b *Batch) tryGenerative(ctx context.Context, doc Document) *course.Module {
	if b.Generative == nil {
		return nil
	}

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	module, err := b.Generative.ExtractOne(callCtx, doc.Text)
	if err != nil {
		b.Logger.Warn("generative extraction failed, falling back",
			zap.String("document", doc.Name),
			zap.Error(err),
		)
		return nil
	}

	return module
}
