package synth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/modfit/modfit/internal/course"
)

// Deterministic emits a fixed questionnaire: one prerequisite check and one
// interest rating per module. It is total; it never fails and always returns
// exactly two questions per module.
type Deterministic struct{}

func NewDeterministic() *Deterministic {
	return &Deterministic{}
}

func (d *Deterministic) SynthesizeAll(_ context.Context, modules []*course.Module) ([]course.Question, error) {
	questions := make([]course.Question, 0, 2*len(modules))

	for _, module := range modules {
		questions = append(questions,
			&course.BooleanQuestion{
				QuestionBase: course.QuestionBase{
					ID:              uuid.NewString(),
					ModuleReference: module.Reference,
					QuestionText:    fmt.Sprintf("Do you meet the prerequisites for %s?", module.Title),
					Weighting:       course.DefaultWeighting,
				},
				YesLabel: course.DefaultYesLabel,
				NoLabel:  course.DefaultNoLabel,
			},
			&course.ScalarQuestion{
				QuestionBase: course.QuestionBase{
					ID:              uuid.NewString(),
					ModuleReference: module.Reference,
					QuestionText:    fmt.Sprintf("How interested are you in %s?", module.Title),
					Weighting:       course.DefaultWeighting,
				},
				MinValue:  1,
				MaxValue:  5,
				Increment: 1,
				MinLabel:  "Low",
				MaxLabel:  "High",
			},
		)
	}

	return questions, nil
}
