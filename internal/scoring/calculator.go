package scoring

import (
	"errors"
	"math"
	"sort"

	"github.com/modfit/modfit/internal/course"
)

// ModuleScore is the weighted-percentage fit result for one module. It is
// recomputed from scratch on every call and never persisted.
type ModuleScore struct {
	ModuleReference   string  `json:"moduleReference"`
	ModuleTitle       string  `json:"moduleTitle"`
	Score             float64 `json:"score"`
	TotalScore        float64 `json:"totalScore"`
	MaxPossibleScore  float64 `json:"maxPossibleScore"`
	AnsweredQuestions int     `json:"answeredQuestions"`
	TotalQuestions    int     `json:"totalQuestions"`
}

// Result is the batch scoring output. Scores stays in module input order;
// RankedModules holds references sorted by score descending.
type Result struct {
	Scores        []*ModuleScore `json:"scores"`
	RankedModules []string       `json:"rankedModules"`
}

// Score computes the weighted fit for one module. Unanswered questions
// contribute to neither side of the ratio. A false boolean answer still
// contributes its full weighting to the denominator. Scalar answers are used
// as given, without clamping to the question's range.
func Score(module *course.Module, questions []course.Question, answers []course.Answer) *ModuleScore {
	lookup := course.AnswerMap(answers)
	moduleQuestions := course.QuestionsForModule(questions, module.Reference)

	var totalScore, maxPossibleScore float64
	answered := 0

	for _, question := range moduleQuestions {
		value, ok := lookup[question.Base().ID]
		if !ok {
			continue
		}

		answered++
		weight := question.Base().Weighting

		switch q := question.(type) {
		case *course.BooleanQuestion:
			if course.BoolValue(value) {
				totalScore += weight
			}
			maxPossibleScore += weight
		case *course.ScalarQuestion:
			totalScore += course.NumberValue(value) * weight
			maxPossibleScore += q.MaxValue * weight
		}
	}

	percentage := 0.0
	if maxPossibleScore > 0 {
		percentage = totalScore / maxPossibleScore * 100
	}

	return &ModuleScore{
		ModuleReference:   module.Reference,
		ModuleTitle:       module.Title,
		Score:             math.Round(percentage*10) / 10,
		TotalScore:        totalScore,
		MaxPossibleScore:  maxPossibleScore,
		AnsweredQuestions: answered,
		TotalQuestions:    len(moduleQuestions),
	}
}

// ScoreAll scores every module and ranks them by score descending. The sort is
// stable: modules with identical scores keep their relative input order. Nil
// question or answer lists indicate a caller contract violation and fail hard;
// empty lists are ordinary inputs.
func ScoreAll(modules []*course.Module, questions []course.Question, answers []course.Answer) (*Result, error) {
	if modules == nil {
		return nil, errors.New("modules list is required")
	}
	if questions == nil {
		return nil, errors.New("questions list is required")
	}
	if answers == nil {
		return nil, errors.New("answers list is required")
	}

	scores := make([]*ModuleScore, 0, len(modules))
	for _, module := range modules {
		scores = append(scores, Score(module, questions, answers))
	}

	ranked := make([]*ModuleScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	rankedModules := make([]string, 0, len(ranked))
	for _, score := range ranked {
		rankedModules = append(rankedModules, score.ModuleReference)
	}

	return &Result{Scores: scores, RankedModules: rankedModules}, nil
}
