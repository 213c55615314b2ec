package scoring

import (
	"testing"

	"github.com/modfit/modfit/internal/course"
)

func boolQuestion(id, ref string, weighting float64) *course.BooleanQuestion {
	return &course.BooleanQuestion{
		QuestionBase: course.QuestionBase{
			ID:              id,
			ModuleReference: ref,
			QuestionText:    "q",
			Weighting:       weighting,
		},
	}
}

func scalarQuestion(id, ref string, weighting, min, max float64) *course.ScalarQuestion {
	return &course.ScalarQuestion{
		QuestionBase: course.QuestionBase{
			ID:              id,
			ModuleReference: ref,
			QuestionText:    "q",
			Weighting:       weighting,
		},
		MinValue:  min,
		MaxValue:  max,
		Increment: 1,
	}
}

func module(ref string) *course.Module {
	return &course.Module{Reference: ref, Title: ref, Description: "d"}
}

func TestScoreWeightedExample(t *testing.T) {
	t.Parallel()

	questions := []course.Question{
		boolQuestion("q1", "A", 2),
		scalarQuestion("q2", "A", 1, 0, 10),
	}
	answers := []course.Answer{
		{QuestionID: "q1", Value: true},
		{QuestionID: "q2", Value: 5.0},
	}

	score := Score(module("A"), questions, answers)

	if score.TotalScore != 7 {
		t.Fatalf("expected total score 7, got %v", score.TotalScore)
	}
	if score.MaxPossibleScore != 12 {
		t.Fatalf("expected max possible score 12, got %v", score.MaxPossibleScore)
	}
	if score.Score != 58.3 {
		t.Fatalf("expected score 58.3, got %v", score.Score)
	}
	if score.AnsweredQuestions != 2 || score.TotalQuestions != 2 {
		t.Fatalf("unexpected counters: %+v", score)
	}
}

func TestScoreNoAnsweredQuestions(t *testing.T) {
	t.Parallel()

	questions := []course.Question{boolQuestion("q1", "A", 1)}

	score := Score(module("A"), questions, []course.Answer{})

	if score.Score != 0 {
		t.Fatalf("expected score 0, got %v", score.Score)
	}
	if score.AnsweredQuestions != 0 {
		t.Fatalf("expected 0 answered questions, got %d", score.AnsweredQuestions)
	}
	if score.TotalQuestions != 1 {
		t.Fatalf("expected 1 total question, got %d", score.TotalQuestions)
	}
}

func TestScoreNoQuestionsAtAll(t *testing.T) {
	t.Parallel()

	score := Score(module("A"), []course.Question{}, []course.Answer{})

	if score.Score != 0 || score.TotalQuestions != 0 {
		t.Fatalf("expected degenerate zero score, got %+v", score)
	}
}

func TestScoreAllBooleansTrue(t *testing.T) {
	t.Parallel()

	questions := []course.Question{
		boolQuestion("q1", "A", 1),
		boolQuestion("q2", "A", 1),
		boolQuestion("q3", "A", 1),
	}
	answers := []course.Answer{
		{QuestionID: "q1", Value: true},
		{QuestionID: "q2", Value: true},
		{QuestionID: "q3", Value: true},
	}

	if score := Score(module("A"), questions, answers); score.Score != 100 {
		t.Fatalf("expected score 100, got %v", score.Score)
	}
}

func TestScoreAllBooleansFalseKeepsDenominator(t *testing.T) {
	t.Parallel()

	questions := []course.Question{
		boolQuestion("q1", "A", 1),
		boolQuestion("q2", "A", 1),
	}
	answers := []course.Answer{
		{QuestionID: "q1", Value: false},
		{QuestionID: "q2", Value: false},
	}

	score := Score(module("A"), questions, answers)

	if score.Score != 0 {
		t.Fatalf("expected score 0, got %v", score.Score)
	}
	if score.MaxPossibleScore != 2 {
		t.Fatalf("expected denominator 2, got %v", score.MaxPossibleScore)
	}
	if score.AnsweredQuestions != 2 || score.TotalQuestions != 2 {
		t.Fatalf("unexpected counters: %+v", score)
	}
}

func TestScoreWeightingScalesContribution(t *testing.T) {
	t.Parallel()

	answers := []course.Answer{
		{QuestionID: "good", Value: true},
		{QuestionID: "bad", Value: false},
	}

	base := Score(module("A"), []course.Question{
		boolQuestion("good", "A", 1),
		boolQuestion("bad", "A", 1),
	}, answers)

	doubled := Score(module("A"), []course.Question{
		boolQuestion("good", "A", 2),
		boolQuestion("bad", "A", 1),
	}, answers)

	if doubled.Score <= base.Score {
		t.Fatalf("expected doubling a correct answer's weighting to raise the score: %v -> %v", base.Score, doubled.Score)
	}

	halvedWrong := Score(module("A"), []course.Question{
		boolQuestion("good", "A", 1),
		boolQuestion("bad", "A", 2),
	}, answers)

	if halvedWrong.Score >= base.Score {
		t.Fatalf("expected raising a wrong answer's weighting to lower the score: %v -> %v", base.Score, halvedWrong.Score)
	}
}

func TestScoreZeroAndNegativeWeightingsHonoredLiterally(t *testing.T) {
	t.Parallel()

	questions := []course.Question{
		boolQuestion("q1", "A", 0),
		boolQuestion("q2", "A", 1),
	}
	answers := []course.Answer{
		{QuestionID: "q1", Value: false},
		{QuestionID: "q2", Value: true},
	}

	score := Score(module("A"), questions, answers)

	// Zero weighting contributes nothing to either side.
	if score.MaxPossibleScore != 1 || score.Score != 100 {
		t.Fatalf("expected zero-weighted question to vanish from the ratio, got %+v", score)
	}
}

func TestScoreOutOfRangeScalarNotClamped(t *testing.T) {
	t.Parallel()

	questions := []course.Question{scalarQuestion("q1", "A", 1, 1, 5)}
	answers := []course.Answer{{QuestionID: "q1", Value: 10.0}}

	score := Score(module("A"), questions, answers)

	if score.TotalScore != 10 || score.MaxPossibleScore != 5 {
		t.Fatalf("expected raw out-of-range contribution, got %+v", score)
	}
	if score.Score != 200 {
		t.Fatalf("expected score above 100 for out-of-range answer, got %v", score.Score)
	}
}

func TestScoreUnknownAnswersIgnored(t *testing.T) {
	t.Parallel()

	questions := []course.Question{boolQuestion("q1", "A", 1)}
	answers := []course.Answer{
		{QuestionID: "q1", Value: true},
		{QuestionID: "ghost", Value: true},
	}

	score := Score(module("A"), questions, answers)

	if score.AnsweredQuestions != 1 || score.Score != 100 {
		t.Fatalf("expected unknown answer to be ignored, got %+v", score)
	}
}

func TestScoreDuplicateAnswersLastWriteWins(t *testing.T) {
	t.Parallel()

	questions := []course.Question{boolQuestion("q1", "A", 1)}
	answers := []course.Answer{
		{QuestionID: "q1", Value: true},
		{QuestionID: "q1", Value: false},
	}

	score := Score(module("A"), questions, answers)

	if score.Score != 0 {
		t.Fatalf("expected last answer to win, got %+v", score)
	}
	if score.AnsweredQuestions != 1 {
		t.Fatalf("expected 1 answered question, got %d", score.AnsweredQuestions)
	}
}

func TestScoreOnlyCountsOwnModuleQuestions(t *testing.T) {
	t.Parallel()

	questions := []course.Question{
		boolQuestion("q1", "A", 1),
		boolQuestion("q2", "B", 1),
	}
	answers := []course.Answer{
		{QuestionID: "q1", Value: true},
		{QuestionID: "q2", Value: false},
	}

	score := Score(module("A"), questions, answers)

	if score.TotalQuestions != 1 || score.Score != 100 {
		t.Fatalf("expected only module A questions to count, got %+v", score)
	}
}

func TestScoreAllRankingDescendingAndStable(t *testing.T) {
	t.Parallel()

	modules := []*course.Module{module("A"), module("B"), module("C")}
	questions := []course.Question{
		boolQuestion("qa", "A", 1),
		boolQuestion("qb", "B", 1),
		boolQuestion("qc", "C", 1),
	}
	answers := []course.Answer{
		{QuestionID: "qa", Value: false},
		{QuestionID: "qb", Value: true},
		{QuestionID: "qc", Value: false},
	}

	result, err := ScoreAll(modules, questions, answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"B", "A", "C"}
	for i, ref := range expected {
		if result.RankedModules[i] != ref {
			t.Fatalf("expected ranking %v, got %v", expected, result.RankedModules)
		}
	}

	// Ties (A and C both 0) preserve the input order.
	if result.RankedModules[1] != "A" || result.RankedModules[2] != "C" {
		t.Fatalf("expected stable tie ordering, got %v", result.RankedModules)
	}

	// Scores stay in input order.
	for i, ref := range []string{"A", "B", "C"} {
		if result.Scores[i].ModuleReference != ref {
			t.Fatalf("expected scores in input order, got %v at %d", result.Scores[i].ModuleReference, i)
		}
	}
}

func TestScoreAllNilListsRejected(t *testing.T) {
	t.Parallel()

	modules := []*course.Module{module("A")}

	if _, err := ScoreAll(nil, []course.Question{}, []course.Answer{}); err == nil {
		t.Fatal("expected error for nil modules")
	}
	if _, err := ScoreAll(modules, nil, []course.Answer{}); err == nil {
		t.Fatal("expected error for nil questions")
	}
	if _, err := ScoreAll(modules, []course.Question{}, nil); err == nil {
		t.Fatal("expected error for nil answers")
	}
}
