package synth

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/modfit/modfit/internal/course"
)

type stubSynthesizer struct {
	questions []course.Question
	err       error
	calls     int
}

func (s *stubSynthesizer) SynthesizeAll(_ context.Context, _ []*course.Module) ([]course.Question, error) {
	s.calls++
	return s.questions, s.err
}

func sampleModules() []*course.Module {
	return []*course.Module{{Reference: "CS101", Title: "Intro", Description: "Basics."}}
}

func sampleQuestion() course.Question {
	return &course.BooleanQuestion{
		QuestionBase: course.QuestionBase{
			ID:              "q1",
			ModuleReference: "CS101",
			QuestionText:    "Generated?",
			Weighting:       1,
		},
	}
}

func TestCoordinatorPrefersGenerative(t *testing.T) {
	t.Parallel()

	generative := &stubSynthesizer{questions: []course.Question{sampleQuestion()}}
	deterministic := &stubSynthesizer{questions: []course.Question{sampleQuestion(), sampleQuestion()}}

	coordinator := NewCoordinator(generative, deterministic, zap.NewNop())

	questions, err := coordinator.SynthesizeAll(context.Background(), sampleModules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(questions) != 1 {
		t.Fatalf("expected the generative batch, got %d questions", len(questions))
	}
	if deterministic.calls != 0 {
		t.Fatal("expected deterministic strategy to stay untouched")
	}
}

func TestCoordinatorFallsBackWholeBatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		generative *stubSynthesizer
	}{
		{
			name:       "generative error",
			generative: &stubSynthesizer{err: errors.New("transport failure")},
		},
		{
			name:       "generative empty result",
			generative: &stubSynthesizer{questions: []course.Question{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			coordinator := NewCoordinator(tt.generative, NewDeterministic(), zap.NewNop())

			questions, err := coordinator.SynthesizeAll(context.Background(), sampleModules())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			// The deterministic set replaces the output in full.
			if len(questions) != 2 {
				t.Fatalf("expected 2 deterministic questions, got %d", len(questions))
			}
		})
	}
}

func TestCoordinatorWithoutGenerativeStrategy(t *testing.T) {
	t.Parallel()

	coordinator := NewCoordinator(nil, NewDeterministic(), zap.NewNop())

	questions, err := coordinator.SynthesizeAll(context.Background(), sampleModules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected deterministic questions, got %d", len(questions))
	}
}

func TestCoordinatorNilModulesRejected(t *testing.T) {
	t.Parallel()

	coordinator := NewCoordinator(nil, NewDeterministic(), zap.NewNop())

	if _, err := coordinator.SynthesizeAll(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil modules list")
	}
}
