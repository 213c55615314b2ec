package course

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError names every field that violated a constraint on one record.
type ValidationError struct {
	Record string
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Record, strings.Join(e.Fields, "; "))
}

// Validate checks the structural constraints on a module: reference, title and
// description must all be non-empty.
func (m *Module) Validate() error {
	if m == nil {
		return &ValidationError{Record: "module", Fields: []string{"module is nil"}}
	}

	var fields []string
	if strings.TrimSpace(m.Reference) == "" {
		fields = append(fields, "reference must not be empty")
	}
	if strings.TrimSpace(m.Title) == "" {
		fields = append(fields, "title must not be empty")
	}
	if strings.TrimSpace(m.Description) == "" {
		fields = append(fields, "description must not be empty")
	}

	if len(fields) > 0 {
		return &ValidationError{Record: "module", Fields: fields}
	}
	return nil
}

// ValidateModules validates every element independently so callers can report
// per-item issues. The returned error joins one entry per offending element,
// each naming its position.
func ValidateModules(modules []*Module) error {
	var errs []error
	for i, module := range modules {
		if err := module.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("module %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// ValidateQuestion checks the structural constraints shared by both variants
// and, for scalar questions, the minValue < maxValue invariant the synthesizer
// must uphold. The scorer deliberately does not re-check it.
func ValidateQuestion(question Question) error {
	if question == nil {
		return &ValidationError{Record: "question", Fields: []string{"question is nil"}}
	}

	var fields []string
	base := question.Base()
	if strings.TrimSpace(base.QuestionText) == "" {
		fields = append(fields, "questionText must not be empty")
	}
	if strings.TrimSpace(base.ModuleReference) == "" {
		fields = append(fields, "moduleReference must not be empty")
	}

	switch q := question.(type) {
	case *BooleanQuestion:
	case *ScalarQuestion:
		if q.MinValue >= q.MaxValue {
			fields = append(fields, fmt.Sprintf("minValue %v must be less than maxValue %v", q.MinValue, q.MaxValue))
		}
	default:
		fields = append(fields, fmt.Sprintf("unsupported question variant %T", question))
	}

	if len(fields) > 0 {
		return &ValidationError{Record: "question", Fields: fields}
	}
	return nil
}
