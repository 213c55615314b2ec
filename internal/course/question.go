package course

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

type QuestionType string

const (
	QuestionBoolean QuestionType = "boolean"
	QuestionScalar  QuestionType = "scalar"

	// DefaultWeighting applies when a question arrives without a weighting.
	// Explicit zero or negative weightings are kept as-is.
	DefaultWeighting = 1.0

	DefaultYesLabel = "Yes"
	DefaultNoLabel  = "No"
)

// Question is the tagged union over the boolean and scalar variants. Consumers
// are expected to type-switch on the concrete type rather than inspect Type().
type Question interface {
	Base() *QuestionBase
	Type() QuestionType
}

// QuestionBase holds the fields shared by both variants. ModuleReference is a
// foreign key into a Module batch but is not required to resolve.
type QuestionBase struct {
	ID              string  `json:"id" mapstructure:"id"`
	ModuleReference string  `json:"moduleReference" mapstructure:"moduleReference"`
	QuestionText    string  `json:"questionText" mapstructure:"questionText"`
	Weighting       float64 `json:"weighting" mapstructure:"weighting"`
}

type BooleanQuestion struct {
	QuestionBase `mapstructure:",squash"`

	YesLabel string `json:"yesLabel,omitempty" mapstructure:"yesLabel"`
	NoLabel  string `json:"noLabel,omitempty" mapstructure:"noLabel"`
}

func (q *BooleanQuestion) Base() *QuestionBase { return &q.QuestionBase }

func (q *BooleanQuestion) Type() QuestionType { return QuestionBoolean }

// Labels returns the display labels, falling back to Yes/No.
func (q *BooleanQuestion) Labels() (string, string) {
	yes, no := q.YesLabel, q.NoLabel
	if strings.TrimSpace(yes) == "" {
		yes = DefaultYesLabel
	}
	if strings.TrimSpace(no) == "" {
		no = DefaultNoLabel
	}
	return yes, no
}

func (q *BooleanQuestion) MarshalJSON() ([]byte, error) {
	type alias BooleanQuestion
	return json.Marshal(struct {
		Type QuestionType `json:"type"`
		*alias
	}{QuestionBoolean, (*alias)(q)})
}

type ScalarQuestion struct {
	QuestionBase `mapstructure:",squash"`

	MinValue  float64 `json:"minValue" mapstructure:"minValue"`
	MaxValue  float64 `json:"maxValue" mapstructure:"maxValue"`
	Increment float64 `json:"increment" mapstructure:"increment"`
	MinLabel  string  `json:"minLabel,omitempty" mapstructure:"minLabel"`
	MaxLabel  string  `json:"maxLabel,omitempty" mapstructure:"maxLabel"`
}

func (q *ScalarQuestion) Base() *QuestionBase { return &q.QuestionBase }

func (q *ScalarQuestion) Type() QuestionType { return QuestionScalar }

// Labels returns the endpoint labels, falling back to the numeric bounds.
func (q *ScalarQuestion) Labels() (string, string) {
	low, high := q.MinLabel, q.MaxLabel
	if strings.TrimSpace(low) == "" {
		low = strconv.FormatFloat(q.MinValue, 'f', -1, 64)
	}
	if strings.TrimSpace(high) == "" {
		high = strconv.FormatFloat(q.MaxValue, 'f', -1, 64)
	}
	return low, high
}

func (q *ScalarQuestion) MarshalJSON() ([]byte, error) {
	type alias ScalarQuestion
	return json.Marshal(struct {
		Type QuestionType `json:"type"`
		*alias
	}{QuestionScalar, (*alias)(q)})
}

// DecodeQuestion narrows an untyped object into the matching question variant.
// A missing weighting defaults to 1; an explicit value is honored literally.
// The result is validated before being returned.
func DecodeQuestion(raw map[string]any) (Question, error) {
	typeValue, _ := raw["type"].(string)

	var question Question
	switch QuestionType(strings.ToLower(strings.TrimSpace(typeValue))) {
	case QuestionBoolean:
		question = &BooleanQuestion{}
	case QuestionScalar:
		question = &ScalarQuestion{}
	default:
		return nil, fmt.Errorf("unknown question type: %q", typeValue)
	}

	cfg := &mapstructure.DecoderConfig{
		Result:           question,
		WeaklyTypedInput: true,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, fmt.Errorf("building question decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding %s question: %w", typeValue, err)
	}

	base := question.Base()
	base.ID = strings.TrimSpace(base.ID)
	base.ModuleReference = strings.TrimSpace(base.ModuleReference)
	base.QuestionText = strings.TrimSpace(base.QuestionText)

	if weighting, ok := raw["weighting"]; !ok || weighting == nil {
		base.Weighting = DefaultWeighting
	}

	if err := ValidateQuestion(question); err != nil {
		return nil, err
	}

	return question, nil
}

// QuestionsForModule returns the questions attributed to the given module
// reference, preserving their order.
func QuestionsForModule(questions []Question, reference string) []Question {
	matched := make([]Question, 0)
	for _, question := range questions {
		if question.Base().ModuleReference == reference {
			matched = append(matched, question)
		}
	}
	return matched
}
