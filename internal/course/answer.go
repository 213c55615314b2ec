package course

// Answer carries the user-supplied value for one question. Value is either a
// bool (boolean questions) or a number (scalar questions).
type Answer struct {
	QuestionID string `json:"questionId"`
	Value      any    `json:"value"`
}

// AnswerMap builds a questionId lookup from the answer list. Duplicate ids are
// resolved last-write-wins.
func AnswerMap(answers []Answer) map[string]any {
	lookup := make(map[string]any, len(answers))
	for _, answer := range answers {
		lookup[answer.QuestionID] = answer.Value
	}
	return lookup
}

// BoolValue reports whether the raw answer value is an affirmative boolean.
func BoolValue(value any) bool {
	affirmed, ok := value.(bool)
	return ok && affirmed
}

// NumberValue converts the raw answer value to a float64. Non-numeric values
// convert to 0; booleans count as 1 and 0 to mirror loosely typed callers.
func NumberValue(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return 0
	}
}
