package intake

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError is a recoverable, user-facing input rejection. The wizard
// guarantees no state is mutated when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ValidateAnswer checks a candidate answer against the question's constraints
// and returns the normalized value: numbers become float64, text is trimmed.
// Each violated constraint reports its own message.
func ValidateAnswer(q Question, raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)

	switch q.Type {
	case QuestionTypeNumber:
		value, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, invalid("Please enter a valid number.")
		}
		if q.Min != nil && value < *q.Min {
			return nil, invalid("Value must be at least %s.", formatBound(*q.Min))
		}
		if q.Max != nil && value > *q.Max {
			return nil, invalid("Value must be no more than %s.", formatBound(*q.Max))
		}
		return value, nil

	case QuestionTypeChoice:
		if trimmed == "" {
			return nil, invalid("Please provide an answer.")
		}
		for _, option := range q.Options {
			if trimmed == option {
				return trimmed, nil
			}
		}
		return nil, invalid("Please choose one of the listed options.")

	case QuestionTypeText:
		if trimmed == "" {
			return nil, invalid("Please provide an answer.")
		}
		return trimmed, nil
	}

	return nil, invalid("Unsupported question type.")
}

func formatBound(bound float64) string {
	return strconv.FormatFloat(bound, 'f', -1, 64)
}
