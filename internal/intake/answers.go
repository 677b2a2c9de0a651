package intake

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Answers maps question ids to scalar answer values. Values are either
// strings or float64, matching the JSON representation they round-trip
// through for session state and persistence. Answers for questions that are
// no longer reachable under the current flow are kept but ignored by
// flow-dependent views.
type Answers map[string]any

// Clone returns a shallow copy; values are scalars so shallow is enough.
func (a Answers) Clone() Answers {
	clone := make(Answers, len(a))
	for k, v := range a {
		clone[k] = v
	}
	return clone
}

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatValue renders an answer for display according to the question's
// value format, e.g. "$250,000" or "$1,200,000 / year".
func FormatValue(q Question, value any) string {
	switch q.Format {
	case FormatCurrency:
		if n, ok := asNumber(value); ok {
			return formatCurrency(n)
		}
	case FormatCurrencyPerYear:
		if n, ok := asNumber(value); ok {
			return formatCurrency(n) + " / year"
		}
	}
	return formatScalar(value)
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		return n, err == nil
	}
	return 0, false
}

func formatCurrency(n float64) string {
	if n == math.Trunc(n) {
		return currencyPrinter.Sprintf("$%d", int64(n))
	}
	return currencyPrinter.Sprintf("$%.2f", n)
}

func formatScalar(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}
