package alerting

import (
	"fmt"
	"strings"
)

// Operator is the canonical comparison form stored in alert_rules.operator.
// Historical rows and older clients use the symbolic forms; ParseOperator is
// the single mapping between the two surfaces.
type Operator string

const (
	OperatorBelow        Operator = "BELOW"
	OperatorAbove        Operator = "ABOVE"
	OperatorEqual        Operator = "EQUAL"
	OperatorBelowOrEqual Operator = "BELOW_OR_EQUAL"
	OperatorAboveOrEqual Operator = "ABOVE_OR_EQUAL"
)

// UnsupportedOperatorError marks a rule whose operator the evaluator does
// not recognize. Callers must surface it rather than treat the rule as
// "not triggered", otherwise misconfigured rules go dark.
type UnsupportedOperatorError struct {
	Op string
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("unsupported alert operator %q", e.Op)
}

// ParseOperator canonicalizes word and symbolic operator forms.
func ParseOperator(s string) (Operator, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BELOW", "<":
		return OperatorBelow, nil
	case "ABOVE", ">":
		return OperatorAbove, nil
	case "EQUAL", "==", "=":
		return OperatorEqual, nil
	case "BELOW_OR_EQUAL", "<=":
		return OperatorBelowOrEqual, nil
	case "ABOVE_OR_EQUAL", ">=":
		return OperatorAboveOrEqual, nil
	default:
		return "", &UnsupportedOperatorError{Op: s}
	}
}
