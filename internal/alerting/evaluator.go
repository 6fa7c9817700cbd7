package alerting

// Evaluate reports whether a single metric observation crosses a rule's
// threshold. Pure function; callers are expected to have already matched
// the rule's metric name and checked is_active.
//
// EQUAL is exact float equality, matching the stored-rule semantics the
// rest of the system was built against.
func Evaluate(value, threshold float64, op string) (bool, error) {
	canonical, err := ParseOperator(op)
	if err != nil {
		return false, err
	}
	switch canonical {
	case OperatorBelow:
		return value < threshold, nil
	case OperatorAbove:
		return value > threshold, nil
	case OperatorEqual:
		return value == threshold, nil
	case OperatorBelowOrEqual:
		return value <= threshold, nil
	case OperatorAboveOrEqual:
		return value >= threshold, nil
	}
	return false, &UnsupportedOperatorError{Op: op}
}
