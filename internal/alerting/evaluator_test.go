package alerting

import (
	"errors"
	"testing"
)

func TestEvaluateOperators(t *testing.T) {
	cases := []struct {
		name      string
		value     float64
		threshold float64
		op        string
		want      bool
	}{
		{"below true", 0.85, 0.9, "BELOW", true},
		{"below false", 0.95, 0.9, "BELOW", false},
		{"below boundary", 0.9, 0.9, "BELOW", false},
		{"below symbolic", 0.85, 0.9, "<", true},
		{"above true", 0.95, 0.9, "ABOVE", true},
		{"above false", 0.85, 0.9, "ABOVE", false},
		{"above boundary", 0.9, 0.9, "ABOVE", false},
		{"above symbolic", 1.2, 0.9, ">", true},
		{"equal true", 0.9, 0.9, "EQUAL", true},
		{"equal false", 0.9000001, 0.9, "EQUAL", false},
		{"equal symbolic", 3, 3, "==", true},
		{"below or equal boundary", 0.9, 0.9, "BELOW_OR_EQUAL", true},
		{"below or equal symbolic", 0.8, 0.9, "<=", true},
		{"above or equal boundary", 0.9, 0.9, ">=", true},
		{"above or equal false", 0.8, 0.9, "ABOVE_OR_EQUAL", false},
		{"lowercase word form", 0.85, 0.9, "below", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Evaluate(tc.value, tc.threshold, tc.op)
			if err != nil {
				t.Fatalf("Evaluate(%v, %v, %q): %v", tc.value, tc.threshold, tc.op, err)
			}
			if got != tc.want {
				t.Fatalf("Evaluate(%v, %v, %q) = %v, want %v", tc.value, tc.threshold, tc.op, got, tc.want)
			}
		})
	}
}

func TestEvaluateUnsupportedOperator(t *testing.T) {
	for _, op := range []string{"", "!=", "NEAR", "between"} {
		_, err := Evaluate(1, 2, op)
		if err == nil {
			t.Fatalf("Evaluate with op %q: expected error", op)
		}
		var unsupported *UnsupportedOperatorError
		if !errors.As(err, &unsupported) {
			t.Fatalf("Evaluate with op %q: got %T, want *UnsupportedOperatorError", op, err)
		}
		if unsupported.Op != op {
			t.Fatalf("UnsupportedOperatorError.Op = %q, want %q", unsupported.Op, op)
		}
	}
}

func TestParseOperatorMapping(t *testing.T) {
	pairs := map[string]Operator{
		"BELOW": OperatorBelow, "<": OperatorBelow,
		"ABOVE": OperatorAbove, ">": OperatorAbove,
		"EQUAL": OperatorEqual, "==": OperatorEqual, "=": OperatorEqual,
		"<=": OperatorBelowOrEqual, "BELOW_OR_EQUAL": OperatorBelowOrEqual,
		">=": OperatorAboveOrEqual, "ABOVE_OR_EQUAL": OperatorAboveOrEqual,
		" above ": OperatorAbove,
	}
	for in, want := range pairs {
		got, err := ParseOperator(in)
		if err != nil {
			t.Fatalf("ParseOperator(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseOperator(%q) = %q, want %q", in, got, want)
		}
	}
}
