package calculator_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/keypad-calculator/internal/calculator"
	"github.com/karupanerura/keypad-calculator/internal/input"
	"github.com/karupanerura/keypad-calculator/internal/types"
)

// press feeds keys to s; "=" evaluates, anything else is looked up as an
// operator element and falls back to a literal.
func press(t *testing.T, s *calculator.Session, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if key == "=" {
			_, _ = s.Equals()
			continue
		}
		if op, ok := input.OperatorByElement(key); ok {
			s.Press(op)
		} else {
			s.Press(input.NewLiteral(key))
		}
	}
}

func TestSessionEquals(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name        string
		keys        []string
		wantValue   string
		wantTag     types.ErrorTag
		wantDisplay string
		wantTokens  []string
	}{
		{
			name:        "Addition",
			keys:        []string{"1", "2", "+", "3"},
			wantValue:   "15",
			wantDisplay: "15",
			wantTokens:  []string{"15"},
		},
		{
			name:        "FractionalResult",
			keys:        []string{"5", "/", "2"},
			wantValue:   "2.5",
			wantDisplay: "2.5",
			wantTokens:  []string{"2", ".", "5"},
		},
		{
			name:        "NegativeFractionalResult",
			keys:        []string{"-", "1", "/", "4"},
			wantValue:   "-0.25",
			wantDisplay: "-0.25",
			wantTokens:  []string{"-0", ".", "25"},
		},
		{
			name:        "RoundedToTenPlaces",
			keys:        []string{"2", "/", "3"},
			wantValue:   "0.6666666667",
			wantDisplay: "0.6666666667",
			wantTokens:  []string{"0", ".", "6666666667"},
		},
		{
			name:        "UnclosedParensAreClosed",
			keys:        []string{"2", "*", "(", "3", "+", "4"},
			wantValue:   "14",
			wantDisplay: "14",
			wantTokens:  []string{"14"},
		},
		{
			name:        "FunctionKey",
			keys:        []string{"sqrt", "2", ".", "2", "5"},
			wantValue:   "1.5",
			wantDisplay: "1.5",
			wantTokens:  []string{"1", ".", "5"},
		},
		{
			name:        "DivisionByZeroKeepsExpression",
			keys:        []string{"1", "/", "0"},
			wantTag:     types.ZeroDivisionErrorTag,
			wantDisplay: "1÷0",
			wantTokens:  []string{"1", "/", "0"},
		},
		{
			name:        "TrailingOperator",
			keys:        []string{"1", "+"},
			wantTag:     types.SyntaxErrorTag,
			wantDisplay: "1+",
			wantTokens:  []string{"1", "+"},
		},
		{
			name:        "TooLarge",
			keys:        []string{"9", "9", "9", "9", "9", "9", "9", "9", "9", "9", "^", "2"},
			wantTag:     types.ResourceLimitErrorTag,
			wantDisplay: "9999999999^2",
			wantTokens:  []string{"9999999999", "^", "2"},
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := calculator.NewSession()
			press(t, s, tt.keys...)
			ret, err := s.Equals()

			state := s.State()
			if !state.EqualUsed {
				t.Error("EqualUsed must be set after Equals")
			}
			if tt.wantTag != "" {
				if !types.HasTag(err, tt.wantTag) {
					t.Errorf("Equals() error = %v, want tag %s", err, tt.wantTag)
				}
				if state.LastValidationSucceeded {
					t.Error("LastValidationSucceeded must be false after a failure")
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if ret.String() != tt.wantValue {
					t.Errorf("Equals() = %s, want %s", ret, tt.wantValue)
				}
				if !state.LastValidationSucceeded {
					t.Error("LastValidationSucceeded must be true after a success")
				}
				if got := s.Answer().String(); got != tt.wantValue {
					t.Errorf("Answer() = %s, want %s", got, tt.wantValue)
				}
			}
			if got := s.Display(); got != tt.wantDisplay {
				t.Errorf("Display() = %q, want %q", got, tt.wantDisplay)
			}
			if diff := cmp.Diff(tt.wantTokens, s.Expression().Elements()); diff != "" {
				t.Errorf("tokens (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSessionAfterEquals(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		keys []string
		want string
	}{
		{
			name: "DigitStartsNewExpression",
			keys: []string{"1", "+", "2", "=", "7"},
			want: "7",
		},
		{
			name: "OperatorContinuesResult",
			keys: []string{"1", "+", "2", "=", "*", "4"},
			want: "3×4",
		},
		{
			name: "PointStartsNewDecimal",
			keys: []string{"1", "+", "2", "=", ".", "5"},
			want: "0.5",
		},
		{
			name: "DigitAfterFailureAppends",
			keys: []string{"1", "/", "0", "=", "2"},
			want: "1÷02",
		},
		{
			name: "AnswerKey",
			keys: []string{"6", "*", "7", "=", "AC", "ans", "+", "1"},
			want: "Ans+1",
		},
		{
			name: "ClearKeepsNothing",
			keys: []string{"1", "2", "AC"},
			want: "",
		},
		{
			name: "BackspaceOnResult",
			keys: []string{"1", "2", "3", "=", "DEL"},
			want: "12",
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := calculator.NewSession()
			press(t, s, tt.keys...)
			if got := s.Display(); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionNegativeResultIsOneOperand(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name        string
		keys        []string
		want        string
		wantDisplay string
	}{
		{
			name:        "Power",
			keys:        []string{"5", "-", "8", "=", "^", "2"},
			want:        "9",
			wantDisplay: "-3^2",
		},
		{
			name:        "FractionTimes",
			keys:        []string{"1", "-", "1", ".", "5", "=", "*", "4"},
			want:        "-2",
			wantDisplay: "-0.5×4",
		},
		{
			name:        "Percent",
			keys:        []string{"0", "-", "5", "0", "=", "%"},
			want:        "-0.5",
			wantDisplay: "-50%",
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := calculator.NewSession()
			press(t, s, tt.keys...)
			if got := s.Display(); got != tt.wantDisplay {
				t.Errorf("Display() = %q, want %q", got, tt.wantDisplay)
			}
			ret, err := s.Equals()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ret.String() != tt.want {
				t.Errorf("Equals() = %s, want %s", ret, tt.want)
			}
		})
	}
}

func TestSessionAnswerIsReused(t *testing.T) {
	t.Parallel()

	s := calculator.NewSession()
	press(t, s, "6", "*", "7", "=", "AC", "ans", "/", "2")
	ret, err := s.Equals()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ret.String() != "21" {
		t.Errorf("Equals() = %s, want 21", ret)
	}

	view := s.View()
	want := calculator.View{
		Display:    "21",
		Expression: "21",
		Tokens:     []string{"21"},
		State:      input.State{EqualUsed: true, LastValidationSucceeded: true},
		Answer:     "21",
	}
	if diff := cmp.Diff(want, view); diff != "" {
		t.Errorf("View() (-want +got):\n%s", diff)
	}
}
