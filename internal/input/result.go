package input

// AddingElementResult is the outcome of trying to add a token to an
// expression. Only AddingPossible means the expression changed.
type AddingElementResult int

const (
	AddingPossible AddingElementResult = iota
	InvalidFormatUsed
	CantMoreThan15Digit
	CantMoreThan10Decimal
)

var addingElementResultNames = map[AddingElementResult]string{
	AddingPossible:        "AddingPossible",
	InvalidFormatUsed:     "InvalidFormatUsed",
	CantMoreThan15Digit:   "CantMoreThan15Digit",
	CantMoreThan10Decimal: "CantMoreThan10Decimal",
}

func (r AddingElementResult) String() string {
	if name, ok := addingElementResultNames[r]; ok {
		return name
	}
	return "AddingElementResult(?)"
}

func (r AddingElementResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// State is the pair of transient flags maintained by the evaluator after "="
// is pressed.
type State struct {
	EqualUsed               bool `json:"equalUsed"`
	LastValidationSucceeded bool `json:"lastValidationSucceeded"`
}

func (s *State) freshStart() bool {
	return s.EqualUsed && s.LastValidationSucceeded
}

func (s *State) Reset() {
	s.EqualUsed = false
	s.LastValidationSucceeded = false
}
