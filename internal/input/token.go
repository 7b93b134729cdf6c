// Package input implements the keystroke-level state machine of a calculator:
// it decides, for every key press, whether and how the next token may be
// appended to the expression that is being typed.
package input

// Token is a single unit of calculator input, either a *Literal or an
// Operator. The set of variants is closed.
type Token interface {
	// Element returns the canonical form used for validation and calculation.
	Element() string
	// DisplayElement returns the form shown to the user.
	DisplayElement() string

	isToken()
}

var (
	_ Token = (*Literal)(nil)
	_ Token = Operator{}
)
