package input

import "github.com/shopspring/decimal"

const (
	maxLiteralLength = 15
	maxDecimalPlaces = 10
)

// Literal is an accumulated numeric text. It is the only token that changes
// after construction.
type Literal struct {
	text []byte
}

func NewLiteral(text string) *Literal {
	return &Literal{text: []byte(text)}
}

func (l *Literal) isToken() {}

func (l *Literal) Element() string {
	return string(l.text)
}

func (l *Literal) DisplayElement() string {
	return string(l.text)
}

func (l *Literal) Len() int {
	return len(l.text)
}

// Append extends the literal with the element of t and reports whether it
// did. The literal is left untouched when the element is not numeric or the
// concatenation would not be.
func (l *Literal) Append(t Token) bool {
	s := t.Element()
	if !isNumeric(s) {
		return false
	}

	joined := make([]byte, 0, len(l.text)+len(s))
	joined = append(joined, l.text...)
	joined = append(joined, s...)
	if !isNumeric(string(joined)) {
		return false
	}

	l.text = joined
	return true
}

// trimLast drops the last character and reports whether a number remains.
func (l *Literal) trimLast() bool {
	if len(l.text) == 0 {
		return false
	}
	l.text = l.text[:len(l.text)-1]
	return isNumeric(string(l.text))
}

func (l *Literal) clone() *Literal {
	return &Literal{text: append([]byte(nil), l.text...)}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := decimal.NewFromString(s)
	return err == nil
}
