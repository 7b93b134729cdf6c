package input

import (
	"strings"

	"github.com/samber/lo"
)

// Expression is the ordered sequence of tokens typed so far. It is not safe
// for concurrent use.
type Expression struct {
	tokens []Token
}

func NewExpression(tokens ...Token) *Expression {
	return &Expression{tokens: append([]Token(nil), tokens...)}
}

func (e *Expression) Len() int {
	return len(e.tokens)
}

func (e *Expression) At(i int) Token {
	return e.tokens[i]
}

// Last returns the trailing token, or nil for an empty expression.
func (e *Expression) Last() Token {
	if len(e.tokens) == 0 {
		return nil
	}
	return e.tokens[len(e.tokens)-1]
}

func (e *Expression) Append(tokens ...Token) {
	e.tokens = append(e.tokens, tokens...)
}

func (e *Expression) Insert(i int, t Token) {
	e.tokens = append(e.tokens, nil)
	copy(e.tokens[i+1:], e.tokens[i:])
	e.tokens[i] = t
}

func (e *Expression) RemoveLast() Token {
	last := e.Last()
	if last != nil {
		e.tokens = e.tokens[:len(e.tokens)-1]
	}
	return last
}

// Reset replaces the whole expression.
func (e *Expression) Reset(tokens ...Token) {
	e.tokens = append(e.tokens[:0:0], tokens...)
}

// Tokens returns a copy of the token sequence. Literals are shared.
func (e *Expression) Tokens() []Token {
	return append([]Token(nil), e.tokens...)
}

func (e *Expression) Elements() []string {
	return lo.Map(e.tokens, func(t Token, _ int) string {
		return t.Element()
	})
}

// String returns the canonical form of the expression. A number carrying its
// own sign, as left by an evaluated result, is parenthesized so the sign binds
// tighter than any operator around it.
func (e *Expression) String() string {
	var b strings.Builder
	signed := false
	for i, t := range e.tokens {
		if l, ok := t.(*Literal); ok && strings.HasPrefix(l.Element(), "-") {
			b.WriteByte('(')
			signed = true
		}
		b.WriteString(t.Element())
		if signed && !e.numberContinuesAfter(i) {
			b.WriteByte(')')
			signed = false
		}
	}
	return b.String()
}

// numberContinuesAfter reports whether the token after i belongs to the same
// number as the token at i.
func (e *Expression) numberContinuesAfter(i int) bool {
	if i+1 >= len(e.tokens) {
		return false
	}
	next := e.tokens[i+1]
	if isOperatorOf(next, Point) {
		return true
	}
	_, nextIsLiteral := next.(*Literal)
	return nextIsLiteral && isOperatorOf(e.tokens[i], Point)
}

func (e *Expression) Display() string {
	return strings.Join(lo.Map(e.tokens, func(t Token, _ int) string {
		return t.DisplayElement()
	}), "")
}

// Clone returns a deep copy, literal buffers included.
func (e *Expression) Clone() *Expression {
	return &Expression{tokens: lo.Map(e.tokens, func(t Token, _ int) Token {
		if l, ok := t.(*Literal); ok {
			return l.clone()
		}
		return t
	})}
}

// OpenParens counts the parentheses still waiting to be closed.
func (e *Expression) OpenParens() int {
	n := 0
	for _, t := range e.tokens {
		switch {
		case isOperatorOf(t, OpenParen):
			n++
		case isOperatorOf(t, CloseParen):
			n--
		}
	}
	return n
}
