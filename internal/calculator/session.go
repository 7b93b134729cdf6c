// Package calculator ties the key press state machine to the evaluator: a
// Session is one editing session of a calculator display.
package calculator

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/k0kubun/pp"
	"github.com/karupanerura/keypad-calculator/internal/builtins"
	"github.com/karupanerura/keypad-calculator/internal/expression"
	"github.com/karupanerura/keypad-calculator/internal/input"
	"github.com/karupanerura/keypad-calculator/internal/types"
	"github.com/shopspring/decimal"
)

const (
	AnswerSymbol = "ans"

	resultDecimalPlaces = 10
)

var sessionDebugLog = false

func init() {
	if v, err := strconv.ParseBool(os.Getenv("KEYPAD_CALCULATOR_SESSION_DEBUG")); v && err == nil {
		sessionDebugLog = true
	}
}

// Session is not safe for concurrent use.
type Session struct {
	expr    *input.Expression
	state   input.State
	symbols *types.SymbolTable
}

func NewSession() *Session {
	symbols := types.NewSymbolTable(builtins.DefaultSymbolTable)
	symbols.Set(AnswerSymbol, decimal.Zero)
	return &Session{
		expr:    input.NewExpression(),
		symbols: symbols,
	}
}

// Press handles one key press that maps to a token.
func (s *Session) Press(t input.Token) input.AddingElementResult {
	result := input.AddingPossible
	if !input.AlternativeWork(s.expr, &s.state, t) {
		result = input.CheckPossibilityAddingElement(s.expr, &s.state, t)
	}

	if sessionDebugLog {
		log.Printf("press %q: %s", t.Element(), result)
		pp.Println(s.expr.Elements(), s.state)
	}
	return result
}

// Equals evaluates the expression. On success the expression is replaced by
// the result, so that the next digit starts a new expression; on failure the
// expression is kept for editing.
func (s *Session) Equals() (decimal.Decimal, error) {
	s.state.EqualUsed = true
	s.state.LastValidationSucceeded = false

	source := s.expr.String() + strings.Repeat(")", s.expr.OpenParens())
	ev := expression.Evaluator{SymbolTable: s.symbols}
	ret, err := ev.EvaluateString(source)
	if err != nil {
		if sessionDebugLog {
			log.Printf("evaluate %q: %v", source, err)
		}
		return decimal.Zero, err
	}

	ret = ret.Round(resultDecimalPlaces)
	s.expr.Reset(resultTokens(ret)...)
	s.symbols.Set(AnswerSymbol, ret)
	s.state.LastValidationSucceeded = true

	if sessionDebugLog {
		log.Printf("evaluate %q: %s", source, ret)
	}
	return ret, nil
}

// Clear resets the session, keeping the last answer.
func (s *Session) Clear() {
	s.Press(input.NewOperator(input.Clear))
}

func (s *Session) Display() string {
	return s.expr.Display()
}

func (s *Session) Expression() *input.Expression {
	return s.expr
}

func (s *Session) State() input.State {
	return s.state
}

func (s *Session) Answer() decimal.Decimal {
	v, _ := s.symbols.Get(AnswerSymbol)
	d, _ := v.(decimal.Decimal)
	return d
}

// resultTokens splits a result into the tokens that would have typed it, so
// the digit and decimal rules keep applying when it is edited.
func resultTokens(d decimal.Decimal) []input.Token {
	s := d.String()
	i := strings.IndexByte(s, '.')
	if i == -1 {
		return []input.Token{input.NewLiteral(s)}
	}
	return []input.Token{
		input.NewLiteral(s[:i]),
		input.NewOperator(input.Point),
		input.NewLiteral(s[i+1:]),
	}
}

type View struct {
	Display    string      `json:"display"`
	Expression string      `json:"expression"`
	Tokens     []string    `json:"tokens"`
	State      input.State `json:"state"`
	Answer     string      `json:"answer"`
}

func (s *Session) View() View {
	return View{
		Display:    s.Display(),
		Expression: s.expr.String(),
		Tokens:     s.expr.Elements(),
		State:      s.state,
		Answer:     s.Answer().String(),
	}
}

func (v View) String() string {
	return fmt.Sprintf("%s (%s)", v.Display, v.Expression)
}
