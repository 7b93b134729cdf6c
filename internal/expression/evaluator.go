package expression

import (
	"fmt"

	"github.com/karupanerura/keypad-calculator/internal/types"
	"github.com/shopspring/decimal"
)

// MaxIntegerDigits bounds the integer part of an evaluation result.
const MaxIntegerDigits = 15

var resultLimit = decimal.New(1, MaxIntegerDigits)

type Evaluator struct {
	SymbolTable *types.SymbolTable
}

func (e *Evaluator) EvaluateValue(expr *Expr) (decimal.Decimal, error) {
	ret, err := expr.execute(e.SymbolTable)
	if err != nil {
		return decimal.Zero, err
	}

	if ret.Abs().GreaterThanOrEqual(resultLimit) {
		return decimal.Zero, &types.Error{
			Tag: types.ResourceLimitErrorTag,
			Err: fmt.Errorf("result %s exceeds %d integer digits", ret.Truncate(0), MaxIntegerDigits),
		}
	}
	return ret, nil
}

// EvaluateString parses and evaluates source in one step.
func (e *Evaluator) EvaluateString(source string) (decimal.Decimal, error) {
	expr, err := ParseExpr(source)
	if err != nil {
		return decimal.Zero, fmt.Errorf("expression.ParseExpr: %w", err)
	}
	return e.EvaluateValue(expr)
}
