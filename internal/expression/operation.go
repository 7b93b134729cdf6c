package expression

import (
	"errors"
	"fmt"
	"math"

	"github.com/karupanerura/keypad-calculator/internal/types"
	"github.com/shopspring/decimal"
)

var (
	hundred            = decimal.NewFromInt(100)
	maxIntegerExponent = decimal.NewFromInt(1000)
)

type operation interface {
	execute(*types.SymbolTable) (decimal.Decimal, error)
}

type numberOperation struct {
	value decimal.Decimal
}

func (s *numberOperation) execute(*types.SymbolTable) (decimal.Decimal, error) {
	return s.value, nil
}

type retrieveSymbolOperation struct {
	name string
}

func (s *retrieveSymbolOperation) execute(st *types.SymbolTable) (decimal.Decimal, error) {
	v, ok := st.Get(s.name)
	if !ok {
		return decimal.Zero, &types.Error{
			Tag: types.KeyErrorTag,
			Err: fmt.Errorf("not found symbol: %s", s.name),
		}
	}

	switch value := v.(type) {
	case decimal.Decimal:
		return value, nil
	case types.Function:
		return decimal.Zero, &types.Error{
			Tag: types.TypeErrorTag,
			Err: fmt.Errorf("%s: function used as a value", s.name),
		}
	default:
		return decimal.Zero, &types.Error{
			Tag: types.TypeErrorTag,
			Err: fmt.Errorf("%s: unexpected symbol type %T", s.name, v),
		}
	}
}

type calculateUnaryOperation struct {
	operator string
	value    operation
}

func (s *calculateUnaryOperation) execute(st *types.SymbolTable) (decimal.Decimal, error) {
	value, err := s.value.execute(st)
	if err != nil {
		return decimal.Zero, fmt.Errorf("value of unary operator %q: %w", s.operator, err)
	}

	switch s.operator {
	case "+":
		return value, nil
	case "-":
		return value.Neg(), nil
	default:
		return decimal.Zero, &types.Error{
			Tag: types.SyntaxErrorTag,
			Err: fmt.Errorf("unknown unary operator: %q", s.operator),
		}
	}
}

type percentOperation struct {
	value operation
}

func (s *percentOperation) execute(st *types.SymbolTable) (decimal.Decimal, error) {
	value, err := s.value.execute(st)
	if err != nil {
		return decimal.Zero, fmt.Errorf("value of percent: %w", err)
	}
	return value.Div(hundred), nil
}

type calculateBinaryOperation struct {
	operator string
	left     operation
	right    operation
}

func (s *calculateBinaryOperation) execute(st *types.SymbolTable) (decimal.Decimal, error) {
	lhs, err := s.left.execute(st)
	if err != nil {
		return decimal.Zero, fmt.Errorf("left of operator %q: %w", s.operator, err)
	}

	rhs, err := s.right.execute(st)
	if err != nil {
		return decimal.Zero, fmt.Errorf("right of operator %q: %w", s.operator, err)
	}

	switch s.operator {
	case "+":
		return lhs.Add(rhs), nil
	case "-":
		return lhs.Sub(rhs), nil
	case "*":
		return lhs.Mul(rhs), nil
	case "/":
		if rhs.IsZero() {
			return decimal.Zero, &types.Error{
				Tag: types.ZeroDivisionErrorTag,
				Err: fmt.Errorf("%s / %s", lhs, rhs),
			}
		}
		return lhs.Div(rhs), nil
	case "^":
		return power(lhs, rhs)
	default:
		return decimal.Zero, &types.Error{
			Tag: types.SyntaxErrorTag,
			Err: fmt.Errorf("unknown binary operator: %q", s.operator),
		}
	}
}

// power is exact for integer exponents up to maxIntegerExponent and goes
// through float64 otherwise.
func power(base, exp decimal.Decimal) (decimal.Decimal, error) {
	if exp.IsInteger() && exp.Abs().LessThanOrEqual(maxIntegerExponent) {
		n := exp.IntPart()
		if base.IsZero() && n < 0 {
			return decimal.Zero, &types.Error{
				Tag: types.ZeroDivisionErrorTag,
				Err: fmt.Errorf("%s ^ %s", base, exp),
			}
		}

		m := n
		if m < 0 {
			m = -m
		}
		result := decimal.NewFromInt(1)
		for b := base; m > 0; m >>= 1 {
			if m&1 == 1 {
				result = result.Mul(b)
			}
			if m > 1 {
				b = b.Mul(b)
			}
		}
		if n < 0 {
			result = decimal.NewFromInt(1).Div(result)
		}
		return result, nil
	}

	f := math.Pow(base.InexactFloat64(), exp.InexactFloat64())
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, &types.Error{
			Tag: types.ValueErrorTag,
			Err: fmt.Errorf("%s ^ %s is not a finite number", base, exp),
		}
	}
	return decimal.NewFromFloat(f), nil
}

type callFunctionOperation struct {
	name string
	args []operation
}

func (s *callFunctionOperation) execute(st *types.SymbolTable) (decimal.Decimal, error) {
	value, ok := st.Get(s.name)
	if !ok {
		return decimal.Zero, &types.Error{
			Tag: types.KeyErrorTag,
			Err: fmt.Errorf("not found function: %s", s.name),
		}
	}

	f, ok := value.(types.Function)
	if !ok {
		return decimal.Zero, &types.Error{
			Tag: types.TypeErrorTag,
			Err: fmt.Errorf("%s: not a function", s.name),
		}
	}

	args := make([]decimal.Decimal, len(s.args))
	for i, arg := range s.args {
		var err error
		args[i], err = arg.execute(st)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s args[%d]: %w", s.name, i, err)
		}
	}

	ret, err := f.Call(args)
	if err != nil {
		var typedErr *types.Error
		if errors.As(err, &typedErr) {
			return decimal.Zero, fmt.Errorf("%s: %w", s.name, err)
		}
		return decimal.Zero, &types.Error{
			Tag: types.ValueErrorTag,
			Err: fmt.Errorf("%s: %w", s.name, err),
		}
	}
	return ret, nil
}
