package builtins

import (
	"fmt"
	"math"

	"github.com/karupanerura/keypad-calculator/internal/types"
	"github.com/shopspring/decimal"
)

var (
	Pi    = decimal.RequireFromString("3.14159265358979323846264338327950288")
	Euler = decimal.RequireFromString("2.71828182845904523536028747135266250")
)

var Math = aggregateFunctionsToSymbols(
	types.MustNewFunction("sqrt", []types.Argument{
		{Name: "x"},
	}, func(x float64) (decimal.Decimal, error) {
		if x < 0 {
			return decimal.Zero, &types.Error{
				Tag: types.ValueErrorTag,
				Err: fmt.Errorf("sqrt of negative number: %v", x),
			}
		}
		return fromFloat("sqrt", math.Sqrt(x))
	}),
	types.MustNewFunction("sin", []types.Argument{
		{Name: "x"},
	}, func(x float64) (decimal.Decimal, error) {
		return fromFloat("sin", math.Sin(x))
	}),
	types.MustNewFunction("cos", []types.Argument{
		{Name: "x"},
	}, func(x float64) (decimal.Decimal, error) {
		return fromFloat("cos", math.Cos(x))
	}),
	types.MustNewFunction("tan", []types.Argument{
		{Name: "x"},
	}, func(x float64) (decimal.Decimal, error) {
		return fromFloat("tan", math.Tan(x))
	}),
	types.MustNewFunction("ln", []types.Argument{
		{Name: "x"},
	}, func(x float64) (decimal.Decimal, error) {
		if x <= 0 {
			return decimal.Zero, &types.Error{
				Tag: types.ValueErrorTag,
				Err: fmt.Errorf("ln of non-positive number: %v", x),
			}
		}
		return fromFloat("ln", math.Log(x))
	}),
	types.MustNewFunction("log", []types.Argument{
		{Name: "x"},
	}, func(x float64) (decimal.Decimal, error) {
		if x <= 0 {
			return decimal.Zero, &types.Error{
				Tag: types.ValueErrorTag,
				Err: fmt.Errorf("log of non-positive number: %v", x),
			}
		}
		return fromFloat("log", math.Log10(x))
	}),
)

// fromFloat converts a float64 result, rejecting values decimal cannot hold.
func fromFloat(name string, f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, &types.Error{
			Tag: types.ValueErrorTag,
			Err: fmt.Errorf("%s: result is not a finite number", name),
		}
	}
	return decimal.NewFromFloat(f), nil
}
