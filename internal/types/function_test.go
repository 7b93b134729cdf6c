package types_test

import (
	"errors"
	"math"
	"testing"

	"github.com/karupanerura/keypad-calculator/internal/types"
	"github.com/shopspring/decimal"
)

func TestNewFunction(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name        string
		args        []types.Argument
		f           any
		expectToErr bool
	}{
		{
			name: "decimal argument",
			args: []types.Argument{{Name: "x"}},
			f:    func(x decimal.Decimal) (decimal.Decimal, error) { return x, nil },
		},
		{
			name: "float64 argument",
			args: []types.Argument{{Name: "x"}},
			f:    func(x float64) (decimal.Decimal, error) { return decimal.NewFromFloat(x), nil },
		},
		{
			name:        "not a function",
			args:        []types.Argument{{Name: "x"}},
			f:           1,
			expectToErr: true,
		},
		{
			name:        "arguments mismatch",
			args:        []types.Argument{{Name: "x"}, {Name: "y"}},
			f:           func(x float64) (decimal.Decimal, error) { return decimal.Zero, nil },
			expectToErr: true,
		},
		{
			name:        "unsupported argument type",
			args:        []types.Argument{{Name: "x"}},
			f:           func(x string) (decimal.Decimal, error) { return decimal.Zero, nil },
			expectToErr: true,
		},
		{
			name:        "unsupported result type",
			args:        []types.Argument{{Name: "x"}},
			f:           func(x float64) (float64, error) { return x, nil },
			expectToErr: true,
		},
		{
			name:        "missing error result",
			args:        []types.Argument{{Name: "x"}},
			f:           func(x float64) decimal.Decimal { return decimal.Zero },
			expectToErr: true,
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := types.NewFunction("f", tt.args, tt.f)
			if tt.expectToErr {
				if err == nil {
					t.Error("should be error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestFunctionCall(t *testing.T) {
	t.Parallel()

	hypot := types.MustNewFunction("hypot", []types.Argument{{Name: "x"}, {Name: "y"}}, func(x decimal.Decimal, y float64) (decimal.Decimal, error) {
		if y < 0 {
			return decimal.Zero, &types.Error{Tag: types.ValueErrorTag, Err: errors.New("negative")}
		}
		return decimal.NewFromFloat(math.Hypot(x.InexactFloat64(), y)), nil
	})

	ret, err := hypot.Call([]decimal.Decimal{decimal.NewFromInt(3), decimal.NewFromInt(4)})
	if err != nil {
		t.Fatal(err)
	}
	if !ret.Equal(decimal.NewFromInt(5)) {
		t.Errorf("expect to 5 but got %s", ret)
	}

	if _, err = hypot.Call([]decimal.Decimal{decimal.NewFromInt(3)}); !types.HasTag(err, types.TypeErrorTag) {
		t.Errorf("expect TypeError but got %v", err)
	}
	if _, err = hypot.Call([]decimal.Decimal{decimal.NewFromInt(3), decimal.NewFromInt(-1)}); !types.HasTag(err, types.ValueErrorTag) {
		t.Errorf("expect ValueError but got %v", err)
	}
	if name := hypot.Name(); name != "hypot" {
		t.Errorf("unexpected name: %s", name)
	}
}

func TestErrorException(t *testing.T) {
	t.Parallel()

	err := &types.Error{
		Tag: types.ValueErrorTag,
		Err: &types.Error{Tag: types.ZeroDivisionErrorTag},
	}
	exception, ok := err.Exception().(map[string]any)
	if !ok {
		t.Fatalf("unexpected exception: %#v", err.Exception())
	}
	tags, _ := exception["tags"].([]any)
	if len(tags) != 2 || tags[0] != types.ValueErrorTag || tags[1] != types.ZeroDivisionErrorTag {
		t.Errorf("unexpected tags: %v", tags)
	}
	if !types.HasTag(err, types.ZeroDivisionErrorTag) {
		t.Error("wrapped tag not found")
	}
	if msg := err.Error(); msg != "ValueError: ZeroDivisionError" {
		t.Errorf("unexpected message: %q", msg)
	}
}
