package types

import (
	"fmt"
	"strings"

	reflect "github.com/goccy/go-reflect"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Function is a builtin callable from an expression. Arguments and results are
// decimals.
type Function interface {
	Name() string
	Args() []string
	Call([]decimal.Decimal) (decimal.Decimal, error)
}

type Argument struct {
	Name string
}

type argKind int

const (
	decimalArg argKind = iota
	float64Arg
)

type argDef struct {
	name string
	kind argKind
}

type reflectFunc struct {
	name  string
	args  []argDef
	value reflect.Value
}

var (
	errorInterfaceType = reflect.TypeOf((*error)(nil)).Elem()
	decimalType        = reflect.TypeOf(decimal.Decimal{})
)

// NewFunction binds f, which must be a function taking one decimal.Decimal or
// float64 per argument and returning (decimal.Decimal, error).
func NewFunction(name string, args []Argument, f any) (Function, error) {
	v := reflect.ValueOf(f)
	if v.Kind() != reflect.Func {
		return nil, fmt.Errorf("must be function but got %T: %+v", f, f)
	}

	t := v.Type()
	if t.NumIn() != len(args) {
		return nil, fmt.Errorf("mis-match arguments count with args %+v: %+v", args, f)
	}
	if t.NumOut() != 2 {
		return nil, fmt.Errorf("builtin function must return 2 values: %+v", f)
	}
	if firstOut := t.Out(0); !firstOut.AssignableTo(decimalType) {
		return nil, fmt.Errorf("first return value type must be decimal.Decimal: %s", firstOut.String())
	}
	if lastOut := t.Out(1); !lastOut.Implements(errorInterfaceType) {
		return nil, fmt.Errorf("last return value type must be error: %s", lastOut.String())
	}

	defs := make([]argDef, len(args))
	for i, arg := range args {
		defs[i].name = arg.Name
		switch argType := t.In(i); {
		case decimalType.AssignableTo(argType):
			defs[i].kind = decimalArg
		case argType.Kind() == reflect.Float64:
			defs[i].kind = float64Arg
		default:
			return nil, fmt.Errorf("argument[%d] %s must be decimal.Decimal or float64 but got %s", i, arg.Name, argType.String())
		}
	}

	return &reflectFunc{
		name:  name,
		args:  defs,
		value: v,
	}, nil
}

func MustNewFunction(name string, args []Argument, f any) Function {
	fun, err := NewFunction(name, args, f)
	if err != nil {
		panic(err)
	}
	return fun
}

func (f *reflectFunc) Name() string {
	return f.name
}

func (f *reflectFunc) Args() []string {
	return lo.Map(f.args, func(def argDef, _ int) string {
		return def.name
	})
}

func (f *reflectFunc) Call(args []decimal.Decimal) (decimal.Decimal, error) {
	if len(args) != len(f.args) {
		return decimal.Zero, &Error{
			Tag: TypeErrorTag,
			Err: fmt.Errorf("%d arguments are required but got %d arguments, usage: %s(%s)", len(f.args), len(args), f.name, strings.Join(f.Args(), ", ")),
		}
	}

	argValues := make([]reflect.Value, len(f.args))
	for i, arg := range f.args {
		switch arg.kind {
		case decimalArg:
			argValues[i] = reflect.ValueOf(args[i])
		case float64Arg:
			argValues[i] = reflect.ValueOf(args[i].InexactFloat64())
		}
	}

	ret := f.value.Call(argValues)
	if !ret[1].IsNil() {
		return decimal.Zero, ret[1].Interface().(error)
	}
	return ret[0].Interface().(decimal.Decimal), nil
}
