package input

import "fmt"

// OperandType declares on which side an operator needs an adjacent operand.
type OperandType int

const (
	OperandNone OperandType = iota
	OperandLeft
	OperandRight
)

type OperatorKind int

const (
	Addition OperatorKind = iota + 1
	Subtraction
	Multiplication
	Division
	Power
	Percent
	Point
	OpenParen
	CloseParen
	Sqrt
	Sin
	Cos
	Tan
	Ln
	Log
	Pi
	Euler
	Ans
	Clear
	Backspace
)

type operatorShape int

const (
	binaryShape operatorShape = iota + 1
	prefixShape
	postfixShape
	nullaryShape
	pointShape
	controlShape
)

type operatorDef struct {
	name    string
	element string
	display string
	operand OperandType
	shape   operatorShape
}

var operatorDefs = map[OperatorKind]operatorDef{
	Addition:       {name: "Addition", element: "+", display: "+", operand: OperandLeft, shape: binaryShape},
	Subtraction:    {name: "Subtraction", element: "-", display: "-", operand: OperandLeft, shape: binaryShape},
	Multiplication: {name: "Multiplication", element: "*", display: "×", operand: OperandLeft, shape: binaryShape},
	Division:       {name: "Division", element: "/", display: "÷", operand: OperandLeft, shape: binaryShape},
	Power:          {name: "Power", element: "^", display: "^", operand: OperandLeft, shape: binaryShape},
	Percent:        {name: "Percent", element: "%", display: "%", operand: OperandLeft, shape: postfixShape},
	Point:          {name: "Point", element: ".", display: ".", operand: OperandLeft, shape: pointShape},
	OpenParen:      {name: "OpenParen", element: "(", display: "(", operand: OperandRight, shape: prefixShape},
	CloseParen:     {name: "CloseParen", element: ")", display: ")", operand: OperandLeft, shape: postfixShape},
	Sqrt:           {name: "Sqrt", element: "sqrt", display: "√", operand: OperandRight, shape: prefixShape},
	Sin:            {name: "Sin", element: "sin", display: "sin", operand: OperandRight, shape: prefixShape},
	Cos:            {name: "Cos", element: "cos", display: "cos", operand: OperandRight, shape: prefixShape},
	Tan:            {name: "Tan", element: "tan", display: "tan", operand: OperandRight, shape: prefixShape},
	Ln:             {name: "Ln", element: "ln", display: "ln", operand: OperandRight, shape: prefixShape},
	Log:            {name: "Log", element: "log", display: "log", operand: OperandRight, shape: prefixShape},
	Pi:             {name: "Pi", element: "pi", display: "π", operand: OperandNone, shape: nullaryShape},
	Euler:          {name: "Euler", element: "e", display: "e", operand: OperandNone, shape: nullaryShape},
	Ans:            {name: "Ans", element: "ans", display: "Ans", operand: OperandNone, shape: nullaryShape},
	Clear:          {name: "Clear", element: "AC", display: "AC", operand: OperandNone, shape: controlShape},
	Backspace:      {name: "Backspace", element: "DEL", display: "⌫", operand: OperandNone, shape: controlShape},
}

func (k OperatorKind) String() string {
	if def, ok := operatorDefs[k]; ok {
		return def.name
	}
	return fmt.Sprintf("OperatorKind(%d)", int(k))
}

// Operator is an immutable non-literal token.
type Operator struct {
	kind OperatorKind
}

func NewOperator(kind OperatorKind) Operator {
	if _, ok := operatorDefs[kind]; !ok {
		panic(fmt.Sprintf("unknown operator kind: %d", int(kind)))
	}
	return Operator{kind: kind}
}

func (o Operator) isToken() {}

func (o Operator) Kind() OperatorKind {
	return o.kind
}

func (o Operator) Element() string {
	return operatorDefs[o.kind].element
}

func (o Operator) DisplayElement() string {
	return operatorDefs[o.kind].display
}

func (o Operator) OperandType() OperandType {
	return operatorDefs[o.kind].operand
}

// IsNullary reports whether the operator stands in for a value on its own.
func (o Operator) IsNullary() bool {
	return o.shape() == nullaryShape
}

func (o Operator) shape() operatorShape {
	return operatorDefs[o.kind].shape
}

// OperatorKinds lists every kind in declaration order.
func OperatorKinds() []OperatorKind {
	kinds := make([]OperatorKind, 0, len(operatorDefs))
	for kind := Addition; kind <= Backspace; kind++ {
		kinds = append(kinds, kind)
	}
	return kinds
}

// OperatorByElement finds the operator whose canonical element is s.
func OperatorByElement(s string) (Operator, bool) {
	for kind, def := range operatorDefs {
		if def.element == s {
			return Operator{kind: kind}, true
		}
	}
	return Operator{}, false
}

func isOperatorOf(t Token, kind OperatorKind) bool {
	op, ok := t.(Operator)
	return ok && op.kind == kind
}
