package input

type (
	alternativeWorkFunc func(*Expression, *State) bool
	postAddingWorkFunc  func(*Expression)
	preconditionFunc    func(*Expression) bool
)

// Per-kind hooks. Kinds without an entry do nothing extra.
var (
	alternativeWorks map[OperatorKind]alternativeWorkFunc
	postAddingWorks  map[OperatorKind]postAddingWorkFunc
	preconditions    map[OperatorKind]preconditionFunc
)

func init() {
	alternativeWorks = map[OperatorKind]alternativeWorkFunc{
		Clear:     clearAll,
		Backspace: deleteLast,
		Point:     startDecimal,
	}

	openParenAfter := postAddingWorkFunc(func(expr *Expression) {
		expr.Append(NewOperator(OpenParen))
	})
	postAddingWorks = map[OperatorKind]postAddingWorkFunc{
		Sqrt: openParenAfter,
		Sin:  openParenAfter,
		Cos:  openParenAfter,
		Tan:  openParenAfter,
		Ln:   openParenAfter,
		Log:  openParenAfter,
	}

	preconditions = map[OperatorKind]preconditionFunc{
		Point: func(expr *Expression) bool {
			// one point per literal
			n := expr.Len()
			_, isLiteral := expr.Last().(*Literal)
			return !(isLiteral && n > 1 && isOperatorOf(expr.At(n-2), Point))
		},
		CloseParen: func(expr *Expression) bool {
			return expr.OpenParens() > 0
		},
	}
}

// AlternativeWork gives candidate the chance to handle a key press on its
// own. When it returns true the key press is complete and
// CheckPossibilityAddingElement must not be called for it.
func AlternativeWork(expr *Expression, state *State, candidate Token) bool {
	op, ok := candidate.(Operator)
	if !ok {
		return false
	}
	work, ok := alternativeWorks[op.kind]
	if !ok {
		return false
	}
	return work(expr, state)
}

// PostAddingWork runs the edits op makes right after being appended.
func PostAddingWork(expr *Expression, op Operator) {
	if work, ok := postAddingWorks[op.kind]; ok {
		work(expr)
	}
}

func clearAll(expr *Expression, state *State) bool {
	expr.Reset()
	state.Reset()
	return true
}

func deleteLast(expr *Expression, state *State) bool {
	state.Reset()
	if l, ok := expr.Last().(*Literal); ok && l.Len() > 1 {
		if l.trimLast() {
			return true
		}
	}
	expr.RemoveLast()
	return true
}

// startDecimal supplies the leading zero when a point is typed where no
// literal is being edited.
func startDecimal(expr *Expression, state *State) bool {
	if state.freshStart() {
		expr.Reset(NewLiteral("0"), NewOperator(Point))
		state.Reset()
		return true
	}

	switch last := expr.Last().(type) {
	case *Literal:
		return false
	case Operator:
		switch last.shape() {
		case binaryShape, prefixShape:
		case nullaryShape, postfixShape:
			insertImplicitMultiplication(expr)
		default:
			return false
		}
	}

	expr.Append(NewLiteral("0"), NewOperator(Point))
	state.Reset()
	return true
}
