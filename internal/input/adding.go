package input

import "fmt"

// CheckPossibilityAddingElement decides how candidate changes expr. The
// decision belongs to the token currently at the end of expr. On any result
// other than AddingPossible the expression is left as it was.
func CheckPossibilityAddingElement(expr *Expression, state *State, candidate Token) AddingElementResult {
	if !acceptable(expr, candidate) {
		return InvalidFormatUsed
	}

	var result AddingElementResult
	switch last := expr.Last().(type) {
	case nil:
		result = appendCandidate(expr, candidate)
	case *Literal:
		result = literalFollowedBy(last, expr, state, candidate)
	case Operator:
		result = operatorFollowedBy(last, expr, candidate)
	default:
		panic(fmt.Sprintf("should not reach here: unknown token %T", last))
	}

	if result == AddingPossible {
		state.Reset()
	}
	return result
}

// acceptable runs the checks a candidate carries regardless of what precedes
// it.
func acceptable(expr *Expression, candidate Token) bool {
	switch c := candidate.(type) {
	case *Literal:
		return isNumeric(c.Element())
	case Operator:
		if c.shape() == controlShape {
			return false
		}
		if precondition, ok := preconditions[c.kind]; ok {
			return precondition(expr)
		}
		return true
	default:
		return false
	}
}

func literalFollowedBy(last *Literal, expr *Expression, state *State, candidate Token) AddingElementResult {
	switch c := candidate.(type) {
	case *Literal:
		if state.freshStart() {
			expr.Reset(c)
			return AddingPossible
		}
		if last.Len() > maxLiteralLength-1 {
			return CantMoreThan15Digit
		}
		if expr.Len() > 2 && last.Len() == maxDecimalPlaces && isOperatorOf(expr.At(expr.Len()-2), Point) {
			return CantMoreThan10Decimal
		}
		// multi-digit keys such as "00"
		joined := last.Len() + len(c.Element())
		if joined > maxLiteralLength {
			return CantMoreThan15Digit
		}
		if expr.Len() > 1 && joined > maxDecimalPlaces && isOperatorOf(expr.At(expr.Len()-2), Point) {
			return CantMoreThan10Decimal
		}
		if !last.Append(c) {
			return InvalidFormatUsed
		}
		return AddingPossible

	case Operator:
		return valueFollowedByOperator(expr, c)

	default:
		panic(fmt.Sprintf("should not reach here: unknown token %T", candidate))
	}
}

// valueFollowedByOperator appends an operator after a complete operand,
// inserting an implicit multiplication when the operator would otherwise
// start a new operand.
func valueFollowedByOperator(expr *Expression, c Operator) AddingElementResult {
	if c.IsNullary() || c.OperandType() == OperandRight {
		insertImplicitMultiplication(expr)
	}
	return appendCandidate(expr, c)
}

func insertImplicitMultiplication(expr *Expression) {
	expr.Append(NewOperator(Multiplication))
}

func operatorFollowedBy(last Operator, expr *Expression, candidate Token) AddingElementResult {
	switch last.shape() {
	case nullaryShape, postfixShape:
		switch c := candidate.(type) {
		case *Literal:
			insertImplicitMultiplication(expr)
			return appendCandidate(expr, c)
		case Operator:
			return valueFollowedByOperator(expr, c)
		}

	case binaryShape, prefixShape:
		switch c := candidate.(type) {
		case *Literal:
			return appendCandidate(expr, c)
		case Operator:
			return operandFollowedBy(last, expr, c)
		}

	case pointShape:
		if c, ok := candidate.(*Literal); ok {
			return appendCandidate(expr, c)
		}
		return InvalidFormatUsed

	case controlShape:
		panic(fmt.Sprintf("should not reach here: %s inside expression", last.kind))
	}
	panic(fmt.Sprintf("should not reach here: unknown token %T after %s", candidate, last.kind))
}

// operandFollowedBy handles an operator typed where an operand is expected.
func operandFollowedBy(last Operator, expr *Expression, c Operator) AddingElementResult {
	switch c.shape() {
	case nullaryShape, prefixShape:
		return appendCandidate(expr, c)
	case binaryShape:
		if last.shape() == binaryShape {
			expr.RemoveLast()
			return appendCandidate(expr, c)
		}
		if c.kind == Subtraction {
			return appendCandidate(expr, c)
		}
		return InvalidFormatUsed
	default:
		return InvalidFormatUsed
	}
}

func appendCandidate(expr *Expression, candidate Token) AddingElementResult {
	expr.Append(candidate)
	if op, ok := candidate.(Operator); ok {
		PostAddingWork(expr, op)
	}
	return AddingPossible
}
