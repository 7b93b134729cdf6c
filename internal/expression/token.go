package expression

type token interface {
	BeginsPos() int
	EndsPos() int
}

type rangeToken struct {
	beginsPos, endsPos int
}

func (t rangeToken) BeginsPos() int {
	return t.beginsPos
}

func (t rangeToken) EndsPos() int {
	return t.endsPos
}

type numericLiteralToken struct {
	rangeToken
}

type symbolLiteralToken struct {
	rangeToken
}

type operatorToken struct {
	rangeToken
}

type ast struct {
	atom token
	list []*ast
}
