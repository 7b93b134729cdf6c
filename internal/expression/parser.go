package expression

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/k0kubun/pp"
	"github.com/karupanerura/keypad-calculator/internal/types"
	"github.com/shopspring/decimal"
)

var prefixOperatorBindingPowerMap = map[string]uint8{
	"-": 6,
	"+": 6,
}

var infixOperatorBindingPowerMap = map[string]uint8{
	",": 0,
	"+": 4,
	"-": 4,
	"*": 5,
	"/": 5,
	"^": 7,
}

var rightAssociativeOperatorSet = map[string]bool{
	"^": true,
}

var postfixOperatorBindingPowerMap = map[string]uint8{
	"%": 9,
}

const callBindingPower uint8 = 10

var parserDebugLog = false

func init() {
	if v, err := strconv.ParseBool(os.Getenv("KEYPAD_CALCULATOR_EXPRESSION_DEBUG")); v && err == nil {
		parserDebugLog = true
	}
}

type parser struct {
	source string
	debug  bool
}

func ParseExpr(source string) (*Expr, error) {
	p := &parser{source: source, debug: parserDebugLog}
	return p.parse()
}

func (p *parser) parse() (*Expr, error) {
	lex := newLexer(p.source)
	sExpr, err := p.constructAST(lex, 0)
	if errors.Is(err, io.EOF) {
		// ok: ignore it
	} else if err != nil {
		return nil, err
	}
	if !lex.isCompleted() {
		tok, err := lex.consume()
		if err != nil {
			return nil, err
		}
		if p.debug {
			log.Println("not consumed token: ", p.extractLiteralString(tok))
		}
		return nil, p.createInvalidTokenError(tok)
	}
	if sExpr == nil {
		return nil, &types.Error{
			Tag: types.SyntaxErrorTag,
			Err: errors.New("empty expression is not allowed"),
		}
	}

	if p.debug {
		pp.Println(p.source)
		pp.Println(sExpr)
		log.Println(p.renderAST(sExpr))
	}

	op, err := p.constructOperation(sExpr)
	if err != nil {
		return nil, err
	}

	return &Expr{
		Source:    p.source,
		operation: op,
	}, nil
}

func (p *parser) constructAST(lex *lexer, minBP uint8) (*ast, error) {
	tok, err := lex.consume()
	if err != nil {
		return nil, err
	}
	if p.debug {
		log.Println("first token: ", p.extractLiteralString(tok))
	}

	left := &ast{atom: tok}
	if _, isOP := tok.(operatorToken); isOP {
		op := p.extractLiteralString(tok)
		if op == "(" {
			sExpr, err := p.constructAST(lex, 0)
			if errors.Is(err, io.EOF) {
				return nil, p.createInvalidTokenError(tok)
			} else if err != nil {
				return nil, err
			}
			if err := p.expectClose(lex, tok); err != nil {
				return nil, err
			}

			left = &ast{list: []*ast{{atom: tok}, sExpr}}
		} else if bp, isPrefixOP := prefixOperatorBindingPowerMap[op]; isPrefixOP {
			sExpr, err := p.constructAST(lex, bp+1)
			if errors.Is(err, io.EOF) {
				// ok: ignore it
			} else if err != nil {
				return nil, err
			}
			if sExpr == nil {
				return nil, p.createInvalidTokenError(tok)
			}

			left = &ast{list: []*ast{{atom: tok}, sExpr}}
		} else {
			return nil, p.createInvalidTokenError(tok)
		}
	}

	for {
		tok, err := lex.consume()
		if errors.Is(err, io.EOF) {
			return left, nil
		} else if err != nil {
			return nil, err
		}

		if _, isOP := tok.(operatorToken); !isOP {
			if p.debug {
				log.Println("token: ", p.extractLiteralString(tok))
			}
			return nil, p.createInvalidTokenError(tok)
		}

		op := p.extractLiteralString(tok)
		if p.debug {
			log.Println("OP", minBP, op, p.renderAST(left))
		}

		if bp, isPostfixOP := postfixOperatorBindingPowerMap[op]; isPostfixOP {
			if bp < minBP {
				lex.push(tok)
				return left, nil
			}

			left = &ast{list: []*ast{{atom: tok}, left}}
			continue
		}

		if bp, isInfixOP := infixOperatorBindingPowerMap[op]; isInfixOP {
			if bp < minBP {
				lex.push(tok)
				return left, nil
			}

			nextBP := bp + 1
			if rightAssociativeOperatorSet[op] {
				nextBP = bp
			}
			sExpr, err := p.constructAST(lex, nextBP)
			if errors.Is(err, io.EOF) {
				// ok: ignore it
			} else if err != nil {
				return nil, err
			}
			if sExpr == nil {
				return nil, p.createInvalidTokenError(tok)
			}

			left = &ast{list: []*ast{{atom: tok}, left, sExpr}}
			continue
		}

		if op == "(" { // function call
			if callBindingPower < minBP {
				lex.push(tok)
				return left, nil
			}
			if _, isSym := left.atom.(symbolLiteralToken); !isSym || left.list != nil {
				return nil, p.createInvalidTokenError(tok)
			}

			nextTok, err := lex.consume()
			if errors.Is(err, io.EOF) {
				return nil, p.createInvalidTokenError(tok)
			} else if err != nil {
				return nil, err
			}
			if _, isOp := nextTok.(operatorToken); isOp && p.extractLiteralString(nextTok) == ")" {
				left = &ast{list: []*ast{{atom: tok}, left, nil}}
				continue
			}
			lex.push(nextTok)

			sExpr, err := p.constructAST(lex, 0)
			if errors.Is(err, io.EOF) {
				return nil, p.createInvalidTokenError(tok)
			} else if err != nil {
				return nil, err
			}
			if err := p.expectClose(lex, tok); err != nil {
				return nil, err
			}

			left = &ast{list: []*ast{{atom: tok}, left, sExpr}}
			continue
		}

		lex.push(tok)
		return left, nil
	}
}

func (p *parser) expectClose(lex *lexer, open token) error {
	nextTok, err := lex.consume()
	if errors.Is(err, io.EOF) {
		return p.createInvalidTokenError(open)
	} else if err != nil {
		return err
	}
	if p.debug {
		log.Println("paren closing: ", p.extractLiteralString(nextTok))
	}

	if _, isOp := nextTok.(operatorToken); !isOp || p.extractLiteralString(nextTok) != ")" {
		return p.createInvalidTokenError(nextTok)
	}
	return nil
}

func (p *parser) constructOperation(sExpr *ast) (operation, error) {
	if sExpr.list == nil {
		return p.constructOperationByAtom(sExpr.atom)
	}

	first := sExpr.list[0]
	if first.list != nil {
		panic(fmt.Sprintf("invalid AST: %s", p.renderAST(sExpr)))
	}
	opTok, isOP := first.atom.(operatorToken)
	if !isOP {
		panic(fmt.Sprintf("invalid AST: %s", p.renderAST(sExpr)))
	}

	switch len(sExpr.list) {
	case 2:
		ope, err := p.constructOperation(sExpr.list[1])
		if err != nil {
			return nil, err
		}

		switch op := p.extractLiteralString(opTok); op {
		case "(":
			return ope, nil
		case "%":
			return &percentOperation{value: ope}, nil
		default:
			return &calculateUnaryOperation{
				operator: op,
				value:    ope,
			}, nil
		}

	case 3:
		switch op := p.extractLiteralString(opTok); op {
		case "(": // function call
			var args []operation
			if sExpr.list[2] != nil { // nil means no arguments
				for _, arg := range p.expandComma(sExpr.list[2]) {
					ope, err := p.constructOperation(arg)
					if err != nil {
						return nil, err
					}
					args = append(args, ope)
				}
			}

			return &callFunctionOperation{
				name: p.extractLiteralString(sExpr.list[1].atom),
				args: args,
			}, nil

		case ",":
			return nil, p.createInvalidTokenError(opTok)

		default:
			leftOpe, err := p.constructOperation(sExpr.list[1])
			if err != nil {
				return nil, err
			}

			rightOpe, err := p.constructOperation(sExpr.list[2])
			if err != nil {
				return nil, err
			}

			return &calculateBinaryOperation{
				operator: op,
				left:     leftOpe,
				right:    rightOpe,
			}, nil
		}

	default:
		panic(fmt.Sprintf("invalid AST: %s", p.renderAST(sExpr)))
	}
}

func (p *parser) expandComma(sExpr *ast) []*ast {
	if len(sExpr.list) == 3 {
		if opTok, isOP := sExpr.list[0].atom.(operatorToken); isOP && p.extractLiteralString(opTok) == "," {
			left := p.expandComma(sExpr.list[1])
			right := p.expandComma(sExpr.list[2])
			return append(left, right...)
		}
	}
	return []*ast{sExpr}
}

func (p *parser) constructOperationByAtom(t token) (operation, error) {
	switch t.(type) {
	case numericLiteralToken:
		v := strings.TrimSuffix(p.extractLiteralString(t), ".")
		vv, err := decimal.NewFromString(v)
		if err != nil {
			return nil, &types.Error{
				Tag: types.SyntaxErrorTag,
				Err: fmt.Errorf("invalid number %s at %d: %w", v, t.BeginsPos()+1, err),
			}
		}

		return &numberOperation{value: vv}, nil

	case symbolLiteralToken:
		return &retrieveSymbolOperation{name: p.extractLiteralString(t)}, nil

	default:
		return nil, p.createInvalidTokenError(t)
	}
}

func (p *parser) extractLiteralString(t token) string {
	return p.source[t.BeginsPos():t.EndsPos()]
}

func (p *parser) createInvalidTokenError(t token) error {
	return &types.Error{
		Tag: types.SyntaxErrorTag,
		Err: fmt.Errorf("invalid token %s at %d: expr=%q", p.extractLiteralString(t), t.BeginsPos()+1, p.source),
	}
}

func (p *parser) renderAST(sExpr *ast) string {
	if sExpr == nil {
		return "nil"
	}
	if sExpr.list != nil {
		var b strings.Builder
		b.WriteByte('(')
		for i, expr := range sExpr.list {
			if i != 0 {
				b.WriteByte(' ')
			}
			b.WriteString(p.renderAST(expr))
		}
		b.WriteByte(')')
		return b.String()
	}

	switch sExpr.atom.(type) {
	case symbolLiteralToken, numericLiteralToken:
		return p.source[sExpr.atom.BeginsPos():sExpr.atom.EndsPos()]
	default:
		return strconv.Quote(p.source[sExpr.atom.BeginsPos():sExpr.atom.EndsPos()])
	}
}
