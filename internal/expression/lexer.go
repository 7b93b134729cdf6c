package expression

import (
	"fmt"
	"io"
	"strings"

	"github.com/karupanerura/keypad-calculator/internal/types"
)

const operatorChars = "+-*/^%(),"

type lexer struct {
	source string
	index  int
	stack  []lexerContext
	buf    []token
}

func newLexer(source string) *lexer {
	return &lexer{
		source: source,
		index:  0,
		stack: []lexerContext{
			{kind: defaultLexerContext},
		},
		buf: nil,
	}
}

type lexerContextKind int

const (
	defaultLexerContext lexerContextKind = iota
	numericLiteralLexerContext
	symbolLiteralLexerContext
)

type lexerContext struct {
	kind           lexerContextKind
	rangeBeginsIdx int
	dotFound       bool
}

func (l *lexer) isCompleted() bool {
	return l.index == len(l.source) && len(l.stack) == 1 && len(l.buf) == 0
}

func (l *lexer) push(t token) {
	l.buf = append(l.buf, t)
}

func (l *lexer) consume() (token, error) {
	if len(l.stack) == 0 {
		panic(fmt.Sprintf("should not reach here: source=%s", l.source))
	}
	if len(l.buf) != 0 {
		tok := l.buf[len(l.buf)-1]
		l.buf = l.buf[:len(l.buf)-1]
		return tok, nil
	}

	for l.index != len(l.source) {
		context := &l.stack[len(l.stack)-1]
		c := l.source[l.index]
		switch context.kind {
		case defaultLexerContext:
			switch {
			case c == ' ' || c == '\t' || c == '\n':
				l.index++ // just skip white spaces
			case '0' <= c && c <= '9':
				l.stack = append(l.stack, lexerContext{kind: numericLiteralLexerContext, rangeBeginsIdx: l.index})
				l.index++
			case isSymbolHead(c):
				l.stack = append(l.stack, lexerContext{kind: symbolLiteralLexerContext, rangeBeginsIdx: l.index})
				l.index++
			case strings.IndexByte(operatorChars, c) != -1:
				l.index++
				return operatorToken{rangeToken{beginsPos: l.index - 1, endsPos: l.index}}, nil
			default:
				return nil, &types.Error{
					Tag: types.SyntaxErrorTag,
					Err: fmt.Errorf("invalid character at %d: %c", l.index+1, c),
				}
			}

		case numericLiteralLexerContext:
			if '0' <= c && c <= '9' {
				l.index++
				continue
			}
			if c == '.' && !context.dotFound {
				context.dotFound = true
				l.index++
				continue
			}

			l.stack = l.stack[:len(l.stack)-1]
			return numericLiteralToken{rangeToken{beginsPos: context.rangeBeginsIdx, endsPos: l.index}}, nil

		case symbolLiteralLexerContext:
			if isSymbolHead(c) || ('0' <= c && c <= '9') {
				l.index++
				continue
			}

			l.stack = l.stack[:len(l.stack)-1]
			return symbolLiteralToken{rangeToken{beginsPos: context.rangeBeginsIdx, endsPos: l.index}}, nil
		}
	}

	// flush the literal running up to the end of the source
	context := l.stack[len(l.stack)-1]
	switch context.kind {
	case defaultLexerContext:
		return nil, io.EOF
	case numericLiteralLexerContext:
		l.stack = l.stack[:len(l.stack)-1]
		return numericLiteralToken{rangeToken{beginsPos: context.rangeBeginsIdx, endsPos: l.index}}, nil
	case symbolLiteralLexerContext:
		l.stack = l.stack[:len(l.stack)-1]
		return symbolLiteralToken{rangeToken{beginsPos: context.rangeBeginsIdx, endsPos: l.index}}, nil
	default:
		panic(fmt.Sprintf("should not reach here: source=%s", l.source))
	}
}

func isSymbolHead(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}
