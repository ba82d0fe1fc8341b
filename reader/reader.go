// Package reader turns source text into syntax trees.
//
// Tokens are parentheses and whitespace-delimited atoms. A ';' starts a
// comment that runs to the end of the line.
package reader

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/podhmo/minischeme/ast"
)

// ErrIncomplete is reported when the input ends inside an open list.
// Interactive callers use it to ask for more input.
var ErrIncomplete = errors.New("incomplete expression")

// SyntaxError is a malformed-input error at a byte offset.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Msg)
}

// Token is a lexical unit along with its byte offset in the source.
type Token struct {
	Text   string
	Offset int
}

// Tokenize splits src into tokens.
func Tokenize(src string) []Token {
	var tokens []Token
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case r == ';':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case unicode.IsSpace(r):
			i += size
		case r == '(' || r == ')':
			tokens = append(tokens, Token{Text: string(r), Offset: i})
			i += size
		default:
			start := i
			for i < len(src) {
				r, size := utf8.DecodeRuneInString(src[i:])
				if isDelimiter(r) {
					break
				}
				i += size
			}
			tokens = append(tokens, Token{Text: src[start:i], Offset: start})
		}
	}
	return tokens
}

func isDelimiter(r rune) bool {
	return r == '(' || r == ')' || r == ';' || unicode.IsSpace(r)
}

// Parse reads every top-level form in src.
func Parse(src string) ([]ast.Node, error) {
	p := &parser{tokens: Tokenize(src), end: len(src)}
	var nodes []ast.Node
	for !p.done() {
		node, err := p.parse()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// ParseOne reads exactly one form from src.
func ParseOne(src string) (ast.Node, error) {
	nodes, err := Parse(src)
	if err != nil {
		return nil, err
	}
	switch len(nodes) {
	case 0:
		return nil, fmt.Errorf("no expression: %w", ErrIncomplete)
	case 1:
		return nodes[0], nil
	default:
		return nil, &SyntaxError{Offset: 0, Msg: fmt.Sprintf("expected one expression, got %d", len(nodes))}
	}
}

type parser struct {
	tokens []Token
	pos    int
	end    int
}

func (p *parser) done() bool { return p.pos >= len(p.tokens) }

func (p *parser) parse() (ast.Node, error) {
	if p.done() {
		return nil, fmt.Errorf("unexpected end of input at offset %d: %w", p.end, ErrIncomplete)
	}
	tok := p.tokens[p.pos]
	p.pos++

	switch tok.Text {
	case "(":
		var elements []ast.Node
		for {
			if p.done() {
				return nil, fmt.Errorf("unclosed '(' at offset %d: %w", tok.Offset, ErrIncomplete)
			}
			if p.tokens[p.pos].Text == ")" {
				p.pos++
				return &ast.List{Elements: elements}, nil
			}
			el, err := p.parse()
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
		}
	case ")":
		return nil, &SyntaxError{Offset: tok.Offset, Msg: "unexpected ')'"}
	default:
		return atom(tok.Text), nil
	}
}

func atom(text string) ast.Node {
	if isDecimal(text) {
		v, err := strconv.ParseFloat(text, 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return &ast.Number{Value: v}
		}
	}
	return &ast.Symbol{Name: text}
}

// isDecimal reports whether text is a decimal float literal: an optional sign,
// digits with an optional fraction, and an optional exponent, or one of the
// words inf, infinity and nan. ParseFloat alone would also take Go's hex floats
// and digit separators.
func isDecimal(text string) bool {
	s := text
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	switch strings.ToLower(s) {
	case "inf", "infinity", "nan":
		return true
	}

	i, digits := 0, 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
