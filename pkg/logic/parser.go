package logic

import (
	"fmt"
	"strings"
	"text/scanner"
	"unicode"
)

// =============================================================================
// Parser
// =============================================================================

// Parse parses a decision-logic string into an expression tree.
//
// The grammar uses the keywords "and", "or" and "not" with conventional
// precedence (not > and > or) and parentheses for grouping:
//
//	expr  := or
//	or    := and ("or" and)*
//	and   := unary ("and" unary)*
//	unary := "not" unary | ident | "(" expr ")"
//
// Operands chained at the same level are collected into a single flat
// [And]/[Or] node, so "a and b and c" parses as one three-way conjunction.
func Parse(input string) (Expr, error) {
	var s scanner.Scanner
	s.Init(strings.NewReader(input))
	// Report nothing; errors surface through token inspection below.
	s.Error = func(*scanner.Scanner, string) {}

	p := &parser{s: &s}
	p.scan()
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.eof {
		return nil, fmt.Errorf("unexpected token %q at %s", p.token, p.s.Pos())
	}
	return expr, nil
}

type parser struct {
	s     *scanner.Scanner
	eof   bool   // have we reached end of input?
	token string // last token read
}

func (p *parser) scan() {
	if p.eof {
		return
	}
	p.eof = p.s.Scan() == scanner.EOF
	p.token = p.s.TokenText()
}

func (p *parser) parseOr() (Expr, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	operands := []Expr{first}
	for !p.eof && p.token == "or" {
		p.scan()
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	if len(operands) == 1 {
		return first, nil
	}
	return Or{Operands: operands}, nil
}

func (p *parser) parseAnd() (Expr, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	operands := []Expr{first}
	for !p.eof && p.token == "and" {
		p.scan()
		next, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	if len(operands) == 1 {
		return first, nil
	}
	return And{Operands: operands}, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.eof {
		return nil, fmt.Errorf("expected expression, found end of input at %s", p.s.Pos())
	}
	if p.token == "not" {
		p.scan()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not{Operand: operand}, nil
	}
	return p.parseBasic()
}

func (p *parser) parseBasic() (Expr, error) {
	if p.eof {
		return nil, fmt.Errorf("expected expression, found end of input at %s", p.s.Pos())
	}
	if p.token == "(" {
		p.scan()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.eof {
			return nil, fmt.Errorf("expected closing parenthesis, found end of input at %s", p.s.Pos())
		}
		if p.token != ")" {
			return nil, fmt.Errorf("expected closing parenthesis, found %q at %s", p.token, p.s.Pos())
		}
		p.scan()
		return expr, nil
	}
	if !isIdent(p.token) {
		return nil, fmt.Errorf("unexpected token %q at %s", p.token, p.s.Pos())
	}
	name := p.token
	p.scan()
	return Ident{Name: name}, nil
}

// isIdent reports whether token is a valid identifier: a letter or underscore
// followed by letters, digits or underscores, and not a reserved keyword.
func isIdent(token string) bool {
	if token == "" || token == "and" || token == "or" || token == "not" {
		return false
	}
	for i, r := range token {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
