package parser

import (
	"fmt"
	"strings"

	"github.com/tacc-lang/tacc/internal/ir"
	"github.com/tacc-lang/tacc/internal/lexer"
)

// parseExpr implements: expr := mul_expr (('+' | '-') mul_expr)*
func (p *Parser) parseExpr() (Expression, error) {
	left, err := p.parseMulExpr()
	if err != nil {
		return Expression{}, err
	}
	for {
		var opcode string
		switch p.peekType() {
		case lexer.PLUS:
			opcode = ir.OpAdd
		case lexer.MINUS:
			opcode = ir.OpSub
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseMulExpr()
		if err != nil {
			return Expression{}, err
		}
		left = p.combine(left, right, opcode)
	}
}

// parseMulExpr implements: mul_expr := term (('*' | '/' | '%') term)*
func (p *Parser) parseMulExpr() (Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return Expression{}, err
	}
	for {
		var opcode string
		switch p.peekType() {
		case lexer.STAR:
			opcode = ir.OpMult
		case lexer.SLASH:
			opcode = ir.OpDiv
		case lexer.PERCENT:
			opcode = ir.OpMod
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return Expression{}, err
		}
		left = p.combine(left, right, opcode)
	}
}

// combine allocates a fresh temporary for the result of a binary operator
// and emits its declaration and the operation, in that order, following
// both operands' code.
func (p *Parser) combine(left, right Expression, opcode string) Expression {
	temp := p.gen.NewTemp()
	code := left.Code + right.Code
	code += fmt.Sprintf("%s %s\n", ir.OpInt, temp)
	code += fmt.Sprintf("%s %s, %s, %s\n", opcode, temp, left.Name, right.Name)
	return Expression{Code: code, Name: temp}
}

// parseTerm implements:
//
//	term := NUM
//	      | IDENT ( '(' arg_list? ')' | '[' expr ']' )?
//	      | '(' expr ')'
func (p *Parser) parseTerm() (Expression, error) {
	switch p.peekType() {
	case lexer.NUM:
		tok := p.advance()
		return Expression{Name: tok.Literal}, nil

	case lexer.IDENT:
		tok := p.advance()
		switch p.peekType() {
		case lexer.LPAREN:
			return p.parseCall(tok.Literal)
		case lexer.LBRACKET:
			return p.parseIndex(tok.Literal)
		default:
			return Expression{Name: tok.Literal}, nil
		}

	case lexer.LPAREN:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return Expression{}, err
		}
		if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
			return Expression{}, err
		}
		return e, nil

	default:
		return Expression{}, p.fail("invalid expression")
	}
}

// parseIndex handles the '[' expr ']' suffix of term, loading the
// addressed element into a fresh temporary.
func (p *Parser) parseIndex(name string) (Expression, error) {
	p.advance() // '['
	idx, err := p.parseExpr()
	if err != nil {
		return Expression{}, err
	}
	if _, err := p.expect(lexer.RBRACKET, "']'"); err != nil {
		return Expression{}, err
	}
	temp := p.gen.NewTemp()
	code := idx.Code
	code += fmt.Sprintf("%s %s\n", ir.OpInt, temp)
	code += fmt.Sprintf("%s %s, [%s + %s]\n", ir.OpMov, temp, name, idx.Name)
	return Expression{Code: code, Name: temp}, nil
}

// parseCall handles the '(' arg_list? ')' suffix of term.
func (p *Parser) parseCall(name string) (Expression, error) {
	p.advance() // '('
	var args []Expression
	if !p.at(lexer.RPAREN) {
		var err error
		args, err = p.parseArgList()
		if err != nil {
			return Expression{}, err
		}
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return Expression{}, err
	}

	temp := p.gen.NewTemp()
	var code strings.Builder
	names := make([]string, len(args))
	for i, a := range args {
		code.WriteString(a.Code)
		names[i] = a.Name
	}
	code.WriteString(fmt.Sprintf("%s %s\n", ir.OpInt, temp))
	code.WriteString(fmt.Sprintf("%s %s, %s(%s)\n", ir.OpCall, temp, name, strings.Join(names, ",")))
	return Expression{Code: code.String(), Name: temp}, nil
}

// parseArgList implements: arg_list := expr (',' expr)*
func (p *Parser) parseArgList() ([]Expression, error) {
	var args []Expression
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if !p.at(lexer.COMMA) {
			break
		}
		p.advance()
	}
	return args, nil
}

// parseBoolExpr implements: bool_expr := term rel_op term
func (p *Parser) parseBoolExpr() (Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return Expression{}, err
	}
	opcode, ok := relOpcodeFor(p.peekType())
	if !ok {
		return Expression{}, p.fail("expected relational operator")
	}
	p.advance()
	right, err := p.parseTerm()
	if err != nil {
		return Expression{}, err
	}
	return p.combine(left, right, opcode), nil
}

// relOpcodeFor maps a relational token type to its IR opcode.
func relOpcodeFor(tt lexer.TokenType) (string, bool) {
	switch tt {
	case lexer.LT:
		return ir.OpLt, true
	case lexer.LE:
		return ir.OpLe, true
	case lexer.GT:
		return ir.OpGt, true
	case lexer.GE:
		return ir.OpGe, true
	case lexer.EQ:
		return ir.OpEq, true
	case lexer.NEQ:
		return ir.OpNeq, true
	default:
		return "", false
	}
}
