package parser

import (
	"fmt"

	"github.com/tacc-lang/tacc/internal/ir"
	"github.com/tacc-lang/tacc/internal/lexer"
)

// parseStatement implements:
//
//	statement := decl ';' | assign ';' | return ';' | print ';' | read ';'
//	           | while_stmt | if_stmt
//
// break and continue are recognized by startsStatement but rejected here:
// the original source generates no IR for them, which this translator
// treats as silently dropped control-flow intent and refuses instead.
func (p *Parser) parseStatement() (string, error) {
	switch p.peekType() {
	case lexer.INT:
		return p.parseSemicolonStatement(p.parseDecl)
	case lexer.RETURN:
		return p.parseSemicolonStatement(p.parseReturn)
	case lexer.PRINT:
		return p.parseSemicolonStatement(p.parsePrint)
	case lexer.READ:
		return p.parseSemicolonStatement(p.parseRead)
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.IF:
		return p.parseIf()
	case lexer.IDENT:
		return p.parseSemicolonStatement(p.parseAssignOrComparison)
	case lexer.BREAK, lexer.CONTINUE:
		return "", p.fail("%s is not supported", p.peek().Literal)
	default:
		return "", p.fail("invalid statement")
	}
}

func (p *Parser) parseSemicolonStatement(rule func() (string, error)) (string, error) {
	code, err := rule()
	if err != nil {
		return "", err
	}
	if _, err := p.expect(lexer.SEMICOLON, "';'"); err != nil {
		return "", err
	}
	return code, nil
}

// parseDecl implements:
//
//	decl := 'int' ('[' expr ']')? IDENT
func (p *Parser) parseDecl() (string, error) {
	if _, err := p.expect(lexer.INT, "'int'"); err != nil {
		return "", err
	}
	if p.at(lexer.LBRACKET) {
		p.advance()
		size, err := p.parseExpr()
		if err != nil {
			return "", err
		}
		if _, err := p.expect(lexer.RBRACKET, "']'"); err != nil {
			return "", err
		}
		name, err := p.expect(lexer.IDENT, "array name")
		if err != nil {
			return "", err
		}
		return size.Code + fmt.Sprintf("%s %s, %s\n", ir.OpIntArray, name.Literal, size.Name), nil
	}
	name, err := p.expect(lexer.IDENT, "variable name")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s\n", ir.OpInt, name.Literal), nil
}

// parseAssignOrComparison implements:
//
//	assign := IDENT ('[' expr ']')? '=' expr
//	        | IDENT rel_op expr
//
// The second alternative is the "statement-as-expression" quirk (spec
// design notes): the comparison is computed into a fresh temporary and the
// result discarded, its only effect being to advance parsing.
func (p *Parser) parseAssignOrComparison() (string, error) {
	ident, err := p.expect(lexer.IDENT, "identifier")
	if err != nil {
		return "", err
	}

	if p.at(lexer.LBRACKET) {
		p.advance()
		idx, err := p.parseExpr()
		if err != nil {
			return "", err
		}
		if _, err := p.expect(lexer.RBRACKET, "']'"); err != nil {
			return "", err
		}
		if _, err := p.expect(lexer.ASSIGN, "'='"); err != nil {
			return "", err
		}
		value, err := p.parseExpr()
		if err != nil {
			return "", err
		}
		code := idx.Code + value.Code
		code += fmt.Sprintf("%s [%s + %s], %s\n", ir.OpMov, ident.Literal, idx.Name, value.Name)
		return code, nil
	}

	if relOpcode, ok := relOpcodeFor(p.peekType()); ok {
		p.advance()
		rhs, err := p.parseExpr()
		if err != nil {
			return "", err
		}
		temp := p.gen.NewTemp()
		code := rhs.Code
		code += fmt.Sprintf("%s %s\n", ir.OpInt, temp)
		code += fmt.Sprintf("%s %s, %s, %s\n", relOpcode, temp, ident.Literal, rhs.Name)
		return code, nil
	}

	if _, err := p.expect(lexer.ASSIGN, "'='"); err != nil {
		return "", err
	}
	value, err := p.parseExpr()
	if err != nil {
		return "", err
	}
	return value.Code + fmt.Sprintf("%s %s, %s\n", ir.OpMov, ident.Literal, value.Name), nil
}

// parseReturn implements: return := 'return' expr
func (p *Parser) parseReturn() (string, error) {
	if _, err := p.expect(lexer.RETURN, "'return'"); err != nil {
		return "", err
	}
	e, err := p.parseExpr()
	if err != nil {
		return "", err
	}
	return e.Code + fmt.Sprintf("%s %s\n", ir.OpRet, e.Name), nil
}

// parsePrint implements: print := 'print' '(' term array_idx? ')'
//
// term already covers array indexing (IDENT '[' expr ']'), so this parses
// a single term and prints whatever operand it resolves to.
func (p *Parser) parsePrint() (string, error) {
	if _, err := p.expect(lexer.PRINT, "'print'"); err != nil {
		return "", err
	}
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return "", err
	}
	t, err := p.parseTerm()
	if err != nil {
		return "", err
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return "", err
	}
	return t.Code + fmt.Sprintf("%s %s\n", ir.OpOut, t.Name), nil
}

// parseRead implements: read := 'read' '(' expr ')'
//
// Per the design notes, an arbitrary expression on the left has no
// meaningful destination; only an identifier or an array-index form does,
// so this narrows the grammar to those instead of accepting a bare expr.
func (p *Parser) parseRead() (string, error) {
	if _, err := p.expect(lexer.READ, "'read'"); err != nil {
		return "", err
	}
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return "", err
	}
	target, err := p.parseReadTarget()
	if err != nil {
		return "", err
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return "", err
	}
	return target.Code + fmt.Sprintf("%s %s\n", ir.OpInput, target.Name), nil
}

func (p *Parser) parseReadTarget() (Expression, error) {
	ident, err := p.expect(lexer.IDENT, "identifier")
	if err != nil {
		return Expression{}, err
	}
	if p.at(lexer.LBRACKET) {
		p.advance()
		idx, err := p.parseExpr()
		if err != nil {
			return Expression{}, err
		}
		if _, err := p.expect(lexer.RBRACKET, "']'"); err != nil {
			return Expression{}, err
		}
		return Expression{Code: idx.Code, Name: fmt.Sprintf("[%s + %s]", ident.Literal, idx.Name)}, nil
	}
	return Expression{Name: ident.Literal}, nil
}

// parseWhile implements:
//
//	while_stmt := 'while' bool_expr '{' statement* '}'
//
// emitting:
//
//	:loopbegin{N}
//	<cond code>
//	%branch_ifn cond, :endloop_{N}
//	<body>
//	%jmp :loopbegin{N}
//	:endloop_{N}
func (p *Parser) parseWhile() (string, error) {
	if _, err := p.expect(lexer.WHILE, "'while'"); err != nil {
		return "", err
	}
	labels := p.gen.NewLoopLabels()
	cond, err := p.parseBoolExpr()
	if err != nil {
		return "", err
	}
	if _, err := p.expect(lexer.LBRACE, "'{'"); err != nil {
		return "", err
	}
	body, err := p.parseStatements()
	if err != nil {
		return "", err
	}
	if _, err := p.expect(lexer.RBRACE, "'}'"); err != nil {
		return "", err
	}

	code := fmt.Sprintf(":%s\n", labels.Begin)
	code += cond.Code
	code += fmt.Sprintf("%s %s, :%s\n", ir.OpBranchIfn, cond.Name, labels.End)
	code += body
	code += fmt.Sprintf("%s :%s\n", ir.OpJmp, labels.Begin)
	code += fmt.Sprintf(":%s\n", labels.End)
	return code, nil
}

// parseIf implements:
//
//	if_stmt := 'if' bool_expr '{' statement* '}' ('else' '{' statement* '}')?
//
// emitting, regardless of whether an else clause is present:
//
//	<cond code>
//	%branch_if cond, :iftrue{N}
//	<else body, if any>
//	%jmp :endif{N}
//	:iftrue{N}
//	<then body>
//	:endif{N}
func (p *Parser) parseIf() (string, error) {
	if _, err := p.expect(lexer.IF, "'if'"); err != nil {
		return "", err
	}
	labels := p.gen.NewIfLabels()
	cond, err := p.parseBoolExpr()
	if err != nil {
		return "", err
	}
	if _, err := p.expect(lexer.LBRACE, "'{'"); err != nil {
		return "", err
	}
	thenBody, err := p.parseStatements()
	if err != nil {
		return "", err
	}
	if _, err := p.expect(lexer.RBRACE, "'}'"); err != nil {
		return "", err
	}

	var elseBody string
	if p.at(lexer.ELSE) {
		p.advance()
		if _, err := p.expect(lexer.LBRACE, "'{'"); err != nil {
			return "", err
		}
		elseBody, err = p.parseStatements()
		if err != nil {
			return "", err
		}
		if _, err := p.expect(lexer.RBRACE, "'}'"); err != nil {
			return "", err
		}
	}

	code := cond.Code
	code += fmt.Sprintf("%s %s, :%s\n", ir.OpBranchIf, cond.Name, labels.True)
	code += elseBody
	code += fmt.Sprintf("%s :%s\n", ir.OpJmp, labels.End)
	code += fmt.Sprintf(":%s\n", labels.True)
	code += thenBody
	code += fmt.Sprintf(":%s\n", labels.End)
	return code, nil
}
