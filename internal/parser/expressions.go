package parser

import (
	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/lexer"
)

// expression is the entry point of the expression grammar.
func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment parses `( call "." )? IDENT "=" assignment | logic_or`.
// Assignment targets are recognized after the fact: we parse the left side
// as a normal expression, and if an '=' follows, we require that the left
// side was a Variable or Get (the latter rewritten into a Set) — anything
// else is an "invalid assignment target" error that does not panic, since
// the rest of the expression was already parsed successfully.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(lexer.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignExpr{Name: target.Name, Value: value}
		case *ast.GetExpr:
			return &ast.SetExpr{Object: target.Object, Name: target.Name, Value: value}
		default:
			p.fail(equals, ErrInvalidAssignment, "invalid assignment target")
			return expr
		}
	}

	return expr
}

// or parses `logic_and ( "or" logic_and )*`.
func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(lexer.OR) {
		op := p.previous()
		right := p.and()
		expr = &ast.LogicalExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// and parses `equality ( "and" equality )*`.
func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(lexer.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.LogicalExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// equality parses `comparison ( ( "!=" | "==" ) comparison )*`.
func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(lexer.BANG_EQUAL, lexer.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// comparison parses `term ( ( ">" | ">=" | "<" | "<=" ) term )*`.
func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(lexer.GREATER, lexer.GREATER_EQUAL, lexer.LESS, lexer.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// term parses `factor ( ( "+" | "-" ) factor )*`.
func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(lexer.PLUS, lexer.MINUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// factor parses `unary ( ( "*" | "/" ) unary )*`.
func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(lexer.STAR, lexer.SLASH) {
		op := p.previous()
		right := p.unary()
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// unary parses `( "!" | "-" ) unary | call`.
func (p *Parser) unary() ast.Expr {
	if p.match(lexer.BANG, lexer.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.UnaryExpr{Operator: op, Right: right}
	}
	return p.call()
}

// call parses `primary ( "(" arguments? ")" | "." IDENT )*`.
func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(lexer.LPAREN):
			expr = p.finishCall(expr)
		case p.match(lexer.DOT):
			name := p.consume(lexer.IDENT, ErrUnexpectedToken, "expect property name after '.'")
			expr = &ast.GetExpr{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

// finishCall parses the argument list of a call expression; the opening
// '(' has already been consumed.
func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(lexer.RPAREN) {
		for {
			if len(args) >= maxArgs {
				p.fail(p.peek(), ErrTooManyArgs, "can't have more than 255 arguments")
			}
			args = append(args, p.expression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	paren := p.consume(lexer.RPAREN, ErrUnexpectedToken, "expect ')' after arguments")
	return &ast.CallExpr{Callee: callee, Paren: paren, Arguments: args}
}

// primary parses the innermost expression forms: literals, grouping,
// identifiers, `this`, and `super.method`.
func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(lexer.FALSE):
		return &ast.LiteralExpr{Token: p.previous(), Value: false}
	case p.match(lexer.TRUE):
		return &ast.LiteralExpr{Token: p.previous(), Value: true}
	case p.match(lexer.NIL):
		return &ast.LiteralExpr{Token: p.previous(), Value: nil}
	case p.match(lexer.NUMBER, lexer.STRING):
		tok := p.previous()
		return &ast.LiteralExpr{Token: tok, Value: tok.Literal}
	case p.match(lexer.SUPER):
		keyword := p.previous()
		p.consume(lexer.DOT, ErrUnexpectedToken, "expect '.' after 'super'")
		method := p.consume(lexer.IDENT, ErrUnexpectedToken, "expect superclass method name")
		return &ast.SuperExpr{Keyword: keyword, Method: method}
	case p.match(lexer.THIS):
		return &ast.ThisExpr{Keyword: p.previous()}
	case p.match(lexer.IDENT):
		return &ast.VariableExpr{Name: p.previous()}
	case p.match(lexer.LPAREN):
		lparen := p.previous()
		expr := p.expression()
		p.consume(lexer.RPAREN, ErrUnexpectedToken, "expect ')' after expression")
		return &ast.GroupingExpr{LParen: lparen, Expression: expr}
	}

	panic(p.fail(p.peek(), ErrExpectedExpr, "expect expression"))
}
