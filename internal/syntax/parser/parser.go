// Package parser implements a recursive-descent parser over the token
// stream produced by internal/syntax/lexer, producing the surface tree
// defined in internal/syntax/ast. It stands in for an external
// syntactic parser feeding the core compiler; the adapter in
// internal/compiler/parser maps its output onto the core AST.
package parser

import (
	"github.com/carbon-lang/carbonc/internal/syntax/ast"
	"github.com/carbon-lang/carbonc/internal/syntax/lexer"
)

// Parser consumes a token slice and produces a *ast.Program.
type Parser struct {
	tokens []lexer.Token
	pos    int
	errors []SyntaxError
}

// New creates a Parser over an already-scanned token stream.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the full token stream into a Program. Parse errors are
// collected rather than aborting immediately: the parser resynchronizes
// at the next NEWLINE so later statements can still be recovered.
func (p *Parser) Parse() (*ast.Program, []SyntaxError) {
	prog := &ast.Program{}
	for !p.check(lexer.TOKEN_EOF) {
		if p.check(lexer.TOKEN_NEWLINE) {
			p.advance()
			continue
		}
		stmt := p.statement()
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
	}
	return prog, p.errors
}

func (p *Parser) statement() ast.Stmt {
	switch p.peek().Type {
	case lexer.TOKEN_IF:
		return p.ifStmt()
	case lexer.TOKEN_WHILE:
		return p.whileStmt()
	case lexer.TOKEN_FOR:
		return p.forStmt()
	case lexer.TOKEN_DEF:
		return p.funcDef()
	case lexer.TOKEN_RETURN:
		return p.returnStmt()
	default:
		return p.simpleStmt()
	}
}

func (p *Parser) block() []ast.Stmt {
	if p.expect(lexer.TOKEN_NEWLINE, "expected newline before indented block").Type != lexer.TOKEN_NEWLINE {
		p.syncToNewline()
		return nil
	}
	if p.expect(lexer.TOKEN_INDENT, "expected an indented block").Type != lexer.TOKEN_INDENT {
		p.syncToNewline()
		return nil
	}
	var body []ast.Stmt
	for !p.check(lexer.TOKEN_DEDENT) && !p.check(lexer.TOKEN_EOF) {
		if p.check(lexer.TOKEN_NEWLINE) {
			p.advance()
			continue
		}
		stmt := p.statement()
		if stmt != nil {
			body = append(body, stmt)
		}
	}
	p.expect(lexer.TOKEN_DEDENT, "expected dedent closing block")
	return body
}

func (p *Parser) ifStmt() ast.Stmt {
	tok := p.advance() // IF
	test := p.expression()
	p.expect(lexer.TOKEN_COLON, "expected ':' after if condition")
	body := p.block()

	node := &ast.IfStmt{Test: test, Body: body, At: pos(tok)}

	switch {
	case p.check(lexer.TOKEN_ELIF):
		// Treat `elif` as `else: if ...`, parsed recursively so the
		// chain becomes nested IfStmt nodes, matching the way the
		// adapter only ever sees If/Orelse pairs.
		node.Else = []ast.Stmt{p.ifStmtFromElif()}
	case p.check(lexer.TOKEN_ELSE):
		p.advance()
		p.expect(lexer.TOKEN_COLON, "expected ':' after else")
		node.Else = p.block()
	}

	return node
}

// ifStmtFromElif parses an `elif` clause as if it were an `if`, reusing
// ifStmt's body/else handling.
func (p *Parser) ifStmtFromElif() ast.Stmt {
	tok := p.advance() // ELIF
	test := p.expression()
	p.expect(lexer.TOKEN_COLON, "expected ':' after elif condition")
	body := p.block()

	node := &ast.IfStmt{Test: test, Body: body, At: pos(tok)}

	switch {
	case p.check(lexer.TOKEN_ELIF):
		node.Else = []ast.Stmt{p.ifStmtFromElif()}
	case p.check(lexer.TOKEN_ELSE):
		p.advance()
		p.expect(lexer.TOKEN_COLON, "expected ':' after else")
		node.Else = p.block()
	}

	return node
}

func (p *Parser) whileStmt() ast.Stmt {
	tok := p.advance() // WHILE
	test := p.expression()
	p.expect(lexer.TOKEN_COLON, "expected ':' after while condition")
	body := p.block()
	return &ast.WhileStmt{Test: test, Body: body, At: pos(tok)}
}

func (p *Parser) forStmt() ast.Stmt {
	tok := p.advance() // FOR
	target := p.expect(lexer.TOKEN_IDENT, "expected loop variable name")
	p.expect(lexer.TOKEN_IN, "expected 'in' after for target")
	iter := p.expression()
	p.expect(lexer.TOKEN_COLON, "expected ':' after for clause")
	body := p.block()
	return &ast.ForStmt{Target: target.Lexeme, Iter: iter, Body: body, At: pos(tok)}
}

func (p *Parser) funcDef() ast.Stmt {
	tok := p.advance() // DEF
	name := p.expect(lexer.TOKEN_IDENT, "expected function name")
	p.expect(lexer.TOKEN_LPAREN, "expected '(' after function name")
	var params []string
	if !p.check(lexer.TOKEN_RPAREN) {
		params = append(params, p.expect(lexer.TOKEN_IDENT, "expected parameter name").Lexeme)
		for p.match(lexer.TOKEN_COMMA) {
			params = append(params, p.expect(lexer.TOKEN_IDENT, "expected parameter name").Lexeme)
		}
	}
	p.expect(lexer.TOKEN_RPAREN, "expected ')' after parameter list")
	p.expect(lexer.TOKEN_COLON, "expected ':' after function signature")
	body := p.block()
	return &ast.FuncDefStmt{Name: name.Lexeme, Params: params, Body: body, At: pos(tok)}
}

func (p *Parser) returnStmt() ast.Stmt {
	tok := p.advance() // RETURN
	var value ast.Expr
	if !p.check(lexer.TOKEN_NEWLINE) && !p.check(lexer.TOKEN_EOF) {
		value = p.expression()
	}
	p.expectStatementEnd()
	return &ast.ReturnStmt{Value: value, At: pos(tok)}
}

func (p *Parser) simpleStmt() ast.Stmt {
	start := p.peek()
	if p.check(lexer.TOKEN_IDENT) && p.checkNext(lexer.TOKEN_ASSIGN) {
		name := p.advance()
		p.advance() // '='
		value := p.expression()
		p.expectStatementEnd()
		return &ast.AssignStmt{Target: name.Lexeme, Value: value, At: pos(name)}
	}
	expr := p.expression()
	p.expectStatementEnd()
	return &ast.ExprStmt{Value: expr, At: pos(start)}
}

func (p *Parser) expectStatementEnd() {
	if p.check(lexer.TOKEN_NEWLINE) {
		p.advance()
		return
	}
	if p.check(lexer.TOKEN_EOF) || p.check(lexer.TOKEN_DEDENT) {
		return
	}
	p.errorAt(p.peek(), "expected end of statement")
	p.syncToNewline()
}

// --- expressions, by precedence ---

func (p *Parser) expression() ast.Expr {
	return p.orExpr()
}

func (p *Parser) orExpr() ast.Expr {
	left := p.andExpr()
	if !p.check(lexer.TOKEN_OR) {
		return left
	}
	values := []ast.Expr{left}
	at := left.Pos()
	for p.match(lexer.TOKEN_OR) {
		values = append(values, p.andExpr())
	}
	return &ast.BoolOpExpr{Op: "or", Values: values, At: at}
}

func (p *Parser) andExpr() ast.Expr {
	left := p.notExpr()
	if !p.check(lexer.TOKEN_AND) {
		return left
	}
	values := []ast.Expr{left}
	at := left.Pos()
	for p.match(lexer.TOKEN_AND) {
		values = append(values, p.notExpr())
	}
	return &ast.BoolOpExpr{Op: "and", Values: values, At: at}
}

func (p *Parser) notExpr() ast.Expr {
	if p.check(lexer.TOKEN_NOT) {
		tok := p.advance()
		operand := p.notExpr()
		return &ast.UnaryExpr{Op: "not", Operand: operand, At: pos(tok)}
	}
	return p.comparison()
}

var cmpOps = map[lexer.TokenType]string{
	lexer.TOKEN_EQ: "==",
	lexer.TOKEN_NE: "!=",
	lexer.TOKEN_LT: "<",
	lexer.TOKEN_LE: "<=",
	lexer.TOKEN_GT: ">",
	lexer.TOKEN_GE: ">=",
}

func (p *Parser) comparison() ast.Expr {
	left := p.arith()
	var ops []string
	var comparators []ast.Expr
	for {
		op, ok := cmpOps[p.peek().Type]
		if !ok {
			break
		}
		p.advance()
		ops = append(ops, op)
		comparators = append(comparators, p.arith())
	}
	if len(ops) == 0 {
		return left
	}
	return &ast.CompareExpr{Left: left, Ops: ops, Comparators: comparators, At: left.Pos()}
}

func (p *Parser) arith() ast.Expr {
	left := p.term()
	for p.check(lexer.TOKEN_PLUS) || p.check(lexer.TOKEN_MINUS) {
		tok := p.advance()
		op := "+"
		if tok.Type == lexer.TOKEN_MINUS {
			op = "-"
		}
		right := p.term()
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right, At: left.Pos()}
	}
	return left
}

func (p *Parser) term() ast.Expr {
	left := p.unary()
	for p.check(lexer.TOKEN_STAR) || p.check(lexer.TOKEN_SLASH) || p.check(lexer.TOKEN_PERCENT) {
		tok := p.advance()
		var op string
		switch tok.Type {
		case lexer.TOKEN_STAR:
			op = "*"
		case lexer.TOKEN_SLASH:
			op = "/"
		case lexer.TOKEN_PERCENT:
			op = "%"
		}
		right := p.unary()
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right, At: left.Pos()}
	}
	return left
}

func (p *Parser) unary() ast.Expr {
	if p.check(lexer.TOKEN_MINUS) {
		tok := p.advance()
		operand := p.unary()
		return &ast.UnaryExpr{Op: "-", Operand: operand, At: pos(tok)}
	}
	return p.primary()
}

func (p *Parser) primary() ast.Expr {
	tok := p.peek()
	switch tok.Type {
	case lexer.TOKEN_INT:
		p.advance()
		return &ast.ConstExpr{Kind: ast.LitInt, Int: parseInt(tok.Lexeme), At: pos(tok)}
	case lexer.TOKEN_FLOAT:
		p.advance()
		return &ast.ConstExpr{Kind: ast.LitFloat, Float: parseFloat(tok.Lexeme), At: pos(tok)}
	case lexer.TOKEN_STRING:
		p.advance()
		return &ast.ConstExpr{Kind: ast.LitString, String: tok.Lexeme, At: pos(tok)}
	case lexer.TOKEN_TRUE:
		p.advance()
		return &ast.ConstExpr{Kind: ast.LitBool, Bool: true, At: pos(tok)}
	case lexer.TOKEN_FALSE:
		p.advance()
		return &ast.ConstExpr{Kind: ast.LitBool, Bool: false, At: pos(tok)}
	case lexer.TOKEN_NULL:
		p.advance()
		return &ast.ConstExpr{Kind: ast.LitNull, At: pos(tok)}
	case lexer.TOKEN_LPAREN:
		p.advance()
		expr := p.expression()
		p.expect(lexer.TOKEN_RPAREN, "expected ')'")
		return expr
	case lexer.TOKEN_LBRACKET:
		return p.listExpr()
	case lexer.TOKEN_IDENT:
		p.advance()
		if p.check(lexer.TOKEN_LPAREN) {
			return p.callExpr(tok)
		}
		return &ast.NameExpr{ID: tok.Lexeme, At: pos(tok)}
	default:
		p.errorAt(tok, "expected an expression")
		p.advance()
		return &ast.ConstExpr{Kind: ast.LitNull, At: pos(tok)}
	}
}

func (p *Parser) callExpr(name lexer.Token) ast.Expr {
	p.advance() // '('
	var args []ast.Expr
	if !p.check(lexer.TOKEN_RPAREN) {
		args = append(args, p.expression())
		for p.match(lexer.TOKEN_COMMA) {
			args = append(args, p.expression())
		}
	}
	p.expect(lexer.TOKEN_RPAREN, "expected ')' after call arguments")
	return &ast.CallExpr{Func: name.Lexeme, Args: args, At: pos(name)}
}

func (p *Parser) listExpr() ast.Expr {
	tok := p.advance() // '['
	var elts []ast.Expr
	if !p.check(lexer.TOKEN_RBRACKET) {
		elts = append(elts, p.expression())
		for p.match(lexer.TOKEN_COMMA) {
			elts = append(elts, p.expression())
		}
	}
	p.expect(lexer.TOKEN_RBRACKET, "expected ']' closing list literal")
	return &ast.ListExpr{Elts: elts, At: pos(tok)}
}

// --- token stream plumbing ---

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) checkNext(t lexer.TokenType) bool {
	return p.peekAt(1).Type == t
}

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(t lexer.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) match(t lexer.TokenType) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(t lexer.TokenType, message string) lexer.Token {
	if p.check(t) {
		return p.advance()
	}
	p.errorAt(p.peek(), message)
	return p.peek()
}

func (p *Parser) errorAt(tok lexer.Token, message string) {
	p.errors = append(p.errors, SyntaxError{Message: message, Line: tok.Line, Column: tok.Column})
}

// syncToNewline discards tokens until a NEWLINE, DEDENT, or EOF is
// found, allowing parsing to resume after a malformed statement.
func (p *Parser) syncToNewline() {
	for !p.check(lexer.TOKEN_NEWLINE) && !p.check(lexer.TOKEN_DEDENT) && !p.check(lexer.TOKEN_EOF) {
		p.advance()
	}
	if p.check(lexer.TOKEN_NEWLINE) {
		p.advance()
	}
}

func pos(tok lexer.Token) ast.Pos {
	return ast.Pos{Line: tok.Line, Column: tok.Column}
}
