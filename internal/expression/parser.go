package expression

// maxDepth bounds nesting so hostile input cannot exhaust the stack.
const maxDepth = 200

type parser struct {
	tokens []token
	i      int
	depth  int
}

// Parse turns factor expression text into a type-checked tree whose root
// produces a number. Every failure is a *ParseError.
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/') unary)*
//	unary   := ('-' | '+') unary | primary
//	primary := NUMBER | 'currentDate' | IDENT '(' args? ')' | '(' expr ')'
func Parse(src string) (Node, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	if tokens[0].kind == tokenEOF {
		return nil, newParseError(0, "expression is empty")
	}

	p := &parser{tokens: tokens}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		if tok.kind == tokenRParen {
			return nil, newParseError(tok.pos, "unmatched parenthesis ')'")
		}
		return nil, newParseError(tok.pos, "unexpected %s", tok.describe())
	}
	if root.Type() != TypeNumber {
		return nil, newParseError(root.Pos(), "expression must produce a number, got a %s", root.Type())
	}
	return root, nil
}

// MustParse is Parse for expressions known to be valid.
func MustParse(src string) Node {
	n, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return n
}

// Canonical parses src and renders it in canonical form.
func Canonical(src string) (string, error) {
	n, err := Parse(src)
	if err != nil {
		return "", err
	}
	return n.String(), nil
}

func (p *parser) peek() token {
	return p.tokens[p.i]
}

func (p *parser) next() token {
	tok := p.tokens[p.i]
	if tok.kind != tokenEOF {
		p.i++
	}
	return tok
}

func (p *parser) enter(pos int) error {
	p.depth++
	if p.depth > maxDepth {
		return newParseError(pos, "expression is nested too deeply")
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

func requireNumber(n Node, op Operator) error {
	if n.Type() != TypeNumber {
		return newParseError(n.Pos(), "operator '%c' needs numbers, got a %s", op, n.Type())
	}
	return nil
}

func (p *parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokenPlus && tok.kind != tokenMinus {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		op := Operator(tok.text[0])
		if err := requireNumber(left, op); err != nil {
			return nil, err
		}
		if err := requireNumber(right, op); err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, At: tok.pos}
	}
}

func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokenStar && tok.kind != tokenSlash {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		op := Operator(tok.text[0])
		if err := requireNumber(left, op); err != nil {
			return nil, err
		}
		if err := requireNumber(right, op); err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, At: tok.pos}
	}
}

func (p *parser) parseUnary() (Node, error) {
	tok := p.peek()
	if tok.kind != tokenMinus && tok.kind != tokenPlus {
		return p.parsePrimary()
	}
	p.next()
	if err := p.enter(tok.pos); err != nil {
		return nil, err
	}
	defer p.leave()

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	op := Operator(tok.text[0])
	if err := requireNumber(operand, op); err != nil {
		return nil, err
	}
	// unary plus is the identity
	if op == OpAdd {
		return operand, nil
	}
	return &UnaryExpr{Op: op, Operand: operand, At: tok.pos}, nil
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.next()
	switch tok.kind {
	case tokenNumber:
		return &NumberLit{Value: tok.value, At: tok.pos}, nil
	case tokenIdent:
		return p.parseIdent(tok)
	case tokenLParen:
		if err := p.enter(tok.pos); err != nil {
			return nil, err
		}
		defer p.leave()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokenRParen {
			if closing.kind == tokenEOF {
				return nil, newParseError(tok.pos, "unmatched parenthesis '('")
			}
			return nil, newParseError(closing.pos, "expected ')', got %s", closing.describe())
		}
		return inner, nil
	case tokenRParen:
		return nil, newParseError(tok.pos, "unmatched parenthesis ')'")
	case tokenEOF:
		return nil, newParseError(tok.pos, "unexpected end of expression")
	}
	return nil, newParseError(tok.pos, "unexpected %s", tok.describe())
}

func (p *parser) parseIdent(tok token) (Node, error) {
	if tok.text == currentDateKeyword {
		if p.peek().kind == tokenLParen {
			return nil, newParseError(tok.pos, "%s is a keyword and cannot be called", currentDateKeyword)
		}
		return &CurrentDate{At: tok.pos}, nil
	}

	fn, ok := LookupFunction(tok.text)
	if !ok {
		if s := suggest(tok.text); s != "" {
			return nil, newParseError(tok.pos, "unknown identifier '%s', did you mean '%s'?", tok.text, s)
		}
		return nil, newParseError(tok.pos, "unknown identifier '%s'", tok.text)
	}

	open := p.next()
	if open.kind != tokenLParen {
		return nil, newParseError(tok.pos, "function '%s' must be called with arguments", tok.text)
	}
	if err := p.enter(open.pos); err != nil {
		return nil, err
	}
	defer p.leave()

	args := []Node{}
	if p.peek().kind == tokenRParen {
		p.next()
	} else {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			sep := p.next()
			if sep.kind == tokenRParen {
				break
			}
			if sep.kind == tokenComma {
				continue
			}
			if sep.kind == tokenEOF {
				return nil, newParseError(open.pos, "unmatched parenthesis '('")
			}
			return nil, newParseError(sep.pos, "expected ',' or ')', got %s", sep.describe())
		}
	}

	sig := signatures[fn]
	if len(args) != len(sig.args) {
		return nil, newParseError(tok.pos, "function '%s' takes %d argument(s), got %d", sig.name, len(sig.args), len(args))
	}
	for i, want := range sig.args {
		if got := args[i].Type(); got != want {
			return nil, newParseError(args[i].Pos(), "argument %d of '%s' must be a %s, got a %s", i+1, sig.name, want, got)
		}
	}

	return &CallExpr{Func: fn, Args: args, At: tok.pos}, nil
}
