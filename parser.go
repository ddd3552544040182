package xdrls

import (
	"fmt"

	"github.com/drebelsky/xdr-ls/ast"
)

// keywords are reserved by RFC 4506 and rejected wherever a declared or
// referenced name is expected.
var keywords = map[string]struct{}{
	"bool":      {},
	"case":      {},
	"const":     {},
	"default":   {},
	"double":    {},
	"enum":      {},
	"float":     {},
	"hyper":     {},
	"int":       {},
	"opaque":    {},
	"quadruple": {},
	"string":    {},
	"struct":    {},
	"switch":    {},
	"typedef":   {},
	"union":     {},
	"unsigned":  {},
	"void":      {},
}

func parse(tokens []token, onError func(error)) (*ast.Specification, []error) {
	var errors []error
	// Comments can sit between any two tokens, so they are dropped once
	// here instead of being skipped at every call site.
	kept := make([]token, 0, len(tokens))
	for _, t := range tokens {
		if t.Type != tokenTypeComment {
			kept = append(kept, t)
		}
	}
	p := parser{
		tokens: kept,
		length: len(kept),
		onError: func(err error) {
			errors = append(errors, err)
			if onError != nil {
				onError(err)
			}
		},
	}
	p.parse()
	if len(errors) > 0 {
		return nil, errors
	}
	return &p.spec, nil
}

type parser struct {
	tokens  []token
	pos     int
	length  int
	spec    ast.Specification
	onError func(error)
}

func (p *parser) errorf(format string, args ...interface{}) {
	p.onError(fmt.Errorf(format, args...))
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) eof() bool {
	return p.pos >= p.length || p.peek().Type == tokenTypeEOF
}

func (p *parser) expect(expected tokenType) *token {
	pk := p.peek()
	if pk.Type != expected {
		p.errorf("Expected %s but got %s at line %d column %d", expected, pk.Type, pk.Line, pk.Column)
		return nil
	}
	p.pos++
	return &pk
}

func (p *parser) expectKeyword(kw string) bool {
	pk := p.peek()
	if pk.Type != tokenTypeIdentifier || pk.Value != kw {
		p.errorf("Expected %q but got %q at line %d column %d", kw, pk.Value, pk.Line, pk.Column)
		return false
	}
	p.advance()
	return true
}

func (p *parser) consumeUntilSemiOrLinebreak() {
	currentLine := p.peek().Line
	for !p.eof() {
		if p.peek().Type == tokenTypeSemi {
			p.advance()
			break
		}
		if p.peek().Line != currentLine {
			break
		}
		p.advance()
	}
}

func identFromToken(t token) ast.Identifier {
	return ast.Identifier{Name: t.Value, Start: t.Pos, End: t.Pos + len(t.Value)}
}

// declaredIdent consumes an identifier that names something, rejecting
// keywords.
func (p *parser) declaredIdent() (ast.Identifier, bool) {
	tk := p.expect(tokenTypeIdentifier)
	if tk == nil {
		return ast.Identifier{}, false
	}
	if _, ok := keywords[tk.Value]; ok {
		p.errorf("Unexpected keyword %q at line %d column %d, expected identifier", tk.Value, tk.Line, tk.Column)
		return ast.Identifier{}, false
	}
	return identFromToken(*tk), true
}

func (p *parser) parse() {
	for !p.eof() {
		pk := p.peek()
		if pk.Type != tokenTypeIdentifier {
			p.errorf("Unexpected %s at line %d column %d; expected const, typedef, enum, struct, or union", pk.Type, pk.Line, pk.Column)
			p.consumeUntilSemiOrLinebreak()
			continue
		}
		switch pk.Value {
		case "const":
			if d := p.parseConstDef(); d != nil {
				p.spec.Definitions = append(p.spec.Definitions, d)
			}
		case "typedef":
			if d := p.parseTypedefDef(); d != nil {
				p.spec.Definitions = append(p.spec.Definitions, d)
			}
		case "enum":
			if d := p.parseEnumDef(); d != nil {
				p.spec.Definitions = append(p.spec.Definitions, d)
			}
		case "struct":
			if d := p.parseStructDef(); d != nil {
				p.spec.Definitions = append(p.spec.Definitions, d)
			}
		case "union":
			if d := p.parseUnionDef(); d != nil {
				p.spec.Definitions = append(p.spec.Definitions, d)
			}
		default:
			p.errorf("Unexpected %q at line %d column %d; expected const, typedef, enum, struct, or union", pk.Value, pk.Line, pk.Column)
			p.consumeUntilSemiOrLinebreak()
		}
	}
}

func (p *parser) parseConstDef() ast.Definition {
	p.advance() // Consume "const"
	name, ok := p.declaredIdent()
	if !ok {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	if p.expect(tokenTypeEqual) == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	// RFC 4506 only allows literal constants on the right-hand side of a
	// const definition; identifiers are not values here.
	value := p.expect(tokenTypeNumber)
	if value == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	if p.expect(tokenTypeSemi) == nil {
		p.consumeUntilSemiOrLinebreak()
	}
	return &ast.ConstDef{Ident: name, Value: value.Value}
}

func (p *parser) parseTypedefDef() ast.Definition {
	p.advance() // Consume "typedef"
	decl := p.parseDeclaration()
	if decl == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	if p.expect(tokenTypeSemi) == nil {
		p.consumeUntilSemiOrLinebreak()
	}
	return &ast.TypedefDef{Decl: decl}
}

func (p *parser) parseEnumDef() ast.Definition {
	p.advance() // Consume "enum"
	name, ok := p.declaredIdent()
	if !ok {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	body := p.parseEnumBody()
	if body == nil {
		return nil
	}
	if p.expect(tokenTypeSemi) == nil {
		p.consumeUntilSemiOrLinebreak()
	}
	return &ast.EnumDef{Ident: name, Body: body}
}

func (p *parser) parseStructDef() ast.Definition {
	p.advance() // Consume "struct"
	name, ok := p.declaredIdent()
	if !ok {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	body := p.parseStructBody()
	if body == nil {
		return nil
	}
	if p.expect(tokenTypeSemi) == nil {
		p.consumeUntilSemiOrLinebreak()
	}
	return &ast.StructDef{Ident: name, Body: body}
}

func (p *parser) parseUnionDef() ast.Definition {
	p.advance() // Consume "union"
	name, ok := p.declaredIdent()
	if !ok {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	body := p.parseUnionBody()
	if body == nil {
		return nil
	}
	if p.expect(tokenTypeSemi) == nil {
		p.consumeUntilSemiOrLinebreak()
	}
	return &ast.UnionDef{Ident: name, Body: body}
}

func (p *parser) parseEnumBody() *ast.EnumBody {
	if p.expect(tokenTypeLeftCurly) == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	body := &ast.EnumBody{}
	for !p.eof() {
		name, ok := p.declaredIdent()
		if !ok {
			p.consumeUntilSemiOrLinebreak()
			break
		}
		if p.expect(tokenTypeEqual) == nil {
			p.consumeUntilSemiOrLinebreak()
			break
		}
		value := p.parseValue()
		if value == nil {
			p.consumeUntilSemiOrLinebreak()
			break
		}
		body.Members = append(body.Members, ast.EnumMember{Ident: name, Value: value})
		if p.peek().Type == tokenTypeComma {
			p.advance()
			continue
		}
		break
	}
	p.expect(tokenTypeRightCurly)
	return body
}

func (p *parser) parseStructBody() *ast.StructBody {
	if p.expect(tokenTypeLeftCurly) == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	body := &ast.StructBody{}
	for !p.eof() && p.peek().Type != tokenTypeRightCurly {
		decl := p.parseDeclaration()
		if decl == nil {
			p.consumeUntilSemiOrLinebreak()
			continue
		}
		if p.expect(tokenTypeSemi) == nil {
			p.consumeUntilSemiOrLinebreak()
			continue
		}
		body.Decls = append(body.Decls, decl)
	}
	p.expect(tokenTypeRightCurly)
	return body
}

func (p *parser) parseUnionBody() *ast.UnionBody {
	if !p.expectKeyword("switch") {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	if p.expect(tokenTypeLeftParen) == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	disc := p.parseDeclaration()
	if disc == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	if p.expect(tokenTypeRightParen) == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	if p.expect(tokenTypeLeftCurly) == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	body := &ast.UnionBody{Discriminant: disc}

loop:
	for !p.eof() {
		pk := p.peek()
		switch {
		case pk.Type == tokenTypeIdentifier && pk.Value == "case":
			if cs := p.parseCaseSpec(); cs != nil {
				body.Cases = append(body.Cases, *cs)
			}
		case pk.Type == tokenTypeIdentifier && pk.Value == "default":
			p.advance() // Consume "default"
			if p.expect(tokenTypeColon) == nil {
				p.consumeUntilSemiOrLinebreak()
				continue
			}
			decl := p.parseDeclaration()
			if decl == nil {
				p.consumeUntilSemiOrLinebreak()
				continue
			}
			if p.expect(tokenTypeSemi) == nil {
				p.consumeUntilSemiOrLinebreak()
			}
			body.Default = decl
		case pk.Type == tokenTypeRightCurly:
			break loop
		default:
			p.errorf("Unexpected %s at line %d column %d; expected case, default, or }", pk.Type, pk.Line, pk.Column)
			p.consumeUntilSemiOrLinebreak()
		}
	}
	p.expect(tokenTypeRightCurly)
	return body
}

// parseCaseSpec parses one union arm: one or more stacked case labels
// followed by a single declaration.
func (p *parser) parseCaseSpec() *ast.CaseSpec {
	cs := &ast.CaseSpec{}
	for !p.eof() && p.peek().Type == tokenTypeIdentifier && p.peek().Value == "case" {
		p.advance() // Consume "case"
		v := p.parseValue()
		if v == nil {
			p.consumeUntilSemiOrLinebreak()
			return nil
		}
		if p.expect(tokenTypeColon) == nil {
			p.consumeUntilSemiOrLinebreak()
			return nil
		}
		cs.Values = append(cs.Values, v)
	}
	decl := p.parseDeclaration()
	if decl == nil {
		p.consumeUntilSemiOrLinebreak()
		return nil
	}
	if p.expect(tokenTypeSemi) == nil {
		p.consumeUntilSemiOrLinebreak()
	}
	cs.Decl = decl
	return cs
}

func (p *parser) parseValue() ast.Value {
	pk := p.peek()
	switch pk.Type {
	case tokenTypeNumber:
		p.advance()
		return &ast.ConstValue{Text: pk.Value}
	case tokenTypeIdentifier:
		if _, ok := keywords[pk.Value]; ok {
			p.errorf("Unexpected keyword %q at line %d column %d, expected identifier or constant", pk.Value, pk.Line, pk.Column)
			return nil
		}
		p.advance()
		return &ast.IdentValue{Ident: identFromToken(pk)}
	default:
		p.errorf("Expected identifier or constant but got %s at line %d column %d", pk.Type, pk.Line, pk.Column)
		return nil
	}
}

// parseDeclaration parses one declaration without its trailing semicolon;
// each context consumes the semicolon itself.
func (p *parser) parseDeclaration() ast.Declaration {
	pk := p.peek()
	if pk.Type == tokenTypeIdentifier {
		switch pk.Value {
		case "void":
			p.advance()
			return &ast.VoidDecl{}
		case "opaque":
			p.advance()
			return p.parseOpaqueDecl()
		case "string":
			p.advance()
			return p.parseStringDecl()
		}
	}
	spec := p.parseTypeSpec()
	if spec == nil {
		return nil
	}
	if p.peek().Type == tokenTypeStar {
		p.advance() // Consume *
		name, ok := p.declaredIdent()
		if !ok {
			return nil
		}
		return &ast.OptionalDecl{Type: spec, Ident: name}
	}
	name, ok := p.declaredIdent()
	if !ok {
		return nil
	}
	switch p.peek().Type {
	case tokenTypeLeftBracket:
		p.advance() // Consume [
		size := p.parseValue()
		if size == nil {
			return nil
		}
		if p.expect(tokenTypeRightBracket) == nil {
			return nil
		}
		return &ast.FixedArrayDecl{Type: spec, Ident: name, Size: size}
	case tokenTypeLeftAngled:
		size, ok := p.parseBound()
		if !ok {
			return nil
		}
		return &ast.VarArrayDecl{Type: spec, Ident: name, Size: size}
	}
	return &ast.PlainDecl{Type: spec, Ident: name}
}

func (p *parser) parseOpaqueDecl() ast.Declaration {
	name, ok := p.declaredIdent()
	if !ok {
		return nil
	}
	switch p.peek().Type {
	case tokenTypeLeftBracket:
		p.advance() // Consume [
		size := p.parseValue()
		if size == nil {
			return nil
		}
		if p.expect(tokenTypeRightBracket) == nil {
			return nil
		}
		return &ast.FixedOpaqueDecl{Ident: name, Size: size}
	case tokenTypeLeftAngled:
		size, ok := p.parseBound()
		if !ok {
			return nil
		}
		return &ast.VarOpaqueDecl{Ident: name, Size: size}
	}
	pk := p.peek()
	p.errorf("Expected [ or < after opaque %s at line %d column %d", name.Name, pk.Line, pk.Column)
	return nil
}

func (p *parser) parseStringDecl() ast.Declaration {
	name, ok := p.declaredIdent()
	if !ok {
		return nil
	}
	if p.peek().Type != tokenTypeLeftAngled {
		pk := p.peek()
		p.errorf("Expected < after string %s at line %d column %d", name.Name, pk.Line, pk.Column)
		return nil
	}
	size, ok := p.parseBound()
	if !ok {
		return nil
	}
	return &ast.StringDecl{Ident: name, Size: size}
}

// parseBound parses `<value>` or the unbounded `<>`, for which it returns
// a nil value. The caller has already seen the opening angle bracket.
func (p *parser) parseBound() (ast.Value, bool) {
	p.advance() // Consume <
	if p.peek().Type == tokenTypeRightAngled {
		p.advance()
		return nil, true
	}
	v := p.parseValue()
	if v == nil {
		return nil, false
	}
	if p.expect(tokenTypeRightAngled) == nil {
		return nil, false
	}
	return v, true
}

func (p *parser) parseTypeSpec() ast.TypeSpecifier {
	tk := p.expect(tokenTypeIdentifier)
	if tk == nil {
		return nil
	}
	switch tk.Value {
	case "unsigned":
		// "unsigned int" and "unsigned hyper"; a bare "unsigned" is
		// accepted as "unsigned int".
		if pk := p.peek(); pk.Type == tokenTypeIdentifier && (pk.Value == "int" || pk.Value == "hyper") {
			p.advance()
			return &ast.BuiltinType{Name: "unsigned " + pk.Value}
		}
		return &ast.BuiltinType{Name: "unsigned int"}
	case "int", "hyper", "float", "double", "quadruple", "bool":
		return &ast.BuiltinType{Name: tk.Value}
	case "enum":
		if p.peek().Type == tokenTypeLeftCurly {
			body := p.parseEnumBody()
			if body == nil {
				return nil
			}
			return &ast.EnumType{Body: body}
		}
		return p.parseNamedType()
	case "struct":
		if p.peek().Type == tokenTypeLeftCurly {
			body := p.parseStructBody()
			if body == nil {
				return nil
			}
			return &ast.StructType{Body: body}
		}
		return p.parseNamedType()
	case "union":
		if pk := p.peek(); pk.Type == tokenTypeIdentifier && pk.Value == "switch" {
			body := p.parseUnionBody()
			if body == nil {
				return nil
			}
			return &ast.UnionType{Body: body}
		}
		return p.parseNamedType()
	default:
		if _, ok := keywords[tk.Value]; ok {
			p.errorf("Unexpected keyword %q at line %d column %d, expected a type", tk.Value, tk.Line, tk.Column)
			return nil
		}
		return &ast.NamedType{Ident: identFromToken(*tk)}
	}
}

// parseNamedType handles the rpcgen-style `struct name`, `enum name`, and
// `union name` reference forms; the keyword is not part of the name's
// span.
func (p *parser) parseNamedType() ast.TypeSpecifier {
	name, ok := p.declaredIdent()
	if !ok {
		return nil
	}
	return &ast.NamedType{Ident: name}
}
