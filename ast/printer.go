package ast

import (
	"bytes"
	"fmt"
	"strings"
)

// Print dumps an indented rendering of spec to stdout. Debugging aid.
func Print(spec *Specification) {
	p := printer{}
	p.print(spec)
	fmt.Println(p.b.String())
}

type printer struct {
	b   bytes.Buffer
	lvl int
}

func (p *printer) inc() func() {
	p.lvl++
	return p.dec
}

func (p *printer) dec() { p.lvl-- }

func (p *printer) printf(format string, args ...interface{}) {
	p.b.WriteString(fmt.Sprintf("%s%s\n", strings.Repeat("  ", p.lvl), fmt.Sprintf(format, args...)))
}

func (p *printer) print(spec *Specification) {
	p.printf("Specification:")
	defer p.inc()()
	for _, d := range spec.Definitions {
		p.printDefinition(d)
	}
}

func (p *printer) printDefinition(d Definition) {
	switch dd := d.(type) {
	case *ConstDef:
		p.printf("- Const: %s = %s", dd.Ident.Name, dd.Value)
	case *TypedefDef:
		p.printf("- Typedef:")
		p.inc()
		p.printDeclaration(dd.Decl)
		p.dec()
	case *EnumDef:
		p.printf("- Enum: %s", dd.Ident.Name)
		p.inc()
		p.printEnumBody(dd.Body)
		p.dec()
	case *StructDef:
		p.printf("- Struct: %s", dd.Ident.Name)
		p.inc()
		p.printStructBody(dd.Body)
		p.dec()
	case *UnionDef:
		p.printf("- Union: %s", dd.Ident.Name)
		p.inc()
		p.printUnionBody(dd.Body)
		p.dec()
	}
}

func (p *printer) printDeclaration(d Declaration) {
	switch dd := d.(type) {
	case *PlainDecl:
		p.printf("- %s", dd.Ident.Name)
		defer p.inc()()
		p.printType(dd.Type)
	case *FixedArrayDecl:
		p.printf("- %s[%s]", dd.Ident.Name, valueString(dd.Size))
		defer p.inc()()
		p.printType(dd.Type)
	case *VarArrayDecl:
		p.printf("- %s<%s>", dd.Ident.Name, valueString(dd.Size))
		defer p.inc()()
		p.printType(dd.Type)
	case *FixedOpaqueDecl:
		p.printf("- %s[%s]", dd.Ident.Name, valueString(dd.Size))
		defer p.inc()()
		p.printf("Kind: opaque")
	case *VarOpaqueDecl:
		p.printf("- %s<%s>", dd.Ident.Name, valueString(dd.Size))
		defer p.inc()()
		p.printf("Kind: opaque")
	case *StringDecl:
		p.printf("- %s<%s>", dd.Ident.Name, valueString(dd.Size))
		defer p.inc()()
		p.printf("Kind: string")
	case *OptionalDecl:
		p.printf("- *%s", dd.Ident.Name)
		defer p.inc()()
		p.printType(dd.Type)
	case *VoidDecl:
		p.printf("- void")
	}
}

func (p *printer) printType(t TypeSpecifier) {
	switch tt := t.(type) {
	case *BuiltinType:
		p.printf("Kind: %s", tt.Name)
	case *NamedType:
		p.printf("Kind: %s", tt.Ident.Name)
	case *EnumType:
		p.printf("Kind: enum")
		p.inc()
		p.printEnumBody(tt.Body)
		p.dec()
	case *StructType:
		p.printf("Kind: struct")
		p.inc()
		p.printStructBody(tt.Body)
		p.dec()
	case *UnionType:
		p.printf("Kind: union")
		p.inc()
		p.printUnionBody(tt.Body)
		p.dec()
	}
}

func (p *printer) printEnumBody(b *EnumBody) {
	if b == nil {
		return
	}
	p.printf("Members:")
	defer p.inc()()
	for _, m := range b.Members {
		p.printf("- %s = %s", m.Ident.Name, valueString(m.Value))
	}
}

func (p *printer) printStructBody(b *StructBody) {
	if b == nil {
		return
	}
	p.printf("Fields:")
	defer p.inc()()
	for _, d := range b.Decls {
		p.printDeclaration(d)
	}
}

func (p *printer) printUnionBody(b *UnionBody) {
	if b == nil {
		return
	}
	p.printf("Discriminant:")
	p.inc()
	p.printDeclaration(b.Discriminant)
	p.dec()
	p.printf("Cases:")
	p.inc()
	for _, c := range b.Cases {
		labels := make([]string, 0, len(c.Values))
		for _, v := range c.Values {
			labels = append(labels, valueString(v))
		}
		p.printf("- case %s:", strings.Join(labels, ", "))
		p.inc()
		p.printDeclaration(c.Decl)
		p.dec()
	}
	p.dec()
	if b.Default != nil {
		p.printf("Default:")
		p.inc()
		p.printDeclaration(b.Default)
		p.dec()
	}
}

func valueString(v Value) string {
	switch vv := v.(type) {
	case *IdentValue:
		return vv.Ident.Name
	case *ConstValue:
		return vv.Text
	}
	return ""
}
