package ast

import "iter"

// Occurrence is one identifier reported by Occurrences. Defn is true when
// the identifier introduces the name it spells rather than referring to
// one defined elsewhere.
type Occurrence struct {
	Ident Identifier
	Defn  bool
}

// Occurrences walks the specification in source order and yields every
// identifier with its classification. Definitions are exactly: constant
// names, top-level enum/struct/union names, the name declared by a
// top-level typedef, and enum member names wherever the enum body appears.
// Every other identifier is a reference keyed by its own spelling; in
// particular the names declared by struct fields, union arms, and
// discriminants count as references to themselves.
//
// The sequence is lazy and restartable; ranging over it again replays the
// same walk.
func (s *Specification) Occurrences() iter.Seq[Occurrence] {
	return func(yield func(Occurrence) bool) {
		for _, d := range s.Definitions {
			if !walkDefinition(d, yield) {
				return
			}
		}
	}
}

func walkDefinition(d Definition, yield func(Occurrence) bool) bool {
	switch dd := d.(type) {
	case *ConstDef:
		return yield(Occurrence{Ident: dd.Ident, Defn: true})
	case *TypedefDef:
		return walkDeclaration(dd.Decl, true, yield)
	case *EnumDef:
		return yield(Occurrence{Ident: dd.Ident, Defn: true}) && walkEnumBody(dd.Body, yield)
	case *StructDef:
		return yield(Occurrence{Ident: dd.Ident, Defn: true}) && walkStructBody(dd.Body, yield)
	case *UnionDef:
		return yield(Occurrence{Ident: dd.Ident, Defn: true}) && walkUnionBody(dd.Body, yield)
	}
	return true
}

// walkDeclaration visits a declaration's type, name, and size bound, in
// that order. defn classifies only the declared name; identifiers inside
// the type and the bound are always references.
func walkDeclaration(d Declaration, defn bool, yield func(Occurrence) bool) bool {
	switch dd := d.(type) {
	case *PlainDecl:
		return walkTypeSpecifier(dd.Type, yield) &&
			yield(Occurrence{Ident: dd.Ident, Defn: defn})
	case *FixedArrayDecl:
		return walkTypeSpecifier(dd.Type, yield) &&
			yield(Occurrence{Ident: dd.Ident, Defn: defn}) &&
			walkValue(dd.Size, yield)
	case *VarArrayDecl:
		return walkTypeSpecifier(dd.Type, yield) &&
			yield(Occurrence{Ident: dd.Ident, Defn: defn}) &&
			walkValue(dd.Size, yield)
	case *FixedOpaqueDecl:
		return yield(Occurrence{Ident: dd.Ident, Defn: defn}) && walkValue(dd.Size, yield)
	case *VarOpaqueDecl:
		return yield(Occurrence{Ident: dd.Ident, Defn: defn}) && walkValue(dd.Size, yield)
	case *StringDecl:
		return yield(Occurrence{Ident: dd.Ident, Defn: defn}) && walkValue(dd.Size, yield)
	case *OptionalDecl:
		return walkTypeSpecifier(dd.Type, yield) &&
			yield(Occurrence{Ident: dd.Ident, Defn: defn})
	case *VoidDecl:
	}
	return true
}

func walkTypeSpecifier(t TypeSpecifier, yield func(Occurrence) bool) bool {
	switch tt := t.(type) {
	case *EnumType:
		return walkEnumBody(tt.Body, yield)
	case *StructType:
		return walkStructBody(tt.Body, yield)
	case *UnionType:
		return walkUnionBody(tt.Body, yield)
	case *NamedType:
		return yield(Occurrence{Ident: tt.Ident, Defn: false})
	}
	return true
}

func walkValue(v Value, yield func(Occurrence) bool) bool {
	if iv, ok := v.(*IdentValue); ok {
		return yield(Occurrence{Ident: iv.Ident, Defn: false})
	}
	return true
}

// walkEnumBody yields member names as definitions regardless of where the
// body sits; a nested enum still defines its members globally.
func walkEnumBody(b *EnumBody, yield func(Occurrence) bool) bool {
	if b == nil {
		return true
	}
	for _, m := range b.Members {
		if !yield(Occurrence{Ident: m.Ident, Defn: true}) {
			return false
		}
		if !walkValue(m.Value, yield) {
			return false
		}
	}
	return true
}

func walkStructBody(b *StructBody, yield func(Occurrence) bool) bool {
	if b == nil {
		return true
	}
	for _, d := range b.Decls {
		if !walkDeclaration(d, false, yield) {
			return false
		}
	}
	return true
}

func walkUnionBody(b *UnionBody, yield func(Occurrence) bool) bool {
	if b == nil {
		return true
	}
	if !walkDeclaration(b.Discriminant, false, yield) {
		return false
	}
	for _, c := range b.Cases {
		for _, v := range c.Values {
			if !walkValue(v, yield) {
				return false
			}
		}
		if !walkDeclaration(c.Decl, false, yield) {
			return false
		}
	}
	if b.Default != nil {
		return walkDeclaration(b.Default, false, yield)
	}
	return true
}
