// Package ast holds the syntax model for XDR interface definition files
// (RFC 4506). Nodes carry raw byte spans instead of line/column positions;
// everything positional is derived later by the indexer.
package ast

// Identifier is a single name occurrence in a source file. Start and End
// delimit the half-open byte span [Start, End) the name occupies.
type Identifier struct {
	Name  string
	Start int
	End   int
}

// Value is the right-hand side of an enum member, an array bound, or a
// union case label: either a named constant or a literal.
type Value interface {
	_value()
	Kind() string
}

type IdentValue struct {
	Ident Identifier
}

func (v *IdentValue) _value() {}

func (*IdentValue) Kind() string { return "Ident" }

// ConstValue holds the literal's raw spelling, including any sign or
// base prefix. It is never evaluated.
type ConstValue struct {
	Text string
}

func (v *ConstValue) _value() {}

func (*ConstValue) Kind() string { return "Const" }

type TypeSpecifier interface {
	_typeSpecifier()
	Kind() string
}

// BuiltinType is one of the primitive XDR types: int, unsigned int,
// hyper, unsigned hyper, float, double, quadruple, or bool.
type BuiltinType struct {
	Name string
}

func (b *BuiltinType) _typeSpecifier() {}

func (*BuiltinType) Kind() string { return "Builtin" }

// EnumType is an inline enum body used as a type.
type EnumType struct {
	Body *EnumBody
}

func (e *EnumType) _typeSpecifier() {}

func (*EnumType) Kind() string { return "Enum" }

// StructType is an inline struct body used as a type.
type StructType struct {
	Body *StructBody
}

func (s *StructType) _typeSpecifier() {}

func (*StructType) Kind() string { return "Struct" }

// UnionType is an inline union body used as a type.
type UnionType struct {
	Body *UnionBody
}

func (u *UnionType) _typeSpecifier() {}

func (*UnionType) Kind() string { return "Union" }

// NamedType refers to a type declared elsewhere by name.
type NamedType struct {
	Ident Identifier
}

func (n *NamedType) _typeSpecifier() {}

func (*NamedType) Kind() string { return "Named" }

// Declaration is a typed name as it appears in struct bodies, union arms,
// discriminants, and typedefs.
type Declaration interface {
	_declaration()
	Kind() string
}

type PlainDecl struct {
	Type  TypeSpecifier
	Ident Identifier
}

func (d *PlainDecl) _declaration() {}

func (*PlainDecl) Kind() string { return "Plain" }

type FixedArrayDecl struct {
	Type  TypeSpecifier
	Ident Identifier
	Size  Value
}

func (d *FixedArrayDecl) _declaration() {}

func (*FixedArrayDecl) Kind() string { return "FixedArray" }

// VarArrayDecl is a variable-length array; Size is nil when the bound is
// omitted.
type VarArrayDecl struct {
	Type  TypeSpecifier
	Ident Identifier
	Size  Value
}

func (d *VarArrayDecl) _declaration() {}

func (*VarArrayDecl) Kind() string { return "VarArray" }

type FixedOpaqueDecl struct {
	Ident Identifier
	Size  Value
}

func (d *FixedOpaqueDecl) _declaration() {}

func (*FixedOpaqueDecl) Kind() string { return "FixedOpaque" }

// VarOpaqueDecl is variable-length opaque data; Size is nil when the
// bound is omitted.
type VarOpaqueDecl struct {
	Ident Identifier
	Size  Value
}

func (d *VarOpaqueDecl) _declaration() {}

func (*VarOpaqueDecl) Kind() string { return "VarOpaque" }

// StringDecl is an XDR string; Size is nil when the bound is omitted.
type StringDecl struct {
	Ident Identifier
	Size  Value
}

func (d *StringDecl) _declaration() {}

func (*StringDecl) Kind() string { return "String" }

// OptionalDecl is the pointer form `type *name`.
type OptionalDecl struct {
	Type  TypeSpecifier
	Ident Identifier
}

func (d *OptionalDecl) _declaration() {}

func (*OptionalDecl) Kind() string { return "Optional" }

type VoidDecl struct{}

func (d *VoidDecl) _declaration() {}

func (*VoidDecl) Kind() string { return "Void" }

type EnumBody struct {
	Members []EnumMember
}

type EnumMember struct {
	Ident Identifier
	Value Value
}

type StructBody struct {
	Decls []Declaration
}

// UnionBody is a discriminated union: a discriminant declaration, one or
// more case arms, and an optional default arm (nil when absent).
type UnionBody struct {
	Discriminant Declaration
	Cases        []CaseSpec
	Default      Declaration
}

// CaseSpec is one union arm. Several case labels may share a declaration,
// so Values holds at least one entry.
type CaseSpec struct {
	Values []Value
	Decl   Declaration
}

// Definition is a top-level item of a specification.
type Definition interface {
	_definition()
	Kind() string
}

// ConstDef binds a name to a literal constant. The value keeps its raw
// spelling.
type ConstDef struct {
	Ident Identifier
	Value string
}

func (d *ConstDef) _definition() {}

func (*ConstDef) Kind() string { return "Const" }

// TypedefDef aliases the declaration's name to its type.
type TypedefDef struct {
	Decl Declaration
}

func (d *TypedefDef) _definition() {}

func (*TypedefDef) Kind() string { return "Typedef" }

type EnumDef struct {
	Ident Identifier
	Body  *EnumBody
}

func (d *EnumDef) _definition() {}

func (*EnumDef) Kind() string { return "Enum" }

type StructDef struct {
	Ident Identifier
	Body  *StructBody
}

func (d *StructDef) _definition() {}

func (*StructDef) Kind() string { return "Struct" }

type UnionDef struct {
	Ident Identifier
	Body  *UnionBody
}

func (d *UnionDef) _definition() {}

func (*UnionDef) Kind() string { return "Union" }

// Specification is one parsed source file.
type Specification struct {
	Definitions []Definition
}
