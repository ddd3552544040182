package xdrls

import "fmt"

type tokenType int

func (t tokenType) String() string {
	return tokenTypeAsString[t]
}

const (
	tokenTypeInvalid tokenType = iota
	tokenTypeEOF
	tokenTypeComment
	tokenTypeIdentifier
	tokenTypeNumber
	tokenTypeEqual
	tokenTypeLeftCurly
	tokenTypeRightCurly
	tokenTypeLeftParen
	tokenTypeRightParen
	tokenTypeLeftAngled
	tokenTypeRightAngled
	tokenTypeLeftBracket
	tokenTypeRightBracket
	tokenTypeSemi
	tokenTypeComma
	tokenTypeColon
	tokenTypeStar
)

var tokenTypeAsString = map[tokenType]string{
	tokenTypeInvalid:      "Invalid",
	tokenTypeEOF:          "EOF",
	tokenTypeComment:      "Comment",
	tokenTypeIdentifier:   "Identifier",
	tokenTypeNumber:       "Number",
	tokenTypeEqual:        "Equal",
	tokenTypeLeftCurly:    "LeftCurly",
	tokenTypeRightCurly:   "RightCurly",
	tokenTypeLeftParen:    "LeftParen",
	tokenTypeRightParen:   "RightParen",
	tokenTypeLeftAngled:   "LeftAngled",
	tokenTypeRightAngled:  "RightAngled",
	tokenTypeLeftBracket:  "LeftBracket",
	tokenTypeRightBracket: "RightBracket",
	tokenTypeSemi:         "Semi",
	tokenTypeComma:        "Comma",
	tokenTypeColon:        "Colon",
	tokenTypeStar:         "Star",
}

// token carries the byte offset of its first character in Pos; Line and
// Column are 1-based and serve error messages only.
type token struct {
	Type   tokenType
	Value  string
	Pos    int
	Line   int
	Column int
}

func (t token) String() string {
	return fmt.Sprintf("xdrls.token{Kind: %s, Value: %q, Pos: %d, Line: %d, Column: %d}", t.Type, t.Value, t.Pos, t.Line, t.Column)
}
