// Package xdrls turns XDR interface definition sources (RFC 4506) into
// syntax trees and token spans for the indexer built on top of it.
package xdrls

import (
	"errors"

	"github.com/drebelsky/xdr-ls/ast"
)

// Parse parses a single XDR source. Lexing and parsing accumulate errors
// rather than stopping at the first one; any error at all yields a nil
// specification.
func Parse(data []byte) (*ast.Specification, error) {
	tokens, errs := lexFile(data, nil)
	if errs != nil {
		return nil, errors.Join(errs...)
	}

	spec, errs := parse(tokens, nil)
	if errs != nil {
		return nil, errors.Join(errs...)
	}

	return spec, nil
}
