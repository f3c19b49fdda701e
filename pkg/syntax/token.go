package syntax

import (
	"fmt"

	"github.com/yaklabco/bracefmt/pkg/source"
)

// TokenKind classifies a token.
type TokenKind int

const (
	TokIdent TokenKind = iota // identifiers, keywords and numbers
	TokPunct
	TokString
	TokChar
	TokLifetime
	TokComment
	TokOpen  // ( [ {
	TokClose // ) ] }
)

//nolint:gochecknoglobals // Lookup table for TokenKind.String.
var tokenKindNames = map[TokenKind]string{
	TokIdent:    "ident",
	TokPunct:    "punct",
	TokString:   "string",
	TokChar:     "char",
	TokLifetime: "lifetime",
	TokComment:  "comment",
	TokOpen:     "open",
	TokClose:    "close",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one lexical token.
type Token struct {
	Kind TokenKind
	Span source.Span
	Text string

	// SpaceBefore is true when whitespace separates this token from the previous one.
	SpaceBefore bool
}

// Is reports whether the token is an identifier or punctuation with the given text.
func (t Token) Is(text string) bool {
	return (t.Kind == TokIdent || t.Kind == TokPunct || t.Kind == TokOpen || t.Kind == TokClose) &&
		t.Text == text
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q at %s", t.Kind, t.Text, t.Span)
}

// closerFor returns the closing delimiter matching an opening one.
func closerFor(open string) string {
	switch open {
	case "(":
		return ")"
	case "[":
		return "]"
	default:
		return "}"
	}
}
