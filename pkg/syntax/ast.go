// Package syntax parses brace-delimited Rust-style sources into a shallow
// tree of items and statements with exact byte spans.
//
// The tree only describes what the formatter rearranges: item boundaries,
// block bodies, and if chains. Expressions stay opaque text.
package syntax

import (
	"fmt"

	"github.com/yaklabco/bracefmt/pkg/source"
)

// Kind identifies the syntactic form of a Node.
type Kind int

const (
	KindUse       Kind = iota // use a::b;
	KindMod                   // mod m { ... } or mod m;
	KindFn                    // fn f() { ... }
	KindContainer             // impl or trait with a body of items
	KindAttr                  // #[...] or #![...]
	KindLet                   // let x = 1;
	KindExpr                  // expression statement, with or without ;
	KindIf                    // if c { } else if d { } else { }
	KindBlockExpr             // loop, while, for, unsafe, labeled or bare block
	KindVerbatim              // any other item, kept as text
)

//nolint:gochecknoglobals // Lookup table for Kind.String.
var kindNames = map[Kind]string{
	KindUse:       "use",
	KindMod:       "mod",
	KindFn:        "fn",
	KindContainer: "container",
	KindAttr:      "attr",
	KindLet:       "let",
	KindExpr:      "expr",
	KindIf:        "if",
	KindBlockExpr: "block-expr",
	KindVerbatim:  "verbatim",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is one item or statement.
type Node struct {
	Kind Kind

	// Span covers the whole node, including a trailing semicolon.
	Span source.Span

	// Head is the text before Body. For nodes without a body it equals Span.
	Head source.Span

	// Body is the brace block of fn, mod, container and block-expr nodes.
	Body *Block

	// Arms are the branches of an if chain, in source order.
	Arms []Arm

	// HasSemi is true when the node ends with a semicolon that belongs to it.
	HasSemi bool

	// Inner marks an inner attribute (#![...]).
	Inner bool
}

// Arm is one `if`, `else if` or `else` branch.
type Arm struct {
	// Head spans the keywords and condition, e.g. `else if x > 1`.
	Head source.Span
	Body *Block
}

// Block is a brace-delimited sequence of nodes.
type Block struct {
	// Span covers both braces.
	Span source.Span

	// InnerAttrs are the #![...] attributes at the start of the block.
	InnerAttrs []*Node

	Items []*Node
}

// File is a parsed source file.
type File struct {
	Source     *source.File
	InnerAttrs []*Node
	Items      []*Node
}

// IsImportLike reports whether the node is a use declaration.
func (n *Node) IsImportLike() bool {
	return n.Kind == KindUse
}
