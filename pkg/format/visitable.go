package format

import (
	"github.com/yaklabco/bracefmt/pkg/config"
	"github.com/yaklabco/bracefmt/pkg/source"
	"github.com/yaklabco/bracefmt/pkg/syntax"
)

// Item is one entry of a Block: a statement of a function or control-flow
// body, or an entry of a module.
type Item interface {
	Span() source.Span

	// RequiresSemicolon reports whether a `;` must follow the item when it is
	// the last one in its block.
	RequiresSemicolon(cfg *config.Config) bool

	// IsImportLike reports whether the item may be grouped and reordered with
	// its neighbours.
	IsImportLike() bool

	Node() *syntax.Node
}

// Stmt is a statement inside a function or control-flow body.
type Stmt struct {
	node *syntax.Node
	jump bool
}

// NewStmt wraps a parsed statement.
func NewStmt(file *source.File, node *syntax.Node) Stmt {
	return Stmt{node: node, jump: isJumpExpr(file, node)}
}

func (s Stmt) Span() source.Span { return s.node.Span }

func (s Stmt) Node() *syntax.Node { return s.node }

func (s Stmt) IsImportLike() bool { return s.node.IsImportLike() }

// RequiresSemicolon is true for a trailing return, break or continue without
// a semicolon when trailing_semicolon is on.
func (s Stmt) RequiresSemicolon(cfg *config.Config) bool {
	return s.jump && cfg.TrailingSemicolon
}

// ModuleEntry is an item of a module, impl or trait body, or of the file.
type ModuleEntry struct {
	node *syntax.Node
}

// NewModuleEntry wraps a parsed item.
func NewModuleEntry(node *syntax.Node) ModuleEntry {
	return ModuleEntry{node: node}
}

func (m ModuleEntry) Span() source.Span { return m.node.Span }

func (m ModuleEntry) Node() *syntax.Node { return m.node }

func (m ModuleEntry) RequiresSemicolon(*config.Config) bool { return false }

// IsImportLike is true for use declarations and for `mod name;` declarations.
func (m ModuleEntry) IsImportLike() bool {
	return m.node.IsImportLike() || isModDecl(m.node)
}

func isModDecl(node *syntax.Node) bool {
	return node.Kind == syntax.KindMod && node.Body == nil
}

func isJumpExpr(file *source.File, node *syntax.Node) bool {
	if node.Kind != syntax.KindExpr || node.HasSemi {
		return false
	}

	toks, err := syntax.Lex(file.Snippet(node.Span))
	if err != nil || len(toks) == 0 {
		return false
	}

	switch toks[0].Text {
	case "return", "break", "continue":
		return toks[0].Kind == syntax.TokIdent
	default:
		return false
	}
}

func statements(file *source.File, nodes []*syntax.Node) []Item {
	items := make([]Item, 0, len(nodes))
	for _, node := range nodes {
		items = append(items, NewStmt(file, node))
	}

	return items
}

func moduleEntries(nodes []*syntax.Node) []Item {
	items := make([]Item, 0, len(nodes))
	for _, node := range nodes {
		items = append(items, NewModuleEntry(node))
	}

	return items
}
