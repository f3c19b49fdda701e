package format

import (
	"slices"
	"strings"

	"github.com/yaklabco/bracefmt/pkg/comment"
	"github.com/yaklabco/bracefmt/pkg/config"
	"github.com/yaklabco/bracefmt/pkg/source"
	"github.com/yaklabco/bracefmt/pkg/syntax"
)

// VisitFile emits the whole file: inner attributes, then the top-level
// items, then the comments after the last item.
func (v *Visitor) VisitFile(file *syntax.File) {
	for _, attr := range file.InnerAttrs {
		v.visitItem(attr)
	}

	v.visitItemsWithReordering(moduleEntries(file.Items))
	v.formatMissingTail()
}

// visitItem emits the gap before node and then node itself. A node outside
// the file_lines filter is copied from the original text, gap included.
func (v *Visitor) visitItem(node *syntax.Node) {
	if v.outOfRange(node.Span) {
		v.push(v.snippet(v.nextSpan(node.Span.Hi)))
		v.lastPos = node.Span.Hi

		return
	}

	v.formatMissing(node.Span.Lo)
	v.rewriteNode(node)
	v.lastPos = node.Span.Hi
}

// walkStmts emits the statements of a body. Runs of consecutive use
// declarations go through the import grouper.
func (v *Visitor) walkStmts(items []Item) {
	v.walkGrouped(items, v.cfg.ReorderImports)
}

// visitItemsWithReordering emits the entries of a module. Runs of use and
// `mod name;` declarations go through the import grouper.
func (v *Visitor) visitItemsWithReordering(items []Item) {
	v.walkGrouped(items, v.cfg.ReorderImports || v.cfg.ReorderModules)
}

func (v *Visitor) walkGrouped(items []Item, reorder bool) {
	for len(items) > 0 {
		run := leadingImports(items)
		if run == 0 {
			v.visitItem(items[0].Node())
			items = items[1:]

			continue
		}

		consumed := v.visitUseRun(items[:run], reorder)
		items = items[consumed:]
	}
}

func leadingImports(items []Item) int {
	n := 0
	for n < len(items) && items[n].IsImportLike() {
		n++
	}

	return n
}

// visitUseRun emits a run of import-like items and returns how many it
// consumed. With reordering on, each group of the run is sorted by path.
// A comment or a blank line between two items starts a new group.
func (v *Visitor) visitUseRun(run []Item, reorder bool) int {
	if !reorder || slices.ContainsFunc(run, func(it Item) bool { return v.outOfRange(it.Span()) }) {
		for _, it := range run {
			v.visitItem(it.Node())
		}

		return len(run)
	}

	for _, group := range v.splitGroups(run) {
		v.formatMissing(group[0].Span().Lo)

		sorted := slices.Clone(group)
		if v.canReorder(sorted) {
			slices.SortStableFunc(sorted, func(a, b Item) int {
				return strings.Compare(v.importKey(a), v.importKey(b))
			})
		}

		for i, it := range sorted {
			if i > 0 {
				v.push(v.newlineIndent())
			}
			v.rewriteNode(it.Node())
		}

		v.lastPos = group[len(group)-1].Span().Hi
	}

	return len(run)
}

// canReorder reports whether the group may be sorted under the active
// options: use declarations need reorder_imports and mod declarations need
// reorder_modules.
func (v *Visitor) canReorder(group []Item) bool {
	for _, it := range group {
		if isModDecl(it.Node()) && !v.cfg.ReorderModules {
			return false
		}
		if it.Node().Kind == syntax.KindUse && !v.cfg.ReorderImports {
			return false
		}
	}

	return true
}

func (v *Visitor) splitGroups(run []Item) [][]Item {
	groups := [][]Item{{run[0]}}
	for i := 1; i < len(run); i++ {
		gap := v.snippet(source.Sp(run[i-1].Span().Hi, run[i].Span().Lo))
		kindChanged := isModDecl(run[i-1].Node()) != isModDecl(run[i].Node())

		if kindChanged || comment.ContainsComment(gap) || strings.Count(gap, "\n") >= 2 {
			groups = append(groups, []Item{run[i]})
			continue
		}

		last := len(groups) - 1
		groups[last] = append(groups[last], run[i])
	}

	return groups
}

// importKey is the sort key of a use or mod declaration: the path or name
// without visibility, keyword or trailing semicolon.
func (v *Visitor) importKey(it Item) string {
	toks, err := syntax.Lex(v.snippet(it.Span()))
	if err != nil {
		return v.snippet(it.Span())
	}

	var b strings.Builder
	skipping := true
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if skipping {
			switch {
			case tok.Is("pub") && i+1 < len(toks) && toks[i+1].Is("("):
				for i < len(toks) && !toks[i].Is(")") {
					i++
				}
				continue
			case tok.Is("pub"), tok.Is("use"), tok.Is("mod"):
				continue
			case tok.Kind == syntax.TokComment:
				continue
			}
			skipping = false
		}

		if tok.Is(";") || tok.Kind == syntax.TokComment {
			continue
		}
		b.WriteString(tok.Text)
	}

	return b.String()
}

//nolint:cyclop // One dispatch over node kinds.
func (v *Visitor) rewriteNode(node *syntax.Node) {
	switch node.Kind {
	case syntax.KindFn, syntax.KindMod, syntax.KindContainer:
		if node.Body == nil {
			v.push(v.rewriteText(node.Span))
			return
		}

		v.push(v.rewriteText(node.Head))
		v.push(v.itemBraceSeparator(node.Head))
		v.lastPos = node.Body.Span.Lo

		style := MultiLine
		if v.cfg.EmptyItemSingleLine {
			style = SingleLine
		}

		switch node.Kind {
		case syntax.KindFn:
			v.VisitBlock(StatementBlock(v.file, node.Body, style))
		case syntax.KindMod:
			v.VisitBlock(ModuleBlock(node.Body, style))
		default:
			v.VisitBlock(ModuleBlock(node.Body, SingleLine))
		}
	case syntax.KindIf:
		v.visitIfChain(node)
	case syntax.KindBlockExpr:
		if head := v.rewriteText(node.Head); head != "" {
			v.push(head)
			if endsWithLineComment(head) {
				v.push(v.newlineIndent())
			} else {
				v.push(" ")
			}
		}

		v.lastPos = node.Body.Span.Lo
		v.VisitBlock(StatementBlock(v.file, node.Body, SingleLine))

		if node.HasSemi {
			v.push(";")
		}
	default:
		v.push(v.rewriteText(node.Span))
	}
}

// itemBraceSeparator returns what goes between an item head and its opening
// brace under the configured brace_style.
func (v *Visitor) itemBraceSeparator(head source.Span) string {
	if endsWithLineComment(v.snippet(head)) {
		return v.newlineIndent()
	}

	switch v.cfg.BraceStyle {
	case config.BraceAlwaysNextLine:
		return v.newlineIndent()
	case config.BraceSameLineWhere:
		text := v.snippet(head)
		if strings.Contains(text, "\n") && hasWhereClause(text) {
			return v.newlineIndent()
		}

		return " "
	default:
		return " "
	}
}

func hasWhereClause(head string) bool {
	toks, err := syntax.Lex(head)
	if err != nil {
		return false
	}

	return slices.ContainsFunc(toks, func(tok syntax.Token) bool {
		return tok.Kind == syntax.TokIdent && tok.Text == "where"
	})
}

// visitIfChain emits `if c { } else if d { } else { }` with the configured
// control_brace_style.
func (v *Visitor) visitIfChain(node *syntax.Node) {
	for i, arm := range node.Arms {
		if i > 0 {
			prevClose := node.Arms[i-1].Body.Span.Hi
			gap := v.snippet(source.Sp(prevClose, arm.Head.Lo))

			switch {
			case comment.ContainsComment(gap):
				v.formatMissing(arm.Head.Lo)
			case v.cfg.ControlBraceStyle == config.ControlAlwaysSameLine:
				v.push(" ")
			default:
				v.push(v.newlineIndent())
			}
		}

		v.push(v.rewriteText(arm.Head))
		if v.cfg.ControlBraceStyle == config.ControlAlwaysNextLine || endsWithLineComment(v.snippet(arm.Head)) {
			v.push(v.newlineIndent())
		} else {
			v.push(" ")
		}

		v.lastPos = arm.Body.Span.Lo
		v.isIfElseBlock = i < len(node.Arms)-1
		v.VisitBlock(StatementBlock(v.file, arm.Body, SingleLine))
	}
}
