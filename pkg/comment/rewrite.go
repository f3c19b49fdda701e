package comment

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/bracefmt/pkg/config"
	"github.com/yaklabco/bracefmt/pkg/shape"
)

//nolint:gochecknoglobals // goldmark parsers are safe for concurrent use.
var markdown = goldmark.New()

// Rewrite re-indents and optionally re-wraps one comment so it fits sh.
// ownLine is true when the comment starts its own output line; only then may
// a block comment be normalized into a line comment.
// It reports false when orig is not a well-formed comment, in which case the
// caller emits orig unchanged.
func Rewrite(orig string, sh shape.Shape, cfg *config.Config, ownLine bool) (string, bool) {
	trimmed := strings.TrimRight(orig, " \t\r\n")

	switch {
	case strings.HasPrefix(trimmed, "//"):
		return rewriteLine(trimmed, sh, cfg)
	case strings.HasPrefix(trimmed, "/*"):
		return rewriteBlock(trimmed, sh, cfg, ownLine)
	default:
		return "", false
	}
}

// Width returns the display width of s in terminal columns.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

func rewriteLine(line string, sh shape.Shape, cfg *config.Config) (string, bool) {
	if strings.Contains(line, "\n") {
		return "", false
	}

	if !cfg.WrapComments || Width(line) <= sh.Width {
		return line, true
	}

	opener := lineOpener(line)
	body := line[len(opener):]
	if !wrappable(body) {
		return line, true
	}

	var lines []string
	current := opener
	for _, word := range strings.Fields(body) {
		switch {
		case current == opener:
			current += " " + word
		case Width(current)+1+Width(word) <= sh.Width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = opener + " " + word
		}
	}
	lines = append(lines, current)

	return strings.Join(lines, sh.Indent.StringWithNewline(cfg)), true
}

func lineOpener(line string) string {
	switch {
	case strings.HasPrefix(line, "///") && !strings.HasPrefix(line, "////"):
		return "///"
	case strings.HasPrefix(line, "//!"):
		return "//!"
	default:
		return "//"
	}
}

// wrappable reports whether a comment body is plain prose. Markdown structure
// such as headings, list items and code, and bodies holding URLs, are kept as
// written.
func wrappable(body string) bool {
	body = strings.TrimSpace(body)
	if body == "" || strings.Contains(body, "://") {
		return false
	}

	doc := markdown.Parser().Parse(text.NewReader([]byte(body)))
	first := doc.FirstChild()

	return first != nil && first.Kind() == ast.KindParagraph && first.NextSibling() == nil
}

func rewriteBlock(block string, sh shape.Shape, cfg *config.Config, ownLine bool) (string, bool) {
	if len(block) < 4 {
		return "", false
	}

	if end, closed := ScanBlockComment(block, 0); !closed || end != len(block) {
		return "", false
	}

	lines := strings.Split(block, "\n")
	if len(lines) == 1 {
		if cfg.NormalizeComments && ownLine {
			if normalized, ok := normalizeBlock(block); ok {
				return normalized, true
			}
		}

		return block, true
	}

	rest := lines[1:]
	strip := commonIndent(rest)
	starAligned := true
	for i, line := range rest {
		if strings.TrimSpace(line) == "" {
			rest[i] = ""
			continue
		}

		rest[i] = line[strip:]
		if !strings.HasPrefix(rest[i], "*") {
			starAligned = false
		}
	}

	prefix := sh.Indent.String(cfg)
	if starAligned {
		prefix += " "
	}

	var out strings.Builder
	out.WriteString(strings.TrimRight(lines[0], " \t"))
	for _, line := range rest {
		out.WriteByte('\n')
		if line != "" {
			out.WriteString(strings.TrimRight(prefix+line, " \t"))
		}
	}

	return out.String(), true
}

func normalizeBlock(block string) (string, bool) {
	opener := "//"
	inner := block[2 : len(block)-2]

	switch {
	case strings.HasPrefix(inner, "*") && !strings.HasPrefix(inner, "**") && inner != "*":
		opener = "///"
		inner = inner[1:]
	case strings.HasPrefix(inner, "!"):
		opener = "//!"
		inner = inner[1:]
	}

	if strings.Contains(inner, "/*") || strings.Contains(inner, "*/") {
		return "", false
	}

	body := strings.TrimSpace(inner)
	if body == "" {
		return opener, true
	}

	return opener + " " + body, true
}

// commonIndent returns the number of leading whitespace bytes shared by every
// non-blank line.
func commonIndent(lines []string) int {
	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || n < common {
			common = n
		}
	}

	return max(common, 0)
}
