package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracefmt/pkg/syntax"
)

func TestLex(t *testing.T) {
	t.Parallel()

	toks, err := syntax.Lex(`f::<'a>(b'x', '\n', r#"raw "q""#, br"b") // c`)
	require.NoError(t, err)

	var kinds []syntax.TokenKind
	var texts []string
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
		texts = append(texts, tok.Text)
	}

	assert.Equal(t, []string{
		"f", ":", ":", "<", "'a", ">", "(", "b'x'", ",", `'\n'`, ",", `r#"raw "q""#`, ",", `br"b"`, ")", "// c",
	}, texts)
	assert.Equal(t, syntax.TokLifetime, kinds[4])
	assert.Equal(t, syntax.TokChar, kinds[7])
	assert.Equal(t, syntax.TokString, kinds[11])
	assert.Equal(t, syntax.TokComment, kinds[15])
	assert.True(t, toks[15].SpaceBefore)
	assert.False(t, toks[1].SpaceBefore)
}

func TestTokenString(t *testing.T) {
	t.Parallel()

	toks, err := syntax.Lex("{")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, `open "{" at 0..1`, toks[0].String())
	assert.True(t, toks[0].Is("{"))
}
