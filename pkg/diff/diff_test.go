package diff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracefmt/pkg/diff"
)

func TestComputeNoChange(t *testing.T) {
	t.Parallel()

	assert.Nil(t, diff.Compute("a.rs", []byte("fn a() {}\n"), []byte("fn a() {}\n"), diff.DefaultContext))
	assert.Nil(t, diff.Compute("a.rs", nil, nil, diff.DefaultContext))
	assert.False(t, (*diff.Diff)(nil).HasChanges())
}

func TestComputeSingleHunk(t *testing.T) {
	t.Parallel()

	original := "fn f()   {\n}\n"
	formatted := "fn f() {}\n"

	d := diff.Compute("src/f.rs", []byte(original), []byte(formatted), diff.DefaultContext)
	require.NotNil(t, d)

	assert.Equal(t, 1, d.Additions)
	assert.Equal(t, 2, d.Deletions)
	assert.Equal(t, "diff --git a/src/f.rs b/src/f.rs", d.GitHeader())

	want := "--- a/src/f.rs\n+++ b/src/f.rs\n" +
		"@@ -1,2 +1,1 @@\n" +
		"-fn f()   {\n" +
		"-}\n" +
		"+fn f() {}\n"
	assert.Equal(t, want, d.String())
}

func TestComputeContextAndMerging(t *testing.T) {
	t.Parallel()

	original := "a\nB\nc\nd\ne\nf\ng\nh\ni\nJ\nk\n"
	formatted := "a\nb\nc\nd\ne\nf\ng\nh\ni\nj\nk\n"

	t.Run("far apart changes split", func(t *testing.T) {
		t.Parallel()

		d := diff.Compute("x", []byte(original), []byte(formatted), 1)
		require.NotNil(t, d)
		require.Len(t, d.Hunks, 2)

		first := d.Hunks[0]
		assert.Equal(t, 1, first.OriginalStart)
		assert.Equal(t, 3, first.OriginalCount)
		assert.Equal(t, []diff.Line{
			{Kind: diff.Context, Content: "a"},
			{Kind: diff.Removed, Content: "B"},
			{Kind: diff.Added, Content: "b"},
			{Kind: diff.Context, Content: "c"},
		}, first.Lines)

		second := d.Hunks[1]
		assert.Equal(t, 9, second.OriginalStart)
		assert.Equal(t, 9, second.FormattedStart)
		assert.Equal(t, 3, second.OriginalCount)
	})

	t.Run("wide context merges", func(t *testing.T) {
		t.Parallel()

		d := diff.Compute("x", []byte(original), []byte(formatted), 4)
		require.NotNil(t, d)
		require.Len(t, d.Hunks, 1)
		assert.Equal(t, 1, d.Hunks[0].OriginalStart)
		assert.Equal(t, 11, d.Hunks[0].OriginalCount)
		assert.Equal(t, 11, d.Hunks[0].FormattedCount)
	})
}

func TestChunks(t *testing.T) {
	t.Parallel()

	original := "use b;\nuse a;\n\nfn f()   {\n}\n"
	formatted := "use a;\nuse b;\n\nfn f() {}\n"

	chunks := diff.Chunks([]byte(original), []byte(formatted))

	assert.Equal(t, []diff.Chunk{
		{LineNumberOrig: 1, LinesRemoved: 1, Lines: []string{}},
		{LineNumberOrig: 3, LinesRemoved: 0, Lines: []string{"use b;"}},
		{LineNumberOrig: 4, LinesRemoved: 2, Lines: []string{"fn f() {}"}},
	}, chunks)

	assert.Nil(t, diff.Chunks([]byte("x\n"), []byte("x\n")))
}
