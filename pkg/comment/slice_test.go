package comment_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/bracefmt/pkg/comment"
)

func TestSlices(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []comment.Slice
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "code only",
			input: "  x;\n",
			want:  []comment.Slice{{Kind: comment.Normal, Offset: 0, Text: "  x;\n"}},
		},
		{
			name:  "line comment keeps its newline",
			input: " // hello\n\n // world\n ",
			want: []comment.Slice{
				{Kind: comment.Normal, Offset: 0, Text: " "},
				{Kind: comment.Comment, Offset: 1, Text: "// hello\n"},
				{Kind: comment.Normal, Offset: 10, Text: "\n "},
				{Kind: comment.Comment, Offset: 12, Text: "// world\n"},
				{Kind: comment.Normal, Offset: 21, Text: " "},
			},
		},
		{
			name:  "nested block comment",
			input: "a /* x /* y */ z */ b",
			want: []comment.Slice{
				{Kind: comment.Normal, Offset: 0, Text: "a "},
				{Kind: comment.Comment, Offset: 2, Text: "/* x /* y */ z */"},
				{Kind: comment.Normal, Offset: 19, Text: " b"},
			},
		},
		{
			name:  "unterminated block comment runs to end",
			input: "x /* open",
			want: []comment.Slice{
				{Kind: comment.Normal, Offset: 0, Text: "x "},
				{Kind: comment.Comment, Offset: 2, Text: "/* open"},
			},
		},
		{
			name:  "line comment at end without newline",
			input: "x; // end",
			want: []comment.Slice{
				{Kind: comment.Normal, Offset: 0, Text: "x; "},
				{Kind: comment.Comment, Offset: 3, Text: "// end"},
			},
		},
		{
			name:  "comment markers inside strings are code",
			input: `let s = "// no"; let r = r#"/* "no" */"#;`,
			want: []comment.Slice{
				{Kind: comment.Normal, Offset: 0, Text: `let s = "// no"; let r = r#"/* "no" */"#;`},
			},
		},
		{
			name:  "escaped quote in string",
			input: `"a\"//" // yes`,
			want: []comment.Slice{
				{Kind: comment.Normal, Offset: 0, Text: `"a\"//" `},
				{Kind: comment.Comment, Offset: 8, Text: "// yes"},
			},
		},
		{
			name:  "char literal quote and lifetime",
			input: "f::<'a>('\"'); // c",
			want: []comment.Slice{
				{Kind: comment.Normal, Offset: 0, Text: "f::<'a>('\"'); "},
				{Kind: comment.Comment, Offset: 14, Text: "// c"},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := comment.Slices(testCase.input)
			assert.Equal(t, testCase.want, got)

			var rebuilt strings.Builder
			for _, slice := range got {
				rebuilt.WriteString(slice.Text)
			}
			assert.Equal(t, testCase.input, rebuilt.String())
		})
	}
}

func TestContainsComment(t *testing.T) {
	t.Parallel()

	assert.True(t, comment.ContainsComment("{ // x\n}"))
	assert.True(t, comment.ContainsComment("{ /* x */ }"))
	assert.False(t, comment.ContainsComment("{ \n }"))
	assert.False(t, comment.ContainsComment(`{ "//" }`))
}

func TestSliceEnd(t *testing.T) {
	t.Parallel()

	slice := comment.Slice{Kind: comment.Comment, Offset: 4, Text: "// x\n"}
	assert.Equal(t, 9, slice.End())
	assert.Equal(t, "comment", slice.Kind.String())
	assert.Equal(t, "normal", comment.Normal.String())
}
