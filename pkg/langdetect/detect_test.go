package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/bracefmt/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		content string
		want    string
	}{
		{name: "rust extension", path: "src/main.rs", want: langdetect.Rust},
		{name: "go extension", path: "main.go", want: "Go"},
		{name: "python extension", path: "tool.py", want: "Python"},
		{name: "unknown without content", path: "notes", want: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, langdetect.Detect(testCase.path, []byte(testCase.content)))
		})
	}
}

func TestSupported(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.Supported(langdetect.Rust))
	assert.False(t, langdetect.Supported("Go"))
	assert.False(t, langdetect.Supported(""))
}

func TestIsVendored(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsVendored("vendor/foo/lib.rs"))
	assert.True(t, langdetect.IsVendored("node_modules/x/index.js"))
	assert.False(t, langdetect.IsVendored("src/lib.rs"))
}

func TestFormattable(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.Formattable("src/lib.rs", nil))
	assert.True(t, langdetect.Formattable("src/lib.rs", []byte("fn main() {}\n")))
	assert.False(t, langdetect.Formattable("main.go", []byte("package main\n")))
	assert.False(t, langdetect.Formattable("notes.txt", nil))
}
