package format

import (
	"runtime"
	"strings"

	"github.com/yaklabco/bracefmt/pkg/config"
)

// ApplyNewlineStyle converts the LF line endings of formatted to the
// configured style. original is the unformatted input, used by auto to
// detect the file's existing convention.
func ApplyNewlineStyle(style config.NewlineStyle, original, formatted string) string {
	if useCRLF(style, original) {
		return strings.ReplaceAll(formatted, "\n", "\r\n")
	}

	return formatted
}

func useCRLF(style config.NewlineStyle, original string) bool {
	switch style {
	case config.NewlineWindows:
		return true
	case config.NewlineNative:
		return runtime.GOOS == "windows"
	case config.NewlineAuto:
		idx := strings.IndexByte(original, '\n')
		if idx < 0 {
			return runtime.GOOS == "windows"
		}

		return idx > 0 && original[idx-1] == '\r'
	default:
		return false
	}
}
