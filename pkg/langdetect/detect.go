// Package langdetect decides which discovered files bracefmt formats.
// It uses go-enry, the linguist port, so that files are picked by the same
// rules code hosts use: extension, filename, shebang and content.
package langdetect

import (
	"path/filepath"
	"slices"

	"github.com/go-enry/go-enry/v2"
)

// Rust is the enry name of the language bracefmt formats.
const Rust = "Rust"

// Supported reports whether lang is a language bracefmt formats.
func Supported(lang string) bool {
	return lang == Rust
}

// Detect returns the linguist language of the file at path. content may be
// nil, in which case only the name is used.
// An extension shared by several languages, like .rs, resolves to a
// supported language when no content is given and by the classifier
// otherwise.
func Detect(path string, content []byte) string {
	name := filepath.Base(path)

	if lang, safe := enry.GetLanguageByFilename(name); safe {
		return lang
	}

	candidates := enry.GetLanguagesByExtension(name, content, nil)
	switch {
	case len(candidates) == 1:
		return candidates[0]
	case len(candidates) > 1 && len(content) == 0:
		if idx := slices.IndexFunc(candidates, Supported); idx >= 0 {
			return candidates[idx]
		}
		return candidates[0]
	case len(candidates) > 1:
		lang, _ := enry.GetLanguageByClassifier(content, candidates)
		return lang
	}

	if len(content) == 0 {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang
	}

	return enry.GetLanguage(name, content)
}

// Formattable reports whether the file at path should be formatted: its
// extension admits a supported language, or its content is detected as one.
func Formattable(path string, content []byte) bool {
	candidates := enry.GetLanguagesByExtension(filepath.Base(path), content, nil)
	if slices.ContainsFunc(candidates, Supported) {
		return true
	}

	return Supported(Detect(path, content))
}

// IsVendored reports whether path lies in a directory linguist treats as
// third-party code, such as vendor/ or node_modules/.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}

// IsGenerated reports whether the file at path looks machine-generated.
func IsGenerated(path string, content []byte) bool {
	return enry.IsGenerated(filepath.ToSlash(path), content)
}
