// Package lang maps file extensions to human-readable language names for the
// editor status bar. Names come from chroma's lexer registry so the label
// always agrees with the lexer used for highlighting.
package lang

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// displayNames overrides lexer names that read poorly as labels.
var displayNames = map[string]string{
	"plaintext": "Plain Text",
	"markdown":  "Markdown",
	"Docker":    "Dockerfile",
}

// Lookup returns the language name for ext, with or without its leading dot.
// Unknown extensions report false.
func Lookup(ext string) (string, bool) {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return "", false
	}
	return match("file." + strings.ToLower(ext))
}

// ForPath returns the language name for a file path, matching on the base
// name first so files like Makefile or Dockerfile resolve without an
// extension.
func ForPath(path string) (string, bool) {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return "", false
	}
	if name, ok := match(base); ok {
		return name, true
	}
	return Lookup(filepath.Ext(base))
}

// Lexer returns the chroma lexer for path, or nil when none matches.
func Lexer(path string) chroma.Lexer {
	return lexers.Match(filepath.Base(path))
}

func match(filename string) (string, bool) {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return "", false
	}
	name := lexer.Config().Name
	if label, ok := displayNames[name]; ok {
		return label, true
	}
	return name, true
}
