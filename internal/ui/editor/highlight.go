package editor

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/willibrandon/quill/internal/lang"
)

// maxCacheEntries bounds the highlight cache; it is reset when full.
const maxCacheEntries = 4096

// highlighter colours already-clipped row segments. Segments come out of
// Document.VisibleSegment, so highlighting never changes their width.
type highlighter struct {
	lexer   string // chroma lexer name, empty disables highlighting
	theme   string
	enabled bool
	cache   map[string]string
}

func newHighlighter(theme, path string, enabled bool) *highlighter {
	h := &highlighter{
		theme:   theme,
		enabled: enabled,
		cache:   make(map[string]string),
	}
	if lexer := lang.Lexer(path); lexer != nil {
		h.lexer = lexer.Config().Name
	}
	return h
}

// Highlight returns text with terminal colour escapes, or text unchanged
// when highlighting is off or fails.
func (h *highlighter) Highlight(text string) string {
	if !h.enabled || h.lexer == "" || strings.TrimSpace(text) == "" {
		return text
	}
	if cached, ok := h.cache[text]; ok {
		return cached
	}

	buf := new(bytes.Buffer)
	if err := quick.Highlight(buf, text, h.lexer, "terminal16m", h.theme); err != nil {
		return text
	}
	highlighted := strings.ReplaceAll(buf.String(), "\n", "")

	if len(h.cache) >= maxCacheEntries {
		h.cache = make(map[string]string)
	}
	h.cache[text] = highlighted
	return highlighted
}
