package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		ext    string
		want   string
		wantOK bool
	}{
		{"rs", "Rust", true},
		{"txt", "Plain Text", true},
		{"go", "Go", true},
		{".go", "Go", true},
		{"GO", "Go", true},
		{"py", "Python", true},
		{"qqqzzz", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := Lookup(tt.ext)
		assert.Equal(t, tt.wantOK, ok, "ok for %q", tt.ext)
		assert.Equal(t, tt.want, got, "name for %q", tt.ext)
	}
}

func TestForPath(t *testing.T) {
	name, ok := ForPath("/src/project/main.rs")
	assert.True(t, ok)
	assert.Equal(t, "Rust", name)

	name, ok = ForPath("notes/TODO.txt")
	assert.True(t, ok)
	assert.Equal(t, "Plain Text", name)

	_, ok = ForPath("archive.qqqzzz")
	assert.False(t, ok)

	_, ok = ForPath("")
	assert.False(t, ok)
}

func TestLexer(t *testing.T) {
	assert.NotNil(t, Lexer("main.go"))
	assert.Nil(t, Lexer("blob.qqqzzz"))
}
