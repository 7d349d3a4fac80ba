package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/willibrandon/quill/internal/buffer"
	"github.com/willibrandon/quill/internal/config"
	"github.com/willibrandon/quill/internal/logger"
)

// execute runs the root command with args in an isolated home directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("QUILL_LOG_PATH", filepath.Join(home, "quill.log"))
	color.NoColor = true
	t.Cleanup(logger.Close)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestView(t *testing.T) {
	path := writeFile(t, "wide.txt", "abcdefghijklmno\n好好好")

	out, err := execute(t, "view", path, "--width", "10", "--height", "2", "--line", "1", "--char", "15")
	require.NoError(t, err)
	assert.Equal(t, "fghijklmno\n          \n", out)
}

func TestView_CursorOutOfRange(t *testing.T) {
	path := writeFile(t, "short.txt", "one\ntwo")

	_, err := execute(t, "view", path, "--width", "10", "--height", "2", "--line", "9")
	require.Error(t, err)
	assert.ErrorIs(t, err, buffer.ErrOutOfRange)
	assert.Contains(t, err.Error(), "--line 9")
}

func TestView_MissingFile(t *testing.T) {
	_, err := execute(t, "view", filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, buffer.ErrIO)
}

func TestInfo(t *testing.T) {
	path := writeFile(t, "main.go", "package main\r\n\r\nfunc main() {\r\n\tprintln(\"好\")\r\n}\r\n")

	out, err := execute(t, "info", path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "main.go\n"), out)
	for _, want := range []string{
		"language: Go",
		"line ending: CRLF",
		"indent: tabs",
		"lines: 6",
		"widest: 17 cells (line 4)",
		"size: 51 B",
		"modified:",
	} {
		assert.Contains(t, out, want)
	}
}

func TestConfig_PrintsEffectiveYAML(t *testing.T) {
	t.Setenv("QUILL_EDITOR_TAB_WIDTH", "2")

	out, err := execute(t, "config")
	require.NoError(t, err)

	var got config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.Editor.TabWidth)
	assert.Equal(t, config.IndentSpaces, got.Editor.Indent)
	assert.Equal(t, "catppuccin-macchiato", got.UI.SyntaxTheme)
}

func TestConfig_DebugFlag(t *testing.T) {
	out, err := execute(t, "config", "--debug")
	require.NoError(t, err)
	assert.Contains(t, out, "Debug mode: Logs written to")
	assert.Contains(t, out, "level: debug")
}

func TestConfig_InvalidFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "editor:\n  tab_width: 99\n")
	_, err := execute(t, "config", "--config", path)
	assert.Error(t, err)
}

func TestDocumentOptions(t *testing.T) {
	c := config.Default()
	c.Editor.TabWidth = 8
	c.Editor.Indent = config.IndentTabs

	doc := buffer.New(buffer.Size{Width: 10, Height: 2}, documentOptions(c)...)
	assert.Equal(t, 8, doc.TabWidth())
	assert.Equal(t, buffer.Indent{Style: buffer.Tabs, Width: 8}, doc.Format().Indent)

	c.Editor.Indent = config.IndentSpaces
	c.Editor.IndentWidth = 2
	doc = buffer.New(buffer.Size{Width: 10, Height: 2}, documentOptions(c)...)
	assert.Equal(t, "  ", doc.Format().Indent.Unit())
}

func TestOpenDocument(t *testing.T) {
	size := buffer.Size{Width: 10, Height: 2}

	scratch, err := openDocument(size, "", nil)
	require.NoError(t, err)
	assert.Empty(t, scratch.Path())

	path := filepath.Join(t.TempDir(), "later.txt")
	fresh, err := openDocument(size, path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, fresh.Path())
	require.NoError(t, fresh.InsertText("saved"))
	require.NoError(t, fresh.Save(""))

	reopened, err := openDocument(size, path, nil)
	require.NoError(t, err)
	text, _ := reopened.Text(0)
	assert.Equal(t, "saved", text)
}
