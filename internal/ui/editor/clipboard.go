package editor

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Clipboard moves text between the editor and the system clipboard.
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// clipTool is an external program pair used for clipboard access.
type clipTool struct {
	copy  []string
	paste []string
}

// systemClipboard shells out to the platform clipboard tools and degrades to
// an error when none is installed.
type systemClipboard struct {
	tool   *clipTool
	errMsg string
}

func newSystemClipboard() *systemClipboard {
	cb := &systemClipboard{}
	cb.checkAvailability()
	return cb
}

func (cb *systemClipboard) checkAvailability() {
	var candidates []clipTool
	switch runtime.GOOS {
	case "darwin":
		candidates = []clipTool{{copy: []string{"pbcopy"}, paste: []string{"pbpaste"}}}
	case "linux":
		candidates = []clipTool{
			{copy: []string{"xclip", "-selection", "clipboard"}, paste: []string{"xclip", "-selection", "clipboard", "-o"}},
			{copy: []string{"xsel", "--clipboard", "--input"}, paste: []string{"xsel", "--clipboard", "--output"}},
			{copy: []string{"wl-copy"}, paste: []string{"wl-paste", "--no-newline"}},
		}
	case "windows":
		candidates = []clipTool{{copy: []string{"clip"}, paste: []string{"powershell", "-NoProfile", "-Command", "Get-Clipboard"}}}
	default:
		cb.errMsg = fmt.Sprintf("unsupported platform: %s", runtime.GOOS)
		return
	}

	for i := range candidates {
		if _, err := exec.LookPath(candidates[i].copy[0]); err == nil {
			cb.tool = &candidates[i]
			return
		}
	}
	cb.errMsg = "clipboard tool not found (install xclip, xsel, or wl-copy)"
}

// IsAvailable returns whether clipboard operations are supported.
func (cb *systemClipboard) IsAvailable() bool {
	return cb.tool != nil
}

// Write copies text to the system clipboard.
func (cb *systemClipboard) Write(text string) error {
	if cb.tool == nil {
		return fmt.Errorf("clipboard unavailable: %s", cb.errMsg)
	}
	cmd := exec.Command(cb.tool.copy[0], cb.tool.copy[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// Read returns the system clipboard contents.
func (cb *systemClipboard) Read() (string, error) {
	if cb.tool == nil {
		return "", fmt.Errorf("clipboard unavailable: %s", cb.errMsg)
	}
	var out bytes.Buffer
	cmd := exec.Command(cb.tool.paste[0], cb.tool.paste[1:]...)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(out.String(), "\r\n"), nil
}
