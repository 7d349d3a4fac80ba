package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"github.com/willibrandon/quill/internal/buffer"
	"github.com/willibrandon/quill/internal/lang"
)

// fileInfo is the summary printed by quill info.
type fileInfo struct {
	Name       string
	Language   string
	LineEnding buffer.LineEnding
	Indent     buffer.Indent
	Lines      int
	Widest     int // display width of the widest line
	WidestLine int // 1-based
	Bytes      int64
	ModTime    time.Time
}

// newInfoCmd creates the info subcommand
func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Show the detected format of a file",
		Long: `Show what quill detects when it opens a file:
  - Language (from the file name)
  - Line ending (LF or CRLF)
  - Indentation
  - Line count and the widest line in display cells
  - Size and modification time`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := gatherInfo(args[0])
			if err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}
}

func gatherInfo(path string) (fileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return fileInfo{}, err
	}

	doc, err := buffer.Open(buffer.Size{Width: 1, Height: 1}, path, documentOptions(cfg)...)
	if err != nil {
		return fileInfo{}, err
	}
	defer doc.Close()

	language, ok := lang.ForPath(path)
	if !ok {
		language = "unknown"
	}

	info := fileInfo{
		Name:       filepath.Base(path),
		Language:   language,
		LineEnding: doc.Format().LineEnding,
		Indent:     doc.Format().Indent,
		Lines:      doc.LineCount(),
		Bytes:      st.Size(),
		ModTime:    st.ModTime(),
	}
	for i, n := 0, doc.LineCount(); i < n; i++ {
		w, _ := doc.DisplayWidth(i)
		if w > info.Widest {
			info.Widest = w
			info.WidestLine = i + 1
		}
	}
	return info, nil
}

func printInfo(w io.Writer, info fileInfo) {
	key := color.New(color.FgCyan).SprintFunc()
	name := color.New(color.Bold).SprintFunc()

	tree := treeprint.NewWithRoot(name(info.Name))
	tree.AddNode(fmt.Sprintf("%s %s", key("language:"), info.Language))
	tree.AddNode(fmt.Sprintf("%s %s", key("line ending:"), info.LineEnding))
	tree.AddNode(fmt.Sprintf("%s %s", key("indent:"), info.Indent))
	tree.AddNode(fmt.Sprintf("%s %s", key("lines:"), humanize.Comma(int64(info.Lines))))
	if info.WidestLine > 0 {
		tree.AddNode(fmt.Sprintf("%s %d cells (line %d)", key("widest:"), info.Widest, info.WidestLine))
	}
	tree.AddNode(fmt.Sprintf("%s %s", key("size:"), humanize.Bytes(uint64(info.Bytes))))
	if !info.ModTime.IsZero() {
		tree.AddNode(fmt.Sprintf("%s %s", key("modified:"), humanize.Time(info.ModTime)))
	}
	fmt.Fprint(w, tree.String())
}
