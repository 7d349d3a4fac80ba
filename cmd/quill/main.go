package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/willibrandon/quill/internal/buffer"
	"github.com/willibrandon/quill/internal/config"
	"github.com/willibrandon/quill/internal/logger"
	"github.com/willibrandon/quill/internal/ui/editor"
)

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	configPath string
	debug      bool

	// Loaded by the root command before any subcommand runs
	cfg *config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quill [file]",
		Short: "A small terminal text editor",
		Long: `quill edits text files in the terminal. Wide CJK characters, emoji,
combining marks and tabs are laid out by display width, and files are written
back with the line endings and indentation they were opened with.

Examples:
  quill notes.txt                       Edit a file (created on first save)
  quill view main.go --line 40          Print the rows visible around line 40
  quill info main.go                    Show the detected format of a file
  quill config                          Print the effective configuration`,
		Version:           version,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) { logger.Close() },
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runEditor(path)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/quill/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newViewCmd(),
		newInfoCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// setup loads the configuration and starts the log file.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if debug {
		cfg.Debug = true
		cfg.Log.Level = "debug"
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logPath := cfg.Log.Path
	if logPath == "" {
		logPath = logger.DefaultPath()
	}
	logger.InitLogger(level, logPath)
	if cfg.Debug {
		fmt.Fprintf(cmd.ErrOrStderr(), "Debug mode: Logs written to %s\n", logPath)
		logger.Debug("quill starting", "version", version, "config", configPath, "command", cmd.Name())
	}
	return nil
}

// documentOptions maps the editor section of the configuration onto buffer
// options.
func documentOptions(c *config.Config) []buffer.Option {
	indent := buffer.Indent{Style: buffer.Spaces, Width: c.Editor.IndentWidth}
	if c.Editor.Indent == config.IndentTabs {
		indent = buffer.Indent{Style: buffer.Tabs, Width: c.Editor.TabWidth}
	}
	return []buffer.Option{
		buffer.WithTabWidth(c.Editor.TabWidth),
		buffer.WithIndent(indent),
	}
}

// openDocument opens path, or starts an empty document that will be saved to
// path when the file does not exist yet.
func openDocument(size buffer.Size, path string, opts []buffer.Option) (*buffer.Document, error) {
	if path == "" {
		return buffer.New(size, opts...), nil
	}
	doc, err := buffer.Open(size, path, opts...)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("new file", "path", path)
		return buffer.New(size, append(opts, buffer.WithPath(path))...), nil
	}
	return doc, err
}

// terminalSize returns the size of the terminal on stdout, or 80x24 when
// stdout is not a terminal.
func terminalSize() buffer.Size {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil {
			return buffer.Size{Width: w, Height: h}
		}
	}
	return buffer.Size{Width: 80, Height: 24}
}

func runEditor(path string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal; use 'quill view' to print a file")
	}

	doc, err := openDocument(terminalSize(), path, documentOptions(cfg))
	if err != nil {
		return err
	}

	model := editor.New(doc,
		editor.WithSyntaxTheme(cfg.UI.SyntaxTheme),
		editor.WithHighlight(cfg.UI.Highlight),
		editor.WithStatusBar(cfg.UI.StatusBar),
	)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running editor: %w", err)
	}

	if summary := logger.Summary(); summary != "" {
		fmt.Fprintf(os.Stderr, "quill: %s logged, see %s\n", summary, logger.LogPath)
	}
	return nil
}
