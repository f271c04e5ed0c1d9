package ui

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/jvx/internal/tree"
)

// Options configures the interactive run.
type Options struct {
	AppName     string
	NoColor     bool
	DebugMode   bool
	ExpandDepth int // 0 = collapsed, -1 = everything
	// StartKeys are logical keys replayed before the first frame.
	StartKeys []string
	// Width/Height of 0 auto-detect the terminal size.
	Width  int
	Height int
}

// NewModel builds a ready-to-run model from a projected hierarchy.
func NewModel(items []tree.Node, opts Options) *Model {
	m := InitialModel(items)
	if opts.AppName != "" {
		m.AppName = opts.AppName
	}
	m.NoColor = opts.NoColor
	m.DebugMode = opts.DebugMode
	m.Help.NoColor = opts.NoColor

	if opts.ExpandDepth != 0 {
		m.Nav.ExpandToDepth(items, opts.ExpandDepth)
	}

	runW, runH := opts.Width, opts.Height
	if runW <= 0 || runH <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if runW <= 0 {
				runW = w
			}
			if runH <= 0 {
				runH = h
			}
		}
	}
	if runW <= 0 {
		runW = 80
	}
	if runH <= 0 {
		runH = 24
	}
	m.WinWidth = runW
	m.WinHeight = runH
	if opts.Width > 0 || opts.Height > 0 {
		m.ForceWindowSize = true
		m.DesiredWinWidth = runW
		m.DesiredWinHeight = runH
	}
	m.SearchInput.SetWidth(maxInt(10, runW-4))

	if len(opts.StartKeys) > 0 {
		ApplyStartupKeys(&m, opts.StartKeys)
	}
	return &m
}

// RunModel starts the Bubble Tea program and blocks until quit. Extra
// program options (custom IO for tests, a context) can be appended.
func RunModel(items []tree.Node, opts Options, progOpts ...tea.ProgramOption) error {
	m := NewModel(items, opts)

	var teaOpts []tea.ProgramOption
	if opts.Width > 0 || opts.Height > 0 {
		teaOpts = append(teaOpts, tea.WithWindowSize(m.WinWidth, m.WinHeight))
	}
	teaOpts = append(teaOpts, progOpts...)

	prog := tea.NewProgram(m, teaOpts...)
	_, err := prog.Run()
	return err
}
