// Package cmd implements the jvx command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/jvx/internal/tree"
	"github.com/oakwood-commons/jvx/internal/ui"
	"github.com/oakwood-commons/jvx/pkg/loader"
	"github.com/oakwood-commons/jvx/pkg/logger"
	"github.com/oakwood-commons/jvx/pkg/settings"
)

const defaultFallbackTermWidth = 120

// errShowHelp is returned by loadInputData when no input is provided and
// help should be shown instead of an error.
var errShowHelp = errors.New("no input provided")

// InputError marks a malformed or unreadable document, so callers can exit
// with a distinct status from runtime failures.
type InputError struct {
	err error
}

func (e *InputError) Error() string { return e.err.Error() }
func (e *InputError) Unwrap() error { return e.err }

var (
	rootCtx context.Context

	debug          bool
	noColor        bool
	renderSnapshot bool
	snapshotWidth  int
	snapshotHeight int
	expandDepth    int
	startKeys      []string
)

// openTerminalIOFn is swapped in tests to avoid touching /dev/tty.
var openTerminalIOFn = openTerminalIO

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: "Interactive JSON tree viewer for the terminal",
	Long: "jvx renders a JSON or YAML document as a collapsible tree.\n" +
		"Navigate with the arrow keys or vim motions, expand and collapse\n" +
		"nodes with enter or space, and press 'c' for the command overlay.",
	Example: "\n  jvx sample.json\n  curl -s https://api.example.com/items | jvx\n  jvx sample.json --expand 2\n  jvx sample.json --render --width 100 --height 40\n",
	Args:    cobra.MaximumNArgs(1),
	Version: cliVersionString(),
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		// Debug maps to zap's debug level (-1), everything else to info.
		var level int8 = 0
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr,
			logger.RootCommandKey, settings.CliBinaryName,
			logger.SubCommandKey, cmd.Name())
		rootCtx = logger.WithLogger(context.Background(), lgr)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		lgr := logger.FromContext(rootCtx)

		data, err := loadInputData(args)
		if err != nil {
			if errors.Is(err, errShowHelp) {
				return cmd.Help()
			}
			return err
		}

		root, err := loader.Decode(data)
		if err != nil {
			return &InputError{err: err}
		}
		items := tree.Project(root)
		lgr.V(1).Info("projected document", "top_level_nodes", len(items))

		opts := ui.Options{
			AppName:     settings.CliBinaryName,
			NoColor:     noColor,
			DebugMode:   debug,
			ExpandDepth: expandDepth,
			StartKeys:   startKeys,
			Width:       snapshotWidth,
			Height:      snapshotHeight,
		}

		if renderSnapshot {
			sizing := resolveSnapshotSize(snapshotWidth, snapshotHeight)
			opts.Width = sizing.Width
			opts.Height = sizing.Height
			m := ui.NewModel(items, opts)
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderSnapshot(m))
			return nil
		}

		progOpts, cleanup := programOptions()
		defer cleanup()
		if err := ui.RunModel(items, opts, progOpts...); err != nil {
			return fmt.Errorf("viewer failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging to stderr")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.Flags().BoolVar(&renderSnapshot, "render", false, "render one frame to stdout and exit")
	rootCmd.Flags().IntVar(&snapshotWidth, "width", 0, "viewport width (0 = auto-detect)")
	rootCmd.Flags().IntVar(&snapshotHeight, "height", 0, "viewport height (0 = auto-detect)")
	rootCmd.Flags().IntVar(&expandDepth, "expand", 0, "pre-expand containers to this depth (-1 = all)")
	rootCmd.Flags().StringArrayVar(&startKeys, "keys", nil, "keys to replay at startup, e.g. --keys '<Down><CR>'")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadInputData reads the document bytes from the file argument or stdin.
// With neither a file nor piped stdin there is nothing to view, and the
// caller shows help instead.
func loadInputData(args []string) ([]byte, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return data, nil
	}

	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, errShowHelp
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}
	return data, nil
}

type snapshotSize struct {
	Width  int
	Height int
}

// resolveSnapshotSize fills unset snapshot dimensions from the detected
// terminal size, with 80x24 as the final fallback.
func resolveSnapshotSize(flagWidth, flagHeight int) snapshotSize {
	width, height := flagWidth, flagHeight
	if width <= 0 || height <= 0 {
		w, h := detectTerminalSize()
		if width <= 0 {
			width = w
		}
		if height <= 0 {
			height = h
		}
	}
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return snapshotSize{Width: width, Height: height}
}

func detectTerminalSize() (int, int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := term.GetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 0
		}
	}
	return defaultFallbackTermWidth, 0
}

// programOptions handles piped stdin by reopening the terminal for
// interactive input. Without this, keyboard input would compete with the
// already-consumed document stream.
func programOptions() ([]tea.ProgramOption, func()) {
	cleanup := func() {}
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, cleanup
	}

	ttyIn, ttyOut, err := openTerminalIOFn()
	if err != nil {
		// No terminal available (e.g. CI). Fall back to piped stdin; the
		// snapshot path is the supported mode there anyway.
		return nil, cleanup
	}
	cleanup = func() {
		_ = ttyIn.Close()
		if ttyOut != nil && ttyOut != ttyIn {
			_ = ttyOut.Close()
		}
	}

	opts := []tea.ProgramOption{tea.WithInput(ttyIn)}
	if ttyOut != nil {
		opts = append(opts, tea.WithOutput(ttyOut))
	}
	return opts, cleanup
}

func openTerminalIO() (*os.File, *os.File, error) {
	in, out := terminalDeviceNames(runtime.GOOS)
	input, err := os.OpenFile(in, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}
	if out == "" || out == in {
		return input, input, nil
	}
	output, err := os.OpenFile(out, os.O_RDWR, 0)
	if err != nil {
		return input, nil, err
	}
	return input, output, nil
}

func terminalDeviceNames(goos string) (input, output string) {
	if goos == "windows" {
		return "CONIN$", "CONOUT$"
	}
	return "/dev/tty", "/dev/tty"
}

func cliVersionString() string {
	return fmt.Sprintf("%s %s (go %s)",
		settings.CliBinaryName,
		settings.VersionInformation.BuildVersion,
		runtime.Version())
}
