package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"a11ybridge/internal/bridge"
	"a11ybridge/internal/cli"
	"a11ybridge/internal/config"
	"a11ybridge/internal/platform"
	"a11ybridge/internal/registry"
	"a11ybridge/pkg/logging"
)

type watchOptions struct {
	bridge        bridgeFlags
	eventsFile    string
	format        string
	listeners     int
	watchSettings bool
}

// newWatchCmd creates the command that streams foreground-app events to
// registered listeners.
func newWatchCmd() *cobra.Command {
	opts := &watchOptions{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Dispatch foreground-app events to listeners and print them",
		Long: `Read raw accessibility events as JSON lines and dispatch window changes to
one or more listeners. Each listener prints the events it receives.

Input lines look like:
  {"eventType":32,"packageName":"com.android.chrome","className":"org.chromium.chrome.browser.ChromeTabbedActivity"}

Only eventType 32 (TYPE_WINDOW_STATE_CHANGED) with both names set is
dispatched. The --format flag takes a Go template with sprig functions; the
fields are .PackageName, .ClassName, .Timestamp (ms), .Time and .Listener.

With --watch-settings and a file settings source, enabled/disabled
transitions of the accessibility service are reported as the file changes.
When events come from --events-file the command exits once the file is read;
on stdin it keeps watching until stdin closes or it is interrupted.

Examples:
  adb logcat -s A11yEvents | my-decoder | a11ybridge watch -p com.example.app
  a11ybridge watch --events-file events.jsonl --listeners 3 --format '{{ .PackageName | upper }}'
  a11ybridge watch -p com.example.app --settings-file ./enabled --watch-settings`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	}
	registerBridgeFlags(cmd, &opts.bridge)
	cmd.Flags().StringVar(&opts.eventsFile, "events-file", "-", "JSON-lines event input ('-' for stdin)")
	cmd.Flags().StringVar(&opts.format, "format", cli.DefaultEventFormat, "Go template used to print each event")
	cmd.Flags().IntVar(&opts.listeners, "listeners", 1, "Number of independent listeners to register")
	cmd.Flags().BoolVar(&opts.watchSettings, "watch-settings", false, "Report enabled-state transitions when the settings file changes")
	return cmd
}

// syncWriter serialises writes from listeners and the settings watcher.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func runWatch(cmd *cobra.Command, opts *watchOptions) error {
	if opts.listeners < 1 {
		return errors.New("--listeners must be at least 1")
	}
	formatter, err := cli.NewEventFormatter(opts.format)
	if err != nil {
		return err
	}

	b, cfg, err := newBridge(cmd, &opts.bridge)
	if err != nil {
		return err
	}
	if opts.watchSettings && cfg.Settings.Source != config.SettingsSourceFile {
		return errors.New("--watch-settings requires a file settings source (--settings-file)")
	}

	input, closeInput, err := openEvents(cmd, opts.eventsFile)
	if err != nil {
		return err
	}
	defer closeInput()

	out := &syncWriter{w: cmd.OutOrStdout()}
	for i := 1; i <= opts.listeners; i++ {
		listener := i
		b.AddListener(func(ev registry.Event) error {
			return formatter.Write(out, listener, ev)
		})
	}
	logging.Debug("CLI", "Registered %d listeners", b.ListenerCount())

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	watchCtx, stopWatch := context.WithCancel(gctx)
	defer stopWatch()

	fromFile := opts.eventsFile != "" && opts.eventsFile != "-"
	g.Go(func() error {
		err := b.Run(gctx, platform.NewJSONLinesSource(input))
		if fromFile {
			stopWatch()
		}
		return err
	})
	if opts.watchSettings {
		g.Go(func() error {
			return watchSettings(watchCtx, b, cfg.Settings.Path, out)
		})
	}
	return g.Wait()
}

func watchSettings(ctx context.Context, b *bridge.Bridge, path string, out io.Writer) error {
	w := platform.NewSettingsWatcher(path, b.IsEnabled, func(enabled bool) {
		state := text.FgRed.Sprint("disabled")
		if enabled {
			state = text.FgGreen.Sprint("enabled")
		}
		fmt.Fprintf(out, "accessibility service for %s is %s\n", b.PackageName(), state)
	}, 0)
	return w.Run(ctx)
}

func openEvents(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening events file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
