package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cli/go-gh/v2/pkg/browser"
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"

	"github.com/yahsan2/yt-list/pkg/config"
	"github.com/yahsan2/yt-list/pkg/issue"
	"github.com/yahsan2/yt-list/pkg/output"
	"github.com/yahsan2/yt-list/pkg/youtrack"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "yt-list",
	Short: "Render YouTrack issue searches as tables",
	Long: `Render YouTrack issue searches as tables for wiki pages and terminals.

This tool allows you to:
- List the issues matching a YouTrack query with the fields you choose
- Expand {{youtrack-list>FILTER|COLUMNS}} directives inside wiki pages
- Output DokuWiki, markdown, HTML, terminal tables, JSON or CSV`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(newLogger(cmd.ErrOrStderr(), debug))
	},
}

// Global flags
var (
	configPath   string
	outputFormat string
	debug        bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration file (default: .yt-list.yml in the current or a parent directory)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", fmt.Sprintf("Output format (%s)", output.FormatNames()))
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log requests and timeouts")
}

func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)

		var trackerErr *youtrack.TrackerError
		if errors.As(err, &trackerErr) && trackerErr.IsFatal() {
			return 2
		}
		return 1
	}
	return 0
}

// reportedError marks an error a command has already described to the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// printError writes err to w unless it was already reported
func printError(w io.Writer, err error) {
	var reported *reportedError
	if errors.As(err, &reported) {
		return
	}
	fmt.Fprintln(w, err)
}

// newLogger creates the logger every command writes its messages to: text on
// a terminal, JSON lines otherwise
func newLogger(w io.Writer, debug bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		options.Level = slog.LevelDebug
	}

	if f, ok := w.(*os.File); ok && xterm.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}

// loadConfig loads and validates the configuration for commands that talk to the tracker
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, &youtrack.TrackerError{
			Type:       youtrack.ErrorTypeConfiguration,
			Message:    "failed to load configuration",
			Cause:      err,
			Suggestion: "Run 'yt-list init' to create a configuration file",
		}
	}

	if err := cfg.Validate(); err != nil {
		suggestion := fmt.Sprintf("Check the settings in %s", config.ConfigFileName)
		if !cfg.HasCredentials() {
			suggestion = fmt.Sprintf("Set url, user and password in %s or via %s, %s and %s",
				config.ConfigFileName, config.EnvURL, config.EnvUser, config.EnvPassword)
		}
		return nil, &youtrack.TrackerError{
			Type:       youtrack.ErrorTypeConfiguration,
			Message:    "invalid configuration",
			Cause:      err,
			Suggestion: suggestion,
		}
	}

	return cfg, nil
}

// newLister wires a tracker client and a mapper for cfg
func newLister(cfg *config.Config, logger *slog.Logger) (*issue.Lister, *youtrack.Client, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, youtrack.NewConfigurationError("invalid timezone", err)
	}

	client := youtrack.NewClientFromConfig(cfg, logger)
	mapper := issue.NewMapper(cfg.DateFormat, loc, logger)
	return issue.NewLister(client, mapper), client, nil
}

// resolveFormat picks the --output flag over the configured format
func resolveFormat(cfg *config.Config, fallback output.FormatType) (output.FormatType, error) {
	name := outputFormat
	if name == "" && cfg != nil {
		name = cfg.Output.Format
	}
	if name == "" {
		return fallback, nil
	}
	return output.ParseFormat(name)
}

// terminalOptions describes the terminal the table format writes to
func terminalOptions() output.Options {
	t := term.FromEnv()
	opts := output.Options{IsTTY: t.IsTerminalOutput()}
	if opts.IsTTY {
		if width, _, err := t.Size(); err == nil {
			opts.Width = width
		}
	}
	return opts
}

// openInBrowser opens url with the user's configured browser
func openInBrowser(cmd *cobra.Command, url string) error {
	b := browser.New("", cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err := b.Browse(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
