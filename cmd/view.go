package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yahsan2/yt-list/pkg/args"
	"github.com/yahsan2/yt-list/pkg/config"
	"github.com/yahsan2/yt-list/pkg/issue"
	"github.com/yahsan2/yt-list/pkg/output"
	"github.com/yahsan2/yt-list/pkg/youtrack"
)

var viewCmd = &cobra.Command{
	Use:   "view ISSUE-ID",
	Short: "View a single issue",
	Long: `Display the fields of a single YouTrack issue as a one-row table.

The columns default to ID and summary, or to output.columns from the
configuration file.`,
	Example: `  # View an issue
  yt-list view ABC-123

  # Choose the fields
  yt-list view ABC-123 --columns ID,summary,State,Assignee -o styled

  # Open the issue in the web browser
  yt-list view ABC-123 --web`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	args.AddCommonFlags(viewCmd, nil)

	rootCmd.AddCommand(viewCmd)
}

type ViewCommand struct {
	lister *issue.Lister
	client *youtrack.Client
	out    io.Writer
}

func runView(cmd *cobra.Command, cmdArgs []string) error {
	id := strings.TrimSpace(cmdArgs[0])
	if id == "" {
		return youtrack.NewValidationError("issue id is required", nil)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	flags := args.DefaultFlags()
	if len(cfg.Output.Columns) > 0 {
		flags.DefaultColumns = cfg.Output.Columns
	}
	view, err := args.ParseCommonFlags(cmd, flags, nil)
	if err != nil {
		return youtrack.NewValidationError("failed to parse arguments", err)
	}

	command, err := newViewCommand(cfg, slog.Default(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if view.Web {
		return openInBrowser(cmd, command.client.IssueURL(id))
	}

	format, err := resolveFormat(cfg, output.FormatTable)
	if err != nil {
		return youtrack.NewValidationError("invalid output format", err)
	}

	opts := terminalOptions()
	opts.JQ = view.JQ
	return command.Execute(cmd.Context(), id, view.Columns, format, opts)
}

func newViewCommand(cfg *config.Config, logger *slog.Logger, out io.Writer) (*ViewCommand, error) {
	lister, client, err := newLister(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &ViewCommand{
		lister: lister,
		client: client,
		out:    out,
	}, nil
}

// Execute fetches the issue and renders the requested columns
func (c *ViewCommand) Execute(ctx context.Context, id string, columns []string, format output.FormatType, opts output.Options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := c.lister.Get(ctx, id, columns)
	if err != nil {
		return err
	}

	renderer, err := output.NewRenderer(format, c.out, c.client.IssueURL, opts)
	if err != nil {
		return youtrack.NewValidationError("invalid output format", err)
	}

	if err := output.Render(renderer, result); err != nil {
		return fmt.Errorf("failed to render issue: %w", err)
	}
	return nil
}
