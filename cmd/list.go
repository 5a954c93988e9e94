package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/yahsan2/yt-list/pkg/args"
	"github.com/yahsan2/yt-list/pkg/config"
	"github.com/yahsan2/yt-list/pkg/issue"
	"github.com/yahsan2/yt-list/pkg/output"
	"github.com/yahsan2/yt-list/pkg/youtrack"
)

var listCmd = &cobra.Command{
	Use:     "list ['FILTER|COL1, COL2']",
	Aliases: []string{"ls"},
	Short:   "List the issues matching a query",
	Long: `List the issues matching a YouTrack query as a table.

The query and the columns can be given as flags, or as a single argument in
the same form a wiki directive uses: 'FILTER|COL1, COL2'. The ID column links
to the issue; every other column shows the field of that name. At most 100
issues are listed.`,
	Example: `  # List unresolved issues of a project
  yt-list list --filter "project: ABC #Unresolved" --columns ID,summary,Assignee

  # Same, using directive syntax
  yt-list list 'project: ABC #Unresolved|ID, summary, Assignee'

  # Markdown output
  yt-list list 'project: ABC|ID, summary' -o markdown

  # Only the issue IDs
  yt-list list 'project: ABC|ID' -o json --jq '.[].ID'

  # Open the search in the web browser
  yt-list list --filter "project: ABC" --web`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	args.AddFilterFlag(listCmd, nil)
	args.AddCommonFlags(listCmd, nil)

	rootCmd.AddCommand(listCmd)
}

type ListCommand struct {
	lister *issue.Lister
	client *youtrack.Client
	logger *slog.Logger
	out    io.Writer
}

func runList(cmd *cobra.Command, cmdArgs []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	flags := args.DefaultFlags()
	if len(cfg.Output.Columns) > 0 {
		flags.DefaultColumns = cfg.Output.Columns
	}
	list, err := args.ParseCommonFlags(cmd, flags, cmdArgs)
	if err != nil {
		return youtrack.NewValidationError("failed to parse arguments", err)
	}
	if list.Filter == "" {
		return &youtrack.TrackerError{
			Type:       youtrack.ErrorTypeValidation,
			Message:    "a filter is required",
			Suggestion: "Pass --filter or an argument like 'project: ABC|ID, summary'",
		}
	}

	command, err := newListCommand(cfg, slog.Default(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if list.Web {
		return openInBrowser(cmd, command.client.IssuesURL(list.Filter))
	}

	format, err := resolveFormat(cfg, output.FormatDokuWiki)
	if err != nil {
		return youtrack.NewValidationError("invalid output format", err)
	}

	return command.Execute(cmd.Context(), list, format, terminalOptions())
}

func newListCommand(cfg *config.Config, logger *slog.Logger, out io.Writer) (*ListCommand, error) {
	lister, client, err := newLister(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &ListCommand{
		lister: lister,
		client: client,
		logger: logger,
		out:    out,
	}, nil
}

// Execute fetches the issues and renders them in format
func (c *ListCommand) Execute(ctx context.Context, list *args.ListArgs, format output.FormatType, opts output.Options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := c.lister.List(ctx, list.Filter, list.Columns)
	if err != nil {
		return err
	}

	opts.JQ = list.JQ
	renderer, err := output.NewRenderer(format, c.out, c.client.IssueURL, opts)
	if err != nil {
		return youtrack.NewValidationError("invalid output format", err)
	}

	if err := output.Render(renderer, result); err != nil {
		return fmt.Errorf("failed to render issues: %w", err)
	}

	if len(result.Warnings) > 0 {
		c.logger.Debug("some fields were missing", "count", len(result.Warnings))
	}
	return nil
}
