package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yahsan2/yt-list/pkg/config"
	"github.com/yahsan2/yt-list/pkg/directive"
	"github.com/yahsan2/yt-list/pkg/issue"
	"github.com/yahsan2/yt-list/pkg/output"
	"github.com/yahsan2/yt-list/pkg/youtrack"
)

var renderCmd = &cobra.Command{
	Use:   "render [FILE|-]",
	Short: "Replace issue list directives in a wiki page",
	Long: `Replace every {{youtrack-list>FILTER|COL1, COL2}} directive in a wiki page
with the table of matching issues.

The page is read from FILE, or from standard input when FILE is "-" or
missing. Directives that cannot be parsed or rendered are left as they are
and reported on standard error. A rendered table always starts on its own
line. Each directive runs its own tracker session.`,
	Example: `  # Render a DokuWiki page to standard output
  yt-list render data/pages/bugs.txt

  # Update the page in place
  yt-list render --in-place data/pages/bugs.txt

  # Render a markdown document from a pipe
  cat README.md | yt-list render -o markdown`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

var renderInPlace bool

func init() {
	renderCmd.Flags().BoolVarP(&renderInPlace, "in-place", "i", false, "Write the result back to FILE")

	rootCmd.AddCommand(renderCmd)
}

type RenderCommand struct {
	lister *issue.Lister
	client *youtrack.Client
	logger *slog.Logger
	format output.FormatType
	opts   output.Options
}

func runRender(cmd *cobra.Command, cmdArgs []string) error {
	path := "-"
	if len(cmdArgs) > 0 {
		path = cmdArgs[0]
	}
	if renderInPlace && path == "-" {
		return youtrack.NewValidationError("--in-place needs a file", nil)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := resolveFormat(cfg, output.FormatDokuWiki)
	if err != nil {
		return youtrack.NewValidationError("invalid output format", err)
	}

	command, err := newRenderCommand(cfg, slog.Default(), format)
	if err != nil {
		return err
	}

	doc, err := readDocument(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	rendered, err := command.Execute(cmd.Context(), doc)
	if err != nil {
		return err
	}

	if renderInPlace {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(rendered), info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return nil
	}

	_, err = io.WriteString(cmd.OutOrStdout(), rendered)
	return err
}

func newRenderCommand(cfg *config.Config, logger *slog.Logger, format output.FormatType) (*RenderCommand, error) {
	lister, client, err := newLister(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &RenderCommand{
		lister: lister,
		client: client,
		logger: logger,
		format: format,
	}, nil
}

// Execute expands every directive in doc. Only a fatal session error fails
// the whole document.
func (c *RenderCommand) Execute(ctx context.Context, doc string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	exp, err := directive.Expand(doc, func(d *directive.Directive) (string, error) {
		return c.renderDirective(ctx, d)
	}, isFatal)
	if err != nil {
		return "", err
	}

	for _, err := range exp.Errors {
		c.logger.Warn("directive left unchanged", "error", err)
	}
	c.logger.Debug("document rendered", "directives", exp.Rendered+len(exp.Errors), "rendered", exp.Rendered)

	return exp.Output, nil
}

func (c *RenderCommand) renderDirective(ctx context.Context, d *directive.Directive) (string, error) {
	result, err := c.lister.List(ctx, d.Filter, d.Columns)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	renderer, err := output.NewRenderer(c.format, &b, c.client.IssueURL, c.opts)
	if err != nil {
		return "", err
	}
	if err := output.Render(renderer, result); err != nil {
		return "", err
	}

	return strings.TrimSuffix(b.String(), "\n"), nil
}

// isFatal reports whether err must stop all further tracker calls
func isFatal(err error) bool {
	var trackerErr *youtrack.TrackerError
	return errors.As(err, &trackerErr) && trackerErr.IsFatal()
}

func readDocument(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
