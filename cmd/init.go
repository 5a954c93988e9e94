package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yahsan2/yt-list/pkg/config"
	initpkg "github.com/yahsan2/yt-list/pkg/init"
	"github.com/yahsan2/yt-list/pkg/output"
	"github.com/yahsan2/yt-list/pkg/youtrack"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize yt-list configuration",
	Long: `Initialize a new yt-list configuration file (.yt-list.yml) in the current directory.

This command will:
- Ask for the tracker URL, user and password
- Set the date format, timezone and output defaults
- Log in once to check the credentials`,
	Example: `  # Interactive initialization
  yt-list init

  # Prefill the tracker and list the fields of a project
  yt-list init --url https://yt.example.com --user wiki --sample "project: ABC"

  # Write the file without contacting the tracker
  yt-list init --skip-verify`,
	RunE: runInit,
}

var (
	initURL        string
	initUser       string
	initSample     string
	initSkipVerify bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initURL, "url", "", "Tracker URL")
	initCmd.Flags().StringVar(&initUser, "user", "", "Tracker user")
	initCmd.Flags().StringVar(&initSample, "sample", "", "Query whose issues are used to list the available columns")
	initCmd.Flags().BoolVar(&initSkipVerify, "skip-verify", false, "Do not log in to check the configuration")
}

type InitCommand struct {
	prompt     *initpkg.InteractivePrompt
	out        io.Writer
	logger     *slog.Logger
	path       string
	url        string
	user       string
	sample     string
	skipVerify bool
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return initpkg.NewFileSystemError("failed to get working directory", err)
		}
		path = filepath.Join(wd, config.ConfigFileName)
	}

	command := &InitCommand{
		prompt:     initpkg.NewInteractivePrompt(),
		out:        cmd.OutOrStdout(),
		logger:     slog.Default(),
		path:       path,
		url:        initURL,
		user:       initUser,
		sample:     initSample,
		skipVerify: initSkipVerify,
	}

	if err := command.Execute(cmd.Context()); err != nil {
		initpkg.HandleInitError(cmd.ErrOrStderr(), err)
		return &reportedError{err: err}
	}
	return nil
}

// Execute asks for the configuration, verifies it and saves it
func (c *InitCommand) Execute(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.DefaultConfig()
	if _, err := os.Stat(c.path); err == nil {
		if !c.prompt.ConfirmOverwrite(c.path) {
			fmt.Fprintln(c.out, "Initialization cancelled.")
			return nil
		}

		existing, err := config.LoadFrom(c.path)
		if err != nil {
			c.logger.Warn("could not load existing config, starting from defaults", "error", err)
		} else {
			cfg = existing
			fmt.Fprintln(c.out, "Updating existing configuration...")
		}
	}

	if err := c.ask(cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return initpkg.NewValidationError(err.Error())
	}

	if !c.skipVerify {
		if err := c.verify(ctx, cfg); err != nil {
			return err
		}
	}

	if err := cfg.Save(c.path); err != nil {
		return initpkg.NewFileSystemError("failed to save configuration", err)
	}

	fmt.Fprintf(c.out, "✓ Configuration saved to %s\n", c.path)
	return nil
}

func (c *InitCommand) ask(cfg *config.Config) error {
	url := c.url
	if url == "" {
		url = c.prompt.GetStringInput("Tracker URL", cfg.URL)
	}
	cfg.URL = strings.TrimSpace(url)

	user := c.user
	if user == "" {
		user = c.prompt.GetStringInput("User", cfg.User)
	}
	cfg.User = strings.TrimSpace(user)

	password, err := c.prompt.GetPasswordInput("Password", cfg.Password)
	if err != nil {
		return err
	}
	cfg.Password = password

	cfg.DateFormat = c.prompt.GetStringInput("Date format (strftime)", cfg.DateFormat)
	cfg.Timezone = c.prompt.GetStringInput("Timezone", cfg.Timezone)

	timeout := c.prompt.GetStringInput("Request timeout", cfg.Timeouts.Read.String())
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return initpkg.NewValidationError(fmt.Sprintf("invalid timeout %q", timeout))
	}
	cfg.Timeouts.Connect = d
	cfg.Timeouts.Read = d

	formats := make([]string, len(output.Formats))
	for i, f := range output.Formats {
		formats[i] = string(f)
	}
	cfg.Output.Format = c.prompt.SelectOption("Output format", formats, cfg.Output.Format)

	return nil
}

func (c *InitCommand) verify(ctx context.Context, cfg *config.Config) error {
	client := youtrack.NewClientFromConfig(cfg, c.logger)

	fmt.Fprintf(c.out, "Logging in to %s...\n", cfg.BaseURL())
	if err := initpkg.NewConnectionDetector(client).Verify(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "✓ Login succeeded")

	if c.sample == "" {
		return nil
	}

	fields, err := initpkg.NewMetadataManager(client).DiscoverFields(ctx, c.sample)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Available columns: %s\n", strings.Join(fields, ", "))

	cfg.Output.Columns = c.prompt.GetListInput("Default columns", cfg.Output.Columns)
	return nil
}
