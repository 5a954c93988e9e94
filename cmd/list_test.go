package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahsan2/yt-list/pkg/args"
	"github.com/yahsan2/yt-list/pkg/output"
	"github.com/yahsan2/yt-list/pkg/youtrack"
)

func TestListCommand_Execute(t *testing.T) {
	srv := newTestTracker(t)

	var out, logs bytes.Buffer
	command, err := newListCommand(testConfig(srv.URL), slog.New(slog.NewTextHandler(&logs, nil)), &out)
	require.NoError(t, err)

	list := &args.ListArgs{
		Filter:  "project: ABC",
		Columns: []string{"ID", "summary", "Assignee", "created"},
	}
	err = command.Execute(context.Background(), list, output.FormatDokuWiki, output.Options{})
	require.NoError(t, err)

	want := "^ %%ID%% ^ %%summary%% ^ %%Assignee%% ^ %%created%% ^\n" +
		"| [[" + issueURL(srv, "ABC-1") + "|ABC-1]] | %%Fix login%% | %%Jane Doe%% | %%2023-11-14%% |\n" +
		"| [[" + issueURL(srv, "ABC-2") + "|ABC-2]] | %%Add logout%% |  | %%2023-11-15%% |\n"
	assert.Equal(t, want, out.String())

	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "Assignee")
	assert.Contains(t, logs.String(), "ABC-2")
}

func TestListCommand_NothingFound(t *testing.T) {
	srv := newTestTracker(t)

	var out bytes.Buffer
	command, err := newListCommand(testConfig(srv.URL), discardLogger(), &out)
	require.NoError(t, err)

	list := &args.ListArgs{Filter: "project: NONE", Columns: []string{"ID"}}
	require.NoError(t, command.Execute(context.Background(), list, output.FormatMarkdown, output.Options{}))

	assert.Equal(t, output.NothingFound+"\n", out.String())
}

func TestListCommand_LoginRejected(t *testing.T) {
	srv := newTestTracker(t)
	cfg := testConfig(srv.URL)
	cfg.Password = "wrong"

	var out bytes.Buffer
	command, err := newListCommand(cfg, discardLogger(), &out)
	require.NoError(t, err)

	list := &args.ListArgs{Filter: "project: ABC", Columns: []string{"ID"}}
	err = command.Execute(context.Background(), list, output.FormatDokuWiki, output.Options{})

	assert.ErrorIs(t, err, youtrack.ErrAuth)
	assert.Empty(t, out.String())
}

func TestListCommand_JSONWithJQ(t *testing.T) {
	srv := newTestTracker(t)

	var out bytes.Buffer
	command, err := newListCommand(testConfig(srv.URL), discardLogger(), &out)
	require.NoError(t, err)

	list := &args.ListArgs{Filter: "project: ABC", Columns: []string{"ID", "summary"}, JQ: ".[].url"}
	require.NoError(t, command.Execute(context.Background(), list, output.FormatJSON, output.Options{}))

	assert.Equal(t, issueURL(srv, "ABC-1")+"\n"+issueURL(srv, "ABC-2")+"\n", out.String())
}

func TestListCmd_DirectiveArgument(t *testing.T) {
	srv := newTestTracker(t)
	path := writeTestConfig(t, testConfig(srv.URL))

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"list", "--config", path, "-o", "markdown", "project: ABC|ID, summary"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		configPath, outputFormat = "", ""
	})

	require.NoError(t, rootCmd.Execute())

	want := "| ID | summary |\n" +
		"| --- | --- |\n" +
		"| [ABC-1](" + issueURL(srv, "ABC-1") + ") | Fix login |\n" +
		"| [ABC-2](" + issueURL(srv, "ABC-2") + ") | Add logout |\n"
	assert.Equal(t, want, out.String())
}

func TestListCmd_MissingConfiguration(t *testing.T) {
	t.Setenv("YT_LIST_URL", "")
	t.Setenv("YT_LIST_USER", "")
	t.Setenv("YT_LIST_PASSWORD", "")

	cfg := testConfig("https://yt.example.com")
	cfg.Password = ""
	path := writeTestConfig(t, cfg)

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"list", "--config", path, "project: ABC|ID"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		configPath = ""
	})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, youtrack.ErrConfiguration)
	assert.Contains(t, err.Error(), "password is required")

	var trackerErr *youtrack.TrackerError
	require.ErrorAs(t, err, &trackerErr)
	assert.Contains(t, trackerErr.Suggestion, "YT_LIST_PASSWORD")
}

func TestLoadConfig_InvalidSettingSuggestion(t *testing.T) {
	cfg := testConfig("https://yt.example.com")
	cfg.Timezone = "Nowhere/Invalid"
	configPath = writeTestConfig(t, cfg)
	t.Cleanup(func() { configPath = "" })

	_, err := loadConfig()

	var trackerErr *youtrack.TrackerError
	require.ErrorAs(t, err, &trackerErr)
	assert.Equal(t, youtrack.ErrorTypeConfiguration, trackerErr.Type)
	assert.Contains(t, trackerErr.Suggestion, "Check the settings in .yt-list.yml")
	assert.NotContains(t, trackerErr.Suggestion, "YT_LIST_PASSWORD")
}
