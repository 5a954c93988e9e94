package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahsan2/yt-list/pkg/output"
)

func TestRenderCommand_Execute(t *testing.T) {
	srv := newTestTracker(t)

	var logs bytes.Buffer
	command, err := newRenderCommand(testConfig(srv.URL), slog.New(slog.NewTextHandler(&logs, nil)), output.FormatDokuWiki)
	require.NoError(t, err)

	doc := "====== Open bugs ======\n" +
		"{{youtrack-list>project: ABC|ID, summary}}\n" +
		"\n" +
		"===== Nothing here =====\n" +
		"{{youtrack-list>project: NONE|ID}}\n" +
		"\n" +
		"{{youtrack-list>project: ABC}}\n"

	got, err := command.Execute(context.Background(), doc)
	require.NoError(t, err)

	want := "====== Open bugs ======\n" +
		"^ %%ID%% ^ %%summary%% ^\n" +
		"| [[" + issueURL(srv, "ABC-1") + "|ABC-1]] | %%Fix login%% |\n" +
		"| [[" + issueURL(srv, "ABC-2") + "|ABC-2]] | %%Add logout%% |\n" +
		"\n" +
		"===== Nothing here =====\n" +
		"\nNothing was found.\n" +
		"\n" +
		"\n" +
		"{{youtrack-list>project: ABC}}\n"
	assert.Equal(t, want, got)

	assert.Contains(t, logs.String(), "directive left unchanged")
	assert.Contains(t, logs.String(), "missing '|'")
}

func TestRenderCommand_LoginFailureLeavesDirective(t *testing.T) {
	srv := newTestTracker(t)
	cfg := testConfig(srv.URL)
	cfg.Password = "wrong"

	command, err := newRenderCommand(cfg, discardLogger(), output.FormatDokuWiki)
	require.NoError(t, err)

	doc := "before {{youtrack-list>project: ABC|ID}} after"
	got, err := command.Execute(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, doc, got)
}

func TestRenderCommand_MidLineDirective(t *testing.T) {
	srv := newTestTracker(t)

	command, err := newRenderCommand(testConfig(srv.URL), discardLogger(), output.FormatDokuWiki)
	require.NoError(t, err)

	got, err := command.Execute(context.Background(), "See {{youtrack-list>project: ABC|ID}} for details\n")
	require.NoError(t, err)

	want := "See \n" +
		"^ %%ID%% ^\n" +
		"| [[" + issueURL(srv, "ABC-1") + "|ABC-1]] |\n" +
		"| [[" + issueURL(srv, "ABC-2") + "|ABC-2]] |\n" +
		" for details\n"
	assert.Equal(t, want, got)
}

func TestRenderCmd_InPlace(t *testing.T) {
	srv := newTestTracker(t)
	configFile := writeTestConfig(t, testConfig(srv.URL))

	page := filepath.Join(t.TempDir(), "bugs.txt")
	require.NoError(t, os.WriteFile(page, []byte("{{youtrack-list>project: ABC|ID}}\n"), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"render", "--config", configFile, "-o", "dokuwiki", "--in-place", page})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		configPath, outputFormat, renderInPlace = "", "", false
	})

	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(page)
	require.NoError(t, err)
	want := "^ %%ID%% ^\n" +
		"| [[" + issueURL(srv, "ABC-1") + "|ABC-1]] |\n" +
		"| [[" + issueURL(srv, "ABC-2") + "|ABC-2]] |\n"
	assert.Equal(t, want, string(data))
	assert.Empty(t, out.String())
}

func TestReadDocument(t *testing.T) {
	doc, err := readDocument(bytes.NewBufferString("from stdin"), "-")
	require.NoError(t, err)
	assert.Equal(t, "from stdin", doc)

	_, err = readDocument(nil, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
