package init

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrompt(input string) (*InteractivePrompt, *bytes.Buffer) {
	var out bytes.Buffer
	return NewInteractivePromptWithIO(strings.NewReader(input), &out), &out
}

func TestGetStringInput(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		defaultValue string
		want         string
	}{
		{name: "answer", input: "https://yt.example.com\n", want: "https://yt.example.com"},
		{name: "answer is trimmed", input: "  wiki  \n", want: "wiki"},
		{name: "empty takes default", input: "\n", defaultValue: "%Y-%m-%d", want: "%Y-%m-%d"},
		{name: "eof takes default", input: "", defaultValue: "UTC", want: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newTestPrompt(tt.input)
			assert.Equal(t, tt.want, p.GetStringInput("Tracker URL", tt.defaultValue))
			assert.Contains(t, out.String(), "Tracker URL")
		})
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input      string
		defaultYes bool
		want       bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", defaultYes: true, want: false},
		{input: "\n", defaultYes: true, want: true},
		{input: "\n", want: false},
		{input: "", defaultYes: true, want: false},
	}

	for _, tt := range tests {
		p, _ := newTestPrompt(tt.input)
		assert.Equal(t, tt.want, p.Confirm("Continue?", tt.defaultYes), "input %q", tt.input)
	}
}

func TestConfirmOverwrite(t *testing.T) {
	p, out := newTestPrompt("y\n")
	assert.True(t, p.ConfirmOverwrite("/work/.yt-list.yml"))
	assert.Contains(t, out.String(), "/work/.yt-list.yml already exists")
}

func TestGetPasswordInput(t *testing.T) {
	p, _ := newTestPrompt("s3cret\n\n")

	password, err := p.GetPasswordInput("Password", "")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", password)

	password, err = p.GetPasswordInput("Password", "old")
	require.NoError(t, err)
	assert.Equal(t, "old", password)
}

func TestSelectOption(t *testing.T) {
	options := []string{"dokuwiki", "markdown", "html"}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "by number", input: "2\n", want: "markdown"},
		{name: "by name", input: "HTML\n", want: "html"},
		{name: "empty keeps default", input: "\n", want: "dokuwiki"},
		{name: "out of range", input: "9\n", want: "dokuwiki"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out := newTestPrompt(tt.input)
			assert.Equal(t, tt.want, p.SelectOption("Output format", options, "dokuwiki"))
			assert.Contains(t, out.String(), "* 1. dokuwiki")
		})
	}
}

func TestGetListInput(t *testing.T) {
	p, _ := newTestPrompt("ID, summary,, Assignee\n\n")

	assert.Equal(t, []string{"ID", "summary", "Assignee"}, p.GetListInput("Columns", nil))
	assert.Equal(t, []string{"ID", "summary"}, p.GetListInput("Columns", []string{"ID", "summary"}))
}

func TestHandleInitError(t *testing.T) {
	var out bytes.Buffer
	HandleInitError(&out, NewValidationError("url is required"))
	assert.Contains(t, out.String(), "Validation error: url is required")

	out.Reset()
	HandleInitError(&out, nil)
	assert.Empty(t, out.String())
}
