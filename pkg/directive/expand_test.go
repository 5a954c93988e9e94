package directive

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	doc := "intro\n{{youtrack-list>project: A|ID, Summary}}\nmiddle\n{{youtrack-list>broken}}\n{{youtrack-list>project: B|ID}}\noutro"

	var seen []string
	exp, err := Expand(doc, func(d *Directive) (string, error) {
		seen = append(seen, d.Filter)
		if d.Filter == "project: B" {
			return "", errors.New("login rejected")
		}
		return "TABLE(" + d.Filter + "|" + strings.Join(d.Columns, ",") + ")", nil
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"project: A", "project: B"}, seen)
	assert.Equal(t, 1, exp.Rendered)
	require.Len(t, exp.Errors, 2)
	assert.Equal(t,
		"intro\nTABLE(project: A|ID,Summary)\nmiddle\n{{youtrack-list>broken}}\n{{youtrack-list>project: B|ID}}\noutro",
		exp.Output)
}

func TestExpandWithoutDirectives(t *testing.T) {
	exp, err := Expand("plain page", func(d *Directive) (string, error) {
		t.Fatal("render must not be called")
		return "", nil
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "plain page", exp.Output)
	assert.Zero(t, exp.Rendered)
	assert.Empty(t, exp.Errors)
}

func TestExpandStopsOnFatalError(t *testing.T) {
	fatal := errors.New("cookie file leaked")
	calls := 0

	exp, err := Expand("{{youtrack-list>a|ID}} {{youtrack-list>b|ID}}", func(d *Directive) (string, error) {
		calls++
		return "", fatal
	}, func(err error) bool { return errors.Is(err, fatal) })

	assert.Nil(t, exp)
	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
}

func TestExpandMidLineDirectiveStartsOwnLine(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "inside a paragraph",
			doc:  "See {{youtrack-list>project: A|ID}} for details",
			want: "See \nTABLE\n for details",
		},
		{
			name: "at the end of a line",
			doc:  "See {{youtrack-list>project: A|ID}}\nnext",
			want: "See \nTABLE\nnext",
		},
		{
			name: "at the start of a line",
			doc:  "intro\n{{youtrack-list>project: A|ID}} trailing",
			want: "intro\nTABLE\n trailing",
		},
		{
			name: "whole document",
			doc:  "{{youtrack-list>project: A|ID}}",
			want: "TABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, err := Expand(tt.doc, func(d *Directive) (string, error) {
				return "TABLE", nil
			}, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, exp.Output)
		})
	}
}
