package args

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yahsan2/yt-list/pkg/directive"
	"github.com/yahsan2/yt-list/pkg/issue"
)

// DefaultColumns are shown when neither flags, a directive nor the
// configuration name any
var DefaultColumns = []string{issue.IDColumn, "summary"}

// CommonFlags contains flag names used across commands, plus the columns
// used when none are given
type CommonFlags struct {
	Filter  string
	Columns string
	JQ      string
	Web     string

	DefaultColumns []string
}

// DefaultFlags returns the default flag names
func DefaultFlags() *CommonFlags {
	return &CommonFlags{
		Filter:  "filter",
		Columns: "columns",
		JQ:      "jq",
		Web:     "web",

		DefaultColumns: DefaultColumns,
	}
}

// ListArgs is what a list-style command resolved from its flags and arguments
type ListArgs struct {
	Filter  string
	Columns []string
	JQ      string
	Web     bool
}

// AddCommonFlags adds the column, jq and web flags to the command
func AddCommonFlags(cmd *cobra.Command, flags *CommonFlags) {
	if flags == nil {
		flags = DefaultFlags()
	}

	cmd.Flags().StringSliceP(flags.Columns, "c", nil, "Comma separated fields to show as columns (default \"ID,summary\")")
	cmd.Flags().StringP(flags.JQ, "q", "", "Filter JSON output using a jq expression")
	cmd.Flags().BoolP(flags.Web, "w", false, "Open the result in the browser")
}

// AddFilterFlag adds the search query flag to the command
func AddFilterFlag(cmd *cobra.Command, flags *CommonFlags) {
	if flags == nil {
		flags = DefaultFlags()
	}

	cmd.Flags().StringP(flags.Filter, "f", "", "Search query in the tracker's query language")
}

// ParseCommonFlags extracts list arguments from command flags. A positional
// argument in directive form, 'FILTER|COL1, COL2', fills whatever the flags
// left empty.
func ParseCommonFlags(cmd *cobra.Command, flags *CommonFlags, args []string) (*ListArgs, error) {
	if flags == nil {
		flags = DefaultFlags()
	}

	list := &ListArgs{}
	var err error

	if cmd.Flags().Lookup(flags.Filter) != nil {
		if list.Filter, err = cmd.Flags().GetString(flags.Filter); err != nil {
			return nil, err
		}
	}

	if list.Columns, err = cmd.Flags().GetStringSlice(flags.Columns); err != nil {
		return nil, err
	}

	if list.JQ, err = cmd.Flags().GetString(flags.JQ); err != nil {
		return nil, err
	}

	if list.Web, err = cmd.Flags().GetBool(flags.Web); err != nil {
		return nil, err
	}

	if len(args) > 0 {
		d, err := directive.ParseBody(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid list argument: %w", err)
		}
		if list.Filter == "" {
			list.Filter = d.Filter
		}
		if len(list.Columns) == 0 {
			list.Columns = d.Columns
		}
	}

	list.Columns = issue.CleanColumns(list.Columns)
	if len(list.Columns) == 0 {
		list.Columns = issue.CleanColumns(flags.DefaultColumns)
	}
	if len(list.Columns) == 0 {
		list.Columns = append([]string(nil), DefaultColumns...)
	}

	return list, nil
}
