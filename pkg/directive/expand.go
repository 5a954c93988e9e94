package directive

import (
	"strings"
)

// RenderFunc renders the output that replaces a directive
type RenderFunc func(d *Directive) (string, error)

// Expansion is the outcome of expanding a document
type Expansion struct {
	Output string
	// Rendered counts the directives that were replaced
	Rendered int
	// Errors holds one error per directive left untouched
	Errors []error
}

// Expand replaces every directive in doc with the output of render.
// Rendered output is a block: it always starts and ends a line, so a
// directive written inside a paragraph breaks that paragraph. Directives
// that do not parse, or whose rendering fails, stay in the document as they
// were. If stop returns true for a rendering error, expansion ends and that
// error is returned.
func Expand(doc string, render RenderFunc, stop func(error) bool) (*Expansion, error) {
	exp := &Expansion{}
	var b strings.Builder
	last := 0

	for _, loc := range Find(doc) {
		start, end := loc[0], loc[1]
		b.WriteString(doc[last:start])
		last = end

		markup := doc[start:end]
		d, err := Parse(markup)
		if err != nil {
			exp.Errors = append(exp.Errors, err)
			b.WriteString(markup)
			continue
		}

		out, err := render(d)
		if err != nil {
			if stop != nil && stop(err) {
				return nil, err
			}
			exp.Errors = append(exp.Errors, err)
			b.WriteString(markup)
			continue
		}

		if start > 0 && doc[start-1] != '\n' {
			b.WriteByte('\n')
		}
		b.WriteString(out)
		if end < len(doc) && doc[end] != '\n' {
			b.WriteByte('\n')
		}
		exp.Rendered++
	}

	b.WriteString(doc[last:])
	exp.Output = b.String()
	return exp, nil
}
