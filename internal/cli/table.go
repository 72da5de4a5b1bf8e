package cli

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// NewPlainTable returns a table writer rendering kubectl-style output to w:
// upper-case headers, no borders and no box-drawing characters, so output
// can be piped to grep, awk and cut. Callers omit AppendHeader for
// --no-headers.
func NewPlainTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	style := table.StyleDefault
	style.Options = table.OptionsNoBordersAndSeparators
	style.Box.PaddingLeft = ""
	style.Box.PaddingRight = "   "
	style.Format.Header = text.FormatUpper
	style.Format.HeaderAlign = text.AlignLeft
	t.SetStyle(style)

	return t
}
