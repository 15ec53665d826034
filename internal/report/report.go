// Package report renders valuation detail as plain-text tables. It is the
// presentation side of the bond package's Reporter collaborator and never
// feeds anything back into the numbers.
package report

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/axhi246/fixedincome/internal/bond"
)

// Table writes label/value rows as an aligned two-column table.
type Table struct {
	out       io.Writer
	precision int
}

// New returns a Table writing to out. precision is the number of decimal
// places used for values.
func New(out io.Writer, precision int) *Table {
	return &Table{out: out, precision: precision}
}

func (t *Table) Render(rows []bond.Row) {
	w := tablewriter.NewWriter(t.out)
	w.SetBorder(false)
	w.SetColumnSeparator("")
	w.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, r := range rows {
		w.Append([]string{r.Label, strconv.FormatFloat(r.Value, 'f', t.precision, 64)})
	}
	w.Render()
}
