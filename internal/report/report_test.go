package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axhi246/fixedincome/internal/bond"
	"github.com/axhi246/fixedincome/internal/report"
)

func TestTableRender(t *testing.T) {
	var buf bytes.Buffer

	report.New(&buf, 2).Render([]bond.Row{
		{Label: "Present Value of Bond", Value: 990.5678},
		{Label: "Accrued Interest", Value: 17.333},
	})

	out := buf.String()
	require.Contains(t, out, "Present Value of Bond")
	require.Contains(t, out, "990.57")
	require.Contains(t, out, "17.33")
}

func TestTablePrecision(t *testing.T) {
	var buf bytes.Buffer

	report.New(&buf, 4).Render([]bond.Row{
		{Label: "Yield-to-Maturity (%)", Value: 6},
	})

	require.Contains(t, buf.String(), "6.0000")
}

func TestTableRendersOneLinePerRow(t *testing.T) {
	var buf bytes.Buffer

	rows := []bond.Row{
		{Label: "A", Value: 1},
		{Label: "B", Value: 2},
		{Label: "C", Value: 3},
	}
	report.New(&buf, 0).Render(rows)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(rows))
}
