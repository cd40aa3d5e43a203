package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Zuo-Peng/snapsimp/internal/analytics"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

// RenderRanking writes the first limit entries of r as a table with each
// identity's share of the total. limit <= 0 writes every entry.
func RenderRanking(w io.Writer, r analytics.Ranking, limit int) {
	total := r.Total()
	if limit <= 0 || limit > len(r) {
		limit = len(r)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Identity", "Count", "Share"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for i, c := range r[:limit] {
		share := 0.0
		if total > 0 {
			share = 100 * float64(c.Count) / float64(total)
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			c.Identity,
			humanize.Comma(int64(c.Count)),
			fmt.Sprintf("%.1f%%", share),
		})
	}
	table.Render()
}
