package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/chazu/printcost/pkg/quote"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

func money(v float64) string { return fmt.Sprintf("%.2f", v) }

// renderQuote prints q as a table of items followed by the totals.
func renderQuote(w io.Writer, q quote.Quote) {
	o := q.Options
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s on %s, %.0f%% infill, %.2f h per print",
		o.Filament.Name, o.Printer.Name, o.InfillFraction*100, o.PrintHours)))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Part", "Copies", "Volume cm3", "Weight g", "Cost each", "Price each")
	for _, it := range q.Items {
		t.Row(
			it.Name,
			fmt.Sprintf("%d", it.Copies),
			fmt.Sprintf("%.3f", it.Estimate.VolumeCm3),
			fmt.Sprintf("%.2f", it.Estimate.WeightGrams),
			money(it.Breakdown.Total),
			money(it.Breakdown.SuggestedPrice),
		)
	}
	fmt.Fprintln(w, t.String())

	fmt.Fprintf(w, "Pieces:          %d\n", q.TotalPieces)
	fmt.Fprintf(w, "Filament:        %.2f g\n", q.TotalGrams)
	fmt.Fprintf(w, "Total cost:      %s\n", money(q.Totals.Total))
	fmt.Fprintf(w, "Suggested price: %s\n", money(q.Totals.SuggestedPrice))
	fmt.Fprintf(w, "Fees:            %s\n", money(q.Totals.Fees))
	fmt.Fprintf(w, "Net profit:      %s\n", money(q.Totals.NetProfit))
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
