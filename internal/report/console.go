package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"martcli/pkg/contracts/domain"
)

// ConsolePrinter renders the report as tables on a terminal.
type ConsolePrinter struct {
	out io.Writer

	heading *color.Color
	accent  *color.Color
}

// NewConsolePrinter creates a printer writing to out.
func NewConsolePrinter(out io.Writer) *ConsolePrinter {
	return &ConsolePrinter{
		out:     out,
		heading: color.New(color.FgCyan, color.Bold),
		accent:  color.New(color.FgYellow),
	}
}

// Print renders the full report: narrative first, then the three aggregate
// tables.
func (p *ConsolePrinter) Print(data *Data) {
	p.heading.Fprintln(p.out, "Grocery Sales Report")
	fmt.Fprintf(p.out, "Run %s, generated %s\n\n", data.RunID, data.GeneratedAt.Format("2006-01-02 15:04:05"))

	for _, line := range Narrative(data) {
		fmt.Fprintln(p.out, line)
	}
	fmt.Fprintln(p.out)

	p.PrintWeekly(data.Weekly)
	p.PrintHourly(data.Hourly)
	p.PrintProducts("Top Products", data.Top)
	p.PrintProducts("Bottom Products", data.Bottom)
}

// PrintWeekly renders the weekly totals with their deviation from the mean.
func (p *ConsolePrinter) PrintWeekly(totals []domain.WeeklyTotal) {
	p.heading.Fprintln(p.out, "Weekly Sales")

	table := tablewriter.NewTable(p.out)
	table.Header([]string{"Year", "Week", "Total", "Deviation"})
	for _, wt := range totals {
		table.Append([]string{
			strconv.Itoa(wt.Year),
			strconv.Itoa(wt.Week),
			wt.Total.StringFixed(2),
			wt.Deviation.StringFixed(2),
		})
	}
	table.Render()
	fmt.Fprintln(p.out)
}

// PrintHourly renders all 24 hourly buckets and highlights the peak hour.
func (p *ConsolePrinter) PrintHourly(totals []domain.HourlyTotal) {
	p.heading.Fprintln(p.out, "Hourly Sales")

	peak := -1
	for _, ht := range totals {
		if !ht.Total.IsZero() && (peak < 0 || ht.Total.GreaterThan(totals[peak].Total)) {
			peak = ht.Hour
		}
	}

	table := tablewriter.NewTable(p.out)
	table.Header([]string{"Hour", "Total"})
	for _, ht := range totals {
		hour := fmt.Sprintf("%02d:00", ht.Hour)
		if ht.Hour == peak {
			hour = p.accent.Sprintf("%s *", hour)
		}
		table.Append([]string{hour, ht.Total.StringFixed(2)})
	}
	table.Render()
	fmt.Fprintln(p.out)
}

// PrintTransactions renders a filtered transaction listing, used by the
// customer/product drill-down.
func (p *ConsolePrinter) PrintTransactions(transactions []domain.Transaction) {
	p.heading.Fprintln(p.out, "Transactions")

	if len(transactions) == 0 {
		fmt.Fprintln(p.out, "No matching transactions.")
		return
	}

	table := tablewriter.NewTable(p.out)
	table.Header([]string{"Date", "Customer", "Product", "Qty", "Unit Price", "Total", "Days Since Last"})
	for _, tx := range transactions {
		table.Append([]string{
			tx.Date.Format("2006-01-02"),
			tx.CustomerID,
			tx.ProductName,
			strconv.FormatInt(tx.Quantity, 10),
			tx.UnitPrice.StringFixed(2),
			tx.TotalSale.StringFixed(2),
			strconv.Itoa(tx.DaysSinceLastPurchase),
		})
	}
	table.Render()
	fmt.Fprintln(p.out)
}

// PrintProducts renders a product revenue ranking under the given title.
func (p *ConsolePrinter) PrintProducts(title string, revenues []domain.ProductRevenue) {
	p.heading.Fprintln(p.out, title)

	table := tablewriter.NewTable(p.out)
	table.Header([]string{"Rank", "Product", "Revenue"})
	for i, pr := range revenues {
		table.Append([]string{
			strconv.Itoa(i + 1),
			pr.Product,
			pr.Revenue.StringFixed(2),
		})
	}
	table.Render()
	fmt.Fprintln(p.out)
}
