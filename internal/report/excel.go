package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"martcli/internal/aggregate"
	apperrors "martcli/internal/errors"
	"martcli/pkg/contracts/domain"
)

// Sheet names in the generated workbook.
const (
	SheetSummary  = "Summary"
	SheetWeekly   = "Weekly"
	SheetHourly   = "Hourly"
	SheetProducts = "Products"
)

// ExcelReporter builds the report workbook: one sheet per aggregate view,
// each with its chart, plus a summary sheet carrying the narrative.
type ExcelReporter struct {
	logger *slog.Logger
}

// NewExcelReporter creates a new Excel reporter instance
func NewExcelReporter(logger *slog.Logger) *ExcelReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelReporter{logger: logger}
}

// Write generates the workbook at path.
func (r *ExcelReporter) Write(path string, data *Data) error {
	r.logger.Info("Writing report workbook",
		slog.String("file_path", path),
		slog.Int("weeks", len(data.Weekly)),
		slog.Int("products", len(data.Products)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory for workbook", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return apperrors.NewStorageError("failed to create number style", err)
	}

	if err := r.writeSummarySheet(f, data); err != nil {
		return err
	}
	if err := r.writeWeeklySheet(f, data.Weekly, moneyStyle); err != nil {
		return err
	}
	if err := r.writeHourlySheet(f, data.Hourly, moneyStyle); err != nil {
		return err
	}
	if err := r.writeProductsSheet(f, data.Top, data.Bottom, moneyStyle); err != nil {
		return err
	}

	// The summary replaces the default sheet entirely.
	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(SheetSummary); err == nil {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError("failed to save report workbook", err)
	}
	return nil
}

func (r *ExcelReporter) writeSummarySheet(f *excelize.File, data *Data) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return apperrors.NewStorageError("failed to create summary sheet", err)
	}

	f.SetCellValue(SheetSummary, "A1", "Grocery Sales Report")
	f.SetCellValue(SheetSummary, "A2", "Run ID")
	f.SetCellValue(SheetSummary, "B2", data.RunID)
	f.SetCellValue(SheetSummary, "A3", "Generated")
	f.SetCellValue(SheetSummary, "B3", data.GeneratedAt.Format("2006-01-02 15:04:05"))

	row := 5
	if data.Load != nil {
		f.SetCellValue(SheetSummary, fmt.Sprintf("A%d", row), "Source")
		f.SetCellValue(SheetSummary, fmt.Sprintf("B%d", row), "Parsed")
		f.SetCellValue(SheetSummary, fmt.Sprintf("C%d", row), "Excluded")
		f.SetCellValue(SheetSummary, fmt.Sprintf("D%d", row), "Anomalies")
		row++
		for _, src := range data.Load.Sources {
			f.SetCellValue(SheetSummary, fmt.Sprintf("A%d", row), src.Source)
			f.SetCellValue(SheetSummary, fmt.Sprintf("B%d", row), src.Parsed)
			f.SetCellValue(SheetSummary, fmt.Sprintf("C%d", row), src.Excluded)
			f.SetCellValue(SheetSummary, fmt.Sprintf("D%d", row), src.Anomalies)
			row++
		}
		row++
	}

	f.SetCellValue(SheetSummary, fmt.Sprintf("A%d", row), "Total revenue")
	f.SetCellValue(SheetSummary, fmt.Sprintf("B%d", row), aggregate.GrandTotal(data.Transactions).StringFixed(2))
	row += 2

	for _, line := range Narrative(data) {
		f.SetCellValue(SheetSummary, fmt.Sprintf("A%d", row), line)
		row++
	}

	f.SetColWidth(SheetSummary, "A", "A", 28)
	f.SetColWidth(SheetSummary, "B", "D", 20)
	return nil
}

func (r *ExcelReporter) writeWeeklySheet(f *excelize.File, totals []domain.WeeklyTotal, moneyStyle int) error {
	if _, err := f.NewSheet(SheetWeekly); err != nil {
		return apperrors.NewStorageError("failed to create weekly sheet", err)
	}

	headers := []string{"Week", "Total", "Deviation"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetWeekly, cell, h)
	}

	for i, wt := range totals {
		row := i + 2
		f.SetCellValue(SheetWeekly, fmt.Sprintf("A%d", row), fmt.Sprintf("%d-W%02d", wt.Year, wt.Week))
		total, _ := wt.Total.Float64()
		deviation, _ := wt.Deviation.Float64()
		f.SetCellValue(SheetWeekly, fmt.Sprintf("B%d", row), total)
		f.SetCellValue(SheetWeekly, fmt.Sprintf("C%d", row), deviation)
	}

	if n := len(totals); n > 0 {
		f.SetCellStyle(SheetWeekly, "B2", fmt.Sprintf("C%d", n+1), moneyStyle)

		categories := fmt.Sprintf("%s!$A$2:$A$%d", SheetWeekly, n+1)
		if err := f.AddChart(SheetWeekly, "E2", &excelize.Chart{
			Type: excelize.Line,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$B$1", SheetWeekly),
				Categories: categories,
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", SheetWeekly, n+1),
			}},
			Title: []excelize.RichTextRun{{Text: "Weekly Sales"}},
		}); err != nil {
			return apperrors.NewStorageError("failed to add weekly sales chart", err)
		}

		if err := f.AddChart(SheetWeekly, "E18", &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$C$1", SheetWeekly),
				Categories: categories,
				Values:     fmt.Sprintf("%s!$C$2:$C$%d", SheetWeekly, n+1),
			}},
			Title: []excelize.RichTextRun{{Text: "Deviation From Weekly Mean"}},
		}); err != nil {
			return apperrors.NewStorageError("failed to add deviation chart", err)
		}
	}

	return nil
}

func (r *ExcelReporter) writeHourlySheet(f *excelize.File, totals []domain.HourlyTotal, moneyStyle int) error {
	if _, err := f.NewSheet(SheetHourly); err != nil {
		return apperrors.NewStorageError("failed to create hourly sheet", err)
	}

	f.SetCellValue(SheetHourly, "A1", "Hour")
	f.SetCellValue(SheetHourly, "B1", "Total")

	for i, ht := range totals {
		row := i + 2
		f.SetCellValue(SheetHourly, fmt.Sprintf("A%d", row), fmt.Sprintf("%02d:00", ht.Hour))
		total, _ := ht.Total.Float64()
		f.SetCellValue(SheetHourly, fmt.Sprintf("B%d", row), total)
	}

	if n := len(totals); n > 0 {
		f.SetCellStyle(SheetHourly, "B2", fmt.Sprintf("B%d", n+1), moneyStyle)

		if err := f.AddChart(SheetHourly, "D2", &excelize.Chart{
			Type: excelize.Line,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$B$1", SheetHourly),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", SheetHourly, n+1),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", SheetHourly, n+1),
			}},
			Title: []excelize.RichTextRun{{Text: "Sales By Hour"}},
		}); err != nil {
			return apperrors.NewStorageError("failed to add hourly chart", err)
		}
	}

	return nil
}

func (r *ExcelReporter) writeProductsSheet(f *excelize.File, top, bottom []domain.ProductRevenue, moneyStyle int) error {
	if _, err := f.NewSheet(SheetProducts); err != nil {
		return apperrors.NewStorageError("failed to create products sheet", err)
	}

	f.SetCellValue(SheetProducts, "A1", "Top Product")
	f.SetCellValue(SheetProducts, "B1", "Revenue")
	for i, pr := range top {
		row := i + 2
		f.SetCellValue(SheetProducts, fmt.Sprintf("A%d", row), pr.Product)
		revenue, _ := pr.Revenue.Float64()
		f.SetCellValue(SheetProducts, fmt.Sprintf("B%d", row), revenue)
	}

	f.SetCellValue(SheetProducts, "D1", "Bottom Product")
	f.SetCellValue(SheetProducts, "E1", "Revenue")
	for i, pr := range bottom {
		row := i + 2
		f.SetCellValue(SheetProducts, fmt.Sprintf("D%d", row), pr.Product)
		revenue, _ := pr.Revenue.Float64()
		f.SetCellValue(SheetProducts, fmt.Sprintf("E%d", row), revenue)
	}

	if n := len(top); n > 0 {
		f.SetCellStyle(SheetProducts, "B2", fmt.Sprintf("B%d", n+1), moneyStyle)

		if err := f.AddChart(SheetProducts, "G2", &excelize.Chart{
			Type: excelize.Bar,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$B$1", SheetProducts),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", SheetProducts, n+1),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", SheetProducts, n+1),
			}},
			Title: []excelize.RichTextRun{{Text: "Top Products By Revenue"}},
		}); err != nil {
			return apperrors.NewStorageError("failed to add top products chart", err)
		}
	}

	if n := len(bottom); n > 0 {
		f.SetCellStyle(SheetProducts, "E2", fmt.Sprintf("E%d", n+1), moneyStyle)

		if err := f.AddChart(SheetProducts, "G18", &excelize.Chart{
			Type: excelize.Bar,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$E$1", SheetProducts),
				Categories: fmt.Sprintf("%s!$D$2:$D$%d", SheetProducts, n+1),
				Values:     fmt.Sprintf("%s!$E$2:$E$%d", SheetProducts, n+1),
			}},
			Title: []excelize.RichTextRun{{Text: "Bottom Products By Revenue"}},
		}); err != nil {
			return apperrors.NewStorageError("failed to add bottom products chart", err)
		}
	}

	return nil
}
