package report

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	apperrors "martcli/internal/errors"
	"martcli/pkg/contracts/domain"
)

// CSVWriter exports aggregate views as CSV files.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory for CSV output", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return apperrors.NewStorageError("failed to create CSV file", err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return apperrors.NewStorageError("failed to write CSV header row", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to write CSV record %d", i), err)
		}
	}

	return writer.Error()
}

// WriteWeekly exports the weekly aggregate. Currency is reported at
// two-decimal precision in presentation only.
func (w *CSVWriter) WriteWeekly(path string, totals []domain.WeeklyTotal) error {
	records := make([][]string, 0, len(totals))
	for _, wt := range totals {
		records = append(records, []string{
			strconv.Itoa(wt.Year),
			strconv.Itoa(wt.Week),
			wt.Total.StringFixed(2),
			wt.Deviation.StringFixed(2),
		})
	}

	return w.WriteCSV(path, WriteOptions{
		Headers:   []string{"Year", "Week", "Total", "Deviation"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteHourly exports the hourly aggregate, all 24 buckets.
func (w *CSVWriter) WriteHourly(path string, totals []domain.HourlyTotal) error {
	records := make([][]string, 0, len(totals))
	for _, ht := range totals {
		records = append(records, []string{
			strconv.Itoa(ht.Hour),
			ht.Total.StringFixed(2),
		})
	}

	return w.WriteCSV(path, WriteOptions{
		Headers:   []string{"Hour", "Total"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteProducts exports the per-product revenue ranking.
func (w *CSVWriter) WriteProducts(path string, revenues []domain.ProductRevenue) error {
	records := make([][]string, 0, len(revenues))
	for _, pr := range revenues {
		records = append(records, []string{
			pr.Product,
			pr.Revenue.StringFixed(2),
		})
	}

	return w.WriteCSV(path, WriteOptions{
		Headers:   []string{"Product", "Revenue"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteTransactions exports the enriched unified sequence so ad-hoc
// filtering can happen outside the tool as well.
func (w *CSVWriter) WriteTransactions(path string, transactions []domain.Transaction) error {
	records := make([][]string, 0, len(transactions))
	for _, tx := range transactions {
		records = append(records, []string{
			tx.Source,
			tx.CustomerID,
			tx.TransactionID,
			tx.Date.Format("2006-01-02"),
			strconv.Itoa(tx.Hour),
			tx.ProductName,
			tx.UnitPrice.StringFixed(2),
			strconv.FormatInt(tx.Quantity, 10),
			string(tx.PaymentMethod),
			tx.Category,
			tx.TotalSale.StringFixed(2),
			strconv.Itoa(tx.DaysSinceLastPurchase),
			strconv.Itoa(tx.ISOYear),
			strconv.Itoa(tx.ISOWeek),
		})
	}

	return w.WriteCSV(path, WriteOptions{
		Headers: []string{
			"Source", "CustomerID", "TransactionID", "Date", "Hour",
			"ProductName", "UnitPrice", "Quantity", "PaymentMethod", "Category",
			"TotalSale", "DaysSinceLastPurchase", "ISOYear", "ISOWeek",
		},
		Records:   records,
		BOMPrefix: true,
	})
}
