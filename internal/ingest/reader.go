package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"martcli/internal/config"
	apperrors "martcli/internal/errors"
	"martcli/pkg/contracts/domain"
)

// Loader reads store exports and produces the unified transaction sequence.
type Loader struct {
	logger *slog.Logger
	policy config.AnomalyPolicy
}

// NewLoader creates a new loader with the given anomaly policy.
func NewLoader(logger *slog.Logger, policy config.AnomalyPolicy) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if policy == "" {
		policy = config.AnomalyFlag
	}
	return &Loader{
		logger: logger,
		policy: policy,
	}
}

// LoadAll reads every source in order and concatenates the normalized rows:
// all of source 1, then all of source 2, original row order preserved within
// each. A malformed date in any source is terminal for the run.
func (l *Loader) LoadAll(ctx context.Context, sources []Source) ([]domain.Transaction, *domain.CombinedLoadReport, error) {
	var transactions []domain.Transaction
	combined := &domain.CombinedLoadReport{}

	for _, src := range sources {
		rows, report, err := l.LoadSource(ctx, src)
		if err != nil {
			return nil, nil, err
		}
		transactions = append(transactions, rows...)
		combined.Sources = append(combined.Sources, report)
	}

	l.logger.InfoContext(ctx, "loaded all sources",
		slog.Int("sources", len(sources)),
		slog.Int("transactions", len(transactions)),
		slog.Int("excluded", combined.TotalExcluded()),
		slog.Int("anomalies", combined.TotalAnomalies()))

	return transactions, combined, nil
}

// LoadSource reads a single store export. Rows with missing required fields
// are excluded and counted rather than silently zeroed; rows that fail date
// parsing abort the source with a RowError naming source, row and raw value.
func (l *Loader) LoadSource(ctx context.Context, src Source) ([]domain.Transaction, domain.LoadReport, error) {
	report := domain.LoadReport{Source: src.Name}

	file, err := os.Open(src.Path)
	if err != nil {
		return nil, report, apperrors.NewStorageError(fmt.Sprintf("failed to open source %s", src.Name), err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, report, apperrors.NewStorageError(fmt.Sprintf("failed to read source %s", src.Name), err)
	}

	// Strip UTF-8 BOM so the first header cell maps cleanly
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, report, apperrors.NewParsingError(fmt.Sprintf("failed to read header of source %s", src.Name), err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, report, apperrors.NewParsingError(fmt.Sprintf("source %s has an unusable header", src.Name), err)
	}

	l.logger.InfoContext(ctx, "loading source",
		slog.String("source", src.Name),
		slog.String("path", src.Path),
		slog.String("date_format", string(src.Format)))

	var transactions []domain.Transaction
	rowNum := 1 // header occupies row 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, report, apperrors.NewParsingError(fmt.Sprintf("failed to read source %s", src.Name), err)
		}
		rowNum++

		tx, usable, rowErr := l.parseRow(src, columns, record, rowNum)
		if rowErr != nil {
			return nil, report, rowErr
		}
		if !usable {
			report.Excluded++
			continue
		}

		if tx.HasAnomaly() {
			report.Anomalies++
			l.logger.WarnContext(ctx, "data-quality anomaly",
				slog.String("source", src.Name),
				slog.Int("row", rowNum),
				slog.String("transaction_id", tx.TransactionID),
				slog.String("unit_price", tx.UnitPrice.String()),
				slog.Int64("quantity", tx.Quantity))
			if l.policy == config.AnomalyExclude {
				continue
			}
		}

		transactions = append(transactions, tx)
		report.Parsed++
	}

	l.logger.InfoContext(ctx, "loaded source",
		slog.String("source", src.Name),
		slog.Int("parsed", report.Parsed),
		slog.Int("excluded", report.Excluded),
		slog.Int("anomalies", report.Anomalies))

	return transactions, report, nil
}

// parseRow converts one CSV record into a Transaction. It returns a non-nil
// error only for faults that are terminal for the run (malformed dates).
// Rows that are merely unusable come back with usable=false.
func (l *Loader) parseRow(src Source, columns columnMap, record []string, rowNum int) (domain.Transaction, bool, error) {
	get := func(idx int) string {
		if idx >= 0 && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	dateStr := get(columns.date)
	priceStr := get(columns.unitPrice)
	quantityStr := get(columns.quantity)
	timeStr := get(columns.timeOfDay)

	// Missing required fields make the row unusable for aggregation.
	if dateStr == "" || priceStr == "" || quantityStr == "" || timeStr == "" {
		l.logger.Warn("excluding row with missing required field",
			slog.String("source", src.Name),
			slog.Int("row", rowNum))
		return domain.Transaction{}, false, nil
	}

	date, err := time.Parse(string(src.Format), dateStr)
	if err != nil {
		return domain.Transaction{}, false, apperrors.NewRowError(src.Name, rowNum, "date", dateStr, err)
	}

	hour, err := parseHour(timeStr)
	if err != nil {
		l.logger.Warn("excluding row with unparseable time",
			slog.String("source", src.Name),
			slog.Int("row", rowNum),
			slog.String("value", timeStr))
		return domain.Transaction{}, false, nil
	}

	price, err := decimal.NewFromString(strings.ReplaceAll(priceStr, ",", ""))
	if err != nil {
		l.logger.Warn("excluding row with unparseable price",
			slog.String("source", src.Name),
			slog.Int("row", rowNum),
			slog.String("value", priceStr))
		return domain.Transaction{}, false, nil
	}

	quantity, err := strconv.ParseInt(strings.ReplaceAll(quantityStr, ",", ""), 10, 64)
	if err != nil {
		l.logger.Warn("excluding row with unparseable quantity",
			slog.String("source", src.Name),
			slog.Int("row", rowNum),
			slog.String("value", quantityStr))
		return domain.Transaction{}, false, nil
	}

	tx := domain.Transaction{
		CustomerID:    get(columns.customerID),
		TransactionID: get(columns.transactionID),
		Date:          date,
		Hour:          hour,
		ProductName:   get(columns.productName),
		UnitPrice:     price,
		Quantity:      quantity,
		PaymentMethod: domain.PaymentMethod(get(columns.paymentMethod)),
		Category:      get(columns.category),
		Source:        src.Name,
	}

	return tx, true, nil
}

// parseHour extracts the integer hour (0-23) from a wall-clock time string.
func parseHour(value string) (int, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Hour(), nil
		}
	}
	return 0, fmt.Errorf("unrecognized time value %q", value)
}

// columnMap holds the index of each schema column in the source header.
type columnMap struct {
	customerID    int
	date          int
	timeOfDay     int
	transactionID int
	productName   int
	unitPrice     int
	quantity      int
	paymentMethod int
	category      int
}

// mapColumns resolves the fixed 9-column schema against the header row,
// tolerating the naming variations seen across the two store exports.
func mapColumns(header []string) (columnMap, error) {
	columns := columnMap{
		customerID:    -1,
		date:          -1,
		timeOfDay:     -1,
		transactionID: -1,
		productName:   -1,
		unitPrice:     -1,
		quantity:      -1,
		paymentMethod: -1,
		category:      -1,
	}

	for i, name := range header {
		switch normalizeHeader(name) {
		case "customerid", "customer":
			columns.customerID = i
		case "date", "transactiondate":
			columns.date = i
		case "time", "timeofday", "transactiontime":
			columns.timeOfDay = i
		case "transactionid", "transaction":
			columns.transactionID = i
		case "productname", "product", "item":
			columns.productName = i
		case "unitprice", "price":
			columns.unitPrice = i
		case "quantity", "qty":
			columns.quantity = i
		case "paymentmethod", "payment":
			columns.paymentMethod = i
		case "category", "productcategory":
			columns.category = i
		}
	}

	required := map[string]int{
		"CustomerID":    columns.customerID,
		"Date":          columns.date,
		"Time":          columns.timeOfDay,
		"TransactionID": columns.transactionID,
		"ProductName":   columns.productName,
		"UnitPrice":     columns.unitPrice,
		"Quantity":      columns.quantity,
		"PaymentMethod": columns.paymentMethod,
		"Category":      columns.category,
	}
	for name, idx := range required {
		if idx == -1 {
			return columns, fmt.Errorf("missing column %s", name)
		}
	}

	return columns, nil
}

// normalizeHeader lowercases a header cell and strips separators so
// "Customer_ID", "customer id" and "CustomerID" all match.
func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "")
	name = strings.ReplaceAll(name, " ", "")
	return name
}
