package enrich

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"martcli/pkg/contracts/domain"
)

// Enricher computes the derived per-record fields: total sale, calendar
// parts, and the per-(customer, product) purchase gap.
type Enricher struct {
	logger *slog.Logger
}

// NewEnricher creates a new enricher.
func NewEnricher(logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{logger: logger}
}

// Enrich returns a copy of the unified sequence with derived fields filled
// in. The transform is pure and deterministic: the same input always yields
// the same output, and the input slice is never modified.
func (e *Enricher) Enrich(ctx context.Context, transactions []domain.Transaction) []domain.Transaction {
	enriched := make([]domain.Transaction, len(transactions))
	copy(enriched, transactions)

	for i := range enriched {
		tx := &enriched[i]
		tx.TotalSale = tx.UnitPrice.Mul(decimal.NewFromInt(tx.Quantity))
		tx.ISOYear, tx.ISOWeek = tx.Date.ISOWeek()
	}

	assignPurchaseGaps(enriched)

	e.logger.InfoContext(ctx, "enriched transactions",
		slog.Int("count", len(enriched)))

	return enriched
}

// purchaseKey groups records belonging to one customer's history of one product.
type purchaseKey struct {
	customerID  string
	productName string
}

// assignPurchaseGaps fills DaysSinceLastPurchase for every record.
//
// Records are grouped by (customer, product) and each group is sorted by
// date, stable on original ingestion order so same-day repeat purchases
// keep their sequence and get a gap of 0. The scan carries an explicit
// previous-record accumulator that resets at each group boundary, so state
// never leaks across groups.
func assignPurchaseGaps(transactions []domain.Transaction) {
	groups := make(map[purchaseKey][]int)
	for i, tx := range transactions {
		key := purchaseKey{customerID: tx.CustomerID, productName: tx.ProductName}
		groups[key] = append(groups[key], i)
	}

	for _, indices := range groups {
		sort.SliceStable(indices, func(a, b int) bool {
			return transactions[indices[a]].Date.Before(transactions[indices[b]].Date)
		})

		prev := -1
		for _, idx := range indices {
			if prev == -1 {
				transactions[idx].DaysSinceLastPurchase = 0
			} else {
				transactions[idx].DaysSinceLastPurchase = daysBetween(
					transactions[prev].Date, transactions[idx].Date)
			}
			prev = idx
		}
	}
}

// daysBetween returns the whole-day difference between two calendar dates.
// Ingestion normalizes dates to midnight UTC, so the division is exact.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
