package aggregate

import (
	"github.com/shopspring/decimal"

	"martcli/pkg/contracts/domain"
)

// Filter selects transactions for ad-hoc inspection, e.g. one customer's
// history of one product. Empty fields match everything.
type Filter struct {
	CustomerID  string
	ProductName string
}

// FilterTransactions returns the transactions matching the filter, in their
// original sequence order.
func FilterTransactions(transactions []domain.Transaction, f Filter) []domain.Transaction {
	var matched []domain.Transaction
	for _, tx := range transactions {
		if f.CustomerID != "" && tx.CustomerID != f.CustomerID {
			continue
		}
		if f.ProductName != "" && tx.ProductName != f.ProductName {
			continue
		}
		matched = append(matched, tx)
	}
	return matched
}

// GrandTotal sums total sales over the full enriched sequence. Aggregations
// are checked against it: bucket totals must neither drop nor double-count
// revenue.
func GrandTotal(transactions []domain.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range transactions {
		sum = sum.Add(tx.TotalSale)
	}
	return sum
}
