package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"martcli/pkg/contracts/domain"
)

// HoursPerDay is the number of buckets in the hourly aggregate. Every hour
// appears in the output even when no transaction falls into it, since the
// hourly chart always spans the full day.
const HoursPerDay = 24

// HourlyTotals sums total sales per hour-of-day across the whole dataset.
// The result always has exactly 24 rows, hour 0 through 23, zero-filled
// where a bucket is empty.
func HourlyTotals(transactions []domain.Transaction) []domain.HourlyTotal {
	totals := make([]domain.HourlyTotal, HoursPerDay)
	for hour := range totals {
		totals[hour] = domain.HourlyTotal{Hour: hour, Total: decimal.Zero}
	}

	for _, tx := range transactions {
		if tx.Hour < 0 || tx.Hour >= HoursPerDay {
			continue
		}
		totals[tx.Hour].Total = totals[tx.Hour].Total.Add(tx.TotalSale)
	}

	return totals
}

// SortHourlyByTotal returns a copy sorted descending by total, so peak hours
// come first. Ties keep hour order.
func SortHourlyByTotal(totals []domain.HourlyTotal) []domain.HourlyTotal {
	sorted := make([]domain.HourlyTotal, len(totals))
	copy(sorted, totals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Total.GreaterThan(sorted[j].Total)
	})
	return sorted
}
