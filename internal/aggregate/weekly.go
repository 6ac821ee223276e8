package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"martcli/pkg/contracts/domain"
)

// weekKey identifies an (ISO year, ISO week) bucket.
type weekKey struct {
	year int
	week int
}

// WeeklyTotals groups the enriched sequence by (ISO year, ISO week) and sums
// total sales per bucket. Each bucket also carries its absolute deviation
// from the mean weekly total across all buckets in scope. Buckets with no
// transactions simply do not appear. The result is ordered chronologically.
func WeeklyTotals(transactions []domain.Transaction) []domain.WeeklyTotal {
	sums := make(map[weekKey]decimal.Decimal)
	for _, tx := range transactions {
		key := weekKey{year: tx.ISOYear, week: tx.ISOWeek}
		sums[key] = sums[key].Add(tx.TotalSale)
	}

	totals := make([]domain.WeeklyTotal, 0, len(sums))
	for key, sum := range sums {
		totals = append(totals, domain.WeeklyTotal{
			Year:  key.year,
			Week:  key.week,
			Total: sum,
		})
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Year != totals[j].Year {
			return totals[i].Year < totals[j].Year
		}
		return totals[i].Week < totals[j].Week
	})

	mean := meanWeeklyTotal(totals)
	for i := range totals {
		totals[i].Deviation = totals[i].Total.Sub(mean).Abs()
	}

	return totals
}

// meanWeeklyTotal returns the mean of the bucket totals, zero for no buckets.
func meanWeeklyTotal(totals []domain.WeeklyTotal) decimal.Decimal {
	if len(totals) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, wt := range totals {
		sum = sum.Add(wt.Total)
	}
	return sum.Div(decimal.NewFromInt(int64(len(totals))))
}

// SortWeeklyByDeviation returns a copy sorted ascending by deviation, so the
// most "typical" week comes first. Ties keep chronological order.
func SortWeeklyByDeviation(totals []domain.WeeklyTotal) []domain.WeeklyTotal {
	sorted := make([]domain.WeeklyTotal, len(totals))
	copy(sorted, totals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Deviation.LessThan(sorted[j].Deviation)
	})
	return sorted
}
