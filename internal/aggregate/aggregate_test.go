package aggregate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"martcli/internal/enrich"
	"martcli/pkg/contracts/domain"
)

func enrichedTx(t *testing.T, customer, product, price string, quantity int64, date time.Time, hour int) domain.Transaction {
	t.Helper()
	tx := domain.Transaction{
		CustomerID:  customer,
		ProductName: product,
		UnitPrice:   decimal.RequireFromString(price),
		Quantity:    quantity,
		Date:        date,
		Hour:        hour,
	}
	tx.TotalSale = tx.UnitPrice.Mul(decimal.NewFromInt(tx.Quantity))
	tx.ISOYear, tx.ISOWeek = tx.Date.ISOWeek()
	return tx
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeeklyTotals_DeviationFromMean(t *testing.T) {
	// Four weeks whose totals average to exactly 9668.75. The two weeks of
	// interest land at 10000.00 and 2464.12.
	txs := []domain.Transaction{
		enrichedTx(t, "c", "A", "10000.00", 1, day(2023, time.June, 12), 9),  // week 24
		enrichedTx(t, "c", "B", "2464.12", 1, day(2023, time.June, 19), 9),  // week 25
		enrichedTx(t, "c", "C", "13105.44", 1, day(2023, time.June, 26), 9), // week 26
		enrichedTx(t, "c", "D", "13105.44", 1, day(2023, time.July, 3), 9),  // week 27
	}

	totals := WeeklyTotals(txs)
	require.Len(t, totals, 4)

	assert.Equal(t, 24, totals[0].Week)
	assert.Equal(t, "331.25", totals[0].Deviation.String())
	assert.Equal(t, 25, totals[1].Week)
	assert.Equal(t, "7204.63", totals[1].Deviation.String())

	// Ascending deviation ranks the 10000.00 week as most typical.
	byDeviation := SortWeeklyByDeviation(totals)
	assert.Equal(t, 24, byDeviation[0].Week)
	assert.Equal(t, 25, byDeviation[len(byDeviation)-1].Week)
}

func TestWeeklyTotals_GroupsByYearAndWeek(t *testing.T) {
	// Same ISO week number in different years must stay separate buckets.
	txs := []domain.Transaction{
		enrichedTx(t, "c", "A", "5.00", 1, day(2022, time.June, 13), 9), // 2022 week 24
		enrichedTx(t, "c", "A", "7.00", 1, day(2023, time.June, 12), 9), // 2023 week 24
		enrichedTx(t, "c", "A", "3.00", 1, day(2023, time.June, 14), 9), // 2023 week 24
	}

	totals := WeeklyTotals(txs)
	require.Len(t, totals, 2)

	assert.Equal(t, 2022, totals[0].Year)
	assert.Equal(t, "5", totals[0].Total.String())
	assert.Equal(t, 2023, totals[1].Year)
	assert.Equal(t, "10", totals[1].Total.String())
}

func TestWeeklyTotals_ConservationLaw(t *testing.T) {
	txs := randomishTransactions(t, 200)

	totals := WeeklyTotals(txs)
	sum := decimal.Zero
	for _, wt := range totals {
		sum = sum.Add(wt.Total)
	}

	assert.True(t, sum.Equal(GrandTotal(txs)),
		"weekly totals %s must equal grand total %s", sum, GrandTotal(txs))
}

func TestWeeklyTotals_Empty(t *testing.T) {
	assert.Empty(t, WeeklyTotals(nil))
}

func TestHourlyTotals_AllBucketsPresent(t *testing.T) {
	txs := []domain.Transaction{
		enrichedTx(t, "c", "A", "4.00", 2, day(2023, time.June, 12), 9),
		enrichedTx(t, "c", "B", "1.50", 1, day(2023, time.June, 12), 9),
		enrichedTx(t, "c", "C", "2.00", 1, day(2023, time.June, 13), 18),
	}

	totals := HourlyTotals(txs)
	require.Len(t, totals, HoursPerDay)

	for hour, ht := range totals {
		assert.Equal(t, hour, ht.Hour)
	}
	assert.Equal(t, "9.5", totals[9].Total.String())
	assert.Equal(t, "2", totals[18].Total.String())
	assert.True(t, totals[3].Total.IsZero())
}

func TestHourlyTotals_ConservationLaw(t *testing.T) {
	txs := randomishTransactions(t, 200)

	sum := decimal.Zero
	for _, ht := range HourlyTotals(txs) {
		sum = sum.Add(ht.Total)
	}

	assert.True(t, sum.Equal(GrandTotal(txs)))
}

func TestSortHourlyByTotal_PeakFirst(t *testing.T) {
	txs := []domain.Transaction{
		enrichedTx(t, "c", "A", "10.00", 1, day(2023, time.June, 12), 17),
		enrichedTx(t, "c", "B", "30.00", 1, day(2023, time.June, 12), 11),
		enrichedTx(t, "c", "C", "20.00", 1, day(2023, time.June, 12), 8),
	}

	sorted := SortHourlyByTotal(HourlyTotals(txs))
	assert.Equal(t, 11, sorted[0].Hour)
	assert.Equal(t, 8, sorted[1].Hour)
	assert.Equal(t, 17, sorted[2].Hour)
}

func TestProductRevenues_RankingAndClamping(t *testing.T) {
	txs := []domain.Transaction{
		enrichedTx(t, "c", "Milk", "2.00", 5, day(2023, time.June, 12), 9),  // 10
		enrichedTx(t, "c", "Bread", "1.50", 2, day(2023, time.June, 12), 9), // 3
		enrichedTx(t, "c", "Eggs", "3.00", 4, day(2023, time.June, 12), 9),  // 12
		enrichedTx(t, "c", "Milk", "2.00", 1, day(2023, time.June, 13), 9),  // Milk now 12
	}

	revenues := ProductRevenues(txs)
	require.Len(t, revenues, 3)

	// Eggs and Milk tie at 12; name breaks the tie.
	assert.Equal(t, "Eggs", revenues[0].Product)
	assert.Equal(t, "Milk", revenues[1].Product)
	assert.Equal(t, "Bread", revenues[2].Product)

	top := TopProducts(revenues, 2)
	bottom := BottomProducts(revenues, 2)

	require.Len(t, top, 2)
	// Only one product remains for the bottom ranking.
	require.Len(t, bottom, 1)
	assert.Equal(t, "Bread", bottom[0].Product)
}

func TestTopAndBottomProducts_DisjointWithManyProducts(t *testing.T) {
	var txs []domain.Transaction
	for i := 0; i < 25; i++ {
		price := fmt.Sprintf("%d.00", i+1)
		txs = append(txs, enrichedTx(t, "c", fmt.Sprintf("P%02d", i), price, 1, day(2023, time.June, 12), 9))
	}

	revenues := ProductRevenues(txs)
	top := TopProducts(revenues, 10)
	bottom := BottomProducts(revenues, 10)

	require.Len(t, top, 10)
	require.Len(t, bottom, 10)

	seen := make(map[string]bool)
	for _, pr := range top {
		seen[pr.Product] = true
	}
	for _, pr := range bottom {
		assert.False(t, seen[pr.Product], "product %s appears in both rankings", pr.Product)
	}

	// Bottom list is lowest revenue first.
	assert.Equal(t, "P00", bottom[0].Product)
}

func TestBottomProducts_FewerProductsThanN(t *testing.T) {
	txs := []domain.Transaction{
		enrichedTx(t, "c", "Milk", "2.00", 1, day(2023, time.June, 12), 9),
		enrichedTx(t, "c", "Eggs", "3.00", 1, day(2023, time.June, 12), 9),
	}

	revenues := ProductRevenues(txs)
	assert.Len(t, TopProducts(revenues, 10), 2)
	assert.Empty(t, BottomProducts(revenues, 10))
}

func TestFilterTransactions(t *testing.T) {
	txs := []domain.Transaction{
		enrichedTx(t, "a", "Milk", "2.00", 1, day(2023, time.June, 12), 9),
		enrichedTx(t, "b", "Milk", "2.00", 1, day(2023, time.June, 12), 9),
		enrichedTx(t, "a", "Eggs", "3.00", 1, day(2023, time.June, 12), 9),
	}

	byCustomer := FilterTransactions(txs, Filter{CustomerID: "a"})
	assert.Len(t, byCustomer, 2)

	byPair := FilterTransactions(txs, Filter{CustomerID: "a", ProductName: "Milk"})
	require.Len(t, byPair, 1)
	assert.Equal(t, "Milk", byPair[0].ProductName)

	all := FilterTransactions(txs, Filter{})
	assert.Len(t, all, 3)
}

func TestAggregation_Deterministic(t *testing.T) {
	txs := randomishTransactions(t, 150)

	first := WeeklyTotals(txs)
	second := WeeklyTotals(txs)
	assert.Equal(t, first, second)

	assert.Equal(t, ProductRevenues(txs), ProductRevenues(txs))
	assert.Equal(t, HourlyTotals(txs), HourlyTotals(txs))
}

// randomishTransactions builds a deterministic but varied enriched sequence
// spanning several weeks, hours and products.
func randomishTransactions(t *testing.T, n int) []domain.Transaction {
	t.Helper()

	base := day(2023, time.May, 1)
	var txs []domain.Transaction
	for i := 0; i < n; i++ {
		price := fmt.Sprintf("%d.%02d", (i%17)+1, (i*37)%100)
		txs = append(txs, domain.Transaction{
			CustomerID:  fmt.Sprintf("c%d", i%11),
			ProductName: fmt.Sprintf("P%d", i%23),
			UnitPrice:   decimal.RequireFromString(price),
			Quantity:    int64(i%5 + 1),
			Date:        base.AddDate(0, 0, i%60),
			Hour:        (i * 7) % 24,
		})
	}
	return enrich.NewEnricher(nil).Enrich(context.Background(), txs)
}
