package enrich

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"martcli/pkg/contracts/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tx(customer, product, price string, quantity int64, date time.Time) domain.Transaction {
	return domain.Transaction{
		CustomerID:  customer,
		ProductName: product,
		UnitPrice:   decimal.RequireFromString(price),
		Quantity:    quantity,
		Date:        date,
	}
}

func TestEnrich_TotalSaleAndPurchaseGaps(t *testing.T) {
	// Customer 1 buys the same product three times: 1 unit at 9.81, then
	// 2 units at 16.28 ten days later, then 4 units at 19.02 thirteen days
	// after that.
	base := day(2023, time.June, 1)
	input := []domain.Transaction{
		tx("1", "Olive Oil", "9.81", 1, base),
		tx("1", "Olive Oil", "16.28", 2, base.AddDate(0, 0, 10)),
		tx("1", "Olive Oil", "19.02", 4, base.AddDate(0, 0, 23)),
	}

	enriched := NewEnricher(nil).Enrich(context.Background(), input)
	require.Len(t, enriched, 3)

	assert.Equal(t, "9.81", enriched[0].TotalSale.String())
	assert.Equal(t, "32.56", enriched[1].TotalSale.String())
	assert.Equal(t, "76.08", enriched[2].TotalSale.String())

	assert.Equal(t, 0, enriched[0].DaysSinceLastPurchase)
	assert.Equal(t, 10, enriched[1].DaysSinceLastPurchase)
	assert.Equal(t, 13, enriched[2].DaysSinceLastPurchase)
}

func TestEnrich_CalendarFields(t *testing.T) {
	input := []domain.Transaction{
		tx("1", "Milk", "2.50", 1, day(2023, time.June, 14)),
		// ISO week of 2021-01-01 belongs to ISO year 2020.
		tx("1", "Milk", "2.50", 1, day(2021, time.January, 1)),
	}

	enriched := NewEnricher(nil).Enrich(context.Background(), input)

	assert.Equal(t, 2023, enriched[0].ISOYear)
	assert.Equal(t, 24, enriched[0].ISOWeek)
	assert.Equal(t, 2020, enriched[1].ISOYear)
	assert.Equal(t, 53, enriched[1].ISOWeek)
}

func TestEnrich_GapsAreScopedPerCustomerAndProduct(t *testing.T) {
	base := day(2023, time.March, 1)
	input := []domain.Transaction{
		tx("a", "Milk", "2.50", 1, base),
		tx("b", "Milk", "2.50", 1, base.AddDate(0, 0, 5)),
		tx("a", "Bread", "1.20", 1, base.AddDate(0, 0, 7)),
		tx("a", "Milk", "2.50", 1, base.AddDate(0, 0, 9)),
		tx("b", "Milk", "2.50", 1, base.AddDate(0, 0, 12)),
	}

	enriched := NewEnricher(nil).Enrich(context.Background(), input)

	// First purchase of each (customer, product) pair is 0.
	assert.Equal(t, 0, enriched[0].DaysSinceLastPurchase) // a/Milk first
	assert.Equal(t, 0, enriched[1].DaysSinceLastPurchase) // b/Milk first
	assert.Equal(t, 0, enriched[2].DaysSinceLastPurchase) // a/Bread first
	assert.Equal(t, 9, enriched[3].DaysSinceLastPurchase) // a/Milk, 9 days after day 0
	assert.Equal(t, 7, enriched[4].DaysSinceLastPurchase) // b/Milk, 7 days after day 5
}

func TestEnrich_SameDayRepeatPurchase(t *testing.T) {
	d := day(2023, time.May, 2)
	input := []domain.Transaction{
		tx("a", "Milk", "2.50", 1, d),
		tx("a", "Milk", "2.50", 3, d),
	}

	enriched := NewEnricher(nil).Enrich(context.Background(), input)

	// Stable sort keeps ingestion order; the repeat is a 0-day gap, not an error.
	assert.Equal(t, 0, enriched[0].DaysSinceLastPurchase)
	assert.Equal(t, 0, enriched[1].DaysSinceLastPurchase)
	assert.Equal(t, int64(1), enriched[0].Quantity)
	assert.Equal(t, int64(3), enriched[1].Quantity)
}

func TestEnrich_UnsortedInputSortedWithinGroup(t *testing.T) {
	base := day(2023, time.April, 1)
	input := []domain.Transaction{
		tx("a", "Milk", "2.50", 1, base.AddDate(0, 0, 20)),
		tx("a", "Milk", "2.50", 1, base),
		tx("a", "Milk", "2.50", 1, base.AddDate(0, 0, 5)),
	}

	enriched := NewEnricher(nil).Enrich(context.Background(), input)

	// Output positions match input positions; gaps follow chronology.
	assert.Equal(t, 15, enriched[0].DaysSinceLastPurchase) // day 20, prev day 5
	assert.Equal(t, 0, enriched[1].DaysSinceLastPurchase)  // day 0, first
	assert.Equal(t, 5, enriched[2].DaysSinceLastPurchase)  // day 5, prev day 0
}

func TestEnrich_IsIdempotentAndPure(t *testing.T) {
	base := day(2023, time.June, 1)
	input := []domain.Transaction{
		tx("1", "Olive Oil", "9.81", 1, base),
		tx("1", "Olive Oil", "16.28", 2, base.AddDate(0, 0, 10)),
	}

	enricher := NewEnricher(nil)
	first := enricher.Enrich(context.Background(), input)
	second := enricher.Enrich(context.Background(), input)

	assert.Equal(t, first, second)
	// Input left untouched.
	assert.True(t, input[0].TotalSale.IsZero())
	assert.Equal(t, 0, input[1].DaysSinceLastPurchase)
}

func TestEnrich_ZeroQuantityTotalSale(t *testing.T) {
	input := []domain.Transaction{
		tx("1", "Milk", "2.50", 0, day(2023, time.June, 1)),
	}

	enriched := NewEnricher(nil).Enrich(context.Background(), input)
	assert.True(t, enriched[0].TotalSale.IsZero())
}
