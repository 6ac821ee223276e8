package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"martcli/pkg/contracts/domain"
)

// ProductRevenues sums total sales per distinct product name. Products are
// identified purely by name equality. The result is ordered descending by
// revenue, product name ascending on ties, so ranking output is stable
// across runs.
func ProductRevenues(transactions []domain.Transaction) []domain.ProductRevenue {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		sums[tx.ProductName] = sums[tx.ProductName].Add(tx.TotalSale)
	}

	revenues := make([]domain.ProductRevenue, 0, len(sums))
	for product, revenue := range sums {
		revenues = append(revenues, domain.ProductRevenue{
			Product: product,
			Revenue: revenue,
		})
	}

	sort.Slice(revenues, func(i, j int) bool {
		if !revenues[i].Revenue.Equal(revenues[j].Revenue) {
			return revenues[i].Revenue.GreaterThan(revenues[j].Revenue)
		}
		return revenues[i].Product < revenues[j].Product
	})

	return revenues
}

// TopProducts returns the n highest-revenue products from a ranking
// produced by ProductRevenues.
func TopProducts(revenues []domain.ProductRevenue, n int) []domain.ProductRevenue {
	if n > len(revenues) {
		n = len(revenues)
	}
	if n <= 0 {
		return nil
	}
	top := make([]domain.ProductRevenue, n)
	copy(top, revenues[:n])
	return top
}

// BottomProducts returns up to n lowest-revenue products, lowest first.
// The result never overlaps TopProducts(revenues, n): with fewer than 2n
// distinct products the bottom ranking shrinks so the two lists together
// never exceed the number of distinct products.
func BottomProducts(revenues []domain.ProductRevenue, n int) []domain.ProductRevenue {
	if n <= 0 || len(revenues) == 0 {
		return nil
	}
	if rest := len(revenues) - n; rest < n {
		n = rest
	}
	if n <= 0 {
		return nil
	}

	bottom := make([]domain.ProductRevenue, n)
	copy(bottom, revenues[len(revenues)-n:])

	// Lowest revenue first for the bottom-N chart.
	for i, j := 0, len(bottom)-1; i < j; i, j = i+1, j-1 {
		bottom[i], bottom[j] = bottom[j], bottom[i]
	}

	return bottom
}
