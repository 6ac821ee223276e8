package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_HasAnomaly(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		quantity int64
		want     bool
	}{
		{name: "normal row", price: "9.81", quantity: 1, want: false},
		{name: "zero price is allowed", price: "0", quantity: 3, want: false},
		{name: "negative price", price: "-1.50", quantity: 2, want: true},
		{name: "zero quantity", price: "4.20", quantity: 0, want: true},
		{name: "negative quantity", price: "4.20", quantity: -1, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := Transaction{
				UnitPrice: decimal.RequireFromString(tt.price),
				Quantity:  tt.quantity,
			}
			assert.Equal(t, tt.want, tx.HasAnomaly())
		})
	}
}

func TestCombinedLoadReport_Totals(t *testing.T) {
	report := CombinedLoadReport{
		Sources: []LoadReport{
			{Source: "store1", Parsed: 120, Excluded: 3, Anomalies: 1},
			{Source: "store2", Parsed: 80, Excluded: 0, Anomalies: 2},
		},
	}

	assert.Equal(t, 200, report.TotalParsed())
	assert.Equal(t, 3, report.TotalExcluded())
	assert.Equal(t, 3, report.TotalAnomalies())
}
