package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single grocery purchase event from one of the
// store exports. Raw fields come straight from the CSV; derived fields are
// filled in once by the enrichment stage and never mutated afterwards.
type Transaction struct {
	CustomerID    string          `json:"customer_id" csv:"CustomerID" validate:"required"`
	TransactionID string          `json:"transaction_id" csv:"TransactionID" validate:"required"`
	Date          time.Time       `json:"date" csv:"Date"`
	Hour          int             `json:"hour" csv:"Hour" validate:"min=0,max=23"`
	ProductName   string          `json:"product_name" csv:"ProductName" validate:"required"`
	UnitPrice     decimal.Decimal `json:"unit_price" csv:"UnitPrice"`
	Quantity      int64           `json:"quantity" csv:"Quantity" validate:"required"`
	PaymentMethod PaymentMethod   `json:"payment_method" csv:"PaymentMethod"`
	Category      string          `json:"category" csv:"Category"`

	// Source identifies which store export the row came from.
	Source string `json:"source" csv:"Source"`

	// Derived fields (enrichment stage).
	TotalSale             decimal.Decimal `json:"total_sale" csv:"TotalSale"`
	DaysSinceLastPurchase int             `json:"days_since_last_purchase" csv:"DaysSinceLastPurchase"`
	ISOYear               int             `json:"iso_year" csv:"ISOYear"`
	ISOWeek               int             `json:"iso_week" csv:"ISOWeek"`
}

// PaymentMethod represents how a transaction was paid for
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
	PaymentOther  PaymentMethod = "other"
)

// HasAnomaly reports whether the record carries a data-quality anomaly:
// a non-positive quantity or a negative unit price. Such rows are either
// flagged or excluded depending on the configured anomaly policy.
func (t *Transaction) HasAnomaly() bool {
	return t.Quantity <= 0 || t.UnitPrice.IsNegative()
}

// LoadReport summarizes what happened during ingestion of one source.
// Excluded rows are counted rather than silently dropped so revenue is
// never understated without visibility.
type LoadReport struct {
	Source    string `json:"source"`
	Parsed    int    `json:"parsed"`
	Excluded  int    `json:"excluded"`
	Anomalies int    `json:"anomalies"`
}

// CombinedLoadReport aggregates per-source load reports for the run.
type CombinedLoadReport struct {
	Sources []LoadReport `json:"sources"`
}

// TotalParsed returns the number of rows that survived ingestion across all sources.
func (c *CombinedLoadReport) TotalParsed() int {
	total := 0
	for _, s := range c.Sources {
		total += s.Parsed
	}
	return total
}

// TotalExcluded returns the number of rows dropped across all sources.
func (c *CombinedLoadReport) TotalExcluded() int {
	total := 0
	for _, s := range c.Sources {
		total += s.Excluded
	}
	return total
}

// TotalAnomalies returns the number of anomalous rows observed across all sources.
func (c *CombinedLoadReport) TotalAnomalies() int {
	total := 0
	for _, s := range c.Sources {
		total += s.Anomalies
	}
	return total
}
