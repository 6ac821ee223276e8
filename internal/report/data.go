package report

import (
	"time"

	"martcli/pkg/contracts/domain"
)

// Data carries everything the presentation layer renders: the three
// aggregate views, the enriched sequence for ad-hoc drill-down, and run
// metadata. The presentation layer never feeds anything back upstream.
type Data struct {
	RunID       string
	GeneratedAt time.Time

	Transactions []domain.Transaction
	Weekly       []domain.WeeklyTotal
	Hourly       []domain.HourlyTotal
	Products     []domain.ProductRevenue
	Top          []domain.ProductRevenue
	Bottom       []domain.ProductRevenue

	Load *domain.CombinedLoadReport
}
