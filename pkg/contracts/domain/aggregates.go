package domain

import (
	"github.com/shopspring/decimal"
)

// WeeklyTotal is one row of the weekly aggregate view: summed revenue for an
// (ISO year, ISO week) bucket plus its absolute deviation from the mean
// across all weeks in scope.
type WeeklyTotal struct {
	Year      int             `json:"year" csv:"Year"`
	Week      int             `json:"week" csv:"Week"`
	Total     decimal.Decimal `json:"total" csv:"Total"`
	Deviation decimal.Decimal `json:"deviation" csv:"Deviation"`
}

// HourlyTotal is one row of the hourly aggregate view. All 24 hours are
// always present; hours with no transactions carry a zero total.
type HourlyTotal struct {
	Hour  int             `json:"hour" csv:"Hour"`
	Total decimal.Decimal `json:"total" csv:"Total"`
}

// ProductRevenue is one row of the per-product aggregate view.
type ProductRevenue struct {
	Product string          `json:"product" csv:"Product"`
	Revenue decimal.Decimal `json:"revenue" csv:"Revenue"`
}
