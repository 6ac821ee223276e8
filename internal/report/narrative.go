package report

import (
	"fmt"
	"strings"

	"martcli/internal/aggregate"
	"martcli/pkg/contracts/domain"
)

// Narrative derives plain-language commentary from the aggregates. Every
// figure is computed from the data at hand; nothing is hard-coded.
func Narrative(data *Data) []string {
	var lines []string

	if data.Load != nil {
		lines = append(lines, fmt.Sprintf(
			"Analyzed %d transactions across %d sources (%d rows excluded, %d anomalies).",
			data.Load.TotalParsed(), len(data.Load.Sources),
			data.Load.TotalExcluded(), data.Load.TotalAnomalies()))
	}

	grand := aggregate.GrandTotal(data.Transactions)
	lines = append(lines, fmt.Sprintf("Total revenue over the period: %s.", grand.StringFixed(2)))

	if len(data.Weekly) > 0 {
		typical := aggregate.SortWeeklyByDeviation(data.Weekly)[0]
		peak := peakWeek(data.Weekly)
		lines = append(lines,
			fmt.Sprintf("Sales span %d ISO weeks. Week %d/%d is the most typical, sitting only %s away from the weekly mean.",
				len(data.Weekly), typical.Week, typical.Year, typical.Deviation.StringFixed(2)),
			fmt.Sprintf("The strongest week was %d/%d with %s in sales.",
				peak.Week, peak.Year, peak.Total.StringFixed(2)))
	}

	if busiest, ok := busiestHour(data.Hourly); ok {
		lines = append(lines, fmt.Sprintf(
			"The busiest hour of the day is %02d:00 with %s in sales.",
			busiest.Hour, busiest.Total.StringFixed(2)))
	}

	if len(data.Top) > 0 {
		leader := data.Top[0]
		lines = append(lines, fmt.Sprintf(
			"%s leads the product ranking with %s in revenue.",
			leader.Product, leader.Revenue.StringFixed(2)))
	}
	if len(data.Bottom) > 0 {
		laggard := data.Bottom[0]
		lines = append(lines, fmt.Sprintf(
			"%s brings in the least revenue at %s.",
			laggard.Product, laggard.Revenue.StringFixed(2)))
	}

	return lines
}

// NarrativeText joins the narrative lines into one paragraph-per-line block.
func NarrativeText(data *Data) string {
	return strings.Join(Narrative(data), "\n")
}

func peakWeek(weekly []domain.WeeklyTotal) domain.WeeklyTotal {
	peak := weekly[0]
	for _, wt := range weekly[1:] {
		if wt.Total.GreaterThan(peak.Total) {
			peak = wt
		}
	}
	return peak
}

func busiestHour(hourly []domain.HourlyTotal) (domain.HourlyTotal, bool) {
	if len(hourly) == 0 {
		return domain.HourlyTotal{}, false
	}
	busiest := aggregate.SortHourlyByTotal(hourly)[0]
	if busiest.Total.IsZero() {
		return domain.HourlyTotal{}, false
	}
	return busiest, true
}
