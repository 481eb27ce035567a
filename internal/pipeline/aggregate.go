package pipeline

import "github.com/adsdash/adsdash/internal/models"

// Aggregate sums the five base metrics over rows and derives the five ratio
// metrics. The zero-denominator policy is uniform and exact: a ratio with a
// non-positive denominator is 0, never NaN and never null.
func Aggregate(rows []models.NormalizedRow) models.AggregateMetrics {
	var a models.AggregateMetrics
	for _, r := range rows {
		a.Spend += r.Spend
		a.Impressions += r.Impressions
		a.Clicks += r.Clicks
		a.Conversions += r.Conversions
		a.Revenue += r.Revenue
	}
	a.CTR = ratio(a.Clicks, a.Impressions) * 100
	a.CPC = ratio(a.Spend, a.Clicks)
	a.CPM = ratio(a.Spend, a.Impressions) * 1000
	a.ROAS = ratio(a.Revenue, a.Spend)
	a.CPA = ratio(a.Spend, a.Conversions)
	return a
}

func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}
