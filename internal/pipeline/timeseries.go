package pipeline

import (
	"sort"

	"github.com/adsdash/adsdash/internal/models"
)

// Timeseries buckets rows by exact date string, sums the base metrics per day
// and sorts chronologically. Points carry no ratio fields; see
// EfficiencySeries.
func Timeseries(rows []models.NormalizedRow) []models.TimeseriesPoint {
	idx := map[string]int{}
	var points []models.TimeseriesPoint
	for _, r := range rows {
		i, ok := idx[r.Date]
		if !ok {
			i = len(points)
			idx[r.Date] = i
			points = append(points, models.TimeseriesPoint{Date: r.Date})
		}
		points[i].Spend += r.Spend
		points[i].Revenue += r.Revenue
		points[i].Conversions += r.Conversions
		points[i].Clicks += r.Clicks
		points[i].Impressions += r.Impressions
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// EfficiencySeries derives per-day CPA and ROAS from daily sums, with the
// same zero-denominator policy as the aggregator.
func EfficiencySeries(points []models.TimeseriesPoint) []models.EfficiencyPoint {
	out := make([]models.EfficiencyPoint, 0, len(points))
	for _, p := range points {
		out = append(out, models.EfficiencyPoint{
			TimeseriesPoint: p,
			CPA:             ratio(p.Spend, p.Conversions),
			ROAS:            ratio(p.Revenue, p.Spend),
		})
	}
	return out
}
