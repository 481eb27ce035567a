package pipeline

import (
	"testing"

	"github.com/adsdash/adsdash/internal/models"
)

func TestTimeseriesBucketsAndSorts(t *testing.T) {
	rows := []models.NormalizedRow{
		{Date: "2025-01-03", Spend: 5, Revenue: 10, Clicks: 1, Impressions: 100, Conversions: 1},
		{Date: "2025-01-01", Spend: 2, Revenue: 4, Clicks: 2, Impressions: 50, Conversions: 0},
		{Date: "2025-01-03", Spend: 3, Revenue: 6, Clicks: 1, Impressions: 100, Conversions: 1},
	}
	pts := Timeseries(rows)
	if len(pts) != 2 {
		t.Fatalf("expected 2 days, got %d", len(pts))
	}
	if pts[0].Date != "2025-01-01" || pts[1].Date != "2025-01-03" {
		t.Fatalf("not chronological: %s, %s", pts[0].Date, pts[1].Date)
	}
	if pts[1].Spend != 8 || pts[1].Revenue != 16 || pts[1].Conversions != 2 {
		t.Fatalf("day sums wrong: %+v", pts[1])
	}
}

func TestTimeseriesEmpty(t *testing.T) {
	if pts := Timeseries(nil); len(pts) != 0 {
		t.Fatalf("expected no points, got %d", len(pts))
	}
}

func TestEfficiencySeries(t *testing.T) {
	pts := []models.TimeseriesPoint{
		{Date: "2025-01-01", Spend: 100, Revenue: 240, Conversions: 4},
		{Date: "2025-01-02", Spend: 0, Revenue: 10, Conversions: 0},
	}
	eff := EfficiencySeries(pts)
	if !closeTo(eff[0].CPA, 25) || !closeTo(eff[0].ROAS, 2.4) {
		t.Fatalf("day 1 ratios wrong: %+v", eff[0])
	}
	if eff[1].CPA != 0 || eff[1].ROAS != 0 {
		t.Fatalf("zero denominators must yield 0: %+v", eff[1])
	}
}
