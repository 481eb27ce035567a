package pipeline

import (
	"testing"

	"github.com/adsdash/adsdash/internal/models"
)

func TestGroupBySpendDescendingStableTies(t *testing.T) {
	rows := []models.NormalizedRow{
		{Date: "2025-01-01", Campaign: "first", Spend: 50},
		{Date: "2025-01-01", Campaign: "tieA", Spend: 100},
		{Date: "2025-01-01", Campaign: "tieB", Spend: 100},
		{Date: "2025-01-01", Campaign: "last", Spend: 20},
	}
	out := GroupBy(rows, models.FieldCampaign)
	want := []string{"tieA", "tieB", "first", "last"}
	if len(out) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(out))
	}
	for i, k := range want {
		if out[i].Key != k {
			t.Fatalf("position %d: expected %q, got %q", i, k, out[i].Key)
		}
	}
}

func TestGroupPartitionSumsEqualWhole(t *testing.T) {
	rows := []models.NormalizedRow{
		{Date: "2025-01-01", Campaign: "A", Spend: 100, Clicks: 5},
		{Date: "2025-01-02", Campaign: "B", Spend: 40, Clicks: 2},
		{Date: "2025-01-03", Campaign: "A", Spend: 60, Clicks: 1},
	}
	whole := Aggregate(rows)
	var sum float64
	for _, g := range GroupBy(rows, models.FieldCampaign) {
		sum += g.Spend
	}
	if !closeTo(sum, whole.Spend) {
		t.Fatalf("partition spends %v != total %v", sum, whole.Spend)
	}
}

func TestGroupByOtherDimensions(t *testing.T) {
	rows := []models.NormalizedRow{
		{Date: "2025-01-01", Adset: "S1", Ad: "X", Spend: 1},
		{Date: "2025-01-01", Adset: "S2", Ad: "X", Spend: 2},
	}
	if got := GroupBy(rows, models.FieldAdset); len(got) != 2 {
		t.Fatalf("expected 2 adset groups, got %d", len(got))
	}
	byAd := GroupBy(rows, models.FieldAd)
	if len(byAd) != 1 || byAd[0].Key != "X" || byAd[0].Spend != 3 {
		t.Fatalf("unexpected ad grouping: %+v", byAd)
	}
}

func TestGroupRatiosPerPartition(t *testing.T) {
	rows := []models.NormalizedRow{
		{Date: "2025-01-01", Campaign: "A", Spend: 10, Clicks: 4},
		{Date: "2025-01-01", Campaign: "B", Spend: 10},
	}
	out := GroupBy(rows, models.FieldCampaign)
	for _, g := range out {
		switch g.Key {
		case "A":
			if !closeTo(g.CPC, 2.5) {
				t.Fatalf("A cpc = %v", g.CPC)
			}
		case "B":
			if g.CPC != 0 {
				t.Fatalf("B cpc must be 0 with no clicks, got %v", g.CPC)
			}
		}
	}
}
