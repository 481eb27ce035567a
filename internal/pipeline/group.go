package pipeline

import (
	"sort"

	"github.com/adsdash/adsdash/internal/models"
)

// GroupBy partitions rows by the chosen dimension, aggregates each partition
// and sorts descending by summed spend. The sort is stable: spend ties keep
// encounter order, so output is deterministic for a given input order.
func GroupBy(rows []models.NormalizedRow, dim models.Field) []models.GroupRow {
	buckets := map[string][]models.NormalizedRow{}
	var order []string
	for _, r := range rows {
		k := DimensionValue(r, dim)
		if _, ok := buckets[k]; !ok {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], r)
	}
	out := make([]models.GroupRow, 0, len(order))
	for _, k := range order {
		out = append(out, models.GroupRow{Key: k, AggregateMetrics: Aggregate(buckets[k])})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Spend > out[j].Spend })
	return out
}

// DimensionValue extracts the grouping key for dim. Normalization already
// substituted the placeholder for empty values.
func DimensionValue(r models.NormalizedRow, dim models.Field) string {
	switch dim {
	case models.FieldCampaign:
		return r.Campaign
	case models.FieldAdset:
		return r.Adset
	case models.FieldAd:
		return r.Ad
	}
	return models.PlaceholderDim
}
