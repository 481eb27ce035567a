package pipeline

import (
	"github.com/samber/lo"

	"github.com/adsdash/adsdash/internal/models"
)

// DimensionValues collects the distinct values per grouping dimension, in
// encounter order. Feeds the filter pickers.
func DimensionValues(rows []models.NormalizedRow) models.DimensionValues {
	return models.DimensionValues{
		Campaigns: distinct(rows, models.FieldCampaign),
		Adsets:    distinct(rows, models.FieldAdset),
		Ads:       distinct(rows, models.FieldAd),
	}
}

func distinct(rows []models.NormalizedRow, dim models.Field) []string {
	return lo.Uniq(lo.Map(rows, func(r models.NormalizedRow, _ int) string {
		return DimensionValue(r, dim)
	}))
}
