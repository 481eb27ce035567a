package pipeline

import (
	"strings"

	"github.com/adsdash/adsdash/internal/models"
)

// Normalize maps raw rows through the field mapping and coercers into
// canonical records. A row whose date fails to coerce is dropped; that is the
// only drop rule — rows full of zeros survive. The dropped count is returned
// for diagnostics only.
func Normalize(rows []models.RawRow, m models.FieldMapping) ([]models.NormalizedRow, int) {
	out := make([]models.NormalizedRow, 0, len(rows))
	dropped := 0
	for _, r := range rows {
		date, ok := ParseDate(r[m[models.FieldDate]])
		if !ok {
			dropped++
			continue
		}
		out = append(out, models.NormalizedRow{
			Date:        date,
			Campaign:    dimOrPlaceholder(r[m[models.FieldCampaign]]),
			Adset:       dimOrPlaceholder(r[m[models.FieldAdset]]),
			Ad:          dimOrPlaceholder(r[m[models.FieldAd]]),
			Spend:       ParseNumber(r[m[models.FieldSpend]]),
			Impressions: ParseNumber(r[m[models.FieldImpressions]]),
			Clicks:      ParseNumber(r[m[models.FieldClicks]]),
			Conversions: ParseNumber(r[m[models.FieldConversions]]),
			Revenue:     ParseNumber(r[m[models.FieldRevenue]]),
		})
	}
	return out, dropped
}

func dimOrPlaceholder(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.PlaceholderDim
	}
	return s
}
