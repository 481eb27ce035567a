package models

// Field is one of the nine canonical columns the pipeline understands.
type Field string

const (
	FieldDate        Field = "date"
	FieldCampaign    Field = "campaign"
	FieldAdset       Field = "adset"
	FieldAd          Field = "ad"
	FieldSpend       Field = "spend"
	FieldImpressions Field = "impressions"
	FieldClicks      Field = "clicks"
	FieldConversions Field = "conversions"
	FieldRevenue     Field = "revenue"
)

// Fields lists the canonical fields in export column order.
var Fields = []Field{
	FieldDate, FieldCampaign, FieldAdset, FieldAd,
	FieldSpend, FieldImpressions, FieldClicks, FieldConversions, FieldRevenue,
}

// Unmapped marks a canonical field with no source column. It resolves to the
// empty value downstream, never to an error.
const Unmapped = ""

// PlaceholderDim replaces empty dimension values so groupings always carry a
// non-empty key.
const PlaceholderDim = "—"

// RawRow is one ingested CSV record, keyed by source column name. Values stay
// strings until coercion.
type RawRow = map[string]string

// FieldMapping resolves each canonical field to a source column name, or to
// Unmapped.
type FieldMapping map[Field]string

// Clone returns an independent copy. Mappings are replaced, never mutated in
// place, so derived views always see a consistent input.
func (m FieldMapping) Clone() FieldMapping {
	out := make(FieldMapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// NormalizedRow is a raw record after field-mapping, coercion and date
// validation. Date is always a valid YYYY-MM-DD string; rows whose date could
// not be coerced never reach this type.
type NormalizedRow struct {
	Date        string  `json:"date"`
	Campaign    string  `json:"campaign"`
	Adset       string  `json:"adset"`
	Ad          string  `json:"ad"`
	Spend       float64 `json:"spend"`
	Impressions float64 `json:"impressions"`
	Clicks      float64 `json:"clicks"`
	Conversions float64 `json:"conversions"`
	Revenue     float64 `json:"revenue"`
}

// AggregateMetrics holds the five summed base metrics and the five derived
// ratios. Every ratio falls back to 0 on a non-positive denominator.
type AggregateMetrics struct {
	Spend       float64 `json:"spend"`
	Impressions float64 `json:"impressions"`
	Clicks      float64 `json:"clicks"`
	Conversions float64 `json:"conversions"`
	Revenue     float64 `json:"revenue"`
	CTR         float64 `json:"ctr"`
	CPC         float64 `json:"cpc"`
	CPM         float64 `json:"cpm"`
	ROAS        float64 `json:"roas"`
	CPA         float64 `json:"cpa"`
}

// GroupRow is one partition of the grouping dimension with its aggregates.
type GroupRow struct {
	Key string `json:"key"`
	AggregateMetrics
}

// TimeseriesPoint carries per-day base-metric sums. Ratios are derived on
// demand, see EfficiencyPoint.
type TimeseriesPoint struct {
	Date        string  `json:"date"`
	Spend       float64 `json:"spend"`
	Revenue     float64 `json:"revenue"`
	Conversions float64 `json:"conversions"`
	Clicks      float64 `json:"clicks"`
	Impressions float64 `json:"impressions"`
}

// EfficiencyPoint adds per-day CPA and ROAS to a timeseries point.
type EfficiencyPoint struct {
	TimeseriesPoint
	CPA  float64 `json:"cpa"`
	ROAS float64 `json:"roas"`
}

// DimensionValues lists the distinct values per grouping dimension, in
// encounter order.
type DimensionValues struct {
	Campaigns []string `json:"campaigns"`
	Adsets    []string `json:"adsets"`
	Ads       []string `json:"ads"`
}

// SessionState is the re-importable session snapshot. Key names match the
// historical export format, so old snapshot files keep loading.
type SessionState struct {
	Rows     []RawRow     `json:"rows"`
	Mapping  FieldMapping `json:"mapping"`
	DateFrom string       `json:"dateFrom"`
	DateTo   string       `json:"dateTo"`
}

// SessionInfo summarizes the current session for diagnostics. Dropped rows
// surface only as the count difference between raw and normalized.
type SessionInfo struct {
	UploadID        string   `json:"upload_id"`
	Filename        string   `json:"filename"`
	Headers         []string `json:"headers"`
	RawCount        int      `json:"raw_count"`
	NormalizedCount int      `json:"normalized_count"`
	DroppedDates    int      `json:"dropped_dates"`
}

// Preview is the bounded result of an on-demand date-range fetch.
type Preview struct {
	Rows    []NormalizedRow  `json:"rows"`
	Total   int              `json:"total"`
	Summary AggregateMetrics `json:"summary"`
}
