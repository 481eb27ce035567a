// Package query derives the read surfaces from the session: every call
// recomputes from a snapshot of the inputs, so answers are always whole and
// current.
package query

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/adsdash/adsdash/internal/csvio"
	"github.com/adsdash/adsdash/internal/models"
	"github.com/adsdash/adsdash/internal/pipeline"
	"github.com/adsdash/adsdash/internal/store"
)

type Service struct {
	st           *store.Session
	previewLimit int
}

func NewService(st *store.Session, previewLimit int) *Service {
	return &Service{st: st, previewLimit: previewLimit}
}

// Summary aggregates the live-filtered set.
func (s *Service) Summary(v url.Values) models.AggregateMetrics {
	return pipeline.Aggregate(s.live(v))
}

// Rows returns the live-filtered normalized rows, paginated.
func (s *Service) Rows(v url.Values) []models.NormalizedRow {
	rows := s.live(v)
	limit := atoiDef(v.Get("limit"), 0)
	offset := atoiDef(v.Get("offset"), 0)
	limit, offset = clampLimitOffset(limit, offset, len(rows))
	return paginate(rows, limit, offset)
}

// Groups partitions the live-filtered set by the requested dimension (falling
// back to the stored group-by) and aggregates each partition, spend-descending.
func (s *Service) Groups(v url.Values) ([]models.GroupRow, error) {
	snap := s.st.Snapshot()
	dim := snap.GroupBy
	if by := v.Get("by"); by != "" {
		f, ok := pipeline.ValidField(by)
		if !ok || !pipeline.Dimension(f) {
			return nil, fmt.Errorf("not a grouping dimension: %q", by)
		}
		dim = f
	}
	norm, _ := pipeline.Normalize(snap.Rows, snap.Mapping)
	return pipeline.GroupBy(overrideDims(snap.Live, v).Apply(norm), dim), nil
}

// Timeseries buckets the live-filtered set per day.
func (s *Service) Timeseries(v url.Values) []models.TimeseriesPoint {
	return pipeline.Timeseries(s.live(v))
}

// Efficiency adds per-day CPA and ROAS to the timeseries.
func (s *Service) Efficiency(v url.Values) []models.EfficiencyPoint {
	return pipeline.EfficiencySeries(pipeline.Timeseries(s.live(v)))
}

// Dimensions lists distinct filter values over the full normalized set.
func (s *Service) Dimensions() models.DimensionValues {
	snap := s.st.Snapshot()
	norm, _ := pipeline.Normalize(snap.Rows, snap.Mapping)
	return pipeline.DimensionValues(norm)
}

// Preview runs the on-demand ranged fetch: stored date bounds plus dimension
// filters, first N rows plus totals over the whole match.
func (s *Service) Preview(v url.Values) models.Preview {
	snap := s.st.Snapshot()
	norm, _ := pipeline.Normalize(snap.Rows, snap.Mapping)
	matched := overrideDims(snap.Ranged, v).Apply(norm)

	limit := atoiDef(v.Get("limit"), s.previewLimit)
	limit, _ = clampLimitOffset(limit, 0, len(matched))
	return models.Preview{
		Rows:    paginate(matched, limit, 0),
		Total:   len(matched),
		Summary: pipeline.Aggregate(matched),
	}
}

// ExportCSV serializes the live-filtered set.
func (s *Service) ExportCSV(v url.Values) ([]byte, error) {
	return csvio.Unparse(s.live(v))
}

// live normalizes the current inputs and applies the live dimension filter,
// with per-request query overrides.
func (s *Service) live(v url.Values) []models.NormalizedRow {
	snap := s.st.Snapshot()
	norm, _ := pipeline.Normalize(snap.Rows, snap.Mapping)
	return overrideDims(snap.Live, v).Apply(norm)
}

// overrideDims lets read requests override the stored dimension filters
// without touching session state.
func overrideDims(f pipeline.Filter, v url.Values) pipeline.Filter {
	if c := v.Get("campaign"); c != "" {
		f.Campaign = c
	}
	if a := v.Get("adset"); a != "" {
		f.Adset = a
	}
	if a := v.Get("ad"); a != "" {
		f.Ad = a
	}
	return f
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func atoiDef(s string, d int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

func clampLimitOffset(limit, offset, n int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = n
	}
	if limit > 10000 {
		limit = 10000
	}
	if offset > n {
		offset = n
	}
	return limit, offset
}
