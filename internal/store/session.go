// Package store holds the in-memory session: the pipeline inputs and nothing
// derived. Every derived structure is recomputed from a consistent snapshot of
// these inputs, so no partial state is ever observable.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/adsdash/adsdash/internal/models"
	"github.com/adsdash/adsdash/internal/pipeline"
)

// ErrSuperseded means a newer upload (or a reset/import) claimed the session
// while this one was still reading; its result is discarded.
var ErrSuperseded = errors.New("upload superseded")

// Session is the single mutable state of the process. Inputs are replaced
// wholesale under the lock, never mutated in place.
type Session struct {
	mu       sync.RWMutex
	gen      uint64
	uploadID string
	filename string

	rows    []models.RawRow
	headers []string
	mapping models.FieldMapping

	campaign string
	adset    string
	ad       string
	dateFrom string
	dateTo   string
	groupBy  models.Field
}

func NewSession() *Session {
	return &Session{
		mapping:  pipeline.DefaultMapping(),
		campaign: pipeline.All,
		adset:    pipeline.All,
		ad:       pipeline.All,
		groupBy:  models.FieldCampaign,
	}
}

// BeginUpload claims the next upload generation. A commit is accepted only
// while its generation is still current, which is what discards the result of
// a read that a later upload overtook.
func (s *Session) BeginUpload() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// CommitUpload installs a finished upload, unless it has been superseded.
// Filters and date bounds survive an upload, as before.
func (s *Session) CommitUpload(gen uint64, uploadID, filename string, rows []models.RawRow, headers []string, m models.FieldMapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return ErrSuperseded
	}
	s.uploadID = uploadID
	s.filename = filename
	s.rows = rows
	s.headers = headers
	s.mapping = m
	return nil
}

// SetMappingField reassigns one canonical field to an ingested header (or to
// Unmapped). The mapping is cloned, not edited, so snapshots already handed
// out stay consistent.
func (s *Session) SetMappingField(f models.Field, column string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if column != models.Unmapped && !contains(s.headers, column) {
		return fmt.Errorf("unknown column %q", column)
	}
	m := s.mapping.Clone()
	m[f] = column
	s.mapping = m
	return nil
}

// SetFilters replaces the live dimension filters. Empty means all.
func (s *Session) SetFilters(campaign, adset, ad string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaign = orAll(campaign)
	s.adset = orAll(adset)
	s.ad = orAll(ad)
}

// SetDateRange replaces the on-demand date bounds. Either side may be empty.
func (s *Session) SetDateRange(from, to string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dateFrom = from
	s.dateTo = to
}

func (s *Session) SetGroupBy(f models.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groupBy = f
}

// Reset clears everything back to the initial state and invalidates any
// in-flight upload.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.uploadID = ""
	s.filename = ""
	s.rows = nil
	s.headers = nil
	s.mapping = pipeline.DefaultMapping()
	s.campaign = pipeline.All
	s.adset = pipeline.All
	s.ad = pipeline.All
	s.dateFrom = ""
	s.dateTo = ""
	s.groupBy = models.FieldCampaign
}

// Snapshot is a consistent view of the pipeline inputs.
type Snapshot struct {
	Rows    []models.RawRow
	Headers []string
	Mapping models.FieldMapping
	Live    pipeline.Filter // dimension filters only
	Ranged  pipeline.Filter // dimension filters plus date bounds
	GroupBy models.Field
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dims := pipeline.Filter{Campaign: s.campaign, Adset: s.adset, Ad: s.ad}
	ranged := dims
	ranged.DateFrom = s.dateFrom
	ranged.DateTo = s.dateTo
	return Snapshot{
		Rows:    s.rows,
		Headers: s.headers,
		Mapping: s.mapping,
		Live:    dims,
		Ranged:  ranged,
		GroupBy: s.groupBy,
	}
}

// ExportState emits the re-importable snapshot: raw rows, mapping and date
// bounds, verbatim.
func (s *Session) ExportState() models.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.SessionState{
		Rows:     s.rows,
		Mapping:  s.mapping,
		DateFrom: s.dateFrom,
		DateTo:   s.dateTo,
	}
}

// ImportState restores a snapshot. A nil mapping keeps the current one, as
// the export format always allowed. Headers are rebuilt from the row keys
// (the snapshot does not carry them) and any in-flight upload is invalidated.
func (s *Session) ImportState(st models.SessionState, filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.rows = st.Rows
	if st.Mapping != nil {
		s.mapping = st.Mapping
	}
	s.dateFrom = st.DateFrom
	s.dateTo = st.DateTo
	s.headers = headersFromRows(st.Rows)
	s.filename = filename
	s.uploadID = ""
}

// Info recomputes the diagnostic counts from current inputs.
func (s *Session) Info() models.SessionInfo {
	s.mu.RLock()
	rows, headers, mapping := s.rows, s.headers, s.mapping
	uploadID, filename := s.uploadID, s.filename
	s.mu.RUnlock()

	norm, dropped := pipeline.Normalize(rows, mapping)
	return models.SessionInfo{
		UploadID:        uploadID,
		Filename:        filename,
		Headers:         headers,
		RawCount:        len(rows),
		NormalizedCount: len(norm),
		DroppedDates:    dropped,
	}
}

func headersFromRows(rows []models.RawRow) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range rows {
		for k := range r {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				out = append(out, k)
			}
		}
	}
	sort.Strings(out)
	return out
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func orAll(s string) string {
	if s == "" {
		return pipeline.All
	}
	return s
}
