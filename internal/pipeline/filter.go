package pipeline

import "github.com/adsdash/adsdash/internal/models"

// All bypasses a dimension filter.
const All = "all"

// Filter is the composable predicate over normalized rows: three optional
// dimension equality checks and an optional inclusive date range. The live
// surfaces use it without date bounds; the on-demand preview sets them. Date
// comparison is lexicographic, which is ordering-correct for the fixed-width
// YYYY-MM-DD format.
type Filter struct {
	Campaign string
	Adset    string
	Ad       string
	DateFrom string
	DateTo   string
}

// Match reports whether r passes every active predicate.
func (f Filter) Match(r models.NormalizedRow) bool {
	return matchDim(f.Campaign, r.Campaign) &&
		matchDim(f.Adset, r.Adset) &&
		matchDim(f.Ad, r.Ad) &&
		(f.DateFrom == "" || r.Date >= f.DateFrom) &&
		(f.DateTo == "" || r.Date <= f.DateTo)
}

// Apply returns the rows passing the filter, in input order.
func (f Filter) Apply(rows []models.NormalizedRow) []models.NormalizedRow {
	out := make([]models.NormalizedRow, 0, len(rows))
	for _, r := range rows {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func matchDim(want, got string) bool {
	return want == "" || want == All || want == got
}
