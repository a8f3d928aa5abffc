package model

// ReportGroup holds every line that matched one enabled category,
// in original file order.
type ReportGroup struct {
	Category Category `json:"category"`
	Lines    []string `json:"lines"`
	Count    int      `json:"count"`
}

// Report is the grouped classification output for one analysis run.
// Groups appear in canonical category order; disabled categories are
// omitted entirely rather than emitted empty. A Report is immutable
// once built.
type Report struct {
	Groups         []ReportGroup `json:"groups"`
	UnmatchedCount int           `json:"unmatched_count"`
	TotalLines     int           `json:"total_lines"`
}

// MatchedCount returns the sum of all group counts. A line that landed
// in two buckets contributes twice; grouping is a view, not a partition.
func (r *Report) MatchedCount() int {
	var n int
	for _, g := range r.Groups {
		n += g.Count
	}
	return n
}

// Group returns the bucket for the given category, or nil if the
// report carries no bucket for it (disabled or unknown).
func (r *Report) Group(c Category) *ReportGroup {
	for i := range r.Groups {
		if r.Groups[i].Category == c {
			return &r.Groups[i]
		}
	}
	return nil
}
