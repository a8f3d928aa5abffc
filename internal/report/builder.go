// Package report turns a document, a rule set and a filter
// configuration into a grouped classification report.
package report

import (
	"github.com/nyanyapushkina/log-analysis-bot/internal/filter"
	"github.com/nyanyapushkina/log-analysis-bot/internal/model"
	"github.com/nyanyapushkina/log-analysis-bot/internal/rules"
)

// Build classifies every line of the document and groups matches by
// category in canonical order. Pure function of its three inputs:
// building twice from the same values yields identical reports.
//
// Grouping is a view, not a partition — a line matching two enabled
// categories appears in both buckets and both counts. Disabled
// categories get no bucket at all. UnmatchedCount counts lines that
// matched zero rules, regardless of filter state.
func Build(doc *model.Document, set *rules.Set, filters *filter.Config) *model.Report {
	ordered := set.Categories()

	buckets := make(map[model.Category]*model.ReportGroup, len(ordered))
	rep := &model.Report{TotalLines: doc.LineCount()}
	// Capacity is fixed up front so the bucket pointers below stay valid.
	rep.Groups = make([]model.ReportGroup, 0, len(ordered))
	for _, cat := range ordered {
		if !filters.IsEnabled(cat) {
			continue
		}
		rep.Groups = append(rep.Groups, model.ReportGroup{Category: cat})
		buckets[cat] = &rep.Groups[len(rep.Groups)-1]
	}

	for _, line := range doc.Lines {
		matched := set.ClassifyLine(line)
		if len(matched) == 0 {
			rep.UnmatchedCount++
			continue
		}
		for cat := range matched {
			if g, ok := buckets[cat]; ok {
				g.Lines = append(g.Lines, line)
				g.Count++
			}
		}
	}

	return rep
}
