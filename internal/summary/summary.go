// Package summary derives the categorical breed breakdown shown in the
// dashboard's pie chart from a result set.
package summary

import (
	"sort"

	"github.com/dyluth/kennel/internal/pipeline"
	"github.com/dyluth/kennel/pkg/shelter"
)

// OthersLabel is the synthetic category the long tail collapses into when
// no filter is active.
const OthersLabel = "Others"

// longTailThreshold is the minimum share (percent of total) a breed needs
// to keep its own slice in the unfiltered view.
const longTailThreshold = 2.0

// Category is one pie chart slice.
type Category struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Share float64 `json:"share"` // percent of total
}

// Summary is the chart-ready breakdown of a result set. NoData marks an
// empty result set so the render surface can show a "no data" state
// instead of an empty chart.
type Summary struct {
	Categories []Category `json:"categories"`
	Total      int        `json:"total"`
	NoData     bool       `json:"no_data"`
}

// Summarize computes the per-breed breakdown of the result set.
//
// In the reset (unfiltered) state, breeds below the long-tail threshold
// are merged into a single Others category. Filtered views keep every
// distinct breed, singletons included. Categories are ordered by
// descending count (ties by label), with Others always last.
func Summarize(rs pipeline.ResultSet, reset bool) Summary {
	if len(rs.Rows) == 0 {
		return Summary{Categories: []Category{}, NoData: true}
	}

	counts := make(map[string]int)
	for _, row := range rs.Rows {
		counts[row[shelter.FieldBreed]]++
	}
	total := len(rs.Rows)

	categories := make([]Category, 0, len(counts))
	others := 0
	for breed, count := range counts {
		share := float64(count) / float64(total) * 100
		if reset && share < longTailThreshold {
			others += count
			continue
		}
		categories = append(categories, Category{Label: breed, Count: count, Share: share})
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Count != categories[j].Count {
			return categories[i].Count > categories[j].Count
		}
		return categories[i].Label < categories[j].Label
	})

	if others > 0 {
		categories = append(categories, Category{
			Label: OthersLabel,
			Count: others,
			Share: float64(others) / float64(total) * 100,
		})
	}

	return Summary{Categories: categories, Total: total}
}
