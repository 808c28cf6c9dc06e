package scoring

import (
	"sort"

	"github.com/montanaflynn/stats"

	"auditkit/domain/checklist"
)

const maxHighlightedItems = 6

// remediationWeight ranks items for findings and action lists. Unlike the
// conformance score it tolerates missing metadata, substituting 1 so that
// partially annotated items still sort sensibly.
func remediationWeight(item checklist.Item) float64 {
	criticality := 1.0
	if item.Criticality != nil {
		criticality = *item.Criticality
	}
	impact := 1.0
	if item.Impact != nil {
		impact = *item.Impact
	}
	return criticality * impact
}

func sortByRemediationWeight(items []checklist.Item) {
	sort.SliceStable(items, func(a, b int) bool {
		return remediationWeight(items[a]) > remediationWeight(items[b])
	})
}

// KeyFindings returns the highest-weighted non-conformities, capped for the
// dashboard card.
func KeyFindings(cats checklist.Collection) []checklist.Item {
	findings := filterItems(cats, func(item checklist.Item) bool {
		return item.Status == checklist.StatusNonConformant
	})
	sortByRemediationWeight(findings)
	if len(findings) > maxHighlightedItems {
		findings = findings[:maxHighlightedItems]
	}
	return findings
}

// CorrectiveActions returns every item needing follow-up, non-conformities
// and observations alike, ordered by remediation weight.
func CorrectiveActions(cats checklist.Collection) []checklist.Item {
	actions := filterItems(cats, func(item checklist.Item) bool {
		return item.Status == checklist.StatusNonConformant ||
			item.Status == checklist.StatusObservation
	})
	sortByRemediationWeight(actions)
	return actions
}

// KeyGaps returns the highest-weighted applicable items not yet conformant.
func KeyGaps(cats checklist.Collection) []checklist.Item {
	gaps := filterItems(cats, func(item checklist.Item) bool {
		return item.Status != checklist.StatusConformant &&
			item.Status != checklist.StatusNotApplicable
	})
	sortByRemediationWeight(gaps)
	if len(gaps) > maxHighlightedItems {
		gaps = gaps[:maxHighlightedItems]
	}
	return gaps
}

// Roadmap returns the outstanding quick wins, in checklist order.
func Roadmap(cats checklist.Collection) []checklist.Item {
	return filterItems(cats, func(item checklist.Item) bool {
		return item.WinType == checklist.WinQuick &&
			item.Status != checklist.StatusConformant &&
			item.Status != checklist.StatusNotApplicable
	})
}

func filterItems(cats checklist.Collection, keep func(checklist.Item) bool) []checklist.Item {
	items := []checklist.Item{}
	for _, cat := range cats {
		for _, item := range cat.Items {
			if keep(item) {
				items = append(items, item)
			}
		}
	}
	return items
}

// WeightRow is one line of the weighting model table.
type WeightRow struct {
	CategoryID string  `json:"categoryId"`
	ItemID     string  `json:"itemId"`
	Security   string  `json:"security"`
	Weight     float64 `json:"weight"`
	Eligible   bool    `json:"eligible"`
}

// WeightingProfile describes how scoring weight is distributed over the
// collection: one row per item plus distribution figures over the eligible
// weights.
type WeightingProfile struct {
	Rows          []WeightRow `json:"rows"`
	EligibleItems int         `json:"eligibleItems"`
	TotalWeight   float64     `json:"totalWeight"`
	MeanWeight    float64     `json:"meanWeight"`
	MedianWeight  float64     `json:"medianWeight"`
}

// Weighting builds the weighting profile for the collection. Distribution
// figures are 0 when no item is eligible.
func Weighting(cats checklist.Collection) WeightingProfile {
	profile := WeightingProfile{Rows: []WeightRow{}}
	var weights []float64
	for _, cat := range cats {
		for _, item := range cat.Items {
			row := WeightRow{
				CategoryID: cat.ID,
				ItemID:     item.ID,
				Security:   item.Security,
				Eligible:   item.WeightEligible(),
			}
			if row.Eligible {
				row.Weight = item.Weight()
				weights = append(weights, row.Weight)
				profile.TotalWeight += row.Weight
			}
			profile.Rows = append(profile.Rows, row)
		}
	}
	profile.EligibleItems = len(weights)
	if len(weights) > 0 {
		// stats only errors on empty input, which is guarded above.
		profile.MeanWeight, _ = stats.Mean(weights)
		profile.MedianWeight, _ = stats.Median(weights)
	}
	return profile
}
