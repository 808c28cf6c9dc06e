// Package scoring derives weighted conformance figures from a checklist
// collection. Every function here is a pure read: scoring never fails and
// never alters item state.
package scoring

import (
	"math"

	"auditkit/domain/checklist"
)

// Conformance computes the weighted conformance percentage for a set of
// items. Items missing any of scope/criticality/impact, or marked Not
// Applicable, are excluded from both numerator and denominator: adding a
// metadata-free item never moves the score. With no eligible weight the
// result is 0, not an error; zero and "no data" are deliberately conflated.
func Conformance(items []checklist.Item) int {
	var totalWeight, conformantWeight float64
	for _, item := range items {
		if !item.WeightEligible() {
			continue
		}
		w := item.Weight()
		totalWeight += w
		if item.Status == checklist.StatusConformant {
			conformantWeight += w
		}
	}
	if totalWeight <= 0 {
		return 0
	}
	return int(math.Round(conformantWeight / totalWeight * 100))
}

// Overall computes the weighted conformance across every category.
func Overall(cats checklist.Collection) int {
	return Conformance(cats.AllItems())
}

// PerCategory computes each category's conformance over its own items,
// independently. Categories with no eligible items report 0.
func PerCategory(cats checklist.Collection) map[string]int {
	themes := make(map[string]int, len(cats))
	for _, cat := range cats {
		themes[cat.ID] = Conformance(cat.Items)
	}
	return themes
}

// Baseline is a frozen point-in-time snapshot of conformance percentages.
// It is never recomputed when item state changes; only TakeBaseline
// produces a new one.
type Baseline struct {
	Overall int            `json:"overall"`
	Themes  map[string]int `json:"themes"`
}

// TakeBaseline snapshots the current overall and per-category conformance
// into a new, separately held record. Taking a baseline never alters item
// state.
func TakeBaseline(cats checklist.Collection) Baseline {
	return Baseline{
		Overall: Overall(cats),
		Themes:  PerCategory(cats),
	}
}

// Summary bundles the numbers the dashboard header consumes.
type Summary struct {
	Overall      int            `json:"overall"`
	Themes       map[string]int `json:"themes"`
	AuditedItems int            `json:"auditedItems"`
	TotalItems   int            `json:"totalItems"`
	Baseline     *Baseline      `json:"baseline,omitempty"`
}

// Summarize derives the dashboard summary, pairing live figures with the
// stored baseline when one exists.
func Summarize(cats checklist.Collection, baseline *Baseline) Summary {
	items := cats.AllItems()
	audited := 0
	for _, item := range items {
		if item.Status != checklist.StatusNotAudited {
			audited++
		}
	}
	return Summary{
		Overall:      Conformance(items),
		Themes:       PerCategory(cats),
		AuditedItems: audited,
		TotalItems:   len(items),
		Baseline:     baseline,
	}
}
