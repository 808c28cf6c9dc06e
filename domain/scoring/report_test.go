package scoring

import (
	"testing"

	"auditkit/domain/checklist"
)

func reportFixture() checklist.Collection {
	return checklist.Hydrate([]checklist.RawCategory{
		{
			ID: "gov", Title: "Governance",
			Items: []checklist.Item{
				{ID: "gov-0", Security: "policy", Status: checklist.StatusNonConformant, Criticality: fp(3), Impact: fp(3)},
				{ID: "gov-1", Security: "roles", Status: checklist.StatusObservation, Criticality: fp(2), Impact: fp(2)},
				{ID: "gov-2", Security: "reviews", Status: checklist.StatusConformant, WinType: checklist.WinQuick},
			},
		},
		{
			ID: "ops", Title: "Operations",
			Items: []checklist.Item{
				{ID: "ops-0", Security: "backups", Status: checklist.StatusNonConformant}, // no metadata, weight 1
				{ID: "ops-1", Security: "patching", Status: checklist.StatusNotAudited, WinType: checklist.WinQuick},
				{ID: "ops-2", Security: "logging", Status: checklist.StatusNotApplicable, WinType: checklist.WinQuick},
				{ID: "ops-3", Security: "changes", Status: checklist.StatusNonConformant, Criticality: fp(2), Impact: fp(3)},
			},
		},
	})
}

func TestKeyFindings_NonConformantByWeight(t *testing.T) {
	findings := KeyFindings(reportFixture())

	want := []string{"gov-0", "ops-3", "ops-0"}
	if len(findings) != len(want) {
		t.Fatalf("expected %d findings, got %d", len(want), len(findings))
	}
	for i, id := range want {
		if findings[i].ID != id {
			t.Errorf("findings[%d] = %s, want %s", i, findings[i].ID, id)
		}
	}
}

func TestKeyFindings_CappedAtSix(t *testing.T) {
	items := make([]checklist.Item, 10)
	for i := range items {
		items[i] = checklist.Item{ID: string(rune('a' + i)), Security: "x", Status: checklist.StatusNonConformant}
	}
	cats := checklist.Hydrate([]checklist.RawCategory{{ID: "big", Title: "Big", Items: items}})

	if got := KeyFindings(cats); len(got) != 6 {
		t.Errorf("findings should cap at 6, got %d", len(got))
	}
}

func TestCorrectiveActions_IncludesObservationsUncapped(t *testing.T) {
	actions := CorrectiveActions(reportFixture())

	want := []string{"gov-0", "ops-3", "gov-1", "ops-0"}
	if len(actions) != len(want) {
		t.Fatalf("expected %d actions, got %d: %+v", len(want), len(actions), actions)
	}
	for i, id := range want {
		if actions[i].ID != id {
			t.Errorf("actions[%d] = %s, want %s", i, actions[i].ID, id)
		}
	}
}

func TestKeyGaps_ExcludesConformantAndNotApplicable(t *testing.T) {
	gaps := KeyGaps(reportFixture())

	for _, item := range gaps {
		if item.Status == checklist.StatusConformant || item.Status == checklist.StatusNotApplicable {
			t.Errorf("gap list contains excluded status: %+v", item)
		}
	}
	// gov-0 (9) leads, then ops-3 (6), gov-1 (4), then weight-1 rest.
	if gaps[0].ID != "gov-0" || gaps[1].ID != "ops-3" {
		t.Errorf("gaps not ordered by remediation weight: %s, %s", gaps[0].ID, gaps[1].ID)
	}
}

func TestRoadmap_OutstandingQuickWinsInChecklistOrder(t *testing.T) {
	roadmap := Roadmap(reportFixture())

	// gov-2 is conformant, ops-2 not applicable; only ops-1 remains.
	if len(roadmap) != 1 || roadmap[0].ID != "ops-1" {
		t.Errorf("unexpected roadmap: %+v", roadmap)
	}
}

func TestWeighting_DistributionOverEligibleItems(t *testing.T) {
	cats := checklist.Hydrate([]checklist.RawCategory{
		{
			ID: "w", Title: "W",
			Items: []checklist.Item{
				{ID: "w-0", Security: "a", Status: checklist.StatusConformant, Scope: fp(1), Criticality: fp(2), Impact: fp(3)}, // 6
				{ID: "w-1", Security: "b", Status: checklist.StatusNonConformant, Scope: fp(1), Criticality: fp(1), Impact: fp(2)}, // 2
				{ID: "w-2", Security: "c", Status: checklist.StatusConformant}, // ineligible
			},
		},
	})

	profile := Weighting(cats)

	if len(profile.Rows) != 3 {
		t.Fatalf("expected a row per item, got %d", len(profile.Rows))
	}
	if profile.EligibleItems != 2 {
		t.Errorf("EligibleItems = %d, want 2", profile.EligibleItems)
	}
	if profile.TotalWeight != 8 {
		t.Errorf("TotalWeight = %v, want 8", profile.TotalWeight)
	}
	if profile.MeanWeight != 4 {
		t.Errorf("MeanWeight = %v, want 4", profile.MeanWeight)
	}
	if profile.MedianWeight != 4 {
		t.Errorf("MedianWeight = %v, want 4", profile.MedianWeight)
	}
	if profile.Rows[2].Eligible || profile.Rows[2].Weight != 0 {
		t.Errorf("ineligible row should carry zero weight: %+v", profile.Rows[2])
	}
}

func TestWeighting_EmptyCollection(t *testing.T) {
	profile := Weighting(nil)

	if len(profile.Rows) != 0 || profile.EligibleItems != 0 {
		t.Errorf("empty collection should yield empty profile: %+v", profile)
	}
	if profile.MeanWeight != 0 || profile.MedianWeight != 0 || profile.TotalWeight != 0 {
		t.Errorf("distribution figures should be 0: %+v", profile)
	}
}
