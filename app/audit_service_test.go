package app

import (
	"context"
	"errors"
	"testing"

	"auditkit/domain/checklist"
	"auditkit/domain/core"
	"auditkit/domain/guidance"
	"auditkit/domain/scoring"
)

// fakeRepo is an in-memory stand-in for both repository ports.
type fakeRepo struct {
	collection []checklist.RawCategory
	baseline   *scoring.Baseline
	guidance   guidance.List

	loadErr error
	saveErr error

	collectionSaves int
}

func (f *fakeRepo) LoadCollection(ctx context.Context) ([]checklist.RawCategory, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.collection, nil
}

func (f *fakeRepo) SaveCollection(ctx context.Context, raw []checklist.RawCategory) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.collection = raw
	f.collectionSaves++
	return nil
}

func (f *fakeRepo) LoadBaseline(ctx context.Context) (*scoring.Baseline, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.baseline, nil
}

func (f *fakeRepo) SaveBaseline(ctx context.Context, baseline scoring.Baseline) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.baseline = &baseline
	return nil
}

func (f *fakeRepo) LoadGuidance(ctx context.Context) (guidance.List, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.guidance, nil
}

func (f *fakeRepo) SaveGuidance(ctx context.Context, entries guidance.List) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.guidance = entries
	return nil
}

func templateFixture() []checklist.RawCategory {
	return []checklist.RawCategory{
		{
			ID: "gov", Title: "Governance", Description: "d", LongDescription: "ld",
			IconName: "DocumentIcon", Color: "#123",
			Items: []checklist.Item{
				{ID: "gov-0", Security: "policy", Priority: checklist.PriorityEssential, Clause: "Annex A.5"},
				{ID: "gov-1", Security: "roles", Priority: checklist.PriorityEssential},
			},
		},
	}
}

func guidanceFixture() guidance.List {
	return guidance.List{{ID: "Annex A.5", What: "Policies", Why: "w", How: "h"}}
}

func newTestService(t *testing.T, repo *fakeRepo) *AuditService {
	t.Helper()
	svc := NewAuditService(repo, repo, templateFixture(), guidanceFixture())
	if err := svc.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return svc
}

func TestInit_FallsBackToTemplateOnEmptyStorage(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})

	cats := svc.Collection()
	if len(cats) != 1 || cats[0].ID != "gov" {
		t.Fatalf("template not loaded: %+v", cats)
	}
	if cats[0].Items[0].Status != checklist.StatusNotAudited {
		t.Errorf("template items should hydrate to Not Audited: %+v", cats[0].Items[0])
	}
	if len(svc.Guidance()) != 1 {
		t.Errorf("default guidance not loaded: %+v", svc.Guidance())
	}
}

func TestInit_FallsBackOnUnusableStorage(t *testing.T) {
	repo := &fakeRepo{loadErr: errors.New("disk on fire")}
	svc := NewAuditService(repo, repo, templateFixture(), guidanceFixture())

	if err := svc.Init(context.Background()); err != nil {
		t.Fatalf("storage failure must not be fatal: %v", err)
	}
	if len(svc.Collection()) != 1 {
		t.Errorf("template fallback missing: %+v", svc.Collection())
	}
	if svc.Baseline() != nil {
		t.Errorf("baseline should start absent, got %+v", svc.Baseline())
	}
}

func TestInit_PrefersPersistedState(t *testing.T) {
	repo := &fakeRepo{
		collection: []checklist.RawCategory{{ID: "saved", Title: "Saved", Items: []checklist.Item{}}},
		baseline:   &scoring.Baseline{Overall: 42, Themes: map[string]int{"saved": 42}},
	}
	svc := newTestService(t, repo)

	if svc.Collection()[0].ID != "saved" {
		t.Errorf("persisted collection ignored: %+v", svc.Collection())
	}
	if svc.Baseline() == nil || svc.Baseline().Overall != 42 {
		t.Errorf("persisted baseline ignored: %+v", svc.Baseline())
	}
}

func TestUpdateItem_PersistsAndValidates(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo)
	ctx := context.Background()

	item := svc.Collection()[0].Items[0]
	item.Status = checklist.StatusConformant
	item.Evidence = "minutes"

	if err := svc.UpdateItem(ctx, "gov", item); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if repo.collectionSaves != 1 {
		t.Errorf("expected one save, got %d", repo.collectionSaves)
	}
	if repo.collection[0].Items[0].Status != checklist.StatusConformant {
		t.Errorf("persisted document missing audit state: %+v", repo.collection[0].Items[0])
	}

	if err := svc.UpdateItem(ctx, "nope", item); !errors.Is(err, core.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
	item.ID = "missing"
	if err := svc.UpdateItem(ctx, "gov", item); !errors.Is(err, core.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
	bad := svc.Collection()[0].Items[0]
	bad.Status = "Sort Of Fine"
	if err := svc.UpdateItem(ctx, "gov", bad); err == nil {
		t.Error("unknown status should be rejected")
	}
}

func TestUpdateItem_SaveFailureKeepsInMemoryState(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo)
	repo.saveErr = errors.New("db locked")

	item := svc.Collection()[0].Items[0]
	item.Status = checklist.StatusNonConformant

	if err := svc.UpdateItem(context.Background(), "gov", item); err == nil {
		t.Fatal("save failure should surface")
	}
	// In-memory model keeps the edit as last-known-good.
	if svc.Collection()[0].Items[0].Status != checklist.StatusNonConformant {
		t.Errorf("in-memory state rolled back: %+v", svc.Collection()[0].Items[0])
	}
}

func TestApplyItemUpdate_MergesOverStoredItem(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo)
	ctx := context.Background()

	scope, crit, impact := 1.0, 2.0, 3.0
	seeded := svc.Collection()[0].Items[0]
	seeded.Scope, seeded.Criticality, seeded.Impact = &scope, &crit, &impact
	if err := svc.UpdateItem(ctx, "gov", seeded); err != nil {
		t.Fatalf("seeding weights: %v", err)
	}

	// A status-only payload must not touch any other field.
	merged, err := svc.ApplyItemUpdate(ctx, "gov", "gov-0", []byte(`{"status":"Conformant","evidence":"minutes"}`))
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if merged.Status != checklist.StatusConformant || merged.Evidence != "minutes" {
		t.Errorf("payload fields not applied: %+v", merged)
	}
	if merged.Scope == nil || *merged.Scope != scope ||
		merged.Criticality == nil || *merged.Criticality != crit ||
		merged.Impact == nil || *merged.Impact != impact {
		t.Errorf("weighting metadata clobbered by partial payload: %+v", merged)
	}
	if merged.Clause != "Annex A.5" || merged.Security != "policy" {
		t.Errorf("stored fields clobbered by partial payload: %+v", merged)
	}
	if got := repo.collection[0].Items[0]; got.Scope == nil {
		t.Errorf("persisted document lost weighting metadata: %+v", got)
	}

	// An explicit null still clears an optional field.
	merged, err = svc.ApplyItemUpdate(ctx, "gov", "gov-0", []byte(`{"scope":null}`))
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if merged.Scope != nil {
		t.Errorf("explicit null should clear scope, got %v", *merged.Scope)
	}

	// The path item ID wins over whatever the body carries.
	merged, err = svc.ApplyItemUpdate(ctx, "gov", "gov-1", []byte(`{"id":"spoofed"}`))
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if merged.ID != "gov-1" {
		t.Errorf("body ID should not win, got %q", merged.ID)
	}
}

func TestApplyItemUpdate_Rejections(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})
	ctx := context.Background()

	if _, err := svc.ApplyItemUpdate(ctx, "nope", "gov-0", []byte(`{}`)); !errors.Is(err, core.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
	if _, err := svc.ApplyItemUpdate(ctx, "gov", "missing", []byte(`{}`)); !errors.Is(err, core.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
	if _, err := svc.ApplyItemUpdate(ctx, "gov", "gov-0", []byte(`{"status":"Sort Of Fine"}`)); err == nil {
		t.Error("unknown status should be rejected")
	}
	if _, err := svc.ApplyItemUpdate(ctx, "gov", "gov-0", []byte(`{broken`)); err == nil {
		t.Error("malformed payload should be rejected")
	}
	// Rejections never dirty the stored item.
	if svc.Collection()[0].Items[0].Status != checklist.StatusNotAudited {
		t.Errorf("rejected update mutated state: %+v", svc.Collection()[0].Items[0])
	}
}

func TestDeleteCategory_ConfirmationGate(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo)
	ctx := context.Background()

	err := svc.DeleteCategory(ctx, "gov", false)
	if !errors.Is(err, core.ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if len(svc.Collection()) != 1 {
		t.Error("declined delete must leave state untouched")
	}
	if repo.collectionSaves != 0 {
		t.Error("declined delete must not persist")
	}

	if err := svc.DeleteCategory(ctx, "gov", true); err != nil {
		t.Fatalf("confirmed delete failed: %v", err)
	}
	if len(svc.Collection()) != 0 {
		t.Errorf("category not removed: %+v", svc.Collection())
	}
}

func TestAddCategory_ValidatesDraftAndAssignsID(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})
	ctx := context.Background()

	if _, err := svc.AddCategory(ctx, checklist.CategoryDraft{Title: "only title"}); err == nil {
		t.Error("incomplete draft should be rejected")
	}

	created, err := svc.AddCategory(ctx, checklist.CategoryDraft{
		Title: "Physical", Description: "d", LongDescription: "ld",
		IconName: "BuildingIcon", Color: "#456",
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if created.ID == "" {
		t.Error("created category should carry a fresh ID")
	}
	if len(created.Items) != 0 || created.Total != 0 {
		t.Errorf("new category should start empty: %+v", created)
	}

	second, err := svc.AddCategory(ctx, checklist.CategoryDraft{
		Title: "Network", Description: "d", LongDescription: "ld",
		IconName: "GlobeIcon", Color: "#789",
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if second.ID == created.ID {
		t.Error("category IDs must be unique")
	}
}

func TestAddItem_RequiresControlTitle(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "gov", checklist.Item{Security: "  "}); err == nil {
		t.Error("blank control title should be rejected")
	}

	created, err := svc.AddItem(ctx, "gov", checklist.Item{Security: "asset register"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if created.ID == "" || created.Status != checklist.StatusNotAudited {
		t.Errorf("unexpected created item: %+v", created)
	}
}

func TestDeleteItem_ConfirmationGate(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})
	ctx := context.Background()

	if err := svc.DeleteItem(ctx, "gov", "gov-0", false); !errors.Is(err, core.ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if err := svc.DeleteItem(ctx, "gov", "gov-0", true); err != nil {
		t.Fatalf("confirmed delete failed: %v", err)
	}
	if len(svc.Collection()[0].Items) != 1 {
		t.Errorf("item not removed: %+v", svc.Collection()[0].Items)
	}
}

func TestImport_RejectionLeavesStateUntouched(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo)
	ctx := context.Background()

	err := svc.Import(ctx, []byte(`{"not": "an array"}`), true)
	if !errors.Is(err, core.ErrImportInvalid) {
		t.Fatalf("expected ErrImportInvalid, got %v", err)
	}
	if svc.Collection()[0].ID != "gov" {
		t.Error("rejected import must not replace state")
	}

	// Validation runs before the confirmation gate: a bad payload reports
	// its real problem even without confirm.
	err = svc.Import(ctx, []byte(`[]`), false)
	if !errors.Is(err, core.ErrImportInvalid) {
		t.Errorf("expected ErrImportInvalid, got %v", err)
	}

	// Valid but unconfirmed: gate rejects, state intact.
	valid := []byte(`[{"id": "new", "title": "New", "items": []}]`)
	if err := svc.Import(ctx, valid, false); !errors.Is(err, core.ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if svc.Collection()[0].ID != "gov" {
		t.Error("unconfirmed import must not replace state")
	}

	if err := svc.Import(ctx, valid, true); err != nil {
		t.Fatalf("confirmed import failed: %v", err)
	}
	if svc.Collection()[0].ID != "new" {
		t.Errorf("import did not replace state: %+v", svc.Collection())
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	svc := newTestService(t, &fakeRepo{})
	ctx := context.Background()

	item := svc.Collection()[0].Items[0]
	item.Status = checklist.StatusConformant
	item.Evidence = "policy doc v3"
	if err := svc.UpdateItem(ctx, "gov", item); err != nil {
		t.Fatalf("update: %v", err)
	}

	payload, err := svc.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	other := newTestService(t, &fakeRepo{})
	if err := other.Import(ctx, payload, true); err != nil {
		t.Fatalf("import of exported document failed: %v", err)
	}
	got := other.Collection()[0].Items[0]
	if got.Status != checklist.StatusConformant || got.Evidence != "policy doc v3" {
		t.Errorf("audit state lost in round trip: %+v", got)
	}
}

func TestTakeBaseline_PersistsSnapshot(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo)

	baseline, err := svc.TakeBaseline(context.Background())
	if err != nil {
		t.Fatalf("baseline: %v", err)
	}
	if repo.baseline == nil || repo.baseline.Overall != baseline.Overall {
		t.Errorf("baseline not persisted: %+v", repo.baseline)
	}
	if svc.Baseline() == nil {
		t.Error("baseline not held in memory")
	}
}

func TestGuidance_LifecycleWithGates(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo)
	ctx := context.Background()

	entry, linked, err := svc.GuidanceEntry("annex a.5")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if entry.ID != "Annex A.5" {
		t.Errorf("case-insensitive lookup failed: %+v", entry)
	}
	if len(linked) != 1 || linked[0].ID != "gov-0" {
		t.Errorf("linked items wrong: %+v", linked)
	}

	if _, _, err := svc.GuidanceEntry("Clause 99"); !errors.Is(err, core.ErrGuidanceNotFound) {
		t.Errorf("expected ErrGuidanceNotFound, got %v", err)
	}

	if err := svc.SaveGuidanceEntry(ctx, guidance.Entry{ID: "annex a.5", What: "dup"}); !errors.Is(err, core.ErrDuplicateClause) {
		t.Errorf("case-insensitive duplicate should be rejected, got %v", err)
	}

	if err := svc.SaveGuidanceEntry(ctx, guidance.Entry{ID: "Clause 9.2", What: "audit", Why: "w", How: "h"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(repo.guidance) != 2 {
		t.Errorf("guidance not persisted: %+v", repo.guidance)
	}

	if err := svc.DeleteGuidanceEntry(ctx, "Clause 9.2", false); !errors.Is(err, core.ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if err := svc.DeleteGuidanceEntry(ctx, "Clause 9.2", true); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := svc.Guidance().Lookup("Clause 9.2"); ok {
		t.Error("entry not removed")
	}
}
