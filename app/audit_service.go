package app

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"

	"auditkit/domain/checklist"
	"auditkit/domain/core"
	"auditkit/domain/guidance"
	"auditkit/domain/scoring"
	"auditkit/internal/errors"
	"auditkit/ports"
)

// AuditService owns the hydrated audit state and drives the persistence
// pipeline: raw state is loaded and hydrated once at startup, every
// mutation applies a pure domain operation to the hydrated model, and the
// result is dehydrated and written back through the repository. A failed
// write is surfaced but never rolls back the in-memory model, which stays
// last-known-good.
type AuditService struct {
	mu sync.RWMutex

	stateRepo    ports.StateRepository
	guidanceRepo ports.GuidanceRepository

	template        []checklist.RawCategory
	defaultGuidance guidance.List

	cats     checklist.Collection
	baseline *scoring.Baseline
	guidance guidance.List
}

// NewAuditService creates the service. template and defaultGuidance are the
// bundled fallbacks used on first run or when persisted state is unusable.
func NewAuditService(stateRepo ports.StateRepository, guidanceRepo ports.GuidanceRepository, template []checklist.RawCategory, defaultGuidance guidance.List) *AuditService {
	return &AuditService{
		stateRepo:       stateRepo,
		guidanceRepo:    guidanceRepo,
		template:        template,
		defaultGuidance: defaultGuidance,
	}
}

// Init loads persisted state, falling back to the bundled template when
// nothing is saved or the saved document is unusable. Storage failures here
// are never fatal: the tool always comes up with a working checklist.
func (s *AuditService) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.stateRepo.LoadCollection(ctx)
	if err != nil {
		log.Printf("[audit] persisted state unusable, loading bundled template: %v", err)
		raw = nil
	}
	if raw == nil {
		raw = s.template
	}
	s.cats = checklist.Hydrate(raw)

	baseline, err := s.stateRepo.LoadBaseline(ctx)
	if err != nil {
		log.Printf("[audit] persisted baseline unusable, starting without one: %v", err)
		baseline = nil
	}
	s.baseline = baseline

	entries, err := s.guidanceRepo.LoadGuidance(ctx)
	if err != nil {
		log.Printf("[audit] persisted guidance unusable, loading defaults: %v", err)
		entries = nil
	}
	if entries == nil {
		entries = s.defaultGuidance
	}
	s.guidance = entries

	return nil
}

// Collection returns the current hydrated categories. Callers must treat
// the result as read-only; all writes go through the mutation methods.
func (s *AuditService) Collection() checklist.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cats
}

// Baseline returns the stored baseline snapshot, nil when none was taken.
func (s *AuditService) Baseline() *scoring.Baseline {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseline
}

// Summary derives the dashboard summary from live state plus the baseline.
func (s *AuditService) Summary() scoring.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scoring.Summarize(s.cats, s.baseline)
}

// UpdateItem replaces one item and persists. The owning category's counters
// move with it; sibling categories are untouched.
func (s *AuditService) UpdateItem(ctx context.Context, categoryID string, item checklist.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat := s.cats.FindCategory(categoryID)
	if cat == nil {
		return core.ErrCategoryNotFound
	}
	if !hasItem(*cat, item.ID) {
		return core.ErrItemNotFound
	}
	if item.Status != "" && !item.Status.IsValid() {
		return core.NewValidationError("status", "unknown audit status "+string(item.Status))
	}

	s.cats = s.cats.UpdateItem(categoryID, item)
	return s.persistLocked(ctx)
}

// ApplyItemUpdate merges the client-supplied JSON fields over the stored
// item and persists. Fields absent from the payload keep their stored
// values, so recording a status never wipes weighting metadata; an explicit
// null still clears an optional field.
func (s *AuditService) ApplyItemUpdate(ctx context.Context, categoryID, itemID string, payload []byte) (checklist.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat := s.cats.FindCategory(categoryID)
	if cat == nil {
		return checklist.Item{}, core.ErrCategoryNotFound
	}
	merged, found := itemByID(*cat, itemID)
	if !found {
		return checklist.Item{}, core.ErrItemNotFound
	}

	if err := json.Unmarshal(payload, &merged); err != nil {
		return checklist.Item{}, core.NewValidationError("item", "malformed item payload")
	}
	merged.ID = itemID
	if merged.Status != "" && !merged.Status.IsValid() {
		return checklist.Item{}, core.NewValidationError("status", "unknown audit status "+string(merged.Status))
	}

	s.cats = s.cats.UpdateItem(categoryID, merged)
	return merged, s.persistLocked(ctx)
}

// ResetCategoryProgress wipes every item in the category back to Not
// Audited with empty evidence.
func (s *AuditService) ResetCategoryProgress(ctx context.Context, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cats.FindCategory(categoryID) == nil {
		return core.ErrCategoryNotFound
	}
	s.cats = s.cats.ResetProgress(categoryID)
	return s.persistLocked(ctx)
}

// AddCategory creates a category from the draft with a fresh unique ID.
func (s *AuditService) AddCategory(ctx context.Context, draft checklist.CategoryDraft) (checklist.Category, error) {
	if err := validateDraft(draft); err != nil {
		return checklist.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := core.NewCategoryID().String()
	s.cats = s.cats.AddCategory(id, draft)
	created := *s.cats.FindCategory(id)
	return created, s.persistLocked(ctx)
}

// UpdateCategory replaces the descriptive fields of an existing category.
func (s *AuditService) UpdateCategory(ctx context.Context, updated checklist.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cats.FindCategory(updated.ID) == nil {
		return core.ErrCategoryNotFound
	}
	s.cats = s.cats.UpdateCategory(updated)
	return s.persistLocked(ctx)
}

// DeleteCategory removes a category and all its items. Irreversible, so it
// demands explicit confirmation; declining leaves state untouched.
func (s *AuditService) DeleteCategory(ctx context.Context, categoryID string, confirmed bool) error {
	if !confirmed {
		return core.ErrNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cats.FindCategory(categoryID) == nil {
		return core.ErrCategoryNotFound
	}
	s.cats = s.cats.DeleteCategory(categoryID)
	return s.persistLocked(ctx)
}

// AddItem appends a new control to the category with a fresh unique ID.
func (s *AuditService) AddItem(ctx context.Context, categoryID string, draft checklist.Item) (checklist.Item, error) {
	if strings.TrimSpace(draft.Security) == "" {
		return checklist.Item{}, core.NewValidationError("security", "control title cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cat := s.cats.FindCategory(categoryID)
	if cat == nil {
		return checklist.Item{}, core.ErrCategoryNotFound
	}

	id := core.NewItemID().String()
	s.cats = s.cats.AddItem(categoryID, id, draft)
	cat = s.cats.FindCategory(categoryID)
	created := cat.Items[len(cat.Items)-1]
	return created, s.persistLocked(ctx)
}

// DeleteItem removes one control. Confirmation-gated, like DeleteCategory.
func (s *AuditService) DeleteItem(ctx context.Context, categoryID, itemID string, confirmed bool) error {
	if !confirmed {
		return core.ErrNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cat := s.cats.FindCategory(categoryID)
	if cat == nil {
		return core.ErrCategoryNotFound
	}
	if !hasItem(*cat, itemID) {
		return core.ErrItemNotFound
	}
	s.cats = s.cats.DeleteItem(categoryID, itemID)
	return s.persistLocked(ctx)
}

// Import validates the payload and replaces the entire collection. No
// merge: this is a full overwrite, so it is confirmation-gated, and a
// payload that fails validation leaves prior state completely untouched.
func (s *AuditService) Import(ctx context.Context, payload []byte, confirmed bool) error {
	raw, err := checklist.ParseImport(payload)
	if err != nil {
		return err
	}
	if !confirmed {
		return core.ErrNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cats = checklist.Hydrate(raw)
	return s.persistLocked(ctx)
}

// ImportRaw replaces the collection with already-validated raw categories.
// Used by the sync service, which validates on its side of the boundary.
func (s *AuditService) ImportRaw(ctx context.Context, raw []checklist.RawCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cats = checklist.Hydrate(raw)
	return s.persistLocked(ctx)
}

// Export produces the dehydrated collection as indented JSON, the exact
// document import and remote sync consume.
func (s *AuditService) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, err := json.MarshalIndent(checklist.Dehydrate(s.cats), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode export document")
	}
	return payload, nil
}

// TakeBaseline snapshots current conformance as the new baseline and
// persists it. Item state is never touched.
func (s *AuditService) TakeBaseline(ctx context.Context) (scoring.Baseline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	baseline := scoring.TakeBaseline(s.cats)
	s.baseline = &baseline
	if err := s.stateRepo.SaveBaseline(ctx, baseline); err != nil {
		log.Printf("[audit] failed to persist baseline: %v", err)
		return baseline, err
	}
	return baseline, nil
}

// Guidance returns the current learning-hub entries.
func (s *AuditService) Guidance() guidance.List {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.guidance
}

// GuidanceEntry looks up one entry case-insensitively, with the checklist
// items that reference its clause.
func (s *AuditService) GuidanceEntry(clauseID string) (guidance.Entry, []checklist.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, found := s.guidance.Lookup(clauseID)
	if !found {
		return guidance.Entry{}, nil, core.ErrGuidanceNotFound
	}
	return entry, guidance.LinkedItems(s.cats, clauseID), nil
}

// SaveGuidanceEntry upserts a learning-hub entry and persists.
func (s *AuditService) SaveGuidanceEntry(ctx context.Context, entry guidance.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.guidance.Save(entry)
	if err != nil {
		return err
	}
	s.guidance = next
	if err := s.guidanceRepo.SaveGuidance(ctx, s.guidance); err != nil {
		log.Printf("[audit] failed to persist guidance: %v", err)
		return err
	}
	return nil
}

// DeleteGuidanceEntry removes an entry. Confirmation-gated.
func (s *AuditService) DeleteGuidanceEntry(ctx context.Context, clauseID string, confirmed bool) error {
	if !confirmed {
		return core.ErrNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.guidance.Lookup(clauseID); !found {
		return core.ErrGuidanceNotFound
	}
	s.guidance = s.guidance.Delete(clauseID)
	if err := s.guidanceRepo.SaveGuidance(ctx, s.guidance); err != nil {
		log.Printf("[audit] failed to persist guidance: %v", err)
		return err
	}
	return nil
}

// persistLocked dehydrates and writes the collection. Caller holds the
// write lock. On failure the in-memory state is kept and the error is
// surfaced for the caller to report.
func (s *AuditService) persistLocked(ctx context.Context) error {
	if err := s.stateRepo.SaveCollection(ctx, checklist.Dehydrate(s.cats)); err != nil {
		log.Printf("[audit] failed to persist collection, in-memory state retained: %v", err)
		return err
	}
	return nil
}

func hasItem(cat checklist.Category, itemID string) bool {
	_, found := itemByID(cat, itemID)
	return found
}

func itemByID(cat checklist.Category, itemID string) (checklist.Item, bool) {
	for _, item := range cat.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return checklist.Item{}, false
}

func validateDraft(draft checklist.CategoryDraft) error {
	required := map[string]string{
		"title":           draft.Title,
		"description":     draft.Description,
		"longDescription": draft.LongDescription,
		"color":           draft.Color,
		"iconName":        string(draft.IconName),
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return core.NewValidationError(field, "cannot be empty")
		}
	}
	return nil
}
