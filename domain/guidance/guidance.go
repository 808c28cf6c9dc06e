// Package guidance holds the learning-hub entries: short what/why/how
// explainers keyed by clause reference (e.g. "Annex A.5"). Checklist items
// link to them through their free-text clause field; the match is always
// case-insensitive.
package guidance

import (
	"sort"
	"strings"

	"auditkit/domain/checklist"
	"auditkit/domain/core"
)

// Entry is a single learning-hub record.
type Entry struct {
	ID   string `json:"id"`
	What string `json:"what"`
	Why  string `json:"why"`
	How  string `json:"how"`
}

// List is an ordered set of entries, kept sorted by ID.
type List []Entry

// Lookup finds the entry whose ID matches, case-insensitively.
func (l List) Lookup(clauseID string) (Entry, bool) {
	for _, entry := range l {
		if strings.EqualFold(entry.ID, clauseID) {
			return entry, true
		}
	}
	return Entry{}, false
}

// Save upserts an entry. An exact ID match updates in place; otherwise the
// entry is inserted, unless another entry already claims the ID under a
// case-insensitive comparison. Returns a new list; the input is unchanged.
func (l List) Save(entry Entry) (List, error) {
	if strings.TrimSpace(entry.ID) == "" {
		return nil, core.NewValidationError("id", "guidance entry ID cannot be empty")
	}

	for i, existing := range l {
		if existing.ID == entry.ID {
			next := make(List, len(l))
			copy(next, l)
			next[i] = entry
			return next, nil
		}
	}

	if _, clash := l.Lookup(entry.ID); clash {
		return nil, core.ErrDuplicateClause
	}

	next := make(List, len(l), len(l)+1)
	copy(next, l)
	next = append(next, entry)
	sort.Slice(next, func(a, b int) bool { return next[a].ID < next[b].ID })
	return next, nil
}

// Delete removes the entry with the given ID. Returns a new list.
func (l List) Delete(clauseID string) List {
	next := make(List, 0, len(l))
	for _, entry := range l {
		if entry.ID == clauseID {
			continue
		}
		next = append(next, entry)
	}
	return next
}

// LinkedItems returns every checklist item whose clause field references
// the given clause, case-insensitively. Read-only; the scoring path never
// mutates guidance.
func LinkedItems(cats checklist.Collection, clauseID string) []checklist.Item {
	items := []checklist.Item{}
	for _, cat := range cats {
		for _, item := range cat.Items {
			if item.Clause != "" && strings.EqualFold(item.Clause, clauseID) {
				items = append(items, item)
			}
		}
	}
	return items
}
