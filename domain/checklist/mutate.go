package checklist

// Mutation operations. Each one is a pure transformation: the input
// collection is never modified, and only the affected category is rebuilt.
// Untouched categories keep their item slices by reference, so downstream
// change detection can rely on identity. A mutation that finds no matching
// target returns a collection with unchanged content.

// UpdateItem replaces the item with matching ID inside the given category
// and recomputes that category's counters.
func (c Collection) UpdateItem(categoryID string, updated Item) Collection {
	next := make(Collection, len(c))
	copy(next, c)
	for i, cat := range c {
		if cat.ID != categoryID {
			continue
		}
		items := make([]Item, len(cat.Items))
		copy(items, cat.Items)
		for j, item := range items {
			if item.ID == updated.ID {
				items[j] = updated
			}
		}
		cat.Items = items
		cat.recount()
		next[i] = cat
	}
	return next
}

// ResetProgress forces every item in the category back to Not Audited with
// empty evidence, then recomputes counters.
func (c Collection) ResetProgress(categoryID string) Collection {
	next := make(Collection, len(c))
	copy(next, c)
	for i, cat := range c {
		if cat.ID != categoryID {
			continue
		}
		items := make([]Item, len(cat.Items))
		for j, item := range cat.Items {
			item.Status = StatusNotAudited
			item.Evidence = ""
			items[j] = item
		}
		cat.Items = items
		cat.recount()
		next[i] = cat
	}
	return next
}

// AddCategory appends a new category built from the draft: fresh ID, empty
// item list, zero counters, icon resolved from the draft's symbolic name.
func (c Collection) AddCategory(id string, draft CategoryDraft) Collection {
	cat := Category{
		ID:              id,
		Title:           draft.Title,
		Description:     draft.Description,
		LongDescription: draft.LongDescription,
		IconName:        draft.IconName,
		Color:           draft.Color,
		Items:           []Item{},
		Icon:            ResolveIcon(draft.IconName),
	}
	cat.recount()

	next := make(Collection, len(c), len(c)+1)
	copy(next, c)
	return append(next, cat)
}

// UpdateCategory replaces the descriptive fields of the category with
// matching ID. Items and counters are untouched.
func (c Collection) UpdateCategory(updated Category) Collection {
	next := make(Collection, len(c))
	copy(next, c)
	for i, cat := range c {
		if cat.ID != updated.ID {
			continue
		}
		cat.Title = updated.Title
		cat.Description = updated.Description
		cat.LongDescription = updated.LongDescription
		cat.Color = updated.Color
		cat.IconName = updated.IconName
		cat.Icon = ResolveIcon(updated.IconName)
		next[i] = cat
	}
	return next
}

// DeleteCategory removes the category with the given ID. Irreversible;
// callers gate this behind an explicit confirmation step.
func (c Collection) DeleteCategory(categoryID string) Collection {
	next := make(Collection, 0, len(c))
	for _, cat := range c {
		if cat.ID == categoryID {
			continue
		}
		next = append(next, cat)
	}
	return next
}

// AddItem appends a new item with the supplied fresh ID to the category.
// Status defaults to Not Audited, so only Total and TotalAuditable move.
func (c Collection) AddItem(categoryID string, id string, draft Item) Collection {
	draft.ID = id
	if draft.Status == "" {
		draft.Status = StatusNotAudited
	}

	next := make(Collection, len(c))
	copy(next, c)
	for i, cat := range c {
		if cat.ID != categoryID {
			continue
		}
		items := make([]Item, len(cat.Items), len(cat.Items)+1)
		copy(items, cat.Items)
		cat.Items = append(items, draft)
		cat.recount()
		next[i] = cat
	}
	return next
}

// DeleteItem removes the item and recomputes all four counters. Callers
// gate this behind an explicit confirmation step.
func (c Collection) DeleteItem(categoryID string, itemID string) Collection {
	next := make(Collection, len(c))
	copy(next, c)
	for i, cat := range c {
		if cat.ID != categoryID {
			continue
		}
		items := make([]Item, 0, len(cat.Items))
		for _, item := range cat.Items {
			if item.ID == itemID {
				continue
			}
			items = append(items, item)
		}
		cat.Items = items
		cat.recount()
		next[i] = cat
	}
	return next
}
