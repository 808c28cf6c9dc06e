package checklist

import "fmt"

// Hydrate converts raw, storage-safe categories into the runtime model:
// every item gets a status and evidence (defaulted when the source predates
// audit tracking), missing item IDs are synthesized from the owning category
// and position, icons are resolved, and the derived counters are computed.
// Pure function; category and item order is preserved.
func Hydrate(raw []RawCategory) Collection {
	cats := make(Collection, 0, len(raw))
	for _, rc := range raw {
		items := make([]Item, len(rc.Items))
		for i, item := range rc.Items {
			if item.ID == "" {
				// Positional IDs are stable within one hydration batch but
				// not across repeated imports of ID-less data; accepted
				// limitation of the persisted format.
				item.ID = fmt.Sprintf("%s-%d", rc.ID, i)
			}
			if item.Status == "" {
				item.Status = StatusNotAudited
			}
			items[i] = item
		}

		cat := Category{
			ID:              rc.ID,
			Title:           rc.Title,
			Description:     rc.Description,
			LongDescription: rc.LongDescription,
			IconName:        rc.IconName,
			Color:           rc.Color,
			Items:           items,
			Icon:            ResolveIcon(rc.IconName),
		}
		cat.recount()
		cats = append(cats, cat)
	}
	return cats
}

// Dehydrate strips the resolved icon and derived counters, producing the
// raw shape for JSON persistence. Items round-trip verbatim, including
// status and evidence: audit state must never be lost across a save/reload
// cycle. Pure function; no content validation.
func Dehydrate(cats Collection) []RawCategory {
	raw := make([]RawCategory, 0, len(cats))
	for _, cat := range cats {
		raw = append(raw, RawCategory{
			ID:              cat.ID,
			Title:           cat.Title,
			Description:     cat.Description,
			LongDescription: cat.LongDescription,
			IconName:        cat.IconName,
			Color:           cat.Color,
			Items:           cat.Items,
		})
	}
	return raw
}

// recount recomputes the four derived counters from the current item list.
// Every mutation path ends here; nothing else may set the counters.
func (c *Category) recount() {
	total := len(c.Items)
	notApplicable := 0
	conformant := 0
	nonConformant := 0
	for _, item := range c.Items {
		switch item.Status {
		case StatusNotApplicable:
			notApplicable++
		case StatusConformant:
			conformant++
		case StatusNonConformant:
			nonConformant++
		}
	}
	c.Total = total
	c.TotalAuditable = total - notApplicable
	c.Conformant = conformant
	c.NonConformant = nonConformant
}
