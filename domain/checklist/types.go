package checklist

// AuditStatus is the conformance verdict recorded against a control.
type AuditStatus string

const (
	StatusNotAudited    AuditStatus = "Not Audited"
	StatusConformant    AuditStatus = "Conformant"
	StatusNonConformant AuditStatus = "Non-Conformant"
	StatusObservation   AuditStatus = "Observation"
	StatusNotApplicable AuditStatus = "Not Applicable"
)

// IsValid checks whether the status is one of the known verdicts.
func (s AuditStatus) IsValid() bool {
	switch s {
	case StatusNotAudited, StatusConformant, StatusNonConformant, StatusObservation, StatusNotApplicable:
		return true
	}
	return false
}

// Priority ranks how essential a control is to the checklist.
type Priority string

const (
	PriorityEssential Priority = "Essential"
	PriorityOptional  Priority = "Optional"
	PriorityAdvanced  Priority = "Advanced"
	PriorityBasic     Priority = "Basic"
)

// WinType labels remediation effort class for roadmap planning.
type WinType string

const (
	WinQuick  WinType = "Quick Win"
	WinMedium WinType = "Medium"
)

// Item is a single auditable control.
//
// Scope, Criticality and Impact are pointers because an item only enters the
// weighted score when all three are present; absent weighting metadata must
// be distinguishable from a zero value.
type Item struct {
	ID       string   `json:"id"`
	Security string   `json:"security"`
	Priority Priority `json:"priority"`
	Details  string   `json:"details"`

	// Audit state. Absent in freshly templated data, defaulted on hydration.
	Status   AuditStatus `json:"status,omitempty"`
	Evidence string      `json:"evidence"`

	// Optional metadata
	Clause       string   `json:"clause,omitempty"`
	Scope        *float64 `json:"scope,omitempty"`
	Criticality  *float64 `json:"criticality,omitempty"`
	Impact       *float64 `json:"impact,omitempty"`
	WinType      WinType  `json:"winType,omitempty"`
	EffortTech   *float64 `json:"effortTech,omitempty"`
	EffortPeople *float64 `json:"effortPeople,omitempty"`
	EffortWeeks  string   `json:"effortWeeks,omitempty"`
	Dependencies string   `json:"dependencies,omitempty"`
}

// WeightEligible reports whether the item participates in weighted scoring.
func (i Item) WeightEligible() bool {
	return i.Status != StatusNotApplicable &&
		i.Scope != nil && i.Criticality != nil && i.Impact != nil
}

// Weight is scope * criticality * impact. Only meaningful when WeightEligible.
func (i Item) Weight() float64 {
	if i.Scope == nil || i.Criticality == nil || i.Impact == nil {
		return 0
	}
	return *i.Scope * *i.Criticality * *i.Impact
}

// RawCategory is the storage-safe shape: no derived counters, no resolved
// icon. This is the contract for the bundled template, local persistence,
// file export/import and the remote-sync payload.
type RawCategory struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription"`
	IconName        IconName `json:"iconName"`
	Color           string   `json:"color"`
	Items           []Item   `json:"items"`
}

// Category is the hydrated runtime shape. Counters are recomputed by every
// mutation and must never be set independently of one.
type Category struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription"`
	IconName        IconName `json:"iconName"`
	Color           string   `json:"color"`
	Items           []Item   `json:"items"`

	Icon Icon `json:"icon"`

	Total          int `json:"total"`
	TotalAuditable int `json:"totalAuditable"`
	Conformant     int `json:"conformant"`
	NonConformant  int `json:"nonConformant"`
}

// Collection is the ordered set of hydrated categories the application
// operates on. All mutations are pure: they return a new collection and
// share untouched categories by reference.
type Collection []Category

// AllItems flattens every category's items in collection order.
func (c Collection) AllItems() []Item {
	var items []Item
	for _, cat := range c {
		items = append(items, cat.Items...)
	}
	return items
}

// FindCategory returns the category with the given id, or nil.
func (c Collection) FindCategory(categoryID string) *Category {
	for idx := range c {
		if c[idx].ID == categoryID {
			return &c[idx]
		}
	}
	return nil
}

// CategoryDraft carries the caller-supplied fields for a new category.
type CategoryDraft struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription"`
	IconName        IconName `json:"iconName"`
	Color           string   `json:"color"`
}
