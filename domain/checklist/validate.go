package checklist

import (
	"encoding/json"
	"fmt"

	"auditkit/domain/core"
)

// ParseImport decodes and structurally validates an import document.
// The checks are deliberately minimal: the top-level value must be a
// non-empty array whose first element carries a non-empty id, a non-empty
// title and an array-valued items field. Anything else is rejected before
// hydration so a bad upload can never partially replace state.
func ParseImport(payload []byte) ([]RawCategory, error) {
	var probe []json.RawMessage
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("%w: top-level value is not an array", core.ErrImportInvalid)
	}
	if len(probe) == 0 {
		return nil, fmt.Errorf("%w: collection is empty", core.ErrImportInvalid)
	}

	var raw []RawCategory
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrImportInvalid, err)
	}

	first := raw[0]
	if first.ID == "" {
		return nil, fmt.Errorf("%w: first category has no id", core.ErrImportInvalid)
	}
	if first.Title == "" {
		return nil, fmt.Errorf("%w: first category has no title", core.ErrImportInvalid)
	}
	if err := requireItemsArray(probe[0]); err != nil {
		return nil, err
	}

	return raw, nil
}

// requireItemsArray distinguishes a missing/mistyped items field from an
// empty one, which plain struct decoding cannot.
func requireItemsArray(category json.RawMessage) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(category, &fields); err != nil {
		return fmt.Errorf("%w: first category is not an object", core.ErrImportInvalid)
	}
	itemsField, ok := fields["items"]
	if !ok {
		return fmt.Errorf("%w: first category has no items field", core.ErrImportInvalid)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(itemsField, &items); err != nil {
		return fmt.Errorf("%w: items field is not an array", core.ErrImportInvalid)
	}
	return nil
}
