package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	CategoryID ID
	ItemID     ID
	ClauseID   ID
)

// NewCategoryID creates a fresh category identifier with a readable prefix.
// The persisted format has always carried "cat-" prefixed identifiers;
// wall-clock tokens collide under scripted bulk creation, so the suffix is
// a UUID rather than a timestamp.
func NewCategoryID() CategoryID {
	return CategoryID("cat-" + NewID())
}

// NewItemID creates a fresh checklist item identifier.
func NewItemID() ItemID {
	return ItemID("item-" + NewID())
}

// String conversions for domain IDs
func (id CategoryID) String() string { return ID(id).String() }
func (id ItemID) String() string     { return ID(id).String() }
func (id ClauseID) String() string   { return ID(id).String() }

// ParseCategoryID parses a string into CategoryID
func ParseCategoryID(s string) (CategoryID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("category ID cannot be empty")
	}
	return CategoryID(s), nil
}

// ParseItemID parses a string into ItemID
func ParseItemID(s string) (ItemID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("item ID cannot be empty")
	}
	return ItemID(s), nil
}

// ParseClauseID parses a string into ClauseID
func ParseClauseID(s string) (ClauseID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("clause ID cannot be empty")
	}
	return ClauseID(s), nil
}
