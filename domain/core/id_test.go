package core

import (
	"strings"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	// Generate many IDs
	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestNewCategoryIDPrefix tests fresh category IDs carry the persisted prefix
func TestNewCategoryIDPrefix(t *testing.T) {
	id := NewCategoryID()
	if !strings.HasPrefix(id.String(), "cat-") {
		t.Errorf("Expected category ID to start with 'cat-', got '%s'", id)
	}

	itemID := NewItemID()
	if !strings.HasPrefix(itemID.String(), "item-") {
		t.Errorf("Expected item ID to start with 'item-', got '%s'", itemID)
	}
}

// TestCategoryIDCollisionResistance tests bulk creation never collides
func TestCategoryIDCollisionResistance(t *testing.T) {
	seen := make(map[CategoryID]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := NewCategoryID()
		if seen[id] {
			t.Fatalf("Duplicate category ID generated in bulk creation: %s", id)
		}
		seen[id] = true
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	emptyID := ID("")
	if !emptyID.IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}

	nonEmptyID := ID("not-empty")
	if nonEmptyID.IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestParseCategoryID tests category ID parsing
func TestParseCategoryID(t *testing.T) {
	tests := []struct {
		input    string
		expected CategoryID
		hasError bool
	}{
		{"cat-governance", CategoryID("cat-governance"), false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, tt := range tests {
		result, err := ParseCategoryID(tt.input)
		if tt.hasError {
			if err == nil {
				t.Errorf("Expected error for input '%s', got nil", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unexpected error for input '%s': %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("Expected '%s', got '%s'", tt.expected, result)
		}
	}
}

// TestParseItemID tests item ID parsing
func TestParseItemID(t *testing.T) {
	if _, err := ParseItemID(""); err == nil {
		t.Error("Expected error for empty item ID")
	}
	id, err := ParseItemID("item-1")
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if id != ItemID("item-1") {
		t.Errorf("Expected 'item-1', got '%s'", id)
	}
}
