package ports

import (
	"context"

	"auditkit/domain/guidance"
)

// GuidanceRepository persists the learning-hub entries.
type GuidanceRepository interface {
	// LoadGuidance returns the persisted entries, or (nil, nil) when none
	// have been saved yet.
	LoadGuidance(ctx context.Context) (guidance.List, error)

	// SaveGuidance overwrites the persisted entries.
	SaveGuidance(ctx context.Context, entries guidance.List) error
}
