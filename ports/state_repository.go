package ports

import (
	"context"

	"auditkit/domain/checklist"
	"auditkit/domain/scoring"
)

// StateRepository persists the raw audit state between sessions. The raw
// shape is the only thing that crosses this boundary: hydration happens on
// the way in, dehydration on the way out.
type StateRepository interface {
	// LoadCollection returns the persisted raw categories, or (nil, nil)
	// when no state has been saved yet.
	LoadCollection(ctx context.Context) ([]checklist.RawCategory, error)

	// SaveCollection overwrites the persisted raw categories.
	SaveCollection(ctx context.Context, raw []checklist.RawCategory) error

	// LoadBaseline returns the stored baseline snapshot, or (nil, nil)
	// when none has been taken.
	LoadBaseline(ctx context.Context) (*scoring.Baseline, error)

	// SaveBaseline overwrites the stored baseline snapshot.
	SaveBaseline(ctx context.Context, baseline scoring.Baseline) error
}
