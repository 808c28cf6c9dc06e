package app

import (
	"context"

	"auditkit/domain/checklist"
	"auditkit/domain/core"
	"auditkit/ports"
)

// SyncService moves the checklist document between the local state and a
// remote content host. Pulled documents pass the same structural validation
// as file imports before they are allowed to replace anything, and a sync
// failure of any kind leaves local state untouched.
type SyncService struct {
	remote ports.RemoteSyncPort
	audit  *AuditService
}

// NewSyncService creates the sync orchestrator.
func NewSyncService(remote ports.RemoteSyncPort, audit *AuditService) *SyncService {
	return &SyncService{remote: remote, audit: audit}
}

// Push exports the current collection and uploads it.
func (s *SyncService) Push(ctx context.Context, loc ports.RemoteLocation) error {
	payload, err := s.audit.Export()
	if err != nil {
		return core.NewSyncError("push", err)
	}
	return s.remote.Push(ctx, loc, payload)
}

// Pull fetches the remote document, validates it, and on explicit
// confirmation replaces the local collection wholesale.
func (s *SyncService) Pull(ctx context.Context, loc ports.RemoteLocation, confirmed bool) error {
	payload, err := s.remote.Pull(ctx, loc)
	if err != nil {
		return err
	}

	raw, err := checklist.ParseImport(payload)
	if err != nil {
		return err
	}
	if !confirmed {
		return core.ErrNotConfirmed
	}

	return s.audit.ImportRaw(ctx, raw)
}
