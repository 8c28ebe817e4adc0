package memory

import (
	"context"
	"sync"

	"globetrotter-service/internal/domain"
)

// InvitationDirectory keeps invitations in a process-local map. Stands in for
// the backend directory when postgres is not configured.
type InvitationDirectory struct {
	mu      sync.RWMutex
	invites map[string]domain.Invitation
}

func NewInvitationDirectory() *InvitationDirectory {
	return &InvitationDirectory{invites: make(map[string]domain.Invitation)}
}

func (d *InvitationDirectory) CreateInvitation(_ context.Context, inv domain.Invitation) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.invites[inv.ID] = inv
	return nil
}

func (d *InvitationDirectory) GetInvitation(_ context.Context, id string) (domain.Invitation, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	inv, ok := d.invites[id]
	if !ok {
		return domain.Invitation{}, domain.ErrInvitationNotFound
	}
	return inv, nil
}
