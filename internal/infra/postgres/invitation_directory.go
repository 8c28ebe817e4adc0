package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"globetrotter-service/internal/domain"
)

// InvitationDirectory stores challenge invitations in Postgres.
type InvitationDirectory struct {
	pool *pgxpool.Pool
}

func NewInvitationDirectory(pool *pgxpool.Pool) *InvitationDirectory {
	return &InvitationDirectory{pool: pool}
}

func (d *InvitationDirectory) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := d.pool.Exec(ctx,
		`INSERT INTO invitations (id, inviter_id, inviter_name, score, created_at) VALUES ($1, $2, $3, $4, $5)`,
		inv.ID, inv.InviterID, inv.InviterName, inv.Score, inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("create invitation: %w", err)
	}
	return nil
}

func (d *InvitationDirectory) GetInvitation(ctx context.Context, id string) (domain.Invitation, error) {
	var inv domain.Invitation
	err := d.pool.QueryRow(ctx,
		`SELECT id, inviter_id, inviter_name, score, created_at FROM invitations WHERE id=$1`, id).
		Scan(&inv.ID, &inv.InviterID, &inv.InviterName, &inv.Score, &inv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Invitation{}, domain.ErrInvitationNotFound
	}
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("get invitation: %w", err)
	}
	return inv, nil
}
