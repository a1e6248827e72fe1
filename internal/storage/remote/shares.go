package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sakelabeler/sakelabeler/internal/models"
	"github.com/sakelabeler/sakelabeler/internal/storage"
)

// shareRow is a directed "owner invites invitee" edge.
type shareRow struct {
	ID        string    `gorm:"column:id;primaryKey"`
	OwnerID   string    `gorm:"column:owner_id"`
	InviteeID string    `gorm:"column:invitee_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (shareRow) TableName() string { return "db_shares" }

// Invite creates a share with the caller as owner, granting inviteeID
// read/write access to the caller's records.
// Returns storage.ErrSelfShare for the caller's own id (rejected before any
// remote call) and storage.ErrAlreadyShared for a duplicate pair.
func (s *Store) Invite(ctx context.Context, inviteeID string) (*models.Share, error) {
	uid, err := s.identity.UserID(ctx)
	if err != nil {
		return nil, err
	}
	if inviteeID == uid {
		return nil, storage.ErrSelfShare
	}

	row := shareRow{
		ID:        uuid.NewString(),
		OwnerID:   uid,
		InviteeID: inviteeID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, storage.ErrAlreadyShared
		}
		return nil, fmt.Errorf("failed to create share: %w", err)
	}

	return shareFromRow(row), nil
}

// SharesOwned returns the shares the caller has handed out, newest first.
func (s *Store) SharesOwned(ctx context.Context) ([]models.Share, error) {
	uid, err := s.identity.UserID(ctx)
	if err != nil {
		return nil, err
	}
	return s.listShares(ctx, "owner_id = ?", uid)
}

// SharesReceived returns the shares where the caller is the invitee,
// newest first.
func (s *Store) SharesReceived(ctx context.Context) ([]models.Share, error) {
	uid, err := s.identity.UserID(ctx)
	if err != nil {
		return nil, err
	}
	return s.listShares(ctx, "invitee_id = ?", uid)
}

// Revoke deletes a share the caller handed out.
func (s *Store) Revoke(ctx context.Context, shareID string) error {
	return s.deleteShare(ctx, shareID)
}

// Leave deletes a share the caller received. Operationally identical to
// Revoke; the distinction is caller intent only.
func (s *Store) Leave(ctx context.Context, shareID string) error {
	return s.deleteShare(ctx, shareID)
}

func (s *Store) deleteShare(ctx context.Context, shareID string) error {
	if _, err := s.identity.UserID(ctx); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Where("id = ?", shareID).Delete(&shareRow{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete share: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrShareNotFound
	}
	return nil
}

func (s *Store) listShares(ctx context.Context, cond string, arg any) ([]models.Share, error) {
	var rows []shareRow
	if err := s.db.WithContext(ctx).
		Where(cond, arg).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query shares: %w", err)
	}

	shares := make([]models.Share, 0, len(rows))
	for _, row := range rows {
		shares = append(shares, *shareFromRow(row))
	}
	return shares, nil
}

func shareFromRow(row shareRow) *models.Share {
	return &models.Share{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		InviteeID: row.InviteeID,
		CreatedAt: row.CreatedAt,
	}
}
