package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"social-service/internal/apperrors"
	"social-service/internal/models"
)

type BlockRepository interface {
	Create(ctx context.Context, blockerID, blockedID int64) (*models.BlockEntry, error)
	Delete(ctx context.Context, blockerID, blockedID int64) error
	IsBlocked(ctx context.Context, blockerID, blockedID int64) (bool, error)
}

type blockRepository struct {
	db *sqlx.DB
}

func NewBlockRepository(db *sqlx.DB) BlockRepository {
	return &blockRepository{db: db}
}

// Create inserts the directional block row. ON CONFLICT DO NOTHING keeps the
// get-or-create atomic in a single statement; no returned row means the pair
// was already blocked.
func (r *blockRepository) Create(ctx context.Context, blockerID, blockedID int64) (*models.BlockEntry, error) {
	var entry models.BlockEntry
	err := r.db.QueryRowxContext(ctx, `
INSERT INTO block_list (blocker_id, blocked_id)
VALUES ($1, $2)
ON CONFLICT (blocker_id, blocked_id) DO NOTHING
RETURNING id, blocker_id, blocked_id, created_at
`, blockerID, blockedID).StructScan(&entry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Conflict("You have already blocked this user")
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *blockRepository) Delete(ctx context.Context, blockerID, blockedID int64) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM block_list WHERE blocker_id=$1 AND blocked_id=$2
`, blockerID, blockedID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return apperrors.Conflict("You have not blocked this user")
	}
	return nil
}

func (r *blockRepository) IsBlocked(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
SELECT EXISTS(SELECT 1 FROM block_list WHERE blocker_id=$1 AND blocked_id=$2)
`, blockerID, blockedID)
	return exists, err
}
