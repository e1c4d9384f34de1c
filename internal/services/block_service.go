package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"social-service/internal/apperrors"
	"social-service/internal/models"
	"social-service/internal/repositories"
)

// BlockService manages the directional block list. Unexpected store failures
// on these paths are logged and surfaced as a generic internal error with
// the detail suppressed from the caller.
type BlockService struct {
	blocks repositories.BlockRepository
	users  repositories.UserRepository
	log    *zap.Logger
}

func NewBlockService(blocks repositories.BlockRepository, users repositories.UserRepository, log *zap.Logger) *BlockService {
	return &BlockService{blocks: blocks, users: users, log: log}
}

func (s *BlockService) Block(ctx context.Context, blockerID, blockedID int64) (*models.BlockEntry, error) {
	if blockerID == blockedID {
		return nil, apperrors.InvalidArgument("You cannot block yourself")
	}
	if _, err := s.users.GetByID(ctx, blockedID); err != nil {
		return nil, s.wrapStoreErr("block target lookup", err)
	}

	entry, err := s.blocks.Create(ctx, blockerID, blockedID)
	if err != nil {
		return nil, s.wrapStoreErr("block", err)
	}

	s.log.Info("user blocked",
		zap.Int64("blocker_id", blockerID),
		zap.Int64("blocked_id", blockedID),
	)
	return entry, nil
}

func (s *BlockService) Unblock(ctx context.Context, blockerID, blockedID int64) error {
	if blockerID == blockedID {
		return apperrors.InvalidArgument("You cannot block yourself")
	}
	if _, err := s.users.GetByID(ctx, blockedID); err != nil {
		return s.wrapStoreErr("unblock target lookup", err)
	}

	if err := s.blocks.Delete(ctx, blockerID, blockedID); err != nil {
		return s.wrapStoreErr("unblock", err)
	}

	s.log.Info("user unblocked",
		zap.Int64("blocker_id", blockerID),
		zap.Int64("blocked_id", blockedID),
	)
	return nil
}

// IsBlocked checks one direction only; callers wanting mutual exclusion
// check both orderings explicitly.
func (s *BlockService) IsBlocked(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	return s.blocks.IsBlocked(ctx, blockerID, blockedID)
}

func (s *BlockService) wrapStoreErr(op string, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Kind != apperrors.KindInternal {
		return err
	}
	s.log.Error(op+" failed", zap.Error(err))
	return apperrors.Internal("internal server error", err)
}
