package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"social-service/internal/apperrors"
	"social-service/internal/mocks"
	"social-service/internal/models"
)

func TestBlock_Self(t *testing.T) {
	svc := NewBlockService(new(mocks.MockBlockRepository), new(mocks.MockUserRepository), zap.NewNop())

	_, err := svc.Block(context.Background(), 1, 1)
	require.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
	require.Equal(t, "You cannot block yourself", apperrors.MessageOf(err))
}

func TestBlock_TargetNotFound(t *testing.T) {
	users := new(mocks.MockUserRepository)
	users.On("GetByID", mock.Anything, int64(2)).Return(nil, apperrors.NotFound("User not found"))

	svc := NewBlockService(new(mocks.MockBlockRepository), users, zap.NewNop())

	_, err := svc.Block(context.Background(), 1, 2)
	require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestBlock_Success(t *testing.T) {
	blocks := new(mocks.MockBlockRepository)
	users := new(mocks.MockUserRepository)

	users.On("GetByID", mock.Anything, int64(2)).Return(&models.User{ID: 2}, nil)
	blocks.On("Create", mock.Anything, int64(1), int64(2)).Return(&models.BlockEntry{ID: 5, BlockerID: 1, BlockedID: 2}, nil)

	svc := NewBlockService(blocks, users, zap.NewNop())

	entry, err := svc.Block(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(5), entry.ID)
	blocks.AssertExpectations(t)
}

func TestBlock_AlreadyBlockedPassesThrough(t *testing.T) {
	blocks := new(mocks.MockBlockRepository)
	users := new(mocks.MockUserRepository)

	users.On("GetByID", mock.Anything, int64(2)).Return(&models.User{ID: 2}, nil)
	blocks.On("Create", mock.Anything, int64(1), int64(2)).
		Return(nil, apperrors.Conflict("You have already blocked this user"))

	svc := NewBlockService(blocks, users, zap.NewNop())

	_, err := svc.Block(context.Background(), 1, 2)
	require.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	require.Equal(t, "You have already blocked this user", apperrors.MessageOf(err))
}

func TestBlock_UnexpectedErrorSuppressed(t *testing.T) {
	blocks := new(mocks.MockBlockRepository)
	users := new(mocks.MockUserRepository)

	users.On("GetByID", mock.Anything, int64(2)).Return(&models.User{ID: 2}, nil)
	blocks.On("Create", mock.Anything, int64(1), int64(2)).Return(nil, errors.New("pq: connection reset"))

	svc := NewBlockService(blocks, users, zap.NewNop())

	_, err := svc.Block(context.Background(), 1, 2)
	require.True(t, apperrors.IsKind(err, apperrors.KindInternal))
	require.Equal(t, "internal server error", apperrors.MessageOf(err))
}

func TestUnblock_NotBlocked(t *testing.T) {
	blocks := new(mocks.MockBlockRepository)
	users := new(mocks.MockUserRepository)

	users.On("GetByID", mock.Anything, int64(2)).Return(&models.User{ID: 2}, nil)
	blocks.On("Delete", mock.Anything, int64(1), int64(2)).
		Return(apperrors.Conflict("You have not blocked this user"))

	svc := NewBlockService(blocks, users, zap.NewNop())

	err := svc.Unblock(context.Background(), 1, 2)
	require.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	require.Equal(t, "You have not blocked this user", apperrors.MessageOf(err))
}

func TestUnblock_Success(t *testing.T) {
	blocks := new(mocks.MockBlockRepository)
	users := new(mocks.MockUserRepository)

	users.On("GetByID", mock.Anything, int64(2)).Return(&models.User{ID: 2}, nil)
	blocks.On("Delete", mock.Anything, int64(1), int64(2)).Return(nil)

	svc := NewBlockService(blocks, users, zap.NewNop())

	require.NoError(t, svc.Unblock(context.Background(), 1, 2))
	blocks.AssertExpectations(t)
}

func TestSearchUsers_ClampsPagination(t *testing.T) {
	users := new(mocks.MockUserRepository)
	svc := NewUserService(users)

	// page and page_size below range fall back to defaults.
	users.On("Search", mock.Anything, "ann", int64(7), 20, 0).Return([]models.User{}, nil).Once()
	_, err := svc.SearchUsers(context.Background(), "ann", 7, 0, 0)
	require.NoError(t, err)

	// oversized page_size is capped; offset reflects the capped size.
	users.On("Search", mock.Anything, "ann", int64(7), 100, 200).Return([]models.User{}, nil).Once()
	_, err = svc.SearchUsers(context.Background(), "ann", 7, 3, 500)
	require.NoError(t, err)

	users.AssertExpectations(t)
}
