package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"social-service/internal/apperrors"
	"social-service/internal/models"
)

const (
	rateLimitWindow = time.Minute
	rateLimitMax    = 3
)

const friendRequestColumns = `id, sender_id, receiver_id, status, sent_at, updated_at`

type FriendRepository interface {
	CreateRequest(ctx context.Context, senderID, receiverID int64) (*models.FriendRequest, error)
	TransitionRequest(ctx context.Context, requestID, actingUserID int64, action string) (*models.FriendRequest, error)
	ListPendingRequests(ctx context.Context, receiverID int64, orderBySentAt bool) ([]models.FriendRequest, error)
	ListFriends(ctx context.Context, userID int64) ([]models.User, error)
}

type friendRepository struct {
	db       *sqlx.DB
	cooldown time.Duration
}

func NewFriendRepository(db *sqlx.DB, cooldown time.Duration) FriendRepository {
	return &friendRepository{db: db, cooldown: cooldown}
}

// CreateRequest runs the whole check-then-insert sequence for the ordered
// (sender, receiver) pair in one transaction. Existing pair rows are locked
// so concurrent creators for the same pair serialize; for the empty pair the
// unique constraint on (sender_id, receiver_id) is the final arbiter.
func (r *friendRepository) CreateRequest(ctx context.Context, senderID, receiverID int64) (*models.FriendRequest, error) {
	var created models.FriendRequest
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var blockedByReceiver bool
		if err := tx.GetContext(ctx, &blockedByReceiver, `
SELECT EXISTS(SELECT 1 FROM block_list WHERE blocker_id=$1 AND blocked_id=$2)
`, receiverID, senderID); err != nil {
			return err
		}
		if blockedByReceiver {
			return apperrors.Forbidden("You cannot send a friend request to this user")
		}

		var blockedBySender bool
		if err := tx.GetContext(ctx, &blockedBySender, `
SELECT EXISTS(SELECT 1 FROM block_list WHERE blocker_id=$1 AND blocked_id=$2)
`, senderID, receiverID); err != nil {
			return err
		}
		if blockedBySender {
			return apperrors.Forbidden("You have blocked this user")
		}

		var pair []models.FriendRequest
		if err := tx.SelectContext(ctx, &pair, `
SELECT `+friendRequestColumns+`
FROM friend_requests
WHERE (sender_id=$1 AND receiver_id=$2) OR (sender_id=$2 AND receiver_id=$1)
FOR UPDATE
`, senderID, receiverID); err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, req := range pair {
			switch req.Status {
			case models.StatusPending:
				if req.SenderID == senderID {
					return apperrors.Conflict("You have already sent a friend request to this user")
				}
				return apperrors.Conflict("You already have a pending friend request from this user")
			case models.StatusAccepted:
				return apperrors.Conflict("You are already friends with this user")
			case models.StatusRejected:
				if now.Sub(req.UpdatedAt) < r.cooldown {
					return apperrors.RateLimited("You cannot send another friend request to this user yet")
				}
				// Stale rejection: reopen the pair before inserting.
				if _, err := tx.ExecContext(ctx, `DELETE FROM friend_requests WHERE id=$1`, req.ID); err != nil {
					return err
				}
			}
		}

		var recent int
		if err := tx.GetContext(ctx, &recent, `
SELECT COUNT(*) FROM friend_requests WHERE sender_id=$1 AND sent_at >= $2
`, senderID, now.Add(-rateLimitWindow)); err != nil {
			return err
		}
		if recent >= rateLimitMax {
			return apperrors.RateLimited("You can send a maximum of 3 friend requests per minute.")
		}

		err := tx.QueryRowxContext(ctx, `
INSERT INTO friend_requests (sender_id, receiver_id, status)
VALUES ($1, $2, 'pending')
RETURNING `+friendRequestColumns+`
`, senderID, receiverID).StructScan(&created)
		if isUniqueViolation(err) {
			return apperrors.Conflict("You have already sent a friend request to this user")
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// TransitionRequest moves a pending request to accepted or rejected on
// behalf of its receiver, atomically from read to write.
func (r *friendRepository) TransitionRequest(ctx context.Context, requestID, actingUserID int64, action string) (*models.FriendRequest, error) {
	var updated models.FriendRequest
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var req models.FriendRequest
		if err := tx.GetContext(ctx, &req, `
SELECT `+friendRequestColumns+` FROM friend_requests WHERE id=$1 FOR UPDATE
`, requestID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("Friend request not found")
			}
			return err
		}
		if req.ReceiverID != actingUserID {
			return apperrors.Forbidden("You are not authorized to perform this action.")
		}
		if req.Status != models.StatusPending {
			return apperrors.Conflict("Friend request status is already " + req.Status)
		}
		if action != models.StatusAccepted && action != models.StatusRejected {
			return apperrors.InvalidArgument("Invalid action update.")
		}

		return tx.QueryRowxContext(ctx, `
UPDATE friend_requests SET status=$2, updated_at=NOW()
WHERE id=$1
RETURNING `+friendRequestColumns+`
`, requestID, action).StructScan(&updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *friendRepository) ListPendingRequests(ctx context.Context, receiverID int64, orderBySentAt bool) ([]models.FriendRequest, error) {
	order := "id"
	if orderBySentAt {
		order = "sent_at"
	}
	reqs := []models.FriendRequest{}
	err := r.db.SelectContext(ctx, &reqs, `
SELECT `+friendRequestColumns+`
FROM friend_requests
WHERE receiver_id=$1 AND status='pending'
ORDER BY `+order+`
`, receiverID)
	return reqs, err
}

// ListFriends reads accepted relationships from both directions.
func (r *friendRepository) ListFriends(ctx context.Context, userID int64) ([]models.User, error) {
	friends := []models.User{}
	err := r.db.SelectContext(ctx, &friends, `
SELECT DISTINCT u.id, u.username, u.email, u.first_name, u.last_name, u.role
FROM users u
JOIN friend_requests fr ON fr.status='accepted'
	AND ((fr.sender_id=$1 AND fr.receiver_id=u.id) OR (fr.receiver_id=$1 AND fr.sender_id=u.id))
ORDER BY u.id
`, userID)
	return friends, err
}

func (r *friendRepository) withTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
