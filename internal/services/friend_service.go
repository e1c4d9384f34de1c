package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"social-service/internal/apperrors"
	"social-service/internal/cache"
	"social-service/internal/models"
	"social-service/internal/observability"
	"social-service/internal/rabbitmq"
	"social-service/internal/repositories"
)

// FriendService drives the friend-request lifecycle and keeps the cached
// friend lists coherent with it. Cache invalidation happens synchronously
// after every successful mutation; cache failures are logged and swallowed
// because the store stays authoritative.
type FriendService struct {
	friends  repositories.FriendRepository
	users    repositories.UserRepository
	cache    cache.Cache
	cacheTTL time.Duration
	events   rabbitmq.Publisher
	log      *zap.Logger
}

func NewFriendService(friends repositories.FriendRepository, users repositories.UserRepository, c cache.Cache, cacheTTL time.Duration, events rabbitmq.Publisher, log *zap.Logger) *FriendService {
	return &FriendService{
		friends:  friends,
		users:    users,
		cache:    c,
		cacheTTL: cacheTTL,
		events:   events,
		log:      log,
	}
}

func (s *FriendService) SendRequest(ctx context.Context, senderID, receiverID int64) (*models.FriendRequest, error) {
	if senderID == receiverID {
		return nil, apperrors.InvalidArgument("You cannot send a friend request to yourself")
	}
	if _, err := s.users.GetByID(ctx, receiverID); err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.NotFound("Receiver not found")
		}
		return nil, err
	}

	req, err := s.friends.CreateRequest(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}

	s.invalidateFriendLists(ctx, senderID, receiverID)
	s.publish(ctx, "friend.request.created", map[string]any{
		"request_id":  req.ID,
		"sender_id":   req.SenderID,
		"receiver_id": req.ReceiverID,
		"sent_at":     req.SentAt,
	})
	s.log.Info("friend request created",
		zap.Int64("request_id", req.ID),
		zap.Int64("sender_id", senderID),
		zap.Int64("receiver_id", receiverID),
	)
	return req, nil
}

func (s *FriendService) Transition(ctx context.Context, requestID, actingUserID int64, action string) (*models.FriendRequest, error) {
	req, err := s.friends.TransitionRequest(ctx, requestID, actingUserID, action)
	if err != nil {
		return nil, err
	}

	// Reject cannot change friend-list membership, but both entries are
	// dropped anyway for behavioral parity with create/accept.
	s.invalidateFriendLists(ctx, req.SenderID, req.ReceiverID)
	if req.Status == models.StatusAccepted {
		s.publish(ctx, "friendship.created", map[string]any{
			"user_id":     req.SenderID,
			"friend_id":   req.ReceiverID,
			"accepted_at": req.UpdatedAt,
		})
	}
	s.log.Info("friend request updated",
		zap.Int64("request_id", req.ID),
		zap.String("status", req.Status),
		zap.Int64("by_user_id", actingUserID),
	)
	return req, nil
}

// ListFriends is the read-through path: cache hit wins, miss falls back to
// the store and repopulates with the configured TTL.
func (s *FriendService) ListFriends(ctx context.Context, userID int64) ([]models.User, error) {
	key := cache.FriendListKey(userID)
	raw, err := s.cache.Get(ctx, key)
	if err == nil {
		var friends []models.User
		if jsonErr := json.Unmarshal([]byte(raw), &friends); jsonErr == nil {
			observability.IncCacheLookup("hit")
			return friends, nil
		}
		s.log.Warn("dropping undecodable friend list cache entry", zap.String("key", key))
		observability.IncCacheLookup("miss")
	} else if errors.Is(err, cache.ErrMiss) {
		observability.IncCacheLookup("miss")
	} else {
		observability.IncCacheLookup("error")
		s.log.Warn("friend list cache read failed", zap.String("key", key), zap.Error(err))
	}

	friends, err := s.friends.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}

	if encoded, jsonErr := json.Marshal(friends); jsonErr == nil {
		if setErr := s.cache.Set(ctx, key, string(encoded), s.cacheTTL); setErr != nil {
			s.log.Warn("friend list cache write failed", zap.String("key", key), zap.Error(setErr))
		}
	}
	return friends, nil
}

func (s *FriendService) ListPendingRequests(ctx context.Context, receiverID int64, orderBySentAt bool) ([]models.FriendRequest, error) {
	return s.friends.ListPendingRequests(ctx, receiverID, orderBySentAt)
}

func (s *FriendService) invalidateFriendLists(ctx context.Context, senderID, receiverID int64) {
	err := s.cache.Delete(ctx, cache.FriendListKey(senderID), cache.FriendListKey(receiverID))
	if err != nil {
		s.log.Warn("friend list cache invalidation failed",
			zap.Int64("sender_id", senderID),
			zap.Int64("receiver_id", receiverID),
			zap.Error(err),
		)
	}
}

func (s *FriendService) publish(ctx context.Context, routingKey string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, routingKey, payload); err != nil {
		observability.IncAMQPPublishError()
		s.log.Warn("failed to publish event", zap.String("routing_key", routingKey), zap.Error(err))
	}
}
