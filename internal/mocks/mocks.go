package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"social-service/internal/cache"
	"social-service/internal/models"
	"social-service/internal/rabbitmq"
	"social-service/internal/repositories"
)

// MockFriendRepository mocks FriendRepository behavior for services and handlers.
type MockFriendRepository struct {
	mock.Mock
}

func (m *MockFriendRepository) CreateRequest(ctx context.Context, senderID, receiverID int64) (*models.FriendRequest, error) {
	args := m.Called(ctx, senderID, receiverID)
	var req *models.FriendRequest
	if val := args.Get(0); val != nil {
		req = val.(*models.FriendRequest)
	}
	return req, args.Error(1)
}

func (m *MockFriendRepository) TransitionRequest(ctx context.Context, requestID, actingUserID int64, action string) (*models.FriendRequest, error) {
	args := m.Called(ctx, requestID, actingUserID, action)
	var req *models.FriendRequest
	if val := args.Get(0); val != nil {
		req = val.(*models.FriendRequest)
	}
	return req, args.Error(1)
}

func (m *MockFriendRepository) ListPendingRequests(ctx context.Context, receiverID int64, orderBySentAt bool) ([]models.FriendRequest, error) {
	args := m.Called(ctx, receiverID, orderBySentAt)
	var reqs []models.FriendRequest
	if val := args.Get(0); val != nil {
		reqs = val.([]models.FriendRequest)
	}
	return reqs, args.Error(1)
}

func (m *MockFriendRepository) ListFriends(ctx context.Context, userID int64) ([]models.User, error) {
	args := m.Called(ctx, userID)
	var friends []models.User
	if val := args.Get(0); val != nil {
		friends = val.([]models.User)
	}
	return friends, args.Error(1)
}

// MockUserRepository mocks UserRepository behavior.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) Search(ctx context.Context, query string, requesterID int64, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, query, requesterID, limit, offset)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

// MockBlockRepository mocks BlockRepository behavior.
type MockBlockRepository struct {
	mock.Mock
}

func (m *MockBlockRepository) Create(ctx context.Context, blockerID, blockedID int64) (*models.BlockEntry, error) {
	args := m.Called(ctx, blockerID, blockedID)
	var entry *models.BlockEntry
	if val := args.Get(0); val != nil {
		entry = val.(*models.BlockEntry)
	}
	return entry, args.Error(1)
}

func (m *MockBlockRepository) Delete(ctx context.Context, blockerID, blockedID int64) error {
	args := m.Called(ctx, blockerID, blockedID)
	return args.Error(0)
}

func (m *MockBlockRepository) IsBlocked(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	args := m.Called(ctx, blockerID, blockedID)
	return args.Bool(0), args.Error(1)
}

// MockCache mocks the cache capability.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	callArgs := make([]interface{}, 0, len(keys)+1)
	callArgs = append(callArgs, ctx)
	for _, key := range keys {
		callArgs = append(callArgs, key)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

// MockPublisher mocks RabbitMQ publisher behavior.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	args := m.Called(ctx, routingKey, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// Compile-time assertions
var _ repositories.FriendRepository = (*MockFriendRepository)(nil)
var _ repositories.UserRepository = (*MockUserRepository)(nil)
var _ repositories.BlockRepository = (*MockBlockRepository)(nil)
var _ cache.Cache = (*MockCache)(nil)
var _ rabbitmq.Publisher = (*MockPublisher)(nil)
