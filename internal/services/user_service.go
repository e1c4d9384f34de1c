package services

import (
	"context"

	"social-service/internal/models"
	"social-service/internal/repositories"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type UserService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// SearchUsers returns a page of users matching the query, minus anyone who
// has blocked the requester.
func (s *UserService) SearchUsers(ctx context.Context, query string, requesterID int64, page, pageSize int) ([]models.User, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	offset := (page - 1) * pageSize
	return s.users.Search(ctx, query, requesterID, pageSize, offset)
}
