package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"social-service/internal/apperrors"
	"social-service/internal/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Search(ctx context.Context, query string, requesterID int64, limit, offset int) ([]models.User, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
SELECT id, username, email, first_name, last_name, role FROM users WHERE id=$1
`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// likeEscaper neutralizes LIKE metacharacters so a query is always matched
// as a literal substring. Relies on the default ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func substringPattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}

// Search matches the query against the email exactly (case insensitive) or
// as a substring of the first name, last name or username. Users who have
// blocked the requester are hidden from the result.
func (r *userRepository) Search(ctx context.Context, query string, requesterID int64, limit, offset int) ([]models.User, error) {
	users := []models.User{}
	err := r.db.SelectContext(ctx, &users, `
SELECT u.id, u.username, u.email, u.first_name, u.last_name, u.role
FROM users u
WHERE (LOWER(u.email) = LOWER($1)
	OR u.first_name ILIKE $2
	OR u.last_name ILIKE $2
	OR u.username ILIKE $2)
AND NOT EXISTS (
	SELECT 1 FROM block_list b WHERE b.blocker_id = u.id AND b.blocked_id = $3
)
ORDER BY u.id
LIMIT $4 OFFSET $5
`, query, substringPattern(query), requesterID, limit, offset)
	return users, err
}
