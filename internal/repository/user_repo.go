package repository

import (
	"context"
	"database/sql"

	"github.com/editorial-cms-api/internal/database"
	"github.com/editorial-cms-api/internal/models"
	"github.com/google/uuid"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// GetByID retrieves a user by ID. Malformed ids cannot match the UUID
// column and are treated as not-found without touching the database.
func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.getOne(ctx, "SELECT id, email, name, role, token, active, created_at, updated_at FROM users WHERE id = $1", id)
}

// GetByToken retrieves a user by API token
func (r *userRepo) GetByToken(ctx context.Context, token string) (*models.User, error) {
	return r.getOne(ctx, "SELECT id, email, name, role, token, active, created_at, updated_at FROM users WHERE token = $1", token)
}

func (r *userRepo) getOne(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.Name, &user.Role, &user.Token,
		&user.Active, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
