package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusware/university-api/internal/models"
)

// AdminRepository manages persistence for administrator accounts.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository constructs an AdminRepository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByEmail fetches an administrator by email.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Administrator, error) {
	const query = `SELECT id, first_name, last_name, email, password_hash, created_at, updated_at
        FROM administrators WHERE email = $1`
	var admin models.Administrator
	if err := r.db.GetContext(ctx, &admin, query, email); err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindByID fetches an administrator by ID.
func (r *AdminRepository) FindByID(ctx context.Context, id string) (*models.Administrator, error) {
	const query = `SELECT id, first_name, last_name, email, password_hash, created_at, updated_at
        FROM administrators WHERE id = $1`
	var admin models.Administrator
	if err := r.db.GetContext(ctx, &admin, query, id); err != nil {
		return nil, err
	}
	return &admin, nil
}

// ExistsByID checks that an administrator row exists.
func (r *AdminRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM administrators WHERE id = $1 LIMIT 1", id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check administrator: %w", err)
	}
	return true, nil
}

// ExistsByEmail checks whether an administrator with the email exists.
func (r *AdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM administrators WHERE email = $1 LIMIT 1", email); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check administrator email: %w", err)
	}
	return true, nil
}

// Create inserts a new administrator row.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Administrator) error {
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = now
	}
	admin.UpdatedAt = now
	const query = `INSERT INTO administrators (id, first_name, last_name, email, password_hash, created_at, updated_at)
        VALUES (:id, :first_name, :last_name, :email, :password_hash, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, admin); err != nil {
		return fmt.Errorf("create administrator: %w", err)
	}
	return nil
}
