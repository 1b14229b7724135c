package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusware/university-api/internal/models"
)

// MajorRepository manages persistence for majors.
type MajorRepository struct {
	db *sqlx.DB
}

// NewMajorRepository constructs a MajorRepository.
func NewMajorRepository(db *sqlx.DB) *MajorRepository {
	return &MajorRepository{db: db}
}

// List returns the majors of a department matching the filter.
func (r *MajorRepository) List(ctx context.Context, filter models.MajorFilter) ([]models.Major, error) {
	conditions := []string{"department_id = $1"}
	args := []interface{}{filter.DepartmentID}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(major_name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	order := "ASC"
	if models.NormalizeSort(filter.Sort) == models.SortDesc {
		order = "DESC"
	}

	query := fmt.Sprintf(`SELECT id, major_name, description, department_id, created_at, updated_at
        FROM majors WHERE %s ORDER BY major_name %s, created_at ASC, id ASC`,
		strings.Join(conditions, " AND "), order)

	majors := []models.Major{}
	if err := r.db.SelectContext(ctx, &majors, query, args...); err != nil {
		return nil, fmt.Errorf("list majors: %w", err)
	}
	return majors, nil
}

// ExistsByID checks that a major row exists.
func (r *MajorRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM majors WHERE id = $1 LIMIT 1", id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check major: %w", err)
	}
	return true, nil
}

// Create inserts a new major row.
func (r *MajorRepository) Create(ctx context.Context, major *models.Major) error {
	if major.ID == "" {
		major.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if major.CreatedAt.IsZero() {
		major.CreatedAt = now
	}
	major.UpdatedAt = now
	const query = `INSERT INTO majors (id, major_name, description, department_id, created_at, updated_at)
        VALUES (:id, :major_name, :description, :department_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, major); err != nil {
		return fmt.Errorf("create major: %w", err)
	}
	return nil
}
