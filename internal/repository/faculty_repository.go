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

// FacultyRepository manages persistence for faculties.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository constructs a FacultyRepository.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

// List returns the faculties of an administrator matching the filter. An empty
// result is a valid outcome, never an error.
func (r *FacultyRepository) List(ctx context.Context, filter models.FacultyFilter) ([]models.Faculty, error) {
	conditions := []string{"admin_id = $1"}
	args := []interface{}{filter.AdminID}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(faculty_name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	order := "ASC"
	if models.NormalizeSort(filter.Sort) == models.SortDesc {
		order = "DESC"
	}

	query := fmt.Sprintf(`SELECT id, faculty_name, admin_id, created_at, updated_at
        FROM faculties WHERE %s ORDER BY faculty_name %s, created_at ASC, id ASC`,
		strings.Join(conditions, " AND "), order)

	faculties := []models.Faculty{}
	if err := r.db.SelectContext(ctx, &faculties, query, args...); err != nil {
		return nil, fmt.Errorf("list faculties: %w", err)
	}
	return faculties, nil
}

// ExistsByID checks that a faculty row exists.
func (r *FacultyRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM faculties WHERE id = $1 LIMIT 1", id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check faculty: %w", err)
	}
	return true, nil
}

// Create inserts a new faculty row.
func (r *FacultyRepository) Create(ctx context.Context, faculty *models.Faculty) error {
	if faculty.ID == "" {
		faculty.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if faculty.CreatedAt.IsZero() {
		faculty.CreatedAt = now
	}
	faculty.UpdatedAt = now
	const query = `INSERT INTO faculties (id, faculty_name, admin_id, created_at, updated_at)
        VALUES (:id, :faculty_name, :admin_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, faculty); err != nil {
		return fmt.Errorf("create faculty: %w", err)
	}
	return nil
}
