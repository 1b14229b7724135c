package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/campusware/university-api/internal/models"
)

// DepartmentRepository manages persistence for departments, including the
// subtree cascade that removes majors, courses and instructors with them.
type DepartmentRepository struct {
	db *sqlx.DB
}

// NewDepartmentRepository constructs a DepartmentRepository.
func NewDepartmentRepository(db *sqlx.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// List returns the departments of a faculty matching the filter.
func (r *DepartmentRepository) List(ctx context.Context, filter models.DepartmentFilter) ([]models.Department, error) {
	conditions := []string{"faculty_id = $1"}
	args := []interface{}{filter.FacultyID}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(department_name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	order := "ASC"
	if models.NormalizeSort(filter.Sort) == models.SortDesc {
		order = "DESC"
	}

	query := fmt.Sprintf(`SELECT id, department_name, faculty_id, created_at, updated_at
        FROM departments WHERE %s ORDER BY department_name %s, created_at ASC, id ASC`,
		strings.Join(conditions, " AND "), order)

	departments := []models.Department{}
	if err := r.db.SelectContext(ctx, &departments, query, args...); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return departments, nil
}

// FindByID fetches a department by ID.
func (r *DepartmentRepository) FindByID(ctx context.Context, id string) (*models.Department, error) {
	const query = `SELECT id, department_name, faculty_id, created_at, updated_at
        FROM departments WHERE id = $1`
	var department models.Department
	if err := r.db.GetContext(ctx, &department, query, id); err != nil {
		return nil, err
	}
	return &department, nil
}

// ExistsByID checks that a department row exists.
func (r *DepartmentRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM departments WHERE id = $1 LIMIT 1", id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check department: %w", err)
	}
	return true, nil
}

// Create inserts a new department row.
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	if department.ID == "" {
		department.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if department.CreatedAt.IsZero() {
		department.CreatedAt = now
	}
	department.UpdatedAt = now
	const query = `INSERT INTO departments (id, department_name, faculty_id, created_at, updated_at)
        VALUES (:id, :department_name, :faculty_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, department); err != nil {
		return fmt.Errorf("create department: %w", err)
	}
	return nil
}

// DeleteCascade removes the department and its dependents in one transaction,
// in dependency order: instructors of the department's majors (plus any
// instructor still referenced by one of those courses under a different
// major), then courses, then majors, then the department itself. Enrollments
// referencing removed courses are deliberately left in place.
//
// Returns sql.ErrNoRows when the department does not exist.
func (r *DepartmentRepository) DeleteCascade(ctx context.Context, departmentID string) (*models.CascadeResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin cascade: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	if err := tx.GetContext(ctx, &exists, "SELECT 1 FROM departments WHERE id = $1 LIMIT 1", departmentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("resolve department: %w", err)
	}

	var majorIDs []string
	if err := tx.SelectContext(ctx, &majorIDs, "SELECT id FROM majors WHERE department_id = $1", departmentID); err != nil {
		return nil, fmt.Errorf("collect majors: %w", err)
	}

	result := &models.CascadeResult{}
	majors := pq.Array(majorIDs)

	if len(majorIDs) > 0 {
		deleted, err := execCount(ctx, tx, "DELETE FROM instructors WHERE major_id = ANY($1)", majors)
		if err != nil {
			return nil, fmt.Errorf("delete major instructors: %w", err)
		}
		result.Instructors += deleted

		// Defensive re-check inherited from the source system: a course may
		// reference an instructor whose own major_id points elsewhere.
		deleted, err = execCount(ctx, tx,
			"DELETE FROM instructors WHERE id IN (SELECT instructor_id FROM courses WHERE major_id = ANY($1))", majors)
		if err != nil {
			return nil, fmt.Errorf("delete course instructors: %w", err)
		}
		result.Instructors += deleted

		deleted, err = execCount(ctx, tx, "DELETE FROM courses WHERE major_id = ANY($1)", majors)
		if err != nil {
			return nil, fmt.Errorf("delete courses: %w", err)
		}
		result.Courses = deleted

		deleted, err = execCount(ctx, tx, "DELETE FROM majors WHERE department_id = $1", departmentID)
		if err != nil {
			return nil, fmt.Errorf("delete majors: %w", err)
		}
		result.Majors = deleted
	}

	deleted, err := execCount(ctx, tx, "DELETE FROM departments WHERE id = $1", departmentID)
	if err != nil {
		return nil, fmt.Errorf("delete department: %w", err)
	}
	result.Departments = deleted

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit cascade: %w", err)
	}
	return result, nil
}

func execCount(ctx context.Context, tx *sqlx.Tx, query string, args ...interface{}) (int, error) {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
