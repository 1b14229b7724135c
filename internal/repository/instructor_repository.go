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

// InstructorRepository manages persistence for instructors and their salary
// aggregates.
type InstructorRepository struct {
	db *sqlx.DB
}

// NewInstructorRepository constructs an InstructorRepository.
func NewInstructorRepository(db *sqlx.DB) *InstructorRepository {
	return &InstructorRepository{db: db}
}

// List returns the instructors of a major matching the filter. Search matches
// first or last name.
func (r *InstructorRepository) List(ctx context.Context, filter models.InstructorFilter) ([]models.Instructor, error) {
	conditions := []string{"major_id = $1"}
	args := []interface{}{filter.MajorID}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	query := fmt.Sprintf(`SELECT id, first_name, last_name, email, phone, address, hire_date, dob, salary, image, cv, major_id, created_at, updated_at
        FROM instructors WHERE %s ORDER BY last_name ASC, first_name ASC, created_at ASC, id ASC`,
		strings.Join(conditions, " AND "))

	instructors := []models.Instructor{}
	if err := r.db.SelectContext(ctx, &instructors, query, args...); err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	return instructors, nil
}

// ExistsByID checks that an instructor row exists.
func (r *InstructorRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM instructors WHERE id = $1 LIMIT 1", id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check instructor: %w", err)
	}
	return true, nil
}

// ExistsByEmail checks whether an instructor with the email exists.
func (r *InstructorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM instructors WHERE email = $1 LIMIT 1", email); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check instructor email: %w", err)
	}
	return true, nil
}

// Create inserts a new instructor row with its binary documents.
func (r *InstructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	if instructor.ID == "" {
		instructor.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if instructor.CreatedAt.IsZero() {
		instructor.CreatedAt = now
	}
	instructor.UpdatedAt = now
	const query = `INSERT INTO instructors (id, first_name, last_name, email, phone, address, hire_date, dob, salary, image, cv, major_id, created_at, updated_at)
        VALUES (:id, :first_name, :last_name, :email, :phone, :address, :hire_date, :dob, :salary, :image, :cv, :major_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, instructor); err != nil {
		return fmt.Errorf("create instructor: %w", err)
	}
	return nil
}

// SalaryByMajor aggregates average salary and headcount per major, highest
// average first.
func (r *InstructorRepository) SalaryByMajor(ctx context.Context) ([]models.MajorSalaryStat, error) {
	const query = `SELECT m.major_name, AVG(i.salary) AS average_salary, COUNT(i.id) AS instructor_count
        FROM instructors i
        JOIN majors m ON m.id = i.major_id
        GROUP BY m.major_name
        ORDER BY average_salary DESC`
	stats := []models.MajorSalaryStat{}
	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("aggregate salaries by major: %w", err)
	}
	return stats, nil
}

// SalarySummaryForMajor aggregates the average salary for a single major.
func (r *InstructorRepository) SalarySummaryForMajor(ctx context.Context, majorID string) (*models.SalarySummary, error) {
	const query = `SELECT COALESCE(AVG(salary), 0) AS average_salary, COUNT(id) AS instructor_count
        FROM instructors WHERE major_id = $1`
	var summary models.SalarySummary
	if err := r.db.GetContext(ctx, &summary, query, majorID); err != nil {
		return nil, fmt.Errorf("aggregate major salary: %w", err)
	}
	return &summary, nil
}

// SalarySummary aggregates the institution-wide average salary.
func (r *InstructorRepository) SalarySummary(ctx context.Context) (*models.SalarySummary, error) {
	const query = `SELECT COALESCE(AVG(salary), 0) AS average_salary, COUNT(id) AS instructor_count
        FROM instructors`
	var summary models.SalarySummary
	if err := r.db.GetContext(ctx, &summary, query); err != nil {
		return nil, fmt.Errorf("aggregate salary: %w", err)
	}
	return &summary, nil
}
