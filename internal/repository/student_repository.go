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

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns the students of a major matching the filter. Search matches
// the file number rendered as text.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	conditions := []string{"major_id = $1"}
	args := []interface{}{filter.MajorID}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("CAST(file_number AS TEXT) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	query := fmt.Sprintf(`SELECT id, file_number, first_name, last_name, dob, email, phone, address, registration_date, status, year, major_id, created_at, updated_at
        FROM students WHERE %s ORDER BY file_number ASC, created_at ASC, id ASC`,
		strings.Join(conditions, " AND "))

	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, file_number, first_name, last_name, dob, email, phone, address, registration_date, status, year, major_id, created_at, updated_at
        FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByFileNumber fetches a student by file number.
func (r *StudentRepository) FindByFileNumber(ctx context.Context, fileNumber int) (*models.Student, error) {
	const query = `SELECT id, file_number, first_name, last_name, dob, email, phone, address, registration_date, status, year, major_id, created_at, updated_at
        FROM students WHERE file_number = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, fileNumber); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByID checks that a student row exists.
func (r *StudentRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM students WHERE id = $1 LIMIT 1", id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check student: %w", err)
	}
	return true, nil
}

// ExistsByFileNumber checks whether a file number is already taken.
func (r *StudentRepository) ExistsByFileNumber(ctx context.Context, fileNumber int) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM students WHERE file_number = $1 LIMIT 1", fileNumber); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check file number: %w", err)
	}
	return true, nil
}

// MaxFileNumber returns the highest assigned file number. On an empty roster
// it returns FirstFileNumber-1 so that max+1 always derives the next
// suggestion.
func (r *StudentRepository) MaxFileNumber(ctx context.Context) (int, error) {
	var max int
	const query = `SELECT COALESCE(MAX(file_number), $1) FROM students`
	if err := r.db.GetContext(ctx, &max, query, models.FirstFileNumber-1); err != nil {
		return 0, fmt.Errorf("max file number: %w", err)
	}
	return max, nil
}

// Create inserts a new student row. The unique index on file_number is the
// safety net against concurrent suggestions of the same number.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, file_number, first_name, last_name, dob, email, phone, address, registration_date, status, year, major_id, created_at, updated_at)
        VALUES (:id, :file_number, :first_name, :last_name, :dob, :email, :phone, :address, :registration_date, :status, :year, :major_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return err
	}
	return nil
}

// Delete removes a student row. Enrollments are left untouched.
func (r *StudentRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete student: %w", err)
	}
	return affected > 0, nil
}
