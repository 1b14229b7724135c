package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusware/university-api/internal/models"
)

// EnrollmentRepository manages persistence for enrollments and grades.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs an EnrollmentRepository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListByStudent returns the enrollments of a student joined with course names.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error) {
	const query = `SELECT e.id, e.student_id, e.course_id, e.grade, e.credits, e.grade_level, e.created_at, e.updated_at, c.course_name
        FROM enrollments e
        JOIN courses c ON c.id = e.course_id
        WHERE e.student_id = $1
        ORDER BY e.created_at ASC, e.id ASC`
	enrollments := []models.EnrollmentDetail{}
	if err := r.db.SelectContext(ctx, &enrollments, query, studentID); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// ListForTranscript returns the enrollments of a student at a grade level.
// The grade level and credits read here are the enrollment-time snapshot, not
// the current course values.
func (r *EnrollmentRepository) ListForTranscript(ctx context.Context, studentID string, gradeLevel models.GradeLevel) ([]models.EnrollmentDetail, error) {
	const query = `SELECT e.id, e.student_id, e.course_id, e.grade, e.credits, e.grade_level, e.created_at, e.updated_at, c.course_name
        FROM enrollments e
        JOIN courses c ON c.id = e.course_id
        WHERE e.student_id = $1 AND e.grade_level = $2
        ORDER BY e.created_at ASC, e.id ASC`
	enrollments := []models.EnrollmentDetail{}
	if err := r.db.SelectContext(ctx, &enrollments, query, studentID, string(gradeLevel)); err != nil {
		return nil, fmt.Errorf("list transcript enrollments: %w", err)
	}
	return enrollments, nil
}

// Create inserts a new enrollment row carrying the course snapshot.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if enrollment.CreatedAt.IsZero() {
		enrollment.CreatedAt = now
	}
	enrollment.UpdatedAt = now
	const query = `INSERT INTO enrollments (id, student_id, course_id, grade, credits, grade_level, created_at, updated_at)
        VALUES (:id, :student_id, :course_id, :grade, :credits, :grade_level, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		return err
	}
	return nil
}

// UpdateGrade sets the grade on a student's enrollment in a course. Returns
// false when no matching enrollment exists.
func (r *EnrollmentRepository) UpdateGrade(ctx context.Context, studentID, courseID string, grade float64) (bool, error) {
	const query = `UPDATE enrollments SET grade = $3, updated_at = $4 WHERE student_id = $1 AND course_id = $2`
	res, err := r.db.ExecContext(ctx, query, studentID, courseID, grade, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("update grade: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update grade: %w", err)
	}
	return affected > 0, nil
}
