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

// gradeLevelRank ranks grade levels ordinally in SQL. String comparison on
// the enum values would order "M1" before "Second Year"; predicates must use
// this expression instead.
const gradeLevelRank = `CASE grade_level
        WHEN 'First Year' THEN 1
        WHEN 'Second Year' THEN 2
        WHEN 'Third Year' THEN 3
        WHEN 'M1' THEN 4
        WHEN 'M2' THEN 5
        ELSE 0 END`

// CourseRepository manages persistence for courses and the named filter
// predicates of the course listing endpoints.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// ListByFilter returns the courses of a major matching a named predicate. All
// predicates are scoped by major first; empty results are a valid outcome.
func (r *CourseRepository) ListByFilter(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	conditions := []string{"major_id = $1"}
	args := []interface{}{filter.MajorID}

	switch filter.Kind {
	case models.CourseFilterAll, "":
		// major scope only
	case models.CourseFilterRanked:
		conditions = append(conditions, fmt.Sprintf("((%s) > 1 OR credits BETWEEN 3 AND 6)", gradeLevelRank))
	case models.CourseFilterSecondYear:
		conditions = append(conditions, fmt.Sprintf("grade_level = $%d AND semester_number > 2", len(args)+1))
		args = append(args, string(models.GradeLevelSecondYear))
	case models.CourseFilterMandatoryCreditsSemester:
		conditions = append(conditions, fmt.Sprintf("course_type = $%d AND (credits = 3 OR semester_number = 4)", len(args)+1))
		args = append(args, string(models.CourseTypeMandatory))
	case models.CourseFilterOptionalThirdYear:
		conditions = append(conditions, fmt.Sprintf("course_type = $%d AND grade_level = $%d", len(args)+1, len(args)+2))
		args = append(args, string(models.CourseTypeOptional), string(models.GradeLevelThirdYear))
	default:
		return nil, fmt.Errorf("unknown course filter %q", filter.Kind)
	}

	query := fmt.Sprintf(`SELECT id, course_name, credits, description, grade_level, semester_number, course_type, major_id, instructor_id, created_at, updated_at
        FROM courses WHERE %s ORDER BY course_name ASC, created_at ASC, id ASC`,
		strings.Join(conditions, " AND "))

	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// FindByID fetches a course by ID.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, course_name, credits, description, grade_level, semester_number, course_type, major_id, instructor_id, created_at, updated_at
        FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// ExistsByID checks that a course row exists.
func (r *CourseRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM courses WHERE id = $1 LIMIT 1", id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check course: %w", err)
	}
	return true, nil
}

// Create inserts a new course row.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now
	const query = `INSERT INTO courses (id, course_name, credits, description, grade_level, semester_number, course_type, major_id, instructor_id, created_at, updated_at)
        VALUES (:id, :course_name, :credits, :description, :grade_level, :semester_number, :course_type, :major_id, :instructor_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update modifies an existing course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET course_name = :course_name, credits = :credits, description = :description,
        grade_level = :grade_level, semester_number = :semester_number, course_type = :course_type,
        major_id = :major_id, instructor_id = :instructor_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}
