package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusware/university-api/internal/models"
)

func TestEnrollmentRepositoryListForTranscript(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "student_id", "course_id", "grade", "credits", "grade_level", "created_at", "updated_at", "course_name"}).
		AddRow("e1", "s1", "c1", 80.0, 3, "First Year", now, now, "Algebra").
		AddRow("e2", "s1", "c2", nil, 4, "First Year", now, now, "Physics")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.student_id = $1 AND e.grade_level = $2")).
		WithArgs("s1", "First Year").
		WillReturnRows(rows)

	enrollments, err := repo.ListForTranscript(context.Background(), "s1", models.GradeLevelFirstYear)
	require.NoError(t, err)
	require.Len(t, enrollments, 2)
	require.NotNil(t, enrollments[0].Grade)
	assert.InDelta(t, 80, *enrollments[0].Grade, 1e-9)
	assert.Nil(t, enrollments[1].Grade)
	assert.Equal(t, "Physics", enrollments[1].CourseName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec("INSERT INTO enrollments").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	enrollment := &models.Enrollment{
		StudentID:  "s1",
		CourseID:   "c1",
		Credits:    4,
		GradeLevel: models.GradeLevelSecondYear,
	}
	err := repo.Create(context.Background(), enrollment)
	require.NoError(t, err)
	assert.NotEmpty(t, enrollment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryUpdateGrade(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE enrollments SET grade = $3, updated_at = $4 WHERE student_id = $1 AND course_id = $2")).
		WithArgs("s1", "c1", 85.5, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.UpdateGrade(context.Background(), "s1", "c1", 85.5)
	require.NoError(t, err)
	assert.True(t, updated)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE enrollments SET grade = $3, updated_at = $4 WHERE student_id = $1 AND course_id = $2")).
		WithArgs("s1", "missing", 85.5, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err = repo.UpdateGrade(context.Background(), "s1", "missing", 85.5)
	require.NoError(t, err)
	assert.False(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
