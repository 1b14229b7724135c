package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusware/university-api/internal/models"
)

func TestInstructorRepositorySalaryByMajor(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInstructorRepository(db)

	rows := sqlmock.NewRows([]string{"major_name", "average_salary", "instructor_count"}).
		AddRow("Computer Science", 55000.0, 2).
		AddRow("Biology", 44500.0, 4)
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY m.major_name")).
		WillReturnRows(rows)

	stats, err := repo.SalaryByMajor(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Computer Science", stats[0].MajorName)
	assert.InDelta(t, 55000, stats[0].AverageSalary, 1e-9)
	assert.Equal(t, 4, stats[1].InstructorCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstructorRepositorySalarySummaryEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInstructorRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(AVG(salary), 0) AS average_salary, COUNT(id) AS instructor_count")).
		WillReturnRows(sqlmock.NewRows([]string{"average_salary", "instructor_count"}).AddRow(0.0, 0))

	summary, err := repo.SalarySummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.AverageSalary)
	assert.Zero(t, summary.InstructorCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstructorRepositorySalarySummaryForMajor(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInstructorRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM instructors WHERE major_id = $1")).
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"average_salary", "instructor_count"}).AddRow(48000.0, 3))

	summary, err := repo.SalarySummaryForMajor(context.Background(), "m1")
	require.NoError(t, err)
	assert.InDelta(t, 48000, summary.AverageSalary, 1e-9)
	assert.Equal(t, 3, summary.InstructorCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstructorRepositoryListSearchesNames(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInstructorRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("(LOWER(first_name) LIKE $2 OR LOWER(last_name) LIKE $2)")).
		WithArgs("m1", "%khalil%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "phone", "address", "hire_date", "dob", "salary", "image", "cv", "major_id", "created_at", "updated_at"}))

	instructors, err := repo.List(context.Background(), models.InstructorFilter{MajorID: "m1", Search: "Khalil"})
	require.NoError(t, err)
	assert.Empty(t, instructors)
	assert.NoError(t, mock.ExpectationsWereMet())
}
