package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusware/university-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func studentColumns() []string {
	return []string{"id", "file_number", "first_name", "last_name", "dob", "email", "phone", "address", "registration_date", "status", "year", "major_id", "created_at", "updated_at"}
}

func TestStudentRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(studentColumns()).
		AddRow("s1", 30001, "Nadia", "Haddad", now, "nadia@example.edu", "71234567", "Street", now, "Active", "2022", "m1", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE major_id = $1 ORDER BY file_number ASC")).
		WithArgs("m1").
		WillReturnRows(rows)

	students, err := repo.List(context.Background(), models.StudentFilter{MajorID: "m1"})
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.Equal(t, 30001, students[0].FileNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListSearchesFileNumberAsText(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("CAST(file_number AS TEXT) LIKE $2")).
		WithArgs("m1", "%3000%").
		WillReturnRows(sqlmock.NewRows(studentColumns()))

	students, err := repo.List(context.Background(), models.StudentFilter{MajorID: "m1", Search: "3000"})
	require.NoError(t, err)
	assert.Empty(t, students)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryMaxFileNumber(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(file_number), $1) FROM students")).
		WithArgs(models.FirstFileNumber - 1).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(30042))

	max, err := repo.MaxFileNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30042, max)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryMaxFileNumberEmptyRoster(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(file_number), $1) FROM students")).
		WithArgs(29999).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(29999))

	max, err := repo.MaxFileNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 29999, max)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("INSERT INTO students").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	student := &models.Student{
		FileNumber: 30001,
		FirstName:  "Nadia",
		LastName:   "Haddad",
		DOB:        time.Now(),
		Email:      "nadia@example.edu",
		Phone:      "71234567",
		Address:    "Street",
		Status:     models.StudentStatusActive,
		Year:       "2022",
		MajorID:    "m1",
	}
	err := repo.Create(context.Background(), student)
	require.NoError(t, err)
	assert.NotEmpty(t, student.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE id = $1")).
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.Delete(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, deleted)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err = repo.Delete(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
