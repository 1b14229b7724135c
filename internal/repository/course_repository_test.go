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

func courseColumns() []string {
	return []string{"id", "course_name", "credits", "description", "grade_level", "semester_number", "course_type", "major_id", "instructor_id", "created_at", "updated_at"}
}

func courseRow() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(courseColumns()).
		AddRow("c1", "Data Structures", 4, "Lists and trees", "Second Year", 3, "Mandatory", "m1", "i1", now, now)
}

func TestCourseRepositoryListDefaultScope(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM courses WHERE major_id = $1 ORDER BY course_name ASC")).
		WithArgs("m1").
		WillReturnRows(courseRow())

	courses, err := repo.ListByFilter(context.Background(), models.CourseFilter{MajorID: "m1", Kind: models.CourseFilterAll})
	require.NoError(t, err)
	assert.Len(t, courses, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListRankedPredicate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	// above first year (by rank, not string order) or worth 3-6 credits
	mock.ExpectQuery(regexp.QuoteMeta("credits BETWEEN 3 AND 6")).
		WithArgs("m1").
		WillReturnRows(courseRow())

	courses, err := repo.ListByFilter(context.Background(), models.CourseFilter{MajorID: "m1", Kind: models.CourseFilterRanked})
	require.NoError(t, err)
	assert.Len(t, courses, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListSecondYearPredicate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("grade_level = $2 AND semester_number > 2")).
		WithArgs("m1", "Second Year").
		WillReturnRows(courseRow())

	_, err := repo.ListByFilter(context.Background(), models.CourseFilter{MajorID: "m1", Kind: models.CourseFilterSecondYear})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListMandatoryCreditsSemesterPredicate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("course_type = $2 AND (credits = 3 OR semester_number = 4)")).
		WithArgs("m1", "Mandatory").
		WillReturnRows(courseRow())

	_, err := repo.ListByFilter(context.Background(), models.CourseFilter{MajorID: "m1", Kind: models.CourseFilterMandatoryCreditsSemester})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListOptionalThirdYearPredicate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("course_type = $2 AND grade_level = $3")).
		WithArgs("m1", "Optional", "Third Year").
		WillReturnRows(sqlmock.NewRows(courseColumns()))

	courses, err := repo.ListByFilter(context.Background(), models.CourseFilter{MajorID: "m1", Kind: models.CourseFilterOptionalThirdYear})
	require.NoError(t, err)
	assert.Empty(t, courses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListUnknownFilter(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	_, err := repo.ListByFilter(context.Background(), models.CourseFilter{MajorID: "m1", Kind: "bogus"})
	assert.Error(t, err)
}

func TestCourseRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec("INSERT INTO courses").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	course := &models.Course{
		CourseName:     "Data Structures",
		Credits:        4,
		Description:    "Lists and trees",
		GradeLevel:     models.GradeLevelSecondYear,
		SemesterNumber: 3,
		CourseType:     models.CourseTypeMandatory,
		MajorID:        "m1",
		InstructorID:   "i1",
	}
	err := repo.Create(context.Background(), course)
	require.NoError(t, err)
	assert.NotEmpty(t, course.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec("UPDATE courses SET").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	course := &models.Course{ID: "c1", CourseName: "Advanced Data Structures", Credits: 5, GradeLevel: models.GradeLevelThirdYear, CourseType: models.CourseTypeOptional, MajorID: "m1", InstructorID: "i1"}
	err := repo.Update(context.Background(), course)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
