package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusware/university-api/internal/models"
	appErrors "github.com/campusware/university-api/pkg/errors"
)

const testInstructorID = "3e4f5a6b-7c8d-4e9f-a0b1-c2d3e4f5a6b7"

type mockCourseRepo struct {
	courses    map[string]models.Course
	lastFilter models.CourseFilter
	created    *models.Course
	updated    *models.Course
}

func (m *mockCourseRepo) ListByFilter(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	m.lastFilter = filter
	return []models.Course{}, nil
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if c, ok := m.courses[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = "new-course"
	}
	m.created = course
	return nil
}

func (m *mockCourseRepo) Update(ctx context.Context, course *models.Course) error {
	m.updated = course
	return nil
}

func newCourseService(repo *mockCourseRepo) *CourseService {
	resolver := testResolver(map[ReferenceKind][]string{
		RefMajor:      {testMajorID},
		RefInstructor: {testInstructorID},
		RefCourse:     {testCourseID},
	})
	return NewCourseService(repo, resolver, NewValidator(), zap.NewNop())
}

func validCourseRequest() CourseRequest {
	return CourseRequest{
		CourseName:     "Data Structures",
		Credits:        4,
		Description:    "Lists, trees, graphs and the algorithms over them.",
		GradeLevel:     string(models.GradeLevelSecondYear),
		SemesterNumber: 3,
		MajorID:        testMajorID,
		InstructorID:   testInstructorID,
	}
}

func TestCourseServiceCreateDefaultsToMandatory(t *testing.T) {
	repo := &mockCourseRepo{}
	svc := newCourseService(repo)

	course, err := svc.Create(context.Background(), validCourseRequest())
	require.NoError(t, err)
	assert.Equal(t, models.CourseTypeMandatory, course.CourseType)
	require.NotNil(t, repo.created)
}

func TestCourseServiceCreateInvalidGradeLevel(t *testing.T) {
	svc := newCourseService(&mockCourseRepo{})

	req := validCourseRequest()
	req.GradeLevel = "Fourth Year"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	require.NotEmpty(t, appErr.Details)
	assert.Equal(t, "gradeLevel", appErr.Details[0].Field)
}

func TestCourseServiceCreateInvalidCourseType(t *testing.T) {
	svc := newCourseService(&mockCourseRepo{})

	req := validCourseRequest()
	req.CourseType = "Elective"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCourseServiceCreateDanglingInstructor(t *testing.T) {
	svc := NewCourseService(&mockCourseRepo{}, testResolver(map[ReferenceKind][]string{
		RefMajor:      {testMajorID},
		RefInstructor: {},
	}), NewValidator(), zap.NewNop())

	_, err := svc.Create(context.Background(), validCourseRequest())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidReference.Code, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
}

func TestCourseServiceCreateCreditsBounds(t *testing.T) {
	svc := newCourseService(&mockCourseRepo{})

	for _, credits := range []int{0, 7} {
		req := validCourseRequest()
		req.Credits = credits
		_, err := svc.Create(context.Background(), req)
		require.Error(t, err, "credits %d should be rejected", credits)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestCourseServiceUpdateNotFound(t *testing.T) {
	repo := &mockCourseRepo{}
	resolver := testResolver(map[ReferenceKind][]string{
		RefMajor:      {testMajorID},
		RefInstructor: {testInstructorID},
	})
	svc := NewCourseService(repo, resolver, NewValidator(), zap.NewNop())

	_, err := svc.Update(context.Background(), testCourseID, validCourseRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCourseServiceUpdateReplacesFields(t *testing.T) {
	repo := &mockCourseRepo{courses: map[string]models.Course{
		testCourseID: {ID: testCourseID, CourseName: "Old Name", Credits: 2, CourseType: models.CourseTypeOptional},
	}}
	svc := newCourseService(repo)

	req := validCourseRequest()
	course, err := svc.Update(context.Background(), testCourseID, req)
	require.NoError(t, err)
	assert.Equal(t, "Data Structures", course.CourseName)
	assert.Equal(t, 4, course.Credits)
	assert.Equal(t, models.CourseTypeMandatory, course.CourseType)
	require.NotNil(t, repo.updated)
}

func TestCourseServiceListUnknownFilter(t *testing.T) {
	svc := newCourseService(&mockCourseRepo{})

	_, err := svc.List(context.Background(), testMajorID, "bogusFilter")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCourseServiceListDefaultsToAll(t *testing.T) {
	repo := &mockCourseRepo{}
	svc := newCourseService(repo)

	_, err := svc.List(context.Background(), testMajorID, "")
	require.NoError(t, err)
	assert.Equal(t, models.CourseFilterAll, repo.lastFilter.Kind)
}

func TestCourseServiceListNamedFilters(t *testing.T) {
	repo := &mockCourseRepo{}
	svc := newCourseService(repo)

	for _, name := range []string{"instructor", "filtered", "secondYear", "mandatoryCreditsSemester", "optionalThirdYear"} {
		_, err := svc.List(context.Background(), testMajorID, name)
		require.NoError(t, err, "filter %q should be accepted", name)
		assert.Equal(t, models.CourseFilterKind(name), repo.lastFilter.Kind)
	}
}
