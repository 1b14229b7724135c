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

const (
	testStudentID = "5b8f8b1e-6c7d-4f3a-9e2b-1a2b3c4d5e6f"
	testCourseID  = "9d4c2a7b-1e5f-4a8c-b3d6-7e8f9a0b1c2d"
	testMajorID   = "2f6e8d0c-3a5b-4c7d-8e9f-0a1b2c3d4e5f"
)

type mockExists struct {
	ids map[string]bool
}

func (m *mockExists) ExistsByID(ctx context.Context, id string) (bool, error) {
	return m.ids[id], nil
}

func testResolver(kinds map[ReferenceKind][]string) *ReferenceResolver {
	checkers := map[ReferenceKind]ExistenceChecker{}
	for kind, ids := range kinds {
		set := map[string]bool{}
		for _, id := range ids {
			set[id] = true
		}
		checkers[kind] = &mockExists{ids: set}
	}
	return NewReferenceResolver(checkers)
}

type mockEnrollmentRepo struct {
	enrollments []models.EnrollmentDetail
	created     *models.Enrollment
	gradeSet    map[string]float64
	hasRow      bool
}

func (m *mockEnrollmentRepo) ListByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error) {
	return m.enrollments, nil
}

func (m *mockEnrollmentRepo) ListForTranscript(ctx context.Context, studentID string, gradeLevel models.GradeLevel) ([]models.EnrollmentDetail, error) {
	matched := []models.EnrollmentDetail{}
	for _, e := range m.enrollments {
		if e.StudentID == studentID && e.GradeLevel == gradeLevel {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (m *mockEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = "new-enrollment"
	}
	m.created = enrollment
	return nil
}

func (m *mockEnrollmentRepo) UpdateGrade(ctx context.Context, studentID, courseID string, grade float64) (bool, error) {
	if !m.hasRow {
		return false, nil
	}
	if m.gradeSet == nil {
		m.gradeSet = map[string]float64{}
	}
	m.gradeSet[studentID+courseID] = grade
	return true, nil
}

type mockCourseReader struct {
	courses map[string]*models.Course
}

func (m *mockCourseReader) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func newEnrollmentService(repo *mockEnrollmentRepo, courses *mockCourseReader) *EnrollmentService {
	resolver := testResolver(map[ReferenceKind][]string{
		RefStudent: {testStudentID},
		RefCourse:  {testCourseID},
	})
	return NewEnrollmentService(repo, courses, resolver, NewValidator(), zap.NewNop())
}

func gradePtr(g float64) *float64 { return &g }

func transcriptRow(grade *float64, credits int, level models.GradeLevel, name string) models.EnrollmentDetail {
	return models.EnrollmentDetail{
		Enrollment: models.Enrollment{
			StudentID:  testStudentID,
			CourseID:   testCourseID,
			Grade:      grade,
			Credits:    credits,
			GradeLevel: level,
		},
		CourseName: name,
	}
}

func TestEnrollmentServiceEnrollSnapshotsCourse(t *testing.T) {
	repo := &mockEnrollmentRepo{}
	courses := &mockCourseReader{courses: map[string]*models.Course{
		testCourseID: {ID: testCourseID, Credits: 4, GradeLevel: models.GradeLevelSecondYear},
	}}
	svc := newEnrollmentService(repo, courses)

	enrollment, err := svc.Enroll(context.Background(), EnrollRequest{StudentID: testStudentID, CourseID: testCourseID})
	require.NoError(t, err)
	assert.Equal(t, 4, enrollment.Credits)
	assert.Equal(t, models.GradeLevelSecondYear, enrollment.GradeLevel)
	assert.Nil(t, enrollment.Grade)
	require.NotNil(t, repo.created)
}

func TestEnrollmentServiceEnrollDanglingCourse(t *testing.T) {
	repo := &mockEnrollmentRepo{}
	svc := NewEnrollmentService(repo, &mockCourseReader{}, testResolver(map[ReferenceKind][]string{
		RefStudent: {testStudentID},
		RefCourse:  {},
	}), NewValidator(), zap.NewNop())

	_, err := svc.Enroll(context.Background(), EnrollRequest{StudentID: testStudentID, CourseID: testCourseID})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidReference.Code, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
}

func TestEnrollmentServiceSetGradeOutOfRange(t *testing.T) {
	repo := &mockEnrollmentRepo{hasRow: true}
	svc := newEnrollmentService(repo, &mockCourseReader{})

	for _, grade := range []float64{-5, 100.5, 1000} {
		err := svc.SetGrade(context.Background(), SetGradeRequest{StudentID: testStudentID, CourseID: testCourseID, Grade: grade})
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrInvalidGrade.Code, appErrors.FromError(err).Code)
	}
	assert.Empty(t, repo.gradeSet)
}

func TestEnrollmentServiceSetGradeMissingEnrollment(t *testing.T) {
	repo := &mockEnrollmentRepo{hasRow: false}
	svc := newEnrollmentService(repo, &mockCourseReader{})

	err := svc.SetGrade(context.Background(), SetGradeRequest{StudentID: testStudentID, CourseID: testCourseID, Grade: 75})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentServiceSetGradeBoundary(t *testing.T) {
	repo := &mockEnrollmentRepo{hasRow: true}
	svc := newEnrollmentService(repo, &mockCourseReader{})

	require.NoError(t, svc.SetGrade(context.Background(), SetGradeRequest{StudentID: testStudentID, CourseID: testCourseID, Grade: 0}))
	require.NoError(t, svc.SetGrade(context.Background(), SetGradeRequest{StudentID: testStudentID, CourseID: testCourseID, Grade: 100}))
}

func TestEnrollmentServiceTranscriptWeightedGPA(t *testing.T) {
	repo := &mockEnrollmentRepo{enrollments: []models.EnrollmentDetail{
		transcriptRow(gradePtr(80), 3, models.GradeLevelFirstYear, "Algebra"),
		transcriptRow(gradePtr(40), 4, models.GradeLevelFirstYear, "Physics"),
	}}
	svc := newEnrollmentService(repo, &mockCourseReader{})

	transcript, err := svc.Transcript(context.Background(), testStudentID, string(models.GradeLevelFirstYear))
	require.NoError(t, err)
	// only the passing course contributes: GPA = 80*3/3
	assert.InDelta(t, 80.0, transcript.GPA, 1e-9)
	assert.Equal(t, 3, transcript.TotalCreditsEarned)
	require.Len(t, transcript.Entries, 2)

	assert.True(t, transcript.Entries[0].Passed)
	assert.Equal(t, 3, transcript.Entries[0].CreditsEarned)
	assert.Equal(t, models.StandingSatisfactory, transcript.Entries[0].Standing)

	assert.False(t, transcript.Entries[1].Passed)
	assert.Equal(t, 0, transcript.Entries[1].CreditsEarned)
	assert.Equal(t, models.StandingFail, transcript.Entries[1].Standing)
}

func TestEnrollmentServiceTranscriptNoPassingCourses(t *testing.T) {
	repo := &mockEnrollmentRepo{enrollments: []models.EnrollmentDetail{
		transcriptRow(gradePtr(20), 3, models.GradeLevelFirstYear, "Algebra"),
		transcriptRow(gradePtr(49.9), 5, models.GradeLevelFirstYear, "Physics"),
	}}
	svc := newEnrollmentService(repo, &mockCourseReader{})

	transcript, err := svc.Transcript(context.Background(), testStudentID, string(models.GradeLevelFirstYear))
	require.NoError(t, err)
	assert.Zero(t, transcript.GPA)
	assert.Zero(t, transcript.TotalCreditsEarned)
}

func TestEnrollmentServiceTranscriptUngradedRows(t *testing.T) {
	repo := &mockEnrollmentRepo{enrollments: []models.EnrollmentDetail{
		transcriptRow(nil, 3, models.GradeLevelFirstYear, "Algebra"),
		transcriptRow(gradePtr(95), 6, models.GradeLevelFirstYear, "Physics"),
	}}
	svc := newEnrollmentService(repo, &mockCourseReader{})

	transcript, err := svc.Transcript(context.Background(), testStudentID, string(models.GradeLevelFirstYear))
	require.NoError(t, err)
	require.Len(t, transcript.Entries, 2)

	assert.Nil(t, transcript.Entries[0].Grade)
	assert.False(t, transcript.Entries[0].Passed)
	assert.Empty(t, transcript.Entries[0].Standing)

	assert.Equal(t, models.StandingExcellent, transcript.Entries[1].Standing)
	assert.InDelta(t, 95.0, transcript.GPA, 1e-9)
	assert.Equal(t, 6, transcript.TotalCreditsEarned)
}

func TestEnrollmentServiceTranscriptPassThreshold(t *testing.T) {
	repo := &mockEnrollmentRepo{enrollments: []models.EnrollmentDetail{
		transcriptRow(gradePtr(50), 3, models.GradeLevelM1, "Research Methods"),
	}}
	svc := newEnrollmentService(repo, &mockCourseReader{})

	transcript, err := svc.Transcript(context.Background(), testStudentID, string(models.GradeLevelM1))
	require.NoError(t, err)
	require.Len(t, transcript.Entries, 1)
	assert.True(t, transcript.Entries[0].Passed)
	assert.Equal(t, models.StandingFair, transcript.Entries[0].Standing)
	assert.Equal(t, 3, transcript.TotalCreditsEarned)
}

func TestEnrollmentServiceTranscriptUnknownStudent(t *testing.T) {
	svc := NewEnrollmentService(&mockEnrollmentRepo{}, &mockCourseReader{}, testResolver(map[ReferenceKind][]string{
		RefStudent: {},
	}), NewValidator(), zap.NewNop())

	_, err := svc.Transcript(context.Background(), testStudentID, string(models.GradeLevelFirstYear))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentServiceTranscriptInvalidGradeLevel(t *testing.T) {
	svc := newEnrollmentService(&mockEnrollmentRepo{}, &mockCourseReader{})

	_, err := svc.Transcript(context.Background(), testStudentID, "Fourth Year")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
