package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusware/university-api/internal/models"
	appErrors "github.com/campusware/university-api/pkg/errors"
)

type mockInstructorRepo struct {
	instructors map[string]models.Instructor
	byMajor     []models.MajorSalaryStat
	summary     models.SalarySummary
	created     *models.Instructor
}

func (m *mockInstructorRepo) List(ctx context.Context, filter models.InstructorFilter) ([]models.Instructor, error) {
	list := []models.Instructor{}
	for _, i := range m.instructors {
		if i.MajorID == filter.MajorID {
			list = append(list, i)
		}
	}
	return list, nil
}

func (m *mockInstructorRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, i := range m.instructors {
		if i.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockInstructorRepo) Create(ctx context.Context, instructor *models.Instructor) error {
	if instructor.ID == "" {
		instructor.ID = "new-instructor"
	}
	m.created = instructor
	return nil
}

func (m *mockInstructorRepo) SalaryByMajor(ctx context.Context) ([]models.MajorSalaryStat, error) {
	return m.byMajor, nil
}

func (m *mockInstructorRepo) SalarySummaryForMajor(ctx context.Context, majorID string) (*models.SalarySummary, error) {
	return &m.summary, nil
}

func (m *mockInstructorRepo) SalarySummary(ctx context.Context) (*models.SalarySummary, error) {
	return &m.summary, nil
}

func newInstructorService(repo *mockInstructorRepo) *InstructorService {
	resolver := testResolver(map[ReferenceKind][]string{
		RefMajor: {testMajorID},
	})
	return NewInstructorService(repo, resolver, nil, NewValidator(), zap.NewNop())
}

func validInstructorRequest() CreateInstructorRequest {
	return CreateInstructorRequest{
		FirstName: "Omar",
		LastName:  "Khalil",
		Email:     "omar.khalil@example.edu",
		Phone:     "71112233",
		Address:   "45 Campus Road",
		HireDate:  time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC),
		DOB:       time.Date(1985, 7, 22, 0, 0, 0, 0, time.UTC),
		Salary:    52000,
		Image:     []byte{0xFF, 0xD8, 0xFF, 0xE0},
		CV:        []byte("%PDF-1.7 test document"),
		MajorID:   testMajorID,
	}
}

func TestInstructorServiceCreate(t *testing.T) {
	repo := &mockInstructorRepo{}
	svc := newInstructorService(repo)

	instructor, err := svc.Create(context.Background(), validInstructorRequest())
	require.NoError(t, err)
	assert.Equal(t, 52000.0, instructor.Salary)
	require.NotNil(t, repo.created)
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF, 0xE0}, repo.created.Image)
}

func TestInstructorServiceCreateCVNotPDF(t *testing.T) {
	svc := newInstructorService(&mockInstructorRepo{})

	req := validInstructorRequest()
	req.CV = []byte("plain text resume")

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	require.NotEmpty(t, appErr.Details)
	assert.Equal(t, "cv", appErr.Details[0].Field)
}

func TestInstructorServiceCreateDuplicateEmail(t *testing.T) {
	repo := &mockInstructorRepo{instructors: map[string]models.Instructor{
		"i1": {ID: "i1", Email: "omar.khalil@example.edu", MajorID: testMajorID},
	}}
	svc := newInstructorService(repo)

	_, err := svc.Create(context.Background(), validInstructorRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicateKey.Code, appErrors.FromError(err).Code)
}

func TestInstructorServiceCreateFutureHireDate(t *testing.T) {
	svc := newInstructorService(&mockInstructorRepo{})

	req := validInstructorRequest()
	req.HireDate = time.Now().Add(72 * time.Hour)

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestInstructorServiceSalaryStatsGlobal(t *testing.T) {
	repo := &mockInstructorRepo{
		summary: models.SalarySummary{AverageSalary: 48000, InstructorCount: 6},
		byMajor: []models.MajorSalaryStat{
			{MajorName: "Computer Science", AverageSalary: 55000, InstructorCount: 2},
			{MajorName: "Biology", AverageSalary: 44500, InstructorCount: 4},
		},
	}
	svc := newInstructorService(repo)

	stats, err := svc.SalaryStats(context.Background(), "")
	require.NoError(t, err)
	assert.InDelta(t, 48000, stats.AverageSalary, 1e-9)
	assert.Equal(t, 6, stats.InstructorCount)
	require.Len(t, stats.ByMajor, 2)
	assert.Equal(t, "Computer Science", stats.ByMajor[0].MajorName)
}

func TestInstructorServiceSalaryStatsEmptyMajor(t *testing.T) {
	repo := &mockInstructorRepo{summary: models.SalarySummary{AverageSalary: 0, InstructorCount: 0}}
	svc := newInstructorService(repo)

	stats, err := svc.SalaryStats(context.Background(), testMajorID)
	require.NoError(t, err)
	assert.Zero(t, stats.AverageSalary)
	assert.Zero(t, stats.InstructorCount)
	assert.Empty(t, stats.ByMajor)
}

func TestInstructorServiceListRequiresMajor(t *testing.T) {
	svc := newInstructorService(&mockInstructorRepo{})

	_, err := svc.List(context.Background(), models.InstructorFilter{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
