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
	testFacultyID    = "1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d"
	testDepartmentID = "7c8d9e0f-1a2b-4c3d-9e5f-6a7b8c9d0e1f"
)

type mockDepartmentRepo struct {
	departments map[string]models.Department
	cascade     *models.CascadeResult
	created     *models.Department
}

func (m *mockDepartmentRepo) List(ctx context.Context, filter models.DepartmentFilter) ([]models.Department, error) {
	list := []models.Department{}
	for _, d := range m.departments {
		if d.FacultyID == filter.FacultyID {
			list = append(list, d)
		}
	}
	return list, nil
}

func (m *mockDepartmentRepo) Create(ctx context.Context, department *models.Department) error {
	if department.ID == "" {
		department.ID = "new-department"
	}
	m.created = department
	return nil
}

func (m *mockDepartmentRepo) DeleteCascade(ctx context.Context, departmentID string) (*models.CascadeResult, error) {
	if _, ok := m.departments[departmentID]; !ok {
		return nil, sql.ErrNoRows
	}
	delete(m.departments, departmentID)
	return m.cascade, nil
}

func newDepartmentService(repo *mockDepartmentRepo) *DepartmentService {
	resolver := testResolver(map[ReferenceKind][]string{
		RefFaculty:    {testFacultyID},
		RefDepartment: {testDepartmentID},
	})
	return NewDepartmentService(repo, resolver, NewValidator(), zap.NewNop())
}

func TestDepartmentServiceCreate(t *testing.T) {
	repo := &mockDepartmentRepo{}
	svc := newDepartmentService(repo)

	department, err := svc.Create(context.Background(), CreateDepartmentRequest{
		DepartmentName: "Computer Science",
		FacultyID:      testFacultyID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", department.DepartmentName)
	require.NotNil(t, repo.created)
}

func TestDepartmentServiceCreateDanglingFaculty(t *testing.T) {
	svc := NewDepartmentService(&mockDepartmentRepo{}, testResolver(map[ReferenceKind][]string{
		RefFaculty: {},
	}), NewValidator(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateDepartmentRequest{
		DepartmentName: "Computer Science",
		FacultyID:      testFacultyID,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidReference.Code, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
}

func TestDepartmentServiceDeleteCascadeCounts(t *testing.T) {
	repo := &mockDepartmentRepo{
		departments: map[string]models.Department{testDepartmentID: {ID: testDepartmentID}},
		cascade:     &models.CascadeResult{Departments: 1, Majors: 2, Courses: 5, Instructors: 3},
	}
	svc := newDepartmentService(repo)

	result, err := svc.Delete(context.Background(), testDepartmentID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Departments)
	assert.Equal(t, 2, result.Majors)
	assert.Equal(t, 5, result.Courses)
	assert.Equal(t, 3, result.Instructors)
	assert.Empty(t, repo.departments)
}

func TestDepartmentServiceDeleteNotFound(t *testing.T) {
	svc := newDepartmentService(&mockDepartmentRepo{})

	_, err := svc.Delete(context.Background(), testDepartmentID)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, 404, appErr.Status)
}

func TestDepartmentServiceDeleteMalformedID(t *testing.T) {
	svc := newDepartmentService(&mockDepartmentRepo{})

	_, err := svc.Delete(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidID.Code, appErrors.FromError(err).Code)
}

func TestDepartmentServiceListRequiresFaculty(t *testing.T) {
	svc := newDepartmentService(&mockDepartmentRepo{})

	_, err := svc.List(context.Background(), models.DepartmentFilter{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
