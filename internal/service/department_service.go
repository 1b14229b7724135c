package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusware/university-api/internal/models"
	appErrors "github.com/campusware/university-api/pkg/errors"
)

type departmentRepository interface {
	List(ctx context.Context, filter models.DepartmentFilter) ([]models.Department, error)
	Create(ctx context.Context, department *models.Department) error
	DeleteCascade(ctx context.Context, departmentID string) (*models.CascadeResult, error)
}

// CreateDepartmentRequest is the department creation payload.
type CreateDepartmentRequest struct {
	DepartmentName string `json:"departmentName" validate:"required,min=2,max=100"`
	FacultyID      string `json:"facultyId" validate:"required"`
}

// DepartmentService manages departments and the cascade that removes a
// department's subtree.
type DepartmentService struct {
	repo      departmentRepository
	resolver  *ReferenceResolver
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDepartmentService constructs a DepartmentService instance.
func NewDepartmentService(repo departmentRepository, resolver *ReferenceResolver, validate *validator.Validate, logger *zap.Logger) *DepartmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &DepartmentService{repo: repo, resolver: resolver, validator: validate, logger: logger}
}

// List returns the departments of a faculty.
func (s *DepartmentService) List(ctx context.Context, filter models.DepartmentFilter) ([]models.Department, error) {
	if filter.FacultyID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "facultyId is required")
	}
	if err := s.resolver.CheckSyntax(RefFaculty, filter.FacultyID); err != nil {
		return nil, err
	}
	departments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list departments")
	}
	return departments, nil
}

// Create stores a new department after resolving its faculty reference.
func (s *DepartmentService) Create(ctx context.Context, req CreateDepartmentRequest) (*models.Department, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid department payload")
	}
	if err := s.resolver.Resolve(ctx, RefFaculty, req.FacultyID); err != nil {
		return nil, err
	}

	department := &models.Department{
		DepartmentName: req.DepartmentName,
		FacultyID:      req.FacultyID,
	}
	if err := s.repo.Create(ctx, department); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create department")
	}

	s.logger.Info("department created", zap.String("department_id", department.ID), zap.String("faculty_id", department.FacultyID))
	return department, nil
}

// Delete removes a department and its majors, courses and instructors in one
// transaction. Either the whole subtree goes or nothing does. Enrollments
// pointing at removed courses stay behind; transcripts read from their
// enrollment-time snapshot, not the course rows.
func (s *DepartmentService) Delete(ctx context.Context, departmentID string) (*models.CascadeResult, error) {
	if err := s.resolver.CheckSyntax(RefDepartment, departmentID); err != nil {
		return nil, err
	}

	result, err := s.repo.DeleteCascade(ctx, departmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete department")
	}

	s.logger.Info("department cascade completed",
		zap.String("department_id", departmentID),
		zap.Int("majors", result.Majors),
		zap.Int("courses", result.Courses),
		zap.Int("instructors", result.Instructors))
	return result, nil
}
