package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusware/university-api/internal/models"
	appErrors "github.com/campusware/university-api/pkg/errors"
)

type majorRepository interface {
	List(ctx context.Context, filter models.MajorFilter) ([]models.Major, error)
	Create(ctx context.Context, major *models.Major) error
}

// CreateMajorRequest is the major creation payload.
type CreateMajorRequest struct {
	MajorName    string `json:"majorName" validate:"required,min=2,max=100"`
	Description  string `json:"description" validate:"omitempty,max=500"`
	DepartmentID string `json:"departmentId" validate:"required"`
}

// MajorService manages majors under a department.
type MajorService struct {
	repo      majorRepository
	resolver  *ReferenceResolver
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMajorService constructs a MajorService instance.
func NewMajorService(repo majorRepository, resolver *ReferenceResolver, validate *validator.Validate, logger *zap.Logger) *MajorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &MajorService{repo: repo, resolver: resolver, validator: validate, logger: logger}
}

// List returns the majors of a department.
func (s *MajorService) List(ctx context.Context, filter models.MajorFilter) ([]models.Major, error) {
	if filter.DepartmentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "departmentId is required")
	}
	if err := s.resolver.CheckSyntax(RefDepartment, filter.DepartmentID); err != nil {
		return nil, err
	}
	majors, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list majors")
	}
	return majors, nil
}

// Create stores a new major after resolving its department reference.
func (s *MajorService) Create(ctx context.Context, req CreateMajorRequest) (*models.Major, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid major payload")
	}
	if err := s.resolver.Resolve(ctx, RefDepartment, req.DepartmentID); err != nil {
		return nil, err
	}

	major := &models.Major{
		MajorName:    req.MajorName,
		Description:  req.Description,
		DepartmentID: req.DepartmentID,
	}
	if err := s.repo.Create(ctx, major); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create major")
	}

	s.logger.Info("major created", zap.String("major_id", major.ID), zap.String("department_id", major.DepartmentID))
	return major, nil
}
