package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusware/university-api/internal/models"
	appErrors "github.com/campusware/university-api/pkg/errors"
)

type facultyRepository interface {
	List(ctx context.Context, filter models.FacultyFilter) ([]models.Faculty, error)
	Create(ctx context.Context, faculty *models.Faculty) error
}

// CreateFacultyRequest is the faculty creation payload.
type CreateFacultyRequest struct {
	FacultyName string `json:"facultyName" validate:"required,min=2,max=100"`
	AdminID     string `json:"adminId" validate:"required"`
}

// FacultyService manages faculties under an administrator.
type FacultyService struct {
	repo      facultyRepository
	resolver  *ReferenceResolver
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFacultyService constructs a FacultyService instance.
func NewFacultyService(repo facultyRepository, resolver *ReferenceResolver, validate *validator.Validate, logger *zap.Logger) *FacultyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &FacultyService{repo: repo, resolver: resolver, validator: validate, logger: logger}
}

// List returns the faculties of an administrator. An empty list is a valid
// success response.
func (s *FacultyService) List(ctx context.Context, filter models.FacultyFilter) ([]models.Faculty, error) {
	if filter.AdminID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "adminId is required")
	}
	if err := s.resolver.CheckSyntax(RefAdministrator, filter.AdminID); err != nil {
		return nil, err
	}
	faculties, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faculties")
	}
	return faculties, nil
}

// Create stores a new faculty after resolving its administrator reference.
func (s *FacultyService) Create(ctx context.Context, req CreateFacultyRequest) (*models.Faculty, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid faculty payload")
	}
	if err := s.resolver.Resolve(ctx, RefAdministrator, req.AdminID); err != nil {
		return nil, err
	}

	faculty := &models.Faculty{
		FacultyName: req.FacultyName,
		AdminID:     req.AdminID,
	}
	if err := s.repo.Create(ctx, faculty); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create faculty")
	}

	s.logger.Info("faculty created", zap.String("faculty_id", faculty.ID), zap.String("admin_id", faculty.AdminID))
	return faculty, nil
}
