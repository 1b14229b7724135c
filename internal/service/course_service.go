package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusware/university-api/internal/models"
	appErrors "github.com/campusware/university-api/pkg/errors"
)

type courseRepository interface {
	ListByFilter(ctx context.Context, filter models.CourseFilter) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
}

// CourseRequest is the payload for course creation and updates.
type CourseRequest struct {
	CourseName     string `json:"courseName" validate:"required,min=3,max=100"`
	Credits        int    `json:"credits" validate:"required,gte=1,lte=6"`
	Description    string `json:"description" validate:"required,min=10,max=500"`
	GradeLevel     string `json:"gradeLevel" validate:"required"`
	SemesterNumber int    `json:"semesterNumber" validate:"required,gte=1"`
	CourseType     string `json:"courseType" validate:"omitempty"`
	MajorID        string `json:"majorId" validate:"required"`
	InstructorID   string `json:"instructorId" validate:"required"`
}

// CourseService manages courses and the named listing predicates.
type CourseService struct {
	repo      courseRepository
	resolver  *ReferenceResolver
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService instance.
func NewCourseService(repo courseRepository, resolver *ReferenceResolver, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &CourseService{repo: repo, resolver: resolver, validator: validate, logger: logger}
}

// List returns the courses of a major matching a named predicate. An unknown
// predicate name is rejected instead of falling back to the default listing.
func (s *CourseService) List(ctx context.Context, majorID, filterName string) ([]models.Course, error) {
	if majorID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "majorId is required")
	}
	if err := s.resolver.CheckSyntax(RefMajor, majorID); err != nil {
		return nil, err
	}
	kind, ok := models.ParseCourseFilterKind(filterName)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown course filter %q", filterName))
	}

	courses, err := s.repo.ListByFilter(ctx, models.CourseFilter{MajorID: majorID, Kind: kind})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// Create stores a new course after validating its enums and resolving both
// foreign references.
func (s *CourseService) Create(ctx context.Context, req CourseRequest) (*models.Course, error) {
	gradeLevel, courseType, err := s.validateCourse(ctx, req)
	if err != nil {
		return nil, err
	}

	course := &models.Course{
		CourseName:     req.CourseName,
		Credits:        req.Credits,
		Description:    req.Description,
		GradeLevel:     gradeLevel,
		SemesterNumber: req.SemesterNumber,
		CourseType:     courseType,
		MajorID:        req.MajorID,
		InstructorID:   req.InstructorID,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}

	s.logger.Info("course created", zap.String("course_id", course.ID), zap.String("major_id", course.MajorID))
	return course, nil
}

// Update replaces an existing course. The full payload is re-validated and
// both references re-resolved, exactly as on create.
func (s *CourseService) Update(ctx context.Context, courseID string, req CourseRequest) (*models.Course, error) {
	if err := s.resolver.CheckSyntax(RefCourse, courseID); err != nil {
		return nil, err
	}

	course, err := s.repo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	gradeLevel, courseType, err := s.validateCourse(ctx, req)
	if err != nil {
		return nil, err
	}

	course.CourseName = req.CourseName
	course.Credits = req.Credits
	course.Description = req.Description
	course.GradeLevel = gradeLevel
	course.SemesterNumber = req.SemesterNumber
	course.CourseType = courseType
	course.MajorID = req.MajorID
	course.InstructorID = req.InstructorID

	if err := s.repo.Update(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}

	s.logger.Info("course updated", zap.String("course_id", course.ID))
	return course, nil
}

// validateCourse checks the payload, normalises the enums and resolves the
// major and instructor references. CourseType defaults to Mandatory when
// omitted.
func (s *CourseService) validateCourse(ctx context.Context, req CourseRequest) (models.GradeLevel, models.CourseType, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", "", validationError(err, "invalid course payload")
	}

	gradeLevel := models.GradeLevel(req.GradeLevel)
	if !gradeLevel.Valid() {
		return "", "", appErrors.WithDetails(
			appErrors.Clone(appErrors.ErrValidation, "invalid course payload"),
			[]appErrors.FieldViolation{{Field: "gradeLevel", Message: fmt.Sprintf("gradeLevel must be one of: %v", models.GradeLevels())}})
	}

	courseType := models.CourseType(req.CourseType)
	if req.CourseType == "" {
		courseType = models.CourseTypeMandatory
	}
	if !courseType.Valid() {
		return "", "", appErrors.WithDetails(
			appErrors.Clone(appErrors.ErrValidation, "invalid course payload"),
			[]appErrors.FieldViolation{{Field: "courseType", Message: "courseType must be Mandatory or Optional"}})
	}

	if err := s.resolver.Resolve(ctx, RefMajor, req.MajorID); err != nil {
		return "", "", err
	}
	if err := s.resolver.Resolve(ctx, RefInstructor, req.InstructorID); err != nil {
		return "", "", err
	}
	return gradeLevel, courseType, nil
}
