package service

import (
	"bytes"
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusware/university-api/internal/models"
	appErrors "github.com/campusware/university-api/pkg/errors"
)

type instructorRepository interface {
	List(ctx context.Context, filter models.InstructorFilter) ([]models.Instructor, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, instructor *models.Instructor) error
	SalaryByMajor(ctx context.Context) ([]models.MajorSalaryStat, error)
	SalarySummaryForMajor(ctx context.Context, majorID string) (*models.SalarySummary, error)
	SalarySummary(ctx context.Context) (*models.SalarySummary, error)
}

// Salary cache keys. Writes to the instructor roster invalidate the whole
// salary namespace.
const (
	salaryCacheKeyGlobal  = "salary:global"
	salaryCacheKeyMajor   = "salary:major:"
	salaryCachePatternAll = "salary:*"
)

var pdfMagic = []byte("%PDF-")

// CreateInstructorRequest is the instructor creation payload. Image and CV
// arrive as raw bytes from a multipart upload.
type CreateInstructorRequest struct {
	FirstName string    `json:"firstName" validate:"required,min=2,max=50"`
	LastName  string    `json:"lastName" validate:"required,min=2,max=50"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone" validate:"required,len=8,numeric"`
	Address   string    `json:"address" validate:"required,max=200"`
	HireDate  time.Time `json:"hireDate" validate:"required,notfuture"`
	DOB       time.Time `json:"dob" validate:"required,notfuture"`
	Salary    float64   `json:"salary" validate:"gte=0"`
	Image     []byte    `json:"image" validate:"required"`
	CV        []byte    `json:"cv" validate:"required"`
	MajorID   string    `json:"majorId" validate:"required"`
}

// SalaryStats is the aggregated salary report. ByMajor is present only on the
// institution-wide report.
type SalaryStats struct {
	AverageSalary   float64                  `json:"averageSalary"`
	InstructorCount int                      `json:"instructorCount"`
	ByMajor         []models.MajorSalaryStat `json:"byMajor,omitempty"`
}

// InstructorService manages instructors and their salary aggregates.
type InstructorService struct {
	repo      instructorRepository
	resolver  *ReferenceResolver
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInstructorService constructs an InstructorService instance. The cache is
// optional; a nil or disabled cache degrades to direct reads.
func NewInstructorService(repo instructorRepository, resolver *ReferenceResolver, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *InstructorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &InstructorService{repo: repo, resolver: resolver, cache: cache, validator: validate, logger: logger}
}

// List returns the instructors of a major.
func (s *InstructorService) List(ctx context.Context, filter models.InstructorFilter) ([]models.Instructor, error) {
	if filter.MajorID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "majorId is required")
	}
	if err := s.resolver.CheckSyntax(RefMajor, filter.MajorID); err != nil {
		return nil, err
	}
	instructors, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructors")
	}
	return instructors, nil
}

// Create stores a new instructor with its binary documents. The CV must be a
// PDF; both blobs are persisted unmodified.
func (s *InstructorService) Create(ctx context.Context, req CreateInstructorRequest) (*models.Instructor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid instructor payload")
	}
	if !bytes.HasPrefix(req.CV, pdfMagic) {
		return nil, appErrors.WithDetails(
			appErrors.Clone(appErrors.ErrValidation, "invalid instructor payload"),
			[]appErrors.FieldViolation{{Field: "cv", Message: "cv must be a PDF document"}})
	}
	if err := s.resolver.Resolve(ctx, RefMajor, req.MajorID); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check instructor email")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "an instructor with this email already exists")
	}

	instructor := &models.Instructor{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		HireDate:  req.HireDate,
		DOB:       req.DOB,
		Salary:    req.Salary,
		Image:     req.Image,
		CV:        req.CV,
		MajorID:   req.MajorID,
	}
	if err := s.repo.Create(ctx, instructor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create instructor")
	}

	if err := s.cache.Invalidate(ctx, salaryCachePatternAll); err != nil {
		s.logger.Warn("failed to invalidate salary cache", zap.Error(err))
	}

	s.logger.Info("instructor created", zap.String("instructor_id", instructor.ID), zap.String("major_id", instructor.MajorID))
	return instructor, nil
}

// SalaryStats reports salary aggregates. With an empty majorID it returns the
// institution-wide average plus a per-major breakdown sorted by highest
// average; with a majorID it returns that major's summary. Empty populations
// report a zero average, never an error.
func (s *InstructorService) SalaryStats(ctx context.Context, majorID string) (*SalaryStats, error) {
	key := salaryCacheKeyGlobal
	if majorID != "" {
		if err := s.resolver.CheckSyntax(RefMajor, majorID); err != nil {
			return nil, err
		}
		key = salaryCacheKeyMajor + majorID
	}

	var cached SalaryStats
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	stats, err := s.computeSalaryStats(ctx, majorID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, stats, 0); err != nil {
		s.logger.Warn("failed to cache salary stats", zap.String("key", key), zap.Error(err))
	}
	return stats, nil
}

func (s *InstructorService) computeSalaryStats(ctx context.Context, majorID string) (*SalaryStats, error) {
	if majorID != "" {
		summary, err := s.repo.SalarySummaryForMajor(ctx, majorID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate salaries")
		}
		return &SalaryStats{AverageSalary: summary.AverageSalary, InstructorCount: summary.InstructorCount}, nil
	}

	summary, err := s.repo.SalarySummary(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate salaries")
	}
	byMajor, err := s.repo.SalaryByMajor(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate salaries by major")
	}
	return &SalaryStats{
		AverageSalary:   summary.AverageSalary,
		InstructorCount: summary.InstructorCount,
		ByMajor:         byMajor,
	}, nil
}
