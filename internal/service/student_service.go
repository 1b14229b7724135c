package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusware/university-api/internal/models"
	"github.com/campusware/university-api/internal/repository"
	appErrors "github.com/campusware/university-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindByFileNumber(ctx context.Context, fileNumber int) (*models.Student, error)
	ExistsByFileNumber(ctx context.Context, fileNumber int) (bool, error)
	MaxFileNumber(ctx context.Context) (int, error)
	Create(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) (bool, error)
}

// CreateStudentRequest is the student creation payload. The file number comes
// from the client, typically max+1 from a prior MaxFileNumber call.
type CreateStudentRequest struct {
	FileNumber       int       `json:"fileNumber" validate:"required,gte=1"`
	FirstName        string    `json:"firstName" validate:"required,min=2,max=50"`
	LastName         string    `json:"lastName" validate:"required,min=2,max=50"`
	DOB              time.Time `json:"dob" validate:"required,notfuture"`
	Email            string    `json:"email" validate:"required,email"`
	Phone            string    `json:"phone" validate:"required,len=8,numeric"`
	Address          string    `json:"address" validate:"required,max=200"`
	RegistrationDate time.Time `json:"registrationDate" validate:"required,notfuture"`
	Status           string    `json:"status" validate:"required,oneof=Active Inactive"`
	Year             string    `json:"year" validate:"required,max=20"`
	MajorID          string    `json:"majorId" validate:"required"`
}

// MaxFileNumberResponse reports the highest assigned file number so clients
// can suggest max+1 for the next registration.
type MaxFileNumberResponse struct {
	MaxFileNumber int `json:"maxFileNumber"`
}

// StudentService manages student records and the file number protocol.
type StudentService struct {
	repo      studentRepository
	resolver  *ReferenceResolver
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService instance.
func NewStudentService(repo studentRepository, resolver *ReferenceResolver, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &StudentService{repo: repo, resolver: resolver, validator: validate, logger: logger}
}

// List returns the students of a major.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	if filter.MajorID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "majorId is required")
	}
	if err := s.resolver.CheckSyntax(RefMajor, filter.MajorID); err != nil {
		return nil, err
	}
	students, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// Get fetches a single student by ID.
func (s *StudentService) Get(ctx context.Context, studentID string) (*models.Student, error) {
	if err := s.resolver.CheckSyntax(RefStudent, studentID); err != nil {
		return nil, err
	}
	student, err := s.repo.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// GetByFileNumber fetches a single student by file number.
func (s *StudentService) GetByFileNumber(ctx context.Context, fileNumber int) (*models.Student, error) {
	if fileNumber < 1 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fileNumber must be a positive integer")
	}
	student, err := s.repo.FindByFileNumber(ctx, fileNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// MaxFileNumber returns the highest assigned file number, or FirstFileNumber-1
// on an empty roster so max+1 always derives the next suggestion.
func (s *StudentService) MaxFileNumber(ctx context.Context) (*MaxFileNumberResponse, error) {
	max, err := s.repo.MaxFileNumber(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read max file number")
	}
	return &MaxFileNumberResponse{MaxFileNumber: max}, nil
}

// Create registers a new student. The file number is checked up front and the
// unique index backs the check against concurrent registrations; losing the
// race surfaces as the same duplicate error, telling the client to refetch
// the max and retry.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	if err := s.resolver.Resolve(ctx, RefMajor, req.MajorID); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByFileNumber(ctx, req.FileNumber)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check file number")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "file number is already assigned")
	}

	student := &models.Student{
		FileNumber:       req.FileNumber,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		DOB:              req.DOB,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		RegistrationDate: req.RegistrationDate,
		Status:           req.Status,
		Year:             req.Year,
		MajorID:          req.MajorID,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "file number is already assigned")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}

	s.logger.Info("student registered",
		zap.String("student_id", student.ID),
		zap.Int("file_number", student.FileNumber),
		zap.String("major_id", student.MajorID))
	return student, nil
}

// Delete removes a student. Enrollments are left in place; they no longer
// surface anywhere once the student is gone.
func (s *StudentService) Delete(ctx context.Context, studentID string) error {
	if err := s.resolver.CheckSyntax(RefStudent, studentID); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, studentID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	s.logger.Info("student deleted", zap.String("student_id", studentID))
	return nil
}
