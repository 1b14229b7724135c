package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusware/university-api/internal/models"
	appErrors "github.com/campusware/university-api/pkg/errors"
)

type enrollmentRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error)
	ListForTranscript(ctx context.Context, studentID string, gradeLevel models.GradeLevel) ([]models.EnrollmentDetail, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	UpdateGrade(ctx context.Context, studentID, courseID string, grade float64) (bool, error)
}

type enrollmentCourseRepository interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

// EnrollRequest links a student to a course.
type EnrollRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	CourseID  string `json:"courseId" validate:"required"`
}

// SetGradeRequest records a grade on an existing enrollment.
type SetGradeRequest struct {
	StudentID string  `json:"studentId" validate:"required"`
	CourseID  string  `json:"courseId" validate:"required"`
	Grade     float64 `json:"grade"`
}

// EnrollmentService manages enrollments, grading and transcript computation.
type EnrollmentService struct {
	repo      enrollmentRepository
	courses   enrollmentCourseRepository
	resolver  *ReferenceResolver
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs an EnrollmentService instance.
func NewEnrollmentService(repo enrollmentRepository, courses enrollmentCourseRepository, resolver *ReferenceResolver, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &EnrollmentService{repo: repo, courses: courses, resolver: resolver, validator: validate, logger: logger}
}

// ListByStudent returns a student's enrollments with course names.
func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error) {
	if err := s.resolver.CheckSyntax(RefStudent, studentID); err != nil {
		return nil, err
	}
	enrollments, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	return enrollments, nil
}

// Enroll registers a student into a course. Credits and grade level are
// snapshotted from the course so later course edits never rewrite history.
func (s *EnrollmentService) Enroll(ctx context.Context, req EnrollRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid enrollment payload")
	}
	if err := s.resolver.Resolve(ctx, RefStudent, req.StudentID); err != nil {
		return nil, err
	}
	if err := s.resolver.Resolve(ctx, RefCourse, req.CourseID); err != nil {
		return nil, err
	}

	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidReference, fmt.Sprintf("course %s does not exist", req.CourseID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	enrollment := &models.Enrollment{
		StudentID:  req.StudentID,
		CourseID:   req.CourseID,
		Credits:    course.Credits,
		GradeLevel: course.GradeLevel,
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
	}

	s.logger.Info("student enrolled",
		zap.String("student_id", enrollment.StudentID),
		zap.String("course_id", enrollment.CourseID))
	return enrollment, nil
}

// SetGrade records a grade on an enrollment. Grades must be finite numbers in
// [0, 100]; anything else is rejected before the write.
func (s *EnrollmentService) SetGrade(ctx context.Context, req SetGradeRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validationError(err, "invalid grade payload")
	}
	if math.IsNaN(req.Grade) || math.IsInf(req.Grade, 0) || req.Grade < 0 || req.Grade > 100 {
		return appErrors.Clone(appErrors.ErrInvalidGrade, "")
	}
	if err := s.resolver.CheckSyntax(RefStudent, req.StudentID); err != nil {
		return err
	}
	if err := s.resolver.CheckSyntax(RefCourse, req.CourseID); err != nil {
		return err
	}

	updated, err := s.repo.UpdateGrade(ctx, req.StudentID, req.CourseID, req.Grade)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to set grade")
	}
	if !updated {
		return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}

	s.logger.Info("grade recorded",
		zap.String("student_id", req.StudentID),
		zap.String("course_id", req.CourseID),
		zap.Float64("grade", req.Grade))
	return nil
}

// Transcript computes a student's report for one grade level. Only graded
// enrollments contribute to pass/fail, credits and GPA; ungraded rows still
// appear so the report shows pending courses. A failing grade earns zero
// credits but its course stays on the record. GPA is the credit-weighted
// average over passing courses, 0 when none pass.
func (s *EnrollmentService) Transcript(ctx context.Context, studentID string, gradeLevelRaw string) (*models.Transcript, error) {
	gradeLevel := models.GradeLevel(gradeLevelRaw)
	if !gradeLevel.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("gradeLevel must be one of: %v", models.GradeLevels()))
	}
	if err := s.resolver.Resolve(ctx, RefStudent, studentID); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) && appErr.Code == appErrors.ErrInvalidReference.Code {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, err
	}

	enrollments, err := s.repo.ListForTranscript(ctx, studentID, gradeLevel)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load transcript enrollments")
	}

	transcript := &models.Transcript{
		StudentID:  studentID,
		GradeLevel: gradeLevel,
		Entries:    make([]models.TranscriptEntry, 0, len(enrollments)),
	}

	var weightedPoints, passingCredits float64
	for _, e := range enrollments {
		entry := models.TranscriptEntry{
			CourseID:   e.CourseID,
			CourseName: e.CourseName,
			Grade:      e.Grade,
			Credits:    e.Credits,
			GradeLevel: e.GradeLevel,
		}
		if e.Grade != nil {
			grade := *e.Grade
			entry.Standing = models.StandingFor(grade)
			if grade >= models.PassThreshold {
				entry.Passed = true
				entry.CreditsEarned = e.Credits
				weightedPoints += grade * float64(e.Credits)
				passingCredits += float64(e.Credits)
				transcript.TotalCreditsEarned += e.Credits
			}
		}
		transcript.Entries = append(transcript.Entries, entry)
	}

	if passingCredits > 0 {
		transcript.GPA = weightedPoints / passingCredits
	}
	return transcript, nil
}
