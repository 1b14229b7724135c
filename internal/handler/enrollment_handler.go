package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusware/university-api/internal/service"
	appErrors "github.com/campusware/university-api/pkg/errors"
	"github.com/campusware/university-api/pkg/response"
)

// EnrollmentHandler exposes enrollment, grading and transcript endpoints.
type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

type setGradePayload struct {
	StudentID string    `json:"studentId"`
	CourseID  string    `json:"courseId"`
	Grade     flexFloat `json:"grade"`
}

// ListByStudent godoc
// @Summary List a student's enrollments
// @Tags Enrollments
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/enrollments [get]
func (h *EnrollmentHandler) ListByStudent(c *gin.Context) {
	enrollments, err := h.enrollments.ListByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments)
}

// Enroll godoc
// @Summary Enroll student into a course
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body service.EnrollRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req service.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enrollment, err := h.enrollments.Enroll(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// SetGrade godoc
// @Summary Record a grade on an enrollment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body service.SetGradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Router /enrollments/grade [put]
func (h *EnrollmentHandler) SetGrade(c *gin.Context) {
	var payload setGradePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		// a non-numeric grade never reaches storage
		response.Error(c, appErrors.Clone(appErrors.ErrInvalidGrade, ""))
		return
	}
	err := h.enrollments.SetGrade(c.Request.Context(), service.SetGradeRequest{
		StudentID: payload.StudentID,
		CourseID:  payload.CourseID,
		Grade:     float64(payload.Grade),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": true})
}

// Transcript godoc
// @Summary Compute a student's transcript for one grade level
// @Tags Enrollments
// @Produce json
// @Param id path string true "Student ID"
// @Param gradeLevel query string true "Grade level"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/transcript [get]
func (h *EnrollmentHandler) Transcript(c *gin.Context) {
	transcript, err := h.enrollments.Transcript(c.Request.Context(), c.Param("id"), c.Query("gradeLevel"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, transcript)
}
