package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusware/university-api/internal/service"
	appErrors "github.com/campusware/university-api/pkg/errors"
	"github.com/campusware/university-api/pkg/response"
)

// CourseHandler exposes course endpoints.
type CourseHandler struct {
	courses *service.CourseService
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(courses *service.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// coursePayload accepts credits and semesterNumber as JSON numbers or numeric
// strings, mirroring the loose typing of the clients this API serves.
type coursePayload struct {
	CourseName     string      `json:"courseName"`
	Credits        flexInt     `json:"credits"`
	Description    string      `json:"description"`
	GradeLevel     string      `json:"gradeLevel"`
	SemesterNumber flexInt     `json:"semesterNumber"`
	CourseType     string      `json:"courseType"`
	MajorID        string      `json:"majorId"`
	InstructorID   string      `json:"instructorId"`
}

func (p coursePayload) toRequest() service.CourseRequest {
	return service.CourseRequest{
		CourseName:     p.CourseName,
		Credits:        int(p.Credits),
		Description:    p.Description,
		GradeLevel:     p.GradeLevel,
		SemesterNumber: int(p.SemesterNumber),
		CourseType:     p.CourseType,
		MajorID:        p.MajorID,
		InstructorID:   p.InstructorID,
	}
}

// List godoc
// @Summary List courses of a major
// @Tags Courses
// @Produce json
// @Param majorId query string true "Major ID"
// @Param filter query string false "Named predicate: instructor|filtered|secondYear|mandatoryCreditsSemester|optionalThirdYear"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courses.List(c.Request.Context(), c.Query("majorId"), c.Query("filter"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses)
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body service.CourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var payload coursePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.courses.Create(c.Request.Context(), payload.toRequest())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update godoc
// @Summary Update course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.CourseRequest true "Course payload"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	var payload coursePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.courses.Update(c.Request.Context(), c.Param("id"), payload.toRequest())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}
