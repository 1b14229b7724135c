package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusware/university-api/internal/models"
	"github.com/campusware/university-api/internal/service"
	appErrors "github.com/campusware/university-api/pkg/errors"
	"github.com/campusware/university-api/pkg/response"
)

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students *service.StudentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students *service.StudentService) *StudentHandler {
	return &StudentHandler{students: students}
}

type studentPayload struct {
	FileNumber       flexInt   `json:"fileNumber"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	DOB              time.Time `json:"dob"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	RegistrationDate time.Time `json:"registrationDate"`
	Status           string    `json:"status"`
	Year             string    `json:"year"`
	MajorID          string    `json:"majorId"`
}

// List godoc
// @Summary List students of a major
// @Tags Students
// @Produce json
// @Param majorId query string true "Major ID"
// @Param search query string false "Search by file number"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter := models.StudentFilter{
		MajorID: c.Query("majorId"),
		Search:  strings.TrimSpace(c.Query("search")),
	}
	students, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Get godoc
// @Summary Get student by ID
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// GetByFileNumber godoc
// @Summary Get student by file number
// @Tags Students
// @Produce json
// @Param fileNumber path int true "File number"
// @Success 200 {object} response.Envelope
// @Router /students/file/{fileNumber} [get]
func (h *StudentHandler) GetByFileNumber(c *gin.Context) {
	fileNumber, err := strconv.Atoi(c.Param("fileNumber"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "fileNumber must be an integer"))
		return
	}
	student, err := h.students.GetByFileNumber(c.Request.Context(), fileNumber)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// MaxFileNumber godoc
// @Summary Highest assigned file number
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students/max-file-number [get]
func (h *StudentHandler) MaxFileNumber(c *gin.Context) {
	resp, err := h.students.MaxFileNumber(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Create godoc
// @Summary Register student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var payload studentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Create(c.Request.Context(), service.CreateStudentRequest{
		FileNumber:       int(payload.FileNumber),
		FirstName:        payload.FirstName,
		LastName:         payload.LastName,
		DOB:              payload.DOB,
		Email:            payload.Email,
		Phone:            payload.Phone,
		Address:          payload.Address,
		RegistrationDate: payload.RegistrationDate,
		Status:           payload.Status,
		Year:             payload.Year,
		MajorID:          payload.MajorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 204
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
