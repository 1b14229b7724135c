package handler

import (
	"fmt"
	"io"
	"mime/multipart"
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

// InstructorHandler exposes instructor endpoints. Creation accepts a
// multipart form carrying the profile fields plus the image and CV files.
type InstructorHandler struct {
	instructors  *service.InstructorService
	maxImageSize int64
	maxCVSize    int64
}

// NewInstructorHandler constructs InstructorHandler.
func NewInstructorHandler(instructors *service.InstructorService, maxImageSize, maxCVSize int64) *InstructorHandler {
	if maxImageSize <= 0 {
		maxImageSize = 2 * 1024 * 1024
	}
	if maxCVSize <= 0 {
		maxCVSize = 10 * 1024 * 1024
	}
	return &InstructorHandler{instructors: instructors, maxImageSize: maxImageSize, maxCVSize: maxCVSize}
}

// List godoc
// @Summary List instructors of a major
// @Tags Instructors
// @Produce json
// @Param majorId query string true "Major ID"
// @Param search query string false "Search by first or last name"
// @Success 200 {object} response.Envelope
// @Router /instructors [get]
func (h *InstructorHandler) List(c *gin.Context) {
	filter := models.InstructorFilter{
		MajorID: c.Query("majorId"),
		Search:  strings.TrimSpace(c.Query("search")),
	}
	instructors, err := h.instructors.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructors)
}

// Create godoc
// @Summary Create instructor
// @Tags Instructors
// @Accept multipart/form-data
// @Produce json
// @Param firstName formData string true "First name"
// @Param lastName formData string true "Last name"
// @Param email formData string true "Email"
// @Param phone formData string true "Phone (8 digits)"
// @Param address formData string true "Address"
// @Param hireDate formData string true "Hire date (YYYY-MM-DD)"
// @Param dob formData string true "Date of birth (YYYY-MM-DD)"
// @Param salary formData number true "Salary"
// @Param majorId formData string true "Major ID"
// @Param image formData file true "Profile image"
// @Param cv formData file true "CV (PDF)"
// @Success 201 {object} response.Envelope
// @Router /instructors [post]
func (h *InstructorHandler) Create(c *gin.Context) {
	req := service.CreateInstructorRequest{
		FirstName: strings.TrimSpace(c.PostForm("firstName")),
		LastName:  strings.TrimSpace(c.PostForm("lastName")),
		Email:     strings.TrimSpace(c.PostForm("email")),
		Phone:     strings.TrimSpace(c.PostForm("phone")),
		Address:   strings.TrimSpace(c.PostForm("address")),
		MajorID:   c.PostForm("majorId"),
	}

	if raw := c.PostForm("salary"); raw != "" {
		salary, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "salary must be a number"))
			return
		}
		req.Salary = salary
	}

	hireDate, err := parseDateField(c.PostForm("hireDate"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "hireDate must be a valid date"))
		return
	}
	req.HireDate = hireDate

	dob, err := parseDateField(c.PostForm("dob"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "dob must be a valid date"))
		return
	}
	req.DOB = dob

	image, err := readUpload(c, "image", h.maxImageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	req.Image = image

	cv, err := readUpload(c, "cv", h.maxCVSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	req.CV = cv

	instructor, err := h.instructors.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, instructor)
}

// SalaryStats godoc
// @Summary Instructor salary aggregates
// @Tags Instructors
// @Produce json
// @Param majorId query string false "Restrict to one major"
// @Success 200 {object} response.Envelope
// @Router /instructors/salary-stats [get]
func (h *InstructorHandler) SalaryStats(c *gin.Context) {
	stats, err := h.instructors.SalaryStats(c.Request.Context(), c.Query("majorId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

func parseDateField(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func readUpload(c *gin.Context, field string, maxSize int64) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s file is required", field))
	}
	if fileHeader.Size > maxSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s exceeds the maximum size of %d bytes", field, maxSize))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload")
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload")
	}
	if int64(len(data)) > maxSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s exceeds the maximum size of %d bytes", field, maxSize))
	}
	return data, nil
}
