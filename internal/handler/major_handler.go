package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusware/university-api/internal/models"
	"github.com/campusware/university-api/internal/service"
	appErrors "github.com/campusware/university-api/pkg/errors"
	"github.com/campusware/university-api/pkg/response"
)

// MajorHandler exposes major endpoints.
type MajorHandler struct {
	majors *service.MajorService
}

// NewMajorHandler constructs MajorHandler.
func NewMajorHandler(majors *service.MajorService) *MajorHandler {
	return &MajorHandler{majors: majors}
}

// List godoc
// @Summary List majors of a department
// @Tags Majors
// @Produce json
// @Param departmentId query string true "Department ID"
// @Param search query string false "Search by major name"
// @Param sort query string false "Sort order asc|desc"
// @Success 200 {object} response.Envelope
// @Router /majors [get]
func (h *MajorHandler) List(c *gin.Context) {
	filter := models.MajorFilter{
		DepartmentID: c.Query("departmentId"),
		Search:       strings.TrimSpace(c.Query("search")),
		Sort:         c.Query("sort"),
	}
	majors, err := h.majors.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, majors)
}

// Create godoc
// @Summary Create major
// @Tags Majors
// @Accept json
// @Produce json
// @Param payload body service.CreateMajorRequest true "Major payload"
// @Success 201 {object} response.Envelope
// @Router /majors [post]
func (h *MajorHandler) Create(c *gin.Context) {
	var req service.CreateMajorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	major, err := h.majors.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, major)
}
