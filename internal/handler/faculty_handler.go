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

// FacultyHandler exposes faculty endpoints.
type FacultyHandler struct {
	faculties *service.FacultyService
}

// NewFacultyHandler constructs FacultyHandler.
func NewFacultyHandler(faculties *service.FacultyService) *FacultyHandler {
	return &FacultyHandler{faculties: faculties}
}

// List godoc
// @Summary List faculties of an administrator
// @Tags Faculties
// @Produce json
// @Param adminId query string true "Administrator ID"
// @Param search query string false "Search by faculty name"
// @Param sort query string false "Sort order asc|desc"
// @Success 200 {object} response.Envelope
// @Router /faculties [get]
func (h *FacultyHandler) List(c *gin.Context) {
	filter := models.FacultyFilter{
		AdminID: c.Query("adminId"),
		Search:  strings.TrimSpace(c.Query("search")),
		Sort:    c.Query("sort"),
	}
	// fall back to the signed-in administrator when the query omits the owner
	if filter.AdminID == "" {
		filter.AdminID = currentAdminID(c)
	}
	faculties, err := h.faculties.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faculties)
}

// Create godoc
// @Summary Create faculty
// @Tags Faculties
// @Accept json
// @Produce json
// @Param payload body service.CreateFacultyRequest true "Faculty payload"
// @Success 201 {object} response.Envelope
// @Router /faculties [post]
func (h *FacultyHandler) Create(c *gin.Context) {
	var req service.CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if req.AdminID == "" {
		req.AdminID = currentAdminID(c)
	}
	faculty, err := h.faculties.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, faculty)
}
