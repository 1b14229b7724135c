package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusware/university-api/internal/service"
	appErrors "github.com/campusware/university-api/pkg/errors"
	"github.com/campusware/university-api/pkg/response"
)

// AuthHandler exposes administrator registration and sign-in endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SignUp godoc
// @Summary Register administrator
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body service.SignUpRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req service.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resp, err := h.auth.SignUp(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// SignIn godoc
// @Summary Sign in
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body service.SignInRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /auth/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req service.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resp, err := h.auth.SignIn(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
