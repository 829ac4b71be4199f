package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
	"github.com/subhoajk39-commits/invvvoice/internal/middleware"
)

// authHandler handles authentication related requests.
type authHandler struct {
	authService portssvc.AuthSvc
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvc, loginLimiter *limiter.Limiter) {
	h := &authHandler{authService: authService}

	login := []gin.HandlerFunc{h.login}
	if loginLimiter != nil {
		login = append([]gin.HandlerFunc{middleware.RateLimit(loginLimiter, middleware.ByClientIP)}, login...)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/login", login...)
	}
}

// login godoc
// @Summary Principal login
// @Description Authenticates a principal by email and password and returns a JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req)
	middleware.RecordLoginAttempt(err == nil)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
			return
		}
		respondError(c, err, "Failed to log in")
		return
	}
	c.JSON(http.StatusOK, res)
}
