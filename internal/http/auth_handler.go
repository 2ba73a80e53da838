package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tour-package-service/internal/domain/dto"
	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/i18n"
	"github.com/guttosm/tour-package-service/internal/middleware"
	"github.com/guttosm/tour-package-service/internal/service"
)

// AuthHandler provides HTTP handlers for authentication routes.
type AuthHandler struct {
	authService service.AuthService
	audit       middleware.LogSink
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authService service.AuthService, audit middleware.LogSink) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		audit:       audit,
	}
}

// Login handles POST /api/auth/login requests.
//
// @Summary      Login
// @Description  Authenticates a back-office user and returns a JWT access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login credentials"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful login"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid credentials"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.LoginRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.AuditLogError(h.audit, c, model.ActionLogin, "login failed", err, map[string]any{
			"email": req.Email,
		})
		builder.Fail(err)
		return
	}

	c.Set(middleware.ContextUserID, resp.User.ID)
	c.Set(middleware.ContextUserEmail, resp.User.Email)
	middleware.AuditLog(h.audit, c, model.ActionLogin, "login succeeded", nil)

	builder.SuccessOK(resp)
}

// Me handles GET /api/auth/me requests.
//
// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.UserResponse}
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Security     BearerAuth
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	builder := NewResponseBuilder(c)

	claims, ok := middleware.GetClaims(c)
	if !ok {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyTokenRequired, nil)
		return
	}

	user, err := h.authService.Me(c.Request.Context(), claims.UserID)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(user)
}
