package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/dto"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/model"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/i18n"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/middleware"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/service"
)

// AuthHandler provides HTTP handlers for authentication routes.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// auditLogError writes a failed-action audit entry when the logging service is
// wired into the request context.
func auditLogError(c *gin.Context, actionType, message string, err error, fields map[string]interface{}) {
	if loggingService, exists := c.Get("logging_service"); exists {
		if ls, ok := loggingService.(service.LoggingService); ok {
			middleware.AuditLogError(ls, c, actionType, message, err, fields)
		}
	}
}

// rejectBindError writes the 400 for a failed bind, using the field message
// for validation errors and a generic translated message otherwise.
func rejectBindError(builder *ResponseBuilder, err error) {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		builder.ErrorWithMessage(http.StatusBadRequest, verr.Error(), err)
		return
	}
	builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
}

// sessionResponse assembles the login envelope shared by login, register and
// refresh. The user may be nil for refresh responses.
func sessionResponse(pair *dto.TokenPair, user *model.User) dto.LoginResponse {
	resp := dto.LoginResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
	if user != nil {
		resp.User = dto.UserResponse{Email: user.Email, Name: user.Name}
	}
	return resp
}

// Login handles POST /api/auth/login requests.
//
// @Summary      Login user
// @Description  Authenticates a user and returns a JWT token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login credentials"
// @Success      200 {object} dto.LoginResponse "Successful login"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid credentials"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindAndValidate[dto.LoginRequest](c)
	if err != nil {
		rejectBindError(builder, err)
		return
	}

	tokenPair, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		auditLogError(c, "login_failed", "Failed login attempt", err, map[string]interface{}{
			"email": req.Email,
		})
		message := i18n.GetTranslator().Translate(i18n.ErrKeyInvalidCredentials, i18n.GetLocale(c))
		builder.ErrorWithMessage(http.StatusUnauthorized, message, err)
		return
	case err != nil:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	c.Set("user_id", user.ID)
	c.Set("user_email", user.Email)
	auditLog(c, "login", "User logged in successfully", map[string]interface{}{
		"email": user.Email,
	})

	builder.SuccessOK(sessionResponse(tokenPair, user))
}

// Register handles POST /api/auth/register requests.
//
// @Summary      Register new user
// @Description  Creates a new user account and returns a JWT token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "Registration information"
// @Success      201 {object} dto.LoginResponse "Successful registration"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      409 {object} dto.ErrorResponse "Conflict - user already exists"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindAndValidate[dto.RegisterRequest](c)
	if err != nil {
		rejectBindError(builder, err)
		return
	}

	tokenPair, user, err := h.authService.Register(c.Request.Context(), req.Email, req.Username, req.Password, req.Name)
	switch {
	case errors.Is(err, service.ErrUserExists):
		auditLogError(c, "register_failed", "Failed registration attempt - user already exists", err, map[string]interface{}{
			"email": req.Email,
		})
		message := i18n.GetTranslator().Translate(i18n.ErrKeyConflict, i18n.GetLocale(c))
		builder.ErrorWithMessage(http.StatusConflict, message, err)
		return
	case err != nil:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	c.Set("user_id", user.ID)
	c.Set("user_email", user.Email)
	auditLog(c, "register", "New user registered successfully", map[string]interface{}{
		"email": user.Email,
		"name":  user.Name,
	})

	builder.SuccessCreated(sessionResponse(tokenPair, user))
}

// RefreshToken handles POST /api/auth/refresh requests.
//
// @Summary      Refresh access token
// @Description  Generates a new access token using a refresh token. Refresh token is extracted from the X-Refresh-Token header.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        X-Refresh-Token header string true "Refresh token"
// @Success      200 {object} dto.LoginResponse "Successful token refresh"
// @Failure      400 {object} dto.ErrorResponse "Bad request - missing refresh token"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid refresh token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	builder := NewResponseBuilder(c)

	refreshToken := c.GetHeader("X-Refresh-Token")
	if refreshToken == "" {
		builder.ErrorWithMessage(http.StatusBadRequest, "X-Refresh-Token header is required", nil)
		return
	}

	tokenPair, err := h.authService.RefreshToken(c.Request.Context(), refreshToken)
	switch {
	case errors.Is(err, service.ErrInvalidToken):
		message := i18n.GetTranslator().Translate(i18n.ErrKeyInvalidToken, i18n.GetLocale(c))
		builder.ErrorWithMessage(http.StatusUnauthorized, message, err)
		return
	case err != nil:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(sessionResponse(tokenPair, nil))
}

// Logout handles POST /api/auth/logout requests.
//
// @Summary      Logout user
// @Description  Invalidates access and refresh tokens. Access token is extracted from the Authorization header, refresh token from the X-Refresh-Token header.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization header string true "Bearer token" default(Bearer )
// @Param        X-Refresh-Token header string true "Refresh token"
// @Success      200 {object} dto.SuccessResponse "Successful logout"
// @Failure      400 {object} dto.ErrorResponse "Bad request - missing refresh token"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	builder := NewResponseBuilder(c)

	const bearerPrefix = "Bearer "
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		builder.ErrorWithMessage(http.StatusUnauthorized, "invalid authorization header", nil)
		return
	}
	accessToken := strings.TrimPrefix(authHeader, bearerPrefix)
	if accessToken == "" {
		builder.ErrorWithMessage(http.StatusUnauthorized, "access token required", nil)
		return
	}

	refreshToken := c.GetHeader("X-Refresh-Token")
	if refreshToken == "" {
		builder.ErrorWithMessage(http.StatusBadRequest, "X-Refresh-Token header is required", nil)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), accessToken, refreshToken); err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	auditLog(c, "logout", "User logged out successfully", nil)
	builder.SuccessOK(map[string]string{"message": "Logged out successfully"})
}
