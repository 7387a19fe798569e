package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/repository"
	"github.com/chanwihad/DashboardAppApi/internal/transport/http/middleware"
	"github.com/chanwihad/DashboardAppApi/internal/usecase"
)

// AuthHandler exposes authentication and credential lifecycle endpoints.
type AuthHandler struct {
	auth         *usecase.AuthService
	verification *usecase.VerificationService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *usecase.AuthService, verification *usecase.VerificationService) *AuthHandler {
	return &AuthHandler{auth: auth, verification: verification}
}

// RegisterRoutes binds authentication routes. Login and the reset-flow
// endpoints accept an optional rate limiting middleware; change-password
// requires an authenticated session and a signed request.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, requireAuth, requireSignature gin.HandlerFunc, loginLimiter, resetLimiter gin.HandlerFunc) {
	r.POST("/register", h.register)
	r.POST("/login", chain(h.login, loginLimiter)...)
	r.POST("/change-password", chain(h.changePassword, requireAuth, requireSignature)...)
	r.POST("/reset-password", chain(h.resetPassword, resetLimiter)...)
	r.POST("/send-code", chain(h.sendCode, resetLimiter)...)
	r.POST("/verify-code", chain(h.verifyCode, resetLimiter)...)
}

func chain(handler gin.HandlerFunc, mws ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mws)+1)
	for _, mw := range mws {
		if mw != nil {
			out = append(out, mw)
		}
	}
	return append(out, handler)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	id, err := h.auth.Register(c.Request.Context(), domain.User{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		MaxRetry: req.MaxRetry,
	}, req.Password, req.RoleID)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUsernameTaken, Status: http.StatusConflict, Message: "username already taken"},
		}, http.StatusInternalServerError, "registration failed")
		return
	}

	c.JSON(http.StatusCreated, IDResponse{ID: id})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: "invalid credentials"},
			{Err: usecase.ErrAccountLocked, Status: http.StatusForbidden, Message: "account locked"},
			{Err: usecase.ErrAccountDisabled, Status: http.StatusForbidden, Message: "account disabled"},
			{Err: usecase.ErrRoleNotAssigned, Status: http.StatusForbidden, Message: "no role assigned"},
		}, http.StatusInternalServerError, "login failed")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: result.Token,
		User:  toUserSummary(result.User),
		Role:  toRoleDetail(result.Role),
	})
}

func (h *AuthHandler) changePassword(c *gin.Context) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrInvalidCredentials, Status: http.StatusBadRequest, Message: "old password is incorrect"},
		}, http.StatusInternalServerError, "password change failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "password changed"})
}

func (h *AuthHandler) resetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.Email); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "no account for that email"},
		}, http.StatusInternalServerError, "password reset failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "password reset"})
}

func (h *AuthHandler) sendCode(c *gin.Context) {
	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	code, err := h.verification.SendCode(c.Request.Context(), req.Email)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "no account for that email"},
		}, http.StatusInternalServerError, "code delivery failed")
		return
	}

	c.JSON(http.StatusOK, SendCodeResponse{Code: code})
}

func (h *AuthHandler) verifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	if err := h.verification.VerifyCode(c.Request.Context(), req.Email, req.Code); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrCodeInvalid, Status: http.StatusBadRequest, Message: "verification code invalid"},
			{Err: usecase.ErrCodeExpired, Status: http.StatusBadRequest, Message: "verification code expired"},
		}, http.StatusInternalServerError, "code verification failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "code verified"})
}
