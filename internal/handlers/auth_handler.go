package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gomart/internal/authz"
	"gomart/internal/models"
	"gomart/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type verifyRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Code       string `json:"code" binding:"required"`
}

type resendRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Method     string `json:"method"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type forgotPasswordRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Method     string `json:"method"`
}

type resetPasswordRequest struct {
	Identifier  string `json:"identifier" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// @Summary      Register a customer account
// @Description  Creates an INACTIVE account and sends a verification code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        register  body      models.RegisterRequest  true  "Registration data"
// @Success      201       {object}  map[string]interface{}
// @Failure      400       {object}  map[string]interface{}
// @Failure      409       {object}  map[string]interface{}
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, account, customer, info, err := h.authService.RegisterCustomer(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Registration successful, verification code sent", gin.H{
		"user":         user,
		"account":      account,
		"customer_id":  customer.CustomerID,
		"verification": info,
	})
}

// @Summary      Verify a new account
// @Description  Confirms the verification code and activates the account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        verify  body      verifyRequest  true  "Identifier and code"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  map[string]interface{}
// @Failure      429     {object}  map[string]interface{}
// @Router       /api/auth/verify [post]
func (h *AuthHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, account, err := h.authService.VerifyAccount(req.Identifier, req.Code)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Account verified", gin.H{
		"user":    user,
		"account": account,
	})
}

// @Summary      Resend a verification code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        resend  body      resendRequest  true  "Identifier and delivery method"
// @Success      200     {object}  map[string]interface{}
// @Failure      404     {object}  map[string]interface{}
// @Failure      429     {object}  map[string]interface{}
// @Router       /api/auth/resend [post]
func (h *AuthHandler) Resend(c *gin.Context) {
	var req resendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	info, err := h.authService.ResendVerification(req.Identifier, req.Method)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Verification code sent", gin.H{"verification": info})
}

// @Summary      Customer login
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]interface{}
// @Failure      403    {object}  map[string]interface{}
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, account, pair, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Login successful", gin.H{
		"user":    user,
		"account": account,
		"tokens":  pair,
	})
}

// @Summary      Staff login
// @Description  Login surface for admin and employee roles
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.AdminLoginRequest  true  "Credentials and role"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]interface{}
// @Router       /api/auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	role, ok := authz.ParseRole(req.Role)
	if !ok {
		respondError(c, http.StatusBadRequest, "validation_error", "unknown role", nil)
		return
	}
	user, account, pair, err := h.authService.AdminLogin(req.Username, req.Password, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Login successful", gin.H{
		"user":    user,
		"account": account,
		"tokens":  pair,
	})
}

// @Summary      Refresh the token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        refresh  body      refreshRequest  true  "Refresh token"
// @Success      200      {object}  map[string]interface{}
// @Failure      401      {object}  map[string]interface{}
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	pair, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{"tokens": pair})
}

// @Summary      Change own password
// @Tags         Auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        change  body      changePasswordRequest  true  "Old and new password"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  map[string]interface{}
// @Failure      401     {object}  map[string]interface{}
// @Router       /api/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "no user in context", nil)
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.authService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Password changed", nil)
}

// @Summary      Request a password reset code
// @Description  Always answers with the same message so identifiers cannot be probed
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        forgot  body      forgotPasswordRequest  true  "Identifier (email or phone)"
// @Success      200     {object}  map[string]interface{}
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.authService.ForgotPassword(req.Identifier, req.Method); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, services.ForgotPasswordMessage, nil)
}

// @Summary      Reset the password with a verification code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        reset  body      resetPasswordRequest  true  "Identifier, code and new password"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Failure      429    {object}  map[string]interface{}
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.authService.ResetPassword(req.Identifier, req.Code, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Password has been reset", nil)
}

// @Summary      Current user profile
// @Tags         Auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "no user in context", nil)
		return
	}
	user, account, err := h.authService.CurrentUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{
		"user":    user,
		"account": account,
	})
}
