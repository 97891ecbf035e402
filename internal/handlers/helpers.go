package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gomart/internal/authz"
	"gomart/internal/middleware"
	"gomart/internal/services"
)

// Every endpoint answers with the same envelope:
//
//	{"success": true,  "message": "...", "data": {...}}
//	{"success": false, "error": {"code": "...", "message": "...", "details": ...}}

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, code, message string, details interface{}) {
	errBody := gin.H{"code": code, "message": message}
	if details != nil {
		errBody["details"] = details
	}
	c.JSON(status, gin.H{"success": false, "error": errBody})
}

func respondBindError(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
}

// respondServiceError translates a business-rule failure into an HTTP status
// and a stable error code. Unknown errors become a logged 500.
func respondServiceError(c *gin.Context, err error) {
	var weak *services.WeakPasswordError
	if errors.As(err, &weak) {
		respondError(c, http.StatusBadRequest, "weak_password", "password does not meet requirements", weak.Violations)
		return
	}
	var badCode *services.InvalidCodeError
	if errors.As(err, &badCode) {
		respondError(c, http.StatusBadRequest, "invalid_code", "invalid verification code",
			gin.H{"attempts_left": badCode.AttemptsLeft})
		return
	}

	switch {
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrPhoneTaken):
		respondError(c, http.StatusConflict, "already_exists", err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "invalid_credentials", err.Error(), nil)
	case errors.Is(err, services.ErrAccountNotActive),
		errors.Is(err, services.ErrAccountLocked),
		errors.Is(err, services.ErrAccountSuspended):
		respondError(c, http.StatusForbidden, "account_status", err.Error(), nil)
	case errors.Is(err, services.ErrNoVerification),
		errors.Is(err, services.ErrCodeExpired):
		respondError(c, http.StatusBadRequest, "verification", err.Error(), nil)
	case errors.Is(err, services.ErrTooManyAttempts):
		respondError(c, http.StatusTooManyRequests, "too_many_attempts", err.Error(), nil)
	case errors.Is(err, services.ErrResendThrottled):
		respondError(c, http.StatusTooManyRequests, "throttled", err.Error(), nil)
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, services.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case errors.Is(err, services.ErrSamePassword),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrEmptyCart):
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	case errors.Is(err, services.ErrOutOfStock):
		respondError(c, http.StatusConflict, "out_of_stock", err.Error(), nil)
	default:
		log.Printf("[http] internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		respondError(c, http.StatusInternalServerError, "internal", "internal server error", nil)
	}
}

// ==================== context accessors ====================

func currentUserID(c *gin.Context) (int, bool) {
	v, ok := c.Get(middleware.CtxUserID)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	}
	return 0, false
}

func currentRole(c *gin.Context) authz.Role {
	v, _ := c.Get(middleware.CtxRole)
	role, _ := v.(authz.Role)
	return role
}

// ==================== query helpers ====================

func pagination(c *gin.Context) (limit, offset int) {
	limit = 20
	offset = 0
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && v >= 0 {
		offset = v
	}
	return
}

func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid "+name, nil)
		return 0, false
	}
	return v, true
}
