package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gomart/internal/models"
	"gomart/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// @Summary      List users
// @Tags         Users
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query     int  false  "Page size"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {object}  map[string]interface{}
// @Router       /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	users, err := h.userService.ListUsers(limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	total, err := h.userService.GetUserCount()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{
		"users": users,
		"total": total,
	})
}

// @Summary      User count
// @Tags         Users
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/users/count [get]
func (h *UserHandler) Count(c *gin.Context) {
	total, err := h.userService.GetUserCount()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{"total": total})
}

// @Summary      Get a user by id
// @Tags         Users
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if user == nil {
		respondServiceError(c, services.ErrNotFound)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{"user": user})
}

// @Summary      Update own profile
// @Tags         Users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        profile  body      models.UpdateProfileRequest  true  "Profile fields"
// @Success      200      {object}  map[string]interface{}
// @Router       /api/users/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "no user in context", nil)
		return
	}
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Profile updated", gin.H{"user": user})
}

// @Summary      Update a user's profile
// @Tags         Users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                          true  "User ID"
// @Param        profile  body      models.UpdateProfileRequest  true  "Profile fields"
// @Success      200      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]interface{}
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := h.userService.UpdateProfile(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "User updated", gin.H{"user": user})
}

// @Summary      Delete a user
// @Tags         Users
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.userService.DeleteUser(id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "User deleted", nil)
}
