package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gomart/internal/models"
	"gomart/internal/services"
)

type CustomerHandler struct {
	customerService services.CustomerService
}

func NewCustomerHandler(customerService services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

type updateCustomerStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// @Summary      Search customers
// @Tags         Customers
// @Security     BearerAuth
// @Produce      json
// @Param        q       query     string  false  "Name, email or phone fragment"
// @Param        limit   query     int     false  "Page size"
// @Param        offset  query     int     false  "Page offset"
// @Success      200     {object}  map[string]interface{}
// @Router       /api/customers [get]
func (h *CustomerHandler) Search(c *gin.Context) {
	limit, offset := pagination(c)
	customers, total, err := h.customerService.Search(c.Query("q"), limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{
		"customers": customers,
		"total":     total,
	})
}

// @Summary      Get a customer
// @Tags         Customers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.customerService.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{"customer": customer})
}

// @Summary      Change a customer's account status
// @Description  Applies LOCKED/SUSPENDED/ACTIVE transitions per the status model
// @Tags         Customers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id      path      string                       true  "Customer ID"
// @Param        status  body      updateCustomerStatusRequest  true  "Target status"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  map[string]interface{}
// @Router       /api/customers/{id}/status [put]
func (h *CustomerHandler) UpdateStatus(c *gin.Context) {
	var req updateCustomerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	customer, err := h.customerService.UpdateStatus(c.Param("id"), models.AccountStatus(req.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Status updated", gin.H{"customer": customer})
}

// @Summary      Delete a customer
// @Tags         Customers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.customerService.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Customer deleted", nil)
}

// @Summary      Delete own customer account
// @Tags         Customers
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/customers/me [delete]
func (h *CustomerHandler) DeleteOwn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "no user in context", nil)
		return
	}
	if err := h.customerService.DeleteOwn(userID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Account deleted", nil)
}
