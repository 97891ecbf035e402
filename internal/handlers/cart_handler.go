package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gomart/internal/models"
	"gomart/internal/services"
)

type CartHandler struct {
	cartService     services.CartService
	customerService services.CustomerService
}

func NewCartHandler(cartService services.CartService, customerService services.CustomerService) *CartHandler {
	return &CartHandler{cartService: cartService, customerService: customerService}
}

// ownCustomerID resolves the authenticated user to their customer record.
func ownCustomerID(c *gin.Context, customers services.CustomerService) (string, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "no user in context", nil)
		return "", false
	}
	customer, err := customers.GetByUserID(userID)
	if err != nil {
		respondServiceError(c, err)
		return "", false
	}
	return customer.CustomerID, true
}

// @Summary      Add an item to the cart
// @Tags         Cart
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        item  body      models.AddCartItemRequest  true  "Product and quantity"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]interface{}
// @Failure      409   {object}  map[string]interface{}
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	customerID, ok := ownCustomerID(c, h.customerService)
	if !ok {
		return
	}
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.cartService.AddItem(customerID, &req); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Item added to cart", nil)
}

// @Summary      List the cart
// @Tags         Cart
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/cart [get]
func (h *CartHandler) List(c *gin.Context) {
	customerID, ok := ownCustomerID(c, h.customerService)
	if !ok {
		return
	}
	items, total, err := h.cartService.List(customerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{
		"items": items,
		"total": total,
	})
}

// @Summary      Remove an item from the cart
// @Tags         Cart
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Cart item ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	customerID, ok := ownCustomerID(c, h.customerService)
	if !ok {
		return
	}
	itemID, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.cartService.RemoveItem(customerID, itemID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Item removed", nil)
}
