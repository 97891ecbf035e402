package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gomart/internal/models"
	"gomart/internal/services"
)

type OrderHandler struct {
	orderService    services.OrderService
	customerService services.CustomerService
}

func NewOrderHandler(orderService services.OrderService, customerService services.CustomerService) *OrderHandler {
	return &OrderHandler{orderService: orderService, customerService: customerService}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// orderIdentity returns the caller's customer ID (empty for staff) and whether
// the caller may see arbitrary orders.
func (h *OrderHandler) orderIdentity(c *gin.Context) (customerID string, staff, ok bool) {
	if currentRole(c).IsStaff() {
		return "", true, true
	}
	customerID, ok = ownCustomerID(c, h.customerService)
	return customerID, false, ok
}

// @Summary      Create an order from the cart
// @Description  Snapshots prices, decrements stock and clears the cart in one transaction
// @Tags         Orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        order  body      models.CreateOrderRequest  true  "Delivery address"
// @Success      201    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Failure      409    {object}  map[string]interface{}
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	customerID, ok := ownCustomerID(c, h.customerService)
	if !ok {
		return
	}
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	order, err := h.orderService.CreateFromCart(customerID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Order placed", gin.H{"order": order})
}

// @Summary      List own orders
// @Tags         Orders
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query     int  false  "Page size"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {object}  map[string]interface{}
// @Router       /api/orders [get]
func (h *OrderHandler) ListOwn(c *gin.Context) {
	customerID, ok := ownCustomerID(c, h.customerService)
	if !ok {
		return
	}
	limit, offset := pagination(c)
	orders, err := h.orderService.ListOwn(customerID, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{"orders": orders})
}

// @Summary      List all orders
// @Tags         Orders
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query     int  false  "Page size"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {object}  map[string]interface{}
// @Router       /api/admin/orders [get]
func (h *OrderHandler) ListAll(c *gin.Context) {
	limit, offset := pagination(c)
	orders, err := h.orderService.ListAll(limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{"orders": orders})
}

// @Summary      Get an order
// @Tags         Orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	customerID, staff, ok := h.orderIdentity(c)
	if !ok {
		return
	}
	order, err := h.orderService.Get(id, customerID, staff)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{"order": order})
}

// @Summary      Update an order's status
// @Tags         Orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id      path      int                       true  "Order ID"
// @Param        status  body      updateOrderStatusRequest  true  "Target status"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  map[string]interface{}
// @Router       /api/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.orderService.UpdateStatus(id, models.OrderStatus(req.Status)); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Order status updated", nil)
}

// @Summary      Cancel own order
// @Tags         Orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	customerID, ok := ownCustomerID(c, h.customerService)
	if !ok {
		return
	}
	if err := h.orderService.Cancel(id, customerID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Order cancelled", nil)
}

// @Summary      Get an order's payment
// @Tags         Orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/orders/{id}/payment [get]
func (h *OrderHandler) GetPayment(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	customerID, staff, ok := h.orderIdentity(c)
	if !ok {
		return
	}
	payment, err := h.orderService.GetPayment(id, customerID, staff)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{"payment": payment})
}

// @Summary      Mark an order's payment as completed
// @Tags         Orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/orders/{id}/payment/complete [post]
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.orderService.MarkPaid(id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Payment completed", nil)
}

// @Summary      Download the order invoice
// @Tags         Orders
// @Security     BearerAuth
// @Produce      application/pdf
// @Param        id   path  int  true  "Order ID"
// @Success      200  {file}  binary
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/orders/{id}/invoice [get]
func (h *OrderHandler) Invoice(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	customerID, staff, ok := h.orderIdentity(c)
	if !ok {
		return
	}
	data, err := h.orderService.Invoice(id, customerID, staff)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice_%d.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", data)
}
