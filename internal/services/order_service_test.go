package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomart/internal/models"
	"gomart/internal/pdf"
	"gomart/internal/repositories"
)

// ==================== fakes ====================

type fakeCartRepo struct {
	items map[string][]*models.CartItem
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: map[string][]*models.CartItem{}}
}

func (r *fakeCartRepo) AddItem(customerID string, productID, quantity int) error {
	r.items[customerID] = append(r.items[customerID], &models.CartItem{
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
	})
	return nil
}

func (r *fakeCartRepo) ListByCustomer(customerID string) ([]*models.CartItem, error) {
	return r.items[customerID], nil
}

func (r *fakeCartRepo) RemoveItem(customerID string, itemID int) error { return nil }
func (r *fakeCartRepo) Clear(customerID string) error {
	delete(r.items, customerID)
	return nil
}

type fakeOrderRepo struct {
	orders       map[int]*models.Order
	nextID       int
	failStock    bool
	clearedCarts []string
	restocked    []int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[int]*models.Order{}, nextID: 1}
}

func (r *fakeOrderRepo) Place(order *models.Order, items []*models.OrderItem) error {
	if r.failStock {
		return repositories.ErrInsufficientStock
	}
	order.ID = r.nextID
	r.nextID++
	order.Items = items
	r.orders[order.ID] = order
	r.clearedCarts = append(r.clearedCarts, order.CustomerID)
	return nil
}

func (r *fakeOrderRepo) GetByID(id int) (*models.Order, error) { return r.orders[id], nil }

func (r *fakeOrderRepo) ListByCustomer(customerID string, limit, offset int) ([]*models.Order, error) {
	var res []*models.Order
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			res = append(res, o)
		}
	}
	return res, nil
}

func (r *fakeOrderRepo) ListAll(limit, offset int) ([]*models.Order, error) {
	var res []*models.Order
	for _, o := range r.orders {
		res = append(res, o)
	}
	return res, nil
}

func (r *fakeOrderRepo) UpdateStatus(id int, status models.OrderStatus) error {
	if o, ok := r.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (r *fakeOrderRepo) Cancel(id int) error {
	if o, ok := r.orders[id]; ok {
		o.Status = models.OrderCancelled
		r.restocked = append(r.restocked, id)
	}
	return nil
}

type fakePaymentRepo struct {
	payments map[int]*models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[int]*models.Payment{}}
}

func (r *fakePaymentRepo) GetByOrderID(orderID int) (*models.Payment, error) {
	return r.payments[orderID], nil
}

func (r *fakePaymentRepo) UpdateStatus(id int, status models.PaymentStatus) error { return nil }

func (r *fakePaymentRepo) MarkPaid(orderID int) error {
	if p, ok := r.payments[orderID]; ok {
		p.Status = models.PaymentCompleted
	}
	return nil
}

// ==================== fixture ====================

type orderFixture struct {
	svc      OrderService
	cart     *fakeCartRepo
	orders   *fakeOrderRepo
	payments *fakePaymentRepo
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	cart := newFakeCartRepo()
	orders := newFakeOrderRepo()
	payments := newFakePaymentRepo()
	svc := NewOrderService(orders, payments, cart, pdf.NewInvoiceGenerator("GoMart"))
	return &orderFixture{svc: svc, cart: cart, orders: orders, payments: payments}
}

func (f *orderFixture) fillCart(customerID string) {
	f.cart.items[customerID] = []*models.CartItem{
		{ProductID: 1, Quantity: 2, Product: &models.Product{ID: 1, Name: "Keyboard", Price: 45.50}},
		{ProductID: 2, Quantity: 1, Product: &models.Product{ID: 2, Name: "Mouse", Price: 19.99}},
	}
}

// ==================== tests ====================

func TestCreateFromCart(t *testing.T) {
	f := newOrderFixture(t)
	f.fillCart("CUST1")

	order, err := f.svc.CreateFromCart("CUST1", &models.CreateOrderRequest{Address: "1 Main St"})
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.InDelta(t, 2*45.50+19.99, order.Total, 0.001)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Keyboard", order.Items[0].Name)
	assert.Equal(t, 45.50, order.Items[0].UnitPrice)
	assert.Contains(t, f.orders.clearedCarts, "CUST1")
}

func TestCreateFromEmptyCart(t *testing.T) {
	f := newOrderFixture(t)
	_, err := f.svc.CreateFromCart("CUST1", &models.CreateOrderRequest{Address: "1 Main St"})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateFromCartOutOfStock(t *testing.T) {
	f := newOrderFixture(t)
	f.fillCart("CUST1")
	f.orders.failStock = true

	_, err := f.svc.CreateFromCart("CUST1", &models.CreateOrderRequest{Address: "1 Main St"})
	assert.ErrorIs(t, err, ErrOutOfStock)
}

func TestGetOrderOwnership(t *testing.T) {
	f := newOrderFixture(t)
	f.fillCart("CUST1")

	order, err := f.svc.CreateFromCart("CUST1", &models.CreateOrderRequest{Address: "1 Main St"})
	require.NoError(t, err)

	_, err = f.svc.Get(order.ID, "CUST1", false)
	assert.NoError(t, err)

	_, err = f.svc.Get(order.ID, "CUST2", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// staff see everything
	_, err = f.svc.Get(order.ID, "", true)
	assert.NoError(t, err)

	_, err = f.svc.Get(999, "CUST1", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderStatusTransitions(t *testing.T) {
	f := newOrderFixture(t)
	f.fillCart("CUST1")

	order, err := f.svc.CreateFromCart("CUST1", &models.CreateOrderRequest{Address: "1 Main St"})
	require.NoError(t, err)

	// pending cannot jump straight to delivered
	err = f.svc.UpdateStatus(order.ID, models.OrderDelivered)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, f.svc.UpdateStatus(order.ID, models.OrderProcessing))
	require.NoError(t, f.svc.UpdateStatus(order.ID, models.OrderShipped))
	require.NoError(t, f.svc.UpdateStatus(order.ID, models.OrderDelivered))

	// delivered is terminal
	err = f.svc.UpdateStatus(order.ID, models.OrderCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelOrder(t *testing.T) {
	f := newOrderFixture(t)
	f.fillCart("CUST1")

	order, err := f.svc.CreateFromCart("CUST1", &models.CreateOrderRequest{Address: "1 Main St"})
	require.NoError(t, err)

	err = f.svc.Cancel(order.ID, "CUST2")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, f.svc.Cancel(order.ID, "CUST1"))
	assert.Equal(t, models.OrderCancelled, f.orders.orders[order.ID].Status)
	// cancelling returns the ordered quantities to stock
	assert.Contains(t, f.orders.restocked, order.ID)

	// a shipped order cannot be cancelled
	f.fillCart("CUST1")
	order2, err := f.svc.CreateFromCart("CUST1", &models.CreateOrderRequest{Address: "1 Main St"})
	require.NoError(t, err)
	require.NoError(t, f.svc.UpdateStatus(order2.ID, models.OrderProcessing))
	require.NoError(t, f.svc.UpdateStatus(order2.ID, models.OrderShipped))
	err = f.svc.Cancel(order2.ID, "CUST1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestStaffCancelRestocks(t *testing.T) {
	f := newOrderFixture(t)
	f.fillCart("CUST1")

	order, err := f.svc.CreateFromCart("CUST1", &models.CreateOrderRequest{Address: "1 Main St"})
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateStatus(order.ID, models.OrderProcessing))
	assert.Empty(t, f.orders.restocked)

	require.NoError(t, f.svc.UpdateStatus(order.ID, models.OrderCancelled))
	assert.Equal(t, models.OrderCancelled, f.orders.orders[order.ID].Status)
	assert.Contains(t, f.orders.restocked, order.ID)
}

func TestMarkPaid(t *testing.T) {
	f := newOrderFixture(t)
	f.fillCart("CUST1")

	order, err := f.svc.CreateFromCart("CUST1", &models.CreateOrderRequest{Address: "1 Main St"})
	require.NoError(t, err)
	f.payments.payments[order.ID] = &models.Payment{OrderID: order.ID, Amount: order.Total, Method: "cod", Status: models.PaymentPending}

	require.NoError(t, f.svc.MarkPaid(order.ID))
	assert.Equal(t, models.PaymentCompleted, f.payments.payments[order.ID].Status)

	assert.ErrorIs(t, f.svc.MarkPaid(999), ErrNotFound)
}

func TestInvoice(t *testing.T) {
	f := newOrderFixture(t)
	f.fillCart("CUST1")

	order, err := f.svc.CreateFromCart("CUST1", &models.CreateOrderRequest{Address: "1 Main St"})
	require.NoError(t, err)
	f.payments.payments[order.ID] = &models.Payment{OrderID: order.ID, Amount: order.Total, Method: "cod", Status: models.PaymentPending}

	data, err := f.svc.Invoice(order.ID, "CUST1", false)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))

	_, err = f.svc.Invoice(order.ID, "CUST2", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
