package services

import (
	"errors"
	"fmt"
	"log"

	"gomart/internal/models"
	"gomart/internal/pdf"
	"gomart/internal/repositories"
)

type OrderService interface {
	CreateFromCart(customerID string, req *models.CreateOrderRequest) (*models.Order, error)
	Get(id int, customerID string, staff bool) (*models.Order, error)
	ListOwn(customerID string, limit, offset int) ([]*models.Order, error)
	ListAll(limit, offset int) ([]*models.Order, error)
	UpdateStatus(id int, status models.OrderStatus) error
	Cancel(id int, customerID string) error
	GetPayment(orderID int, customerID string, staff bool) (*models.Payment, error)
	MarkPaid(orderID int) error
	Invoice(orderID int, customerID string, staff bool) ([]byte, error)
}

type orderService struct {
	orders   repositories.OrderRepository
	payments repositories.PaymentRepository
	cart     repositories.CartRepository
	invoices *pdf.InvoiceGenerator
}

func NewOrderService(orders repositories.OrderRepository, payments repositories.PaymentRepository, cart repositories.CartRepository, invoices *pdf.InvoiceGenerator) OrderService {
	return &orderService{orders: orders, payments: payments, cart: cart, invoices: invoices}
}

// CreateFromCart turns the customer's cart into a pending order. Prices are
// snapshotted from the catalog at order time; the cart is cleared as part of
// the same transaction.
func (s *orderService) CreateFromCart(customerID string, req *models.CreateOrderRequest) (*models.Order, error) {
	cartItems, err := s.cart.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		CustomerID: customerID,
		Status:     models.OrderPending,
		Address:    req.Address,
	}
	items := make([]*models.OrderItem, 0, len(cartItems))
	for _, ci := range cartItems {
		items = append(items, &models.OrderItem{
			ProductID: ci.ProductID,
			Name:      ci.Product.Name,
			Quantity:  ci.Quantity,
			UnitPrice: ci.Product.Price,
		})
		order.Total += float64(ci.Quantity) * ci.Product.Price
	}

	if err := s.orders.Place(order, items); err != nil {
		if errors.Is(err, repositories.ErrInsufficientStock) {
			return nil, ErrOutOfStock
		}
		return nil, err
	}
	log.Printf("[order][create] order %d placed by %s, total %.2f", order.ID, customerID, order.Total)
	return order, nil
}

// Get returns the order. Customers only see their own orders; staff see all.
func (s *orderService) Get(id int, customerID string, staff bool) (*models.Order, error) {
	o, err := s.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrNotFound
	}
	if !staff && o.CustomerID != customerID {
		return nil, ErrPermissionDenied
	}
	return o, nil
}

func (s *orderService) ListOwn(customerID string, limit, offset int) ([]*models.Order, error) {
	return s.orders.ListByCustomer(customerID, limit, offset)
}

func (s *orderService) ListAll(limit, offset int) ([]*models.Order, error) {
	return s.orders.ListAll(limit, offset)
}

func (s *orderService) UpdateStatus(id int, status models.OrderStatus) error {
	o, err := s.orders.GetByID(id)
	if err != nil {
		return err
	}
	if o == nil {
		return ErrNotFound
	}
	if !CanTransitionOrder(o.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, status)
	}
	if status == models.OrderCancelled {
		// cancellation also puts the ordered quantities back in stock
		err = s.orders.Cancel(id)
	} else {
		err = s.orders.UpdateStatus(id, status)
	}
	if err != nil {
		return err
	}
	log.Printf("[order][status] order %d: %s -> %s", id, o.Status, status)
	return nil
}

// Cancel lets the owning customer cancel an order that has not shipped yet.
func (s *orderService) Cancel(id int, customerID string) error {
	o, err := s.orders.GetByID(id)
	if err != nil {
		return err
	}
	if o == nil {
		return ErrNotFound
	}
	if o.CustomerID != customerID {
		return ErrPermissionDenied
	}
	if !CanTransitionOrder(o.Status, models.OrderCancelled) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, models.OrderCancelled)
	}
	return s.orders.Cancel(id)
}

func (s *orderService) GetPayment(orderID int, customerID string, staff bool) (*models.Payment, error) {
	if _, err := s.Get(orderID, customerID, staff); err != nil {
		return nil, err
	}
	p, err := s.payments.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *orderService) MarkPaid(orderID int) error {
	o, err := s.orders.GetByID(orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return ErrNotFound
	}
	if err := s.payments.MarkPaid(orderID); err != nil {
		return err
	}
	log.Printf("[order][payment] order %d marked paid", orderID)
	return nil
}

func (s *orderService) Invoice(orderID int, customerID string, staff bool) ([]byte, error) {
	o, err := s.Get(orderID, customerID, staff)
	if err != nil {
		return nil, err
	}
	p, err := s.payments.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	return s.invoices.Generate(o, p)
}
