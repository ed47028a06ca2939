package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

const currencyPrefix = "Rs"

var ErrInvalidCart = errors.New("invalid cart")

// PaymentDeclinedError is a business failure reported by the gateway.
type PaymentDeclinedError struct {
	Message string
}

func (e *PaymentDeclinedError) Error() string { return e.Message }

type CartLine struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

type CheckoutRequest struct {
	UserID         int64
	Cart           []CartLine
	PaymentMethod  string
	PaymentDetails map[string]any
}

type Receipt struct {
	OrderID       int64
	Total         int64
	TransactionID string
}

type CheckoutService struct {
	Orders   *repos.OrderRepo
	Payments PaymentGateway
}

func NewCheckoutService(orders *repos.OrderRepo, payments PaymentGateway) *CheckoutService {
	return &CheckoutService{Orders: orders, Payments: payments}
}

// ParsePrice reads a display price such as "Rs 1,299" as whole rupees: the
// currency prefix and every thousands separator are dropped and the leading
// integer is kept ("Rs 1,299.50" is 1299).
func ParsePrice(s string) (int64, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimPrefix(v, currencyPrefix)
	v = strings.TrimPrefix(v, ".")
	v = strings.ReplaceAll(strings.TrimSpace(v), ",", "")
	end := 0
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("unparseable price %q", s)
	}
	return strconv.ParseInt(v[:end], 10, 64)
}

// Total parses every cart line and returns the items and their sum.
func Total(cart []CartLine) ([]domain.OrderItem, int64, error) {
	items := make([]domain.OrderItem, 0, len(cart))
	var total int64
	for _, line := range cart {
		price, err := ParsePrice(line.Price)
		if err != nil {
			return nil, 0, err
		}
		total += price * int64(line.Quantity)
		items = append(items, domain.OrderItem{
			ProductTitle: line.Title,
			ProductPrice: price,
			Quantity:     line.Quantity,
		})
	}
	return items, total, nil
}

// Checkout prices the cart, charges it and records the order with its items
// in one transaction.
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (Receipt, error) {
	if len(req.Cart) == 0 {
		return Receipt{}, fmt.Errorf("%w: empty", ErrInvalidCart)
	}
	for _, line := range req.Cart {
		if line.Quantity < 1 {
			return Receipt{}, fmt.Errorf("%w: quantity %d for %q", ErrInvalidCart, line.Quantity, line.Title)
		}
	}

	items, total, err := Total(req.Cart)
	if err != nil {
		return Receipt{}, err
	}

	pay, err := s.Payments.Charge(ctx, Charge{Amount: total, Method: req.PaymentMethod, Details: req.PaymentDetails})
	if err != nil {
		return Receipt{}, fmt.Errorf("payment: %w", err)
	}
	if !pay.Success {
		return Receipt{}, &PaymentDeclinedError{Message: pay.Message}
	}

	orderID, err := s.Orders.CreateWithItems(ctx, domain.Order{
		UserID:        req.UserID,
		TotalAmount:   total,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: domain.PaymentCompleted,
		TransactionID: pay.TransactionID,
	}, items)
	if err != nil {
		return Receipt{}, fmt.Errorf("record order: %w", err)
	}
	return Receipt{OrderID: orderID, Total: total, TransactionID: pay.TransactionID}, nil
}

// History lists the user's orders, newest first.
func (s *CheckoutService) History(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.Orders.ListByUser(ctx, userID)
}
