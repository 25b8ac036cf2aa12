package services

import (
	"context"
	"fmt"
	"time"

	"foodiehub/models"
	"foodiehub/store"
)

// Notifier receives order events, e.g. for pushing to admin dashboards.
type Notifier interface {
	OrderCreated(order *models.Order)
	OrderUpdated(order *models.Order)
}

// OrderService builds orders against the catalog, owns the status state
// machine and answers identity-scoped listings.
type OrderService struct {
	orders   store.Orders
	catalog  *CatalogService
	notifier Notifier
}

func NewOrderService(orders store.Orders, catalog *CatalogService, notifier Notifier) *OrderService {
	return &OrderService{orders: orders, catalog: catalog, notifier: notifier}
}

// Create validates the requested lines against the catalog and persists the
// order in one write. The total is recomputed from catalog prices; any
// price or total the caller declared is discarded. A failure at any step
// writes nothing.
func (s *OrderService) Create(ctx context.Context, identity models.Identity, req models.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", models.ErrValidation)
	}
	for i, line := range req.Items {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: items[%d].quantity must be at least 1", models.ErrValidation, i)
		}
	}

	lines := make([]models.OrderLine, 0, len(req.Items))
	total := 0
	for _, line := range req.Items {
		item, err := s.catalog.Resolve(ctx, line.MenuItem)
		if err != nil {
			return nil, err
		}
		lines = append(lines, models.OrderLine{
			MenuItemID: item.ItemID,
			Name:       item.Name,
			Quantity:   line.Quantity,
			Price:      item.Price,
		})
		total += item.Price * line.Quantity
	}

	now := time.Now().UTC()
	order := &models.Order{
		OrderID:       store.NewID(),
		UserID:        identity.UserID,
		CustomerName:  req.CustomerName,
		Phone:         req.Phone,
		Address:       req.Address,
		Items:         lines,
		TotalAmount:   total,
		PaymentMethod: req.PaymentMethod,
		Status:        models.StatusPending,
		StatusHistory: []models.StatusChange{
			{Status: models.StatusPending, ChangedAt: now, ChangedBy: identity.UserID},
		},
		CreatedAt: now,
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.OrderCreated(order)
	}
	return order, nil
}

// Get returns a single order, visible to its owner and to admins.
func (s *OrderService) Get(ctx context.Context, identity models.Identity, orderID string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() && order.UserID != identity.UserID {
		return nil, fmt.Errorf("%w: not your order", models.ErrForbidden)
	}
	return order, nil
}

// Advance moves an order to the target status. Existence is checked first,
// then authorization, then transition legality; the final conditional write
// serializes racing callers, the loser observing models.ErrConflict.
//
// Forward moves (confirmed and beyond) are admin-only. Cancellation is open
// to the owner and admins, but only from pending or confirmed; afterwards
// it is forbidden rather than an illegal transition, matching the customer
// facing "too late to cancel" rule.
func (s *OrderService) Advance(ctx context.Context, identity models.Identity, orderID string, target models.OrderStatus) (*models.Order, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrValidation, target)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if target == models.StatusCancelled {
		if !identity.IsAdmin() && order.UserID != identity.UserID {
			return nil, fmt.Errorf("%w: not your order", models.ErrForbidden)
		}
		if order.Status != models.StatusPending && order.Status != models.StatusConfirmed {
			return nil, fmt.Errorf("%w: order can no longer be cancelled", models.ErrForbidden)
		}
	} else if !identity.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins may update order status", models.ErrForbidden)
	}

	if !order.Status.CanTransition(target) {
		return nil, fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, order.Status, target)
	}

	change := models.StatusChange{
		Status:    target,
		ChangedAt: time.Now().UTC(),
		ChangedBy: identity.UserID,
	}
	updated, err := s.orders.AppendStatus(ctx, orderID, order.Status, change)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.OrderUpdated(updated)
	}
	return updated, nil
}

// ListMine returns the caller's orders, most recent first.
func (s *OrderService) ListMine(ctx context.Context, identity models.Identity) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, identity.UserID)
}

// ListAll returns every order; admin only.
func (s *OrderService) ListAll(ctx context.Context, identity models.Identity) ([]models.Order, error) {
	if !identity.IsAdmin() {
		return nil, fmt.Errorf("%w: admin only", models.ErrForbidden)
	}
	return s.orders.ListAll(ctx)
}
