package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"foodiehub/models"
)

// MemoryUsers is an in-memory Users implementation with the same contract
// as MongoUsers. Used by tests and local development without a database.
type MemoryUsers struct {
	mu    sync.RWMutex
	users map[string]*models.User // keyed by user id
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[string]*models.User)}
}

func (s *MemoryUsers) Insert(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(user.Email)
	for _, u := range s.users {
		if u.Email == email {
			return fmt.Errorf("%w: email already registered", models.ErrConflict)
		}
	}
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	user.Email = email
	clone := *user
	s.users[user.UserID] = &clone
	return nil
}

func (s *MemoryUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email = strings.ToLower(email)
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MemoryUsers) FindByID(ctx context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

type MemoryMenuItems struct {
	mu    sync.RWMutex
	items map[string]*models.MenuItem
}

func NewMemoryMenuItems() *MemoryMenuItems {
	return &MemoryMenuItems{items: make(map[string]*models.MenuItem)}
}

func (s *MemoryMenuItems) Insert(ctx context.Context, item *models.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ItemID == "" {
		item.ItemID = uuid.NewString()
	}
	clone := *item
	s.items[item.ItemID] = &clone
	return nil
}

func (s *MemoryMenuItems) FindByID(ctx context.Context, itemID string) (*models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[itemID]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (s *MemoryMenuItems) List(ctx context.Context) ([]models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.MenuItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

type MemoryOrders struct {
	mu     sync.Mutex
	orders map[string]*models.Order
}

func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{orders: make(map[string]*models.Order)}
}

func (s *MemoryOrders) Insert(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.OrderID == "" {
		order.OrderID = uuid.NewString()
	}
	clone := cloneOrder(order)
	s.orders[order.OrderID] = clone
	return nil
}

func (s *MemoryOrders) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (s *MemoryOrders) AppendStatus(ctx context.Context, orderID string, expected models.OrderStatus, change models.StatusChange) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return nil, models.ErrNotFound
	}
	if order.Status != expected {
		return nil, fmt.Errorf("%w: order status changed concurrently", models.ErrConflict)
	}
	order.Status = change.Status
	order.StatusHistory = append(order.StatusHistory, change)
	return cloneOrder(order), nil
}

func (s *MemoryOrders) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.list(func(o *models.Order) bool { return o.UserID == userID })
}

func (s *MemoryOrders) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.list(func(o *models.Order) bool { return true })
}

func (s *MemoryOrders) list(keep func(*models.Order) bool) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var orders []models.Order
	for _, o := range s.orders {
		if keep(o) {
			orders = append(orders, *cloneOrder(o))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].OrderID > orders[j].OrderID
	})
	return orders, nil
}

func cloneOrder(o *models.Order) *models.Order {
	clone := *o
	clone.Items = append([]models.OrderLine(nil), o.Items...)
	clone.StatusHistory = append([]models.StatusChange(nil), o.StatusHistory...)
	return &clone
}
