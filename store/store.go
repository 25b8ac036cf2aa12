// Package store defines the persistence capabilities injected into the
// services, with a MongoDB implementation for production and an in-memory
// implementation used by tests.
package store

import (
	"context"

	"foodiehub/models"
)

// Users stores registered accounts. Email uniqueness is case-insensitive;
// implementations must normalize to lower case.
type Users interface {
	// Insert persists a new user. Returns models.ErrConflict if the email
	// is already registered.
	Insert(ctx context.Context, user *models.User) error
	// FindByEmail matches case-insensitively. Returns models.ErrNotFound
	// when absent.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
}

// MenuItems is the read-mostly catalog.
type MenuItems interface {
	Insert(ctx context.Context, item *models.MenuItem) error
	FindByID(ctx context.Context, itemID string) (*models.MenuItem, error)
	List(ctx context.Context) ([]models.MenuItem, error)
}

// Orders stores orders and their append-only status history. List results
// are ordered by creation time descending with order id descending as the
// tie-break, so listings are stable across calls.
type Orders interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	// AppendStatus atomically moves the order from the expected current
	// status to the target and appends one history entry. It is the
	// conditional-update primitive that serializes concurrent transitions:
	// if the order's status no longer equals expected, nothing is written
	// and models.ErrConflict is returned. models.ErrNotFound if the order
	// does not exist.
	AppendStatus(ctx context.Context, orderID string, expected models.OrderStatus, change models.StatusChange) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
}
