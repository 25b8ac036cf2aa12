package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodiehub/models"
	"foodiehub/store"
)

// CatalogService resolves menu item ids to their authoritative name and
// price. Pure reads except for the admin-only Create.
type CatalogService struct {
	menu store.MenuItems
}

func NewCatalogService(menu store.MenuItems) *CatalogService {
	return &CatalogService{menu: menu}
}

func (s *CatalogService) Resolve(ctx context.Context, itemID string) (*models.MenuItem, error) {
	item, err := s.menu.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: menu item %s", models.ErrNotFound, itemID)
		}
		return nil, err
	}
	return item, nil
}

func (s *CatalogService) List(ctx context.Context) ([]models.MenuItem, error) {
	return s.menu.List(ctx)
}

func (s *CatalogService) Create(ctx context.Context, req models.CreateMenuItemRequest) (*models.MenuItem, error) {
	item := &models.MenuItem{
		ItemID:          store.NewID(),
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		Image:           req.Image,
		PreparationTime: req.PreparationTime,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.menu.Insert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
