package models

import "time"

// MenuItem is a catalog entry. Price is an integer amount in paise and is
// the authoritative unit price for order total computation.
type MenuItem struct {
	ItemID          string    `json:"_id" bson:"item_id"`
	Name            string    `json:"name" bson:"name"`
	Description     string    `json:"description" bson:"description"`
	Price           int       `json:"price" bson:"price"`
	Category        string    `json:"category" bson:"category"`
	Image           string    `json:"image" bson:"image"`
	PreparationTime int       `json:"preparationTime" bson:"preparation_time"`
	CreatedAt       time.Time `json:"createdAt" bson:"created_at"`
}

type CreateMenuItemRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Description     string `json:"description"`
	Price           int    `json:"price" validate:"required,min=1"`
	Category        string `json:"category" validate:"required"`
	Image           string `json:"image"`
	PreparationTime int    `json:"preparationTime" validate:"min=0"`
}
