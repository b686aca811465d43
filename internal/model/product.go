package model

import (
	"encoding/json"
	"time"
)

// Product is a sellable item. SKU is unique among live products (exact,
// case-sensitive match). FamilyID is optional; Images holds externally stored
// file URLs in upload order. IsArchived and IsPublished are independent flags;
// queries combine them ("archived" means archived AND NOT published).
type Product struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	FamilyID    *string         `json:"family"`
	Details     json.RawMessage `json:"details"`
	Images      []string        `json:"images"`
	IsArchived  bool            `json:"is_archived"`
	IsPublished bool            `json:"is_published"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   *time.Time      `json:"-"`
}
