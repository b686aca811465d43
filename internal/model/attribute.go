package model

import (
	"encoding/json"
	"time"
)

// AttributeGroup is a named, reusable bundle of attribute definitions that can
// be attached to product families. Values is opaque structured data; the
// backend stores and returns it without inspecting individual definitions.
type AttributeGroup struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Values    json.RawMessage `json:"values"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt *time.Time      `json:"-"`
}
