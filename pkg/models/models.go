// Package models defines the explicit schema types for every stored
// entity. The document store enforces no shape; these types are the
// source of truth at compile time.
package models

import (
	"fmt"
	"strings"

	"github.com/campusbridge/campusbridge/pkg/repository/document"
)

// Content carries the fields shared by every posted content entity:
// the creator reference and an optional uploaded image path.
type Content struct {
	CreatedBy document.Ref `json:"createdBy"`
	Image     string       `json:"image,omitempty"`
}

// CreatorRef exposes the creator reference for ownership checks and
// population collapse.
func (c *Content) CreatorRef() *document.Ref { return &c.CreatedBy }

// SetImage records the stored path of an uploaded image.
func (c *Content) SetImage(path string) { c.Image = path }

// Amount is a monetary value with its currency.
type Amount struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency,omitempty"`
}

// SalaryRange bounds a compensation offer.
type SalaryRange struct {
	Min      float64 `json:"min,omitempty"`
	Max      float64 `json:"max,omitempty"`
	Currency string  `json:"currency,omitempty"`
}

func requireString(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}
