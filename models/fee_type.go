package models

import "time"

// FeeType represents a named category of charge (tuition, transport, ...).
type FeeType struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	DefaultAmount Money     `json:"default_amount"`
	IsMandatory   bool      `json:"is_mandatory"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FeeTypeInput is used for creating/updating fee types.
type FeeTypeInput struct {
	Name          string  `json:"name" validate:"required"`
	Description   *string `json:"description"`
	DefaultAmount Money   `json:"default_amount" validate:"gte=0"`
	IsMandatory   bool    `json:"is_mandatory"`
}

func (f *FeeTypeInput) Validate() string {
	return checkStruct(f)
}
