package models

import "time"

// Class represents a class/grade level that students belong to.
type Class struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Section   *string   `json:"section,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// Computed fields
	StudentCount int `json:"student_count"`
}

// ClassInput is used for creating/updating classes.
type ClassInput struct {
	Name    string  `json:"name" validate:"required"`
	Section *string `json:"section"`
}

func (c *ClassInput) Validate() string {
	return checkStruct(c)
}
