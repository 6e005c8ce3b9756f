package models

import "time"

// Student represents an enrolled student.
type Student struct {
	ID            int       `json:"id"`
	AdmissionNo   string    `json:"admission_no"`
	Name          string    `json:"name"`
	ClassID       int       `json:"class_id"`
	GuardianName  *string   `json:"guardian_name,omitempty"`
	GuardianPhone *string   `json:"guardian_phone,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	// Computed fields
	ClassName *string `json:"class_name,omitempty"`
}

// StudentInput is used for creating/updating students.
type StudentInput struct {
	AdmissionNo   string  `json:"admission_no" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	ClassID       int     `json:"class_id" validate:"required,gt=0"`
	GuardianName  *string `json:"guardian_name"`
	GuardianPhone *string `json:"guardian_phone"`
	IsActive      *bool   `json:"is_active"`
}

func (s *StudentInput) Validate() string {
	if msg := checkStruct(s); msg != "" {
		return msg
	}
	if s.IsActive == nil {
		active := true
		s.IsActive = &active
	}
	return ""
}
