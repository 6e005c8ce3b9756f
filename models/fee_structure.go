package models

import "time"

// FeeStructure is the assessed amount for a (class, fee type, academic year)
// triple. Setting a structure for an existing triple overwrites it.
type FeeStructure struct {
	ID           int       `json:"id"`
	ClassID      int       `json:"class_id"`
	FeeTypeID    int       `json:"fee_type_id"`
	AcademicYear string    `json:"academic_year"`
	Amount       Money     `json:"amount"`
	DueDay       int       `json:"due_day"` // day of month payment falls due
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	// Computed fields
	ClassName   *string `json:"class_name,omitempty"`
	FeeTypeName *string `json:"fee_type_name,omitempty"`
}

// FeeStructureInput is used for upserting a fee structure entry.
type FeeStructureInput struct {
	ClassID      int    `json:"class_id" validate:"required,gt=0"`
	FeeTypeID    int    `json:"fee_type_id" validate:"required,gt=0"`
	AcademicYear string `json:"academic_year" validate:"required"`
	Amount       Money  `json:"amount" validate:"gte=0"`
	DueDay       int    `json:"due_day" validate:"gte=0,lte=31"`
}

func (f *FeeStructureInput) Validate() string {
	if msg := checkStruct(f); msg != "" {
		return msg
	}
	if !ValidAcademicYear(f.AcademicYear) {
		return `academic_year must look like "2025-26"`
	}
	return ""
}
