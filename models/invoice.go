package models

import "time"

// Invoice statuses. An invoice is mutated only to move it through these;
// the amounts and line items are fixed at creation.
const (
	InvoicePending   = "pending"
	InvoicePartial   = "partial"
	InvoicePaid      = "paid"
	InvoiceOverdue   = "overdue"
	InvoiceCancelled = "cancelled"
)

// Invoice is a billing document aggregating fee-type line items for a
// student. total_amount is always the sum of its items.
type Invoice struct {
	ID            int           `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	StudentID     int           `json:"student_id"`
	IssueDate     string        `json:"issue_date"` // YYYY-MM-DD
	DueDate       string        `json:"due_date"`
	TotalAmount   Money         `json:"total_amount"`
	Status        string        `json:"status"`
	CreatedBy     string        `json:"created_by"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Items         []InvoiceItem `json:"items,omitempty"`
	// Computed fields
	StudentName *string `json:"student_name,omitempty"`
}

// InvoiceItem is one fee-type line on an invoice.
type InvoiceItem struct {
	ID          int     `json:"id"`
	InvoiceID   int     `json:"invoice_id"`
	FeeTypeID   int     `json:"fee_type_id"`
	Amount      Money   `json:"amount"`
	Description *string `json:"description,omitempty"`
	// Computed fields
	FeeTypeName *string `json:"fee_type_name,omitempty"`
}

// InvoiceItemInput is one line of an invoice being created. The amount may
// override the fee structure default for that fee type.
type InvoiceItemInput struct {
	FeeTypeID   int     `json:"fee_type_id" validate:"required,gt=0"`
	Amount      Money   `json:"amount" validate:"required,gt=0"`
	Description *string `json:"description"`
}

// InvoiceInput is used for creating invoices. The invoice number, total and
// creator identity are assigned by the ledger.
type InvoiceInput struct {
	StudentID int                `json:"student_id" validate:"required,gt=0"`
	DueDate   string             `json:"due_date" validate:"required,datetime=2006-01-02"`
	Items     []InvoiceItemInput `json:"items" validate:"required,min=1,dive"`
}

func (i *InvoiceInput) Validate() string {
	return checkStruct(i)
}

// Total sums the line item amounts.
func (i *InvoiceInput) Total() Money {
	var total Money
	for _, item := range i.Items {
		total += item.Amount
	}
	return total
}
