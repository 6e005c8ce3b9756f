package models

import "time"

// Payment methods accepted by the collection workflow.
const (
	MethodCash         = "cash"
	MethodCard         = "card"
	MethodOnline       = "online"
	MethodCheque       = "cheque"
	MethodBankTransfer = "bank_transfer"
)

// FeePayment is the record of a single payment against a student's fee
// obligations. Rows are append-only: receipts are never edited or deleted,
// and there is no void/refund path.
type FeePayment struct {
	ID             int       `json:"id"`
	StudentID      int       `json:"student_id"`
	FeeTypeID      int       `json:"fee_type_id"`
	Amount         Money     `json:"amount"`
	PaymentMethod  string    `json:"payment_method"`
	MonthYear      string    `json:"month_year"` // collection month, "2025-09"
	TransactionRef *string   `json:"transaction_ref,omitempty"`
	Remarks        *string   `json:"remarks,omitempty"`
	ReceiptNumber  string    `json:"receipt_number"`
	CollectedBy    string    `json:"collected_by"`
	CreatedAt      time.Time `json:"created_at"`
	// Computed fields
	StudentName *string `json:"student_name,omitempty"`
	FeeTypeName *string `json:"fee_type_name,omitempty"`
}

// FeePaymentInput is used for collecting a payment. The receipt number and
// collector identity are assigned by the ledger, not the caller.
type FeePaymentInput struct {
	StudentID      int     `json:"student_id" validate:"required,gt=0"`
	FeeTypeID      int     `json:"fee_type_id" validate:"required,gt=0"`
	Amount         Money   `json:"amount" validate:"required,gt=0"`
	PaymentMethod  string  `json:"payment_method" validate:"required,oneof=cash card online cheque bank_transfer"`
	MonthYear      string  `json:"month_year" validate:"required,datetime=2006-01"`
	TransactionRef *string `json:"transaction_ref"`
	Remarks        *string `json:"remarks"`
}

func (p *FeePaymentInput) Validate() string {
	return checkStruct(p)
}
