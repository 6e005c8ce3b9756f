package models

// Fee status labels, derived from the assessed and paid amounts. Since
// payments are append-only, a student's status for a fee type only ever
// moves Pending -> Partial -> Paid.
const (
	StatusPending = "Pending"
	StatusPartial = "Partial"
	StatusPaid    = "Paid"
)

// StudentFeeStatus is the derived per-fee-type financial position of a
// student. It is never stored; the ledger computes it from the fee
// structure and the payment history.
type StudentFeeStatus struct {
	FeeTypeID     int    `json:"fee_type_id"`
	FeeTypeName   string `json:"fee_type_name"`
	FeeAmount     Money  `json:"fee_amount"`
	PaidAmount    Money  `json:"paid_amount"`
	PendingAmount Money  `json:"pending_amount"` // negative on overpayment
	Status        string `json:"status"`
}

// DeriveStatus applies the three-tier classification rule.
func DeriveStatus(feeAmount, paidAmount Money) string {
	switch {
	case paidAmount == 0:
		return StatusPending
	case paidAmount < feeAmount:
		return StatusPartial
	default:
		return StatusPaid
	}
}
