package ledger

import (
	"context"
	"fmt"

	"schoolfees_backend/models"
)

// CollectPayment validates and records a payment, assigning the receipt
// number. Rows are append-only; there is no void or refund operation.
//
// Receipt numbers are RCP-YYYYMMDD-<student>-<seq>, where seq counts the
// student's receipts for the day. The sequence is read inside the same
// transaction as the insert, and the unique index on receipt_number is the
// backstop: a conflicting concurrent insert fails rather than silently
// reusing a number.
//
// The cumulative paid amount is deliberately not checked against the
// assessed fee: overpayment is accepted and shows up as a negative pending
// amount on the status view.
func (s *Service) CollectPayment(ctx context.Context, in models.FeePaymentInput, collectedBy string) (models.FeePayment, error) {
	var payment models.FeePayment

	if msg := in.Validate(); msg != "" {
		return payment, models.Invalid(msg)
	}
	if collectedBy == "" {
		return payment, models.Invalid("collector identity is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return payment, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	ok, err := s.studentExists(ctx, tx, in.StudentID)
	if err != nil {
		return payment, fmt.Errorf("checking student: %w", err)
	}
	if !ok {
		return payment, models.ErrNotFound
	}

	day := s.now().Format("20060102")
	prefix := fmt.Sprintf("RCP-%s-%04d-", day, in.StudentID)

	var seq int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM fee_payments WHERE receipt_number LIKE ?", prefix+"%").Scan(&seq)
	if err != nil {
		return payment, fmt.Errorf("reading receipt sequence: %w", err)
	}
	receipt := fmt.Sprintf("%s%03d", prefix, seq+1)

	err = tx.QueryRowContext(ctx, `INSERT INTO fee_payments
		(student_id, fee_type_id, amount, payment_method, month_year, transaction_ref, remarks, receipt_number, collected_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at`,
		in.StudentID, in.FeeTypeID, in.Amount, in.PaymentMethod, in.MonthYear,
		in.TransactionRef, in.Remarks, receipt, collectedBy).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return payment, fmt.Errorf("recording payment: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return payment, fmt.Errorf("committing payment: %w", err)
	}

	payment.StudentID = in.StudentID
	payment.FeeTypeID = in.FeeTypeID
	payment.Amount = in.Amount
	payment.PaymentMethod = in.PaymentMethod
	payment.MonthYear = in.MonthYear
	payment.TransactionRef = in.TransactionRef
	payment.Remarks = in.Remarks
	payment.ReceiptNumber = receipt
	payment.CollectedBy = collectedBy
	return payment, nil
}
