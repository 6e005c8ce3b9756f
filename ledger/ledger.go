// Package ledger implements the fee ledger: per-student fee status
// aggregation, payment collection, invoicing, and the grouped reports
// built on top of them. Handlers stay thin; everything that touches
// money goes through here.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"schoolfees_backend/models"
)

// Service runs all ledger operations against a shared database.
type Service struct {
	db *sql.DB

	// now is swappable in tests for date-sensitive behavior (receipt
	// numbers, academic year inference).
	now func() time.Time
}

// NewService returns a ledger service over db.
func NewService(db *sql.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// StudentFeeStatus computes the per-fee-type financial position of a
// student for one academic year. An empty academicYear means the current
// one. The assessed amounts come from the student's class fee structure;
// the paid amounts are the sums of all payments for (student, fee type).
//
// An unknown student yields models.ErrNotFound. A known student whose
// class has no fee structure for the year yields an empty slice: nothing
// is assessed, so there is nothing to report.
func (s *Service) StudentFeeStatus(ctx context.Context, studentID int, academicYear string) ([]models.StudentFeeStatus, error) {
	if academicYear == "" {
		academicYear = models.AcademicYearOf(s.now())
	} else if !models.ValidAcademicYear(academicYear) {
		return nil, models.Invalid(`academic_year must look like "2025-26"`)
	}

	var classID int
	err := s.db.QueryRowContext(ctx, "SELECT class_id FROM students WHERE id = ?", studentID).Scan(&classID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolving student class: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT fs.fee_type_id, ft.name, fs.amount,
		COALESCE((SELECT SUM(p.amount) FROM fee_payments p
			WHERE p.student_id = ? AND p.fee_type_id = fs.fee_type_id), 0)
		FROM fee_structure fs
		JOIN fee_types ft ON fs.fee_type_id = ft.id
		WHERE fs.class_id = ? AND fs.academic_year = ?
		ORDER BY ft.name`, studentID, classID, academicYear)
	if err != nil {
		return nil, fmt.Errorf("loading fee structure: %w", err)
	}
	defer rows.Close()

	var statuses []models.StudentFeeStatus
	for rows.Next() {
		var st models.StudentFeeStatus
		if err := rows.Scan(&st.FeeTypeID, &st.FeeTypeName, &st.FeeAmount, &st.PaidAmount); err != nil {
			return nil, fmt.Errorf("scanning fee status: %w", err)
		}
		// Overpayment is not clamped: a negative pending amount is a
		// credit balance.
		st.PendingAmount = st.FeeAmount - st.PaidAmount
		st.Status = models.DeriveStatus(st.FeeAmount, st.PaidAmount)
		statuses = append(statuses, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading fee status: %w", err)
	}
	return statuses, nil
}

// studentExists reports whether the student record exists.
func (s *Service) studentExists(ctx context.Context, tx *sql.Tx, studentID int) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM students WHERE id = ?", studentID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
