package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"schoolfees_backend/models"
)

// CreateInvoice persists an invoice header and its line items atomically.
// The total is always computed as the sum of the items, never taken from
// the caller. Invoice numbers are INV-YYYYMMDD-<seq> with a per-day
// sequence, unique-indexed like receipt numbers.
func (s *Service) CreateInvoice(ctx context.Context, in models.InvoiceInput, createdBy string) (models.Invoice, error) {
	var inv models.Invoice

	if msg := in.Validate(); msg != "" {
		return inv, models.Invalid(msg)
	}
	if createdBy == "" {
		return inv, models.Invalid("creator identity is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return inv, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	ok, err := s.studentExists(ctx, tx, in.StudentID)
	if err != nil {
		return inv, fmt.Errorf("checking student: %w", err)
	}
	if !ok {
		return inv, models.ErrNotFound
	}

	day := s.now().Format("20060102")
	prefix := "INV-" + day + "-"

	var seq int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM invoices WHERE invoice_number LIKE ?", prefix+"%").Scan(&seq)
	if err != nil {
		return inv, fmt.Errorf("reading invoice sequence: %w", err)
	}
	number := fmt.Sprintf("%s%03d", prefix, seq+1)
	issueDate := s.now().Format("2006-01-02")
	total := in.Total()

	var invoiceID int
	err = tx.QueryRowContext(ctx, `INSERT INTO invoices
		(invoice_number, student_id, issue_date, due_date, total_amount, status, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		number, in.StudentID, issueDate, in.DueDate, total, models.InvoicePending, createdBy).Scan(&invoiceID)
	if err != nil {
		return inv, fmt.Errorf("inserting invoice: %w", err)
	}

	for _, item := range in.Items {
		_, err = tx.ExecContext(ctx, `INSERT INTO invoice_items
			(invoice_id, fee_type_id, amount, description) VALUES (?, ?, ?, ?)`,
			invoiceID, item.FeeTypeID, item.Amount, item.Description)
		if err != nil {
			return inv, fmt.Errorf("inserting invoice item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return inv, fmt.Errorf("committing invoice: %w", err)
	}
	return s.InvoiceByID(ctx, invoiceID)
}

// InvoiceByID loads an invoice with its line items.
func (s *Service) InvoiceByID(ctx context.Context, id int) (models.Invoice, error) {
	var inv models.Invoice
	err := s.db.QueryRowContext(ctx, `SELECT i.id, i.invoice_number, i.student_id, i.issue_date,
		i.due_date, i.total_amount, i.status, i.created_by, i.created_at, i.updated_at, st.name
		FROM invoices i
		LEFT JOIN students st ON i.student_id = st.id
		WHERE i.id = ?`, id).Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.StudentID, &inv.IssueDate, &inv.DueDate,
		&inv.TotalAmount, &inv.Status, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt, &inv.StudentName)
	if errors.Is(err, sql.ErrNoRows) {
		return inv, models.ErrNotFound
	}
	if err != nil {
		return inv, fmt.Errorf("loading invoice: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT ii.id, ii.invoice_id, ii.fee_type_id, ii.amount,
		ii.description, ft.name
		FROM invoice_items ii
		JOIN fee_types ft ON ii.fee_type_id = ft.id
		WHERE ii.invoice_id = ?
		ORDER BY ii.id`, id)
	if err != nil {
		return inv, fmt.Errorf("loading invoice items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.InvoiceItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.FeeTypeID, &item.Amount,
			&item.Description, &item.FeeTypeName); err != nil {
			return inv, fmt.Errorf("scanning invoice item: %w", err)
		}
		inv.Items = append(inv.Items, item)
	}
	return inv, rows.Err()
}

// MarkInvoicePaid applies a paid amount to an invoice's status using the
// same three-tier rule as the fee status view: paid when the amount covers
// the total, partial when something has been paid, otherwise the status is
// left as pending. Status only ever moves forward: paid and cancelled are
// terminal, so a smaller amount posted later never downgrades a paid
// invoice.
func (s *Service) MarkInvoicePaid(ctx context.Context, id int, paidAmount models.Money) (models.Invoice, error) {
	inv, err := s.InvoiceByID(ctx, id)
	if err != nil {
		return inv, err
	}
	if paidAmount < 0 {
		return inv, models.Invalid("paid_amount must not be negative")
	}
	if inv.Status == models.InvoiceCancelled {
		return inv, models.Invalid("cancelled invoices cannot be marked paid")
	}
	if inv.Status == models.InvoicePaid {
		return inv, nil
	}

	status := inv.Status
	switch {
	case paidAmount >= inv.TotalAmount:
		status = models.InvoicePaid
	case paidAmount > 0:
		status = models.InvoicePartial
	}
	if status == inv.Status {
		return inv, nil
	}
	return s.setInvoiceStatus(ctx, id, status)
}

// CancelInvoice voids an unpaid invoice. Paid invoices stay paid: there is
// no refund path in the ledger.
func (s *Service) CancelInvoice(ctx context.Context, id int) (models.Invoice, error) {
	inv, err := s.InvoiceByID(ctx, id)
	if err != nil {
		return inv, err
	}
	if inv.Status == models.InvoicePaid {
		return inv, models.Invalid("paid invoices cannot be cancelled")
	}
	if inv.Status == models.InvoiceCancelled {
		return inv, nil
	}
	return s.setInvoiceStatus(ctx, id, models.InvoiceCancelled)
}

func (s *Service) setInvoiceStatus(ctx context.Context, id int, status string) (models.Invoice, error) {
	_, err := s.db.ExecContext(ctx,
		"UPDATE invoices SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", status, id)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("updating invoice status: %w", err)
	}
	return s.InvoiceByID(ctx, id)
}
