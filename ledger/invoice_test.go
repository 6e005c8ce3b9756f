package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolfees_backend/models"
)

func createInvoice(t *testing.T, s *Service, studentID int, amounts ...models.Money) models.Invoice {
	t.Helper()
	items := make([]models.InvoiceItemInput, 0, len(amounts))
	for i, amount := range amounts {
		// Alternate between the two seeded fee types.
		items = append(items, models.InvoiceItemInput{FeeTypeID: i%2 + 1, Amount: amount})
	}
	inv, err := s.CreateInvoice(context.Background(), models.InvoiceInput{
		StudentID: studentID,
		DueDate:   "2025-09-15",
		Items:     items,
	}, "admin")
	require.NoError(t, err)
	return inv
}

func TestCreateInvoice(t *testing.T) {
	s := newTestService(t)
	seedSchool(t, s)

	inv := createInvoice(t, s, 1, 500, 300)

	assert.Equal(t, "INV-20250901-001", inv.InvoiceNumber)
	assert.Equal(t, models.Money(800), inv.TotalAmount)
	assert.Equal(t, models.InvoicePending, inv.Status)
	assert.Equal(t, "2025-09-01", inv.IssueDate)
	assert.Equal(t, "2025-09-15", inv.DueDate)
	assert.Equal(t, "admin", inv.CreatedBy)
	require.NotNil(t, inv.StudentName)
	assert.Equal(t, "Asha Verma", *inv.StudentName)

	require.Len(t, inv.Items, 2)
	assert.Equal(t, models.Money(500), inv.Items[0].Amount)
	require.NotNil(t, inv.Items[0].FeeTypeName)
	assert.Equal(t, "Tuition", *inv.Items[0].FeeTypeName)
	assert.Equal(t, models.Money(300), inv.Items[1].Amount)
	require.NotNil(t, inv.Items[1].FeeTypeName)
	assert.Equal(t, "Transport", *inv.Items[1].FeeTypeName)

	second := createInvoice(t, s, 2, 100)
	assert.Equal(t, "INV-20250901-002", second.InvoiceNumber)
}

func TestCreateInvoiceRejectsInvalidInput(t *testing.T) {
	s := newTestService(t)
	seedSchool(t, s)
	ctx := context.Background()

	var vErr *models.ValidationError

	_, err := s.CreateInvoice(ctx, models.InvoiceInput{
		StudentID: 1,
		DueDate:   "2025-09-15",
	}, "admin")
	assert.ErrorAs(t, err, &vErr, "no items")

	_, err = s.CreateInvoice(ctx, models.InvoiceInput{
		StudentID: 1,
		DueDate:   "15/09/2025",
		Items:     []models.InvoiceItemInput{{FeeTypeID: 1, Amount: 500}},
	}, "admin")
	assert.ErrorAs(t, err, &vErr, "malformed due date")

	_, err = s.CreateInvoice(ctx, models.InvoiceInput{
		StudentID: 1,
		DueDate:   "2025-09-15",
		Items:     []models.InvoiceItemInput{{FeeTypeID: 1, Amount: -10}},
	}, "admin")
	assert.ErrorAs(t, err, &vErr, "negative item amount")

	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM invoices").Scan(&n))
	assert.Equal(t, 0, n)
}

func TestCreateInvoiceUnknownStudent(t *testing.T) {
	s := newTestService(t)
	seedSchool(t, s)

	_, err := s.CreateInvoice(context.Background(), models.InvoiceInput{
		StudentID: 99,
		DueDate:   "2025-09-15",
		Items:     []models.InvoiceItemInput{{FeeTypeID: 1, Amount: 500}},
	}, "admin")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestInvoiceByIDNotFound(t *testing.T) {
	s := newTestService(t)
	seedSchool(t, s)

	_, err := s.InvoiceByID(context.Background(), 42)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMarkInvoicePaidTransitions(t *testing.T) {
	s := newTestService(t)
	seedSchool(t, s)
	ctx := context.Background()

	inv := createInvoice(t, s, 1, 500, 300)

	// Nothing paid: status stays pending.
	inv, err := s.MarkInvoicePaid(ctx, inv.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePending, inv.Status)

	inv, err = s.MarkInvoicePaid(ctx, inv.ID, 300)
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePartial, inv.Status)

	inv, err = s.MarkInvoicePaid(ctx, inv.ID, 800)
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, inv.Status)

	// Paid is terminal: a smaller amount posted later never downgrades.
	inv, err = s.MarkInvoicePaid(ctx, inv.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, inv.Status)
	reloaded, err := s.InvoiceByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, reloaded.Status)

	var vErr *models.ValidationError
	_, err = s.MarkInvoicePaid(ctx, inv.ID, -1)
	assert.ErrorAs(t, err, &vErr)

	_, err = s.MarkInvoicePaid(ctx, 42, 100)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCancelInvoice(t *testing.T) {
	s := newTestService(t)
	seedSchool(t, s)
	ctx := context.Background()

	inv := createInvoice(t, s, 1, 500)

	inv, err := s.CancelInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceCancelled, inv.Status)

	// Cancelling again is a no-op.
	inv, err = s.CancelInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceCancelled, inv.Status)

	// Cancelled invoices cannot be marked paid.
	var vErr *models.ValidationError
	_, err = s.MarkInvoicePaid(ctx, inv.ID, 500)
	assert.ErrorAs(t, err, &vErr)

	// Paid invoices cannot be cancelled.
	paid := createInvoice(t, s, 2, 200)
	_, err = s.MarkInvoicePaid(ctx, paid.ID, 200)
	require.NoError(t, err)
	_, err = s.CancelInvoice(ctx, paid.ID)
	assert.ErrorAs(t, err, &vErr)
}
