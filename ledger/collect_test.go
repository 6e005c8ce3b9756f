package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolfees_backend/models"
)

func paymentCount(t *testing.T, s *Service) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM fee_payments").Scan(&n))
	return n
}

func TestCollectPayment(t *testing.T) {
	s := newTestService(t)
	seedSchool(t, s)

	ref := "TXN-123"
	p, err := s.CollectPayment(context.Background(), models.FeePaymentInput{
		StudentID:      1,
		FeeTypeID:      1,
		Amount:         400,
		PaymentMethod:  models.MethodOnline,
		MonthYear:      "2025-09",
		TransactionRef: &ref,
	}, "clerk")
	require.NoError(t, err)

	assert.NotZero(t, p.ID)
	assert.Equal(t, models.Money(400), p.Amount)
	assert.Equal(t, models.MethodOnline, p.PaymentMethod)
	assert.Equal(t, "clerk", p.CollectedBy)
	assert.Equal(t, "RCP-20250901-0001-001", p.ReceiptNumber)
	require.NotNil(t, p.TransactionRef)
	assert.Equal(t, "TXN-123", *p.TransactionRef)
	assert.Equal(t, 1, paymentCount(t, s))
}

func TestCollectPaymentReceiptSequence(t *testing.T) {
	s := newTestService(t)
	seedSchool(t, s)

	first := collect(t, s, 1, 1, 100)
	second := collect(t, s, 1, 1, 100)
	other := collect(t, s, 2, 1, 100)

	// The per-day sequence is scoped to the student.
	assert.Equal(t, "RCP-20250901-0001-001", first.ReceiptNumber)
	assert.Equal(t, "RCP-20250901-0001-002", second.ReceiptNumber)
	assert.Equal(t, "RCP-20250901-0002-001", other.ReceiptNumber)

	// A new day restarts the sequence.
	s.now = func() time.Time { return time.Date(2025, time.September, 2, 9, 0, 0, 0, time.UTC) }
	nextDay := collect(t, s, 1, 1, 100)
	assert.Equal(t, "RCP-20250902-0001-001", nextDay.ReceiptNumber)
}

func TestCollectPaymentRejectsInvalidInput(t *testing.T) {
	s := newTestService(t)
	seedSchool(t, s)
	ctx := context.Background()

	valid := models.FeePaymentInput{
		StudentID:     1,
		FeeTypeID:     1,
		Amount:        400,
		PaymentMethod: models.MethodCash,
		MonthYear:     "2025-09",
	}

	cases := []struct {
		name   string
		mutate func(*models.FeePaymentInput)
	}{
		{"zero amount", func(in *models.FeePaymentInput) { in.Amount = 0 }},
		{"negative amount", func(in *models.FeePaymentInput) { in.Amount = -50 }},
		{"unknown method", func(in *models.FeePaymentInput) { in.PaymentMethod = "barter" }},
		{"malformed month", func(in *models.FeePaymentInput) { in.MonthYear = "Sep 2025" }},
		{"missing student", func(in *models.FeePaymentInput) { in.StudentID = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)

			var vErr *models.ValidationError
			_, err := s.CollectPayment(ctx, in, "admin")
			assert.ErrorAs(t, err, &vErr)
		})
	}

	var vErr *models.ValidationError
	_, err := s.CollectPayment(ctx, valid, "")
	assert.ErrorAs(t, err, &vErr)

	// None of the rejections left a row behind.
	assert.Equal(t, 0, paymentCount(t, s))
}

func TestCollectPaymentUnknownStudent(t *testing.T) {
	s := newTestService(t)
	seedSchool(t, s)

	_, err := s.CollectPayment(context.Background(), models.FeePaymentInput{
		StudentID:     99,
		FeeTypeID:     1,
		Amount:        400,
		PaymentMethod: models.MethodCash,
		MonthYear:     "2025-09",
	}, "admin")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, 0, paymentCount(t, s))
}
