package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolfees_backend/models"
)

// seedPayments inserts payments with explicit collection dates so the
// date-grouped reports are deterministic.
func seedPayments(t *testing.T, s *Service) {
	t.Helper()
	rows := []struct {
		studentID, feeTypeID int
		amount               models.Money
		method               string
		monthYear            string
		receipt              string
		createdAt            string
	}{
		{1, 1, 400, models.MethodCash, "2025-09", "RCP-20250901-0001-001", "2025-09-01 10:00:00"},
		{1, 1, 600, models.MethodCard, "2025-09", "RCP-20250902-0001-001", "2025-09-02 11:00:00"},
		{2, 1, 1000, models.MethodCash, "2025-10", "RCP-20250902-0002-001", "2025-09-02 12:00:00"},
		{2, 2, 500, models.MethodOnline, "2025-06", "RCP-20250615-0002-001", "2025-06-15 09:00:00"},
	}
	for _, row := range rows {
		_, err := s.db.Exec(`INSERT INTO fee_payments
			(student_id, fee_type_id, amount, payment_method, month_year, receipt_number, collected_by, created_at)
			VALUES (?, ?, ?, ?, ?, ?, 'admin', ?)`,
			row.studentID, row.feeTypeID, row.amount, row.method, row.monthYear, row.receipt, row.createdAt)
		require.NoError(t, err)
	}
}

func TestCashFlow(t *testing.T) {
	s := newTestService(t)
	seedSchool(t, s)
	seedPayments(t, s)

	summary, err := s.CashFlow(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, models.Money(2500), summary.Total)
	assert.Equal(t, 4, summary.Payments)
	require.Len(t, summary.Days, 3)
	assert.Equal(t, "2025-06-15", summary.Days[0].Date)
	assert.Equal(t, models.Money(500), summary.Days[0].Total)
	assert.Equal(t, "2025-09-02", summary.Days[2].Date)
	assert.Equal(t, models.Money(1600), summary.Days[2].Total)
	assert.Equal(t, 2, summary.Days[2].Payments)
}

func TestCashFlowDateRange(t *testing.T) {
	s := newTestService(t)
	seedSchool(t, s)
	seedPayments(t, s)

	summary, err := s.CashFlow(context.Background(), "2025-09-01", "2025-09-01")
	require.NoError(t, err)
	assert.Equal(t, models.Money(400), summary.Total)
	assert.Equal(t, 1, summary.Payments)
	require.Len(t, summary.Days, 1)
	assert.Equal(t, "2025-09-01", summary.Days[0].Date)
}

func TestPaymentMethodBreakdown(t *testing.T) {
	s := newTestService(t)
	seedSchool(t, s)
	seedPayments(t, s)

	breakdown, err := s.PaymentMethodBreakdown(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, breakdown, 3)

	// Ordered by total collected, descending.
	assert.Equal(t, models.MethodCash, breakdown[0].Method)
	assert.Equal(t, models.Money(1400), breakdown[0].Total)
	assert.Equal(t, 2, breakdown[0].Payments)
	assert.Equal(t, models.MethodCard, breakdown[1].Method)
	assert.Equal(t, models.Money(600), breakdown[1].Total)
	assert.Equal(t, models.MethodOnline, breakdown[2].Method)
	assert.Equal(t, models.Money(500), breakdown[2].Total)
}

func TestYearlyComparison(t *testing.T) {
	s := newTestService(t)
	seedSchool(t, s)
	seedPayments(t, s)

	result, err := s.YearlyComparison(context.Background(), []string{"2025-26", "2024-25"})
	require.NoError(t, err)
	require.Len(t, result, 2)

	// 2025-26 covers collection months 2025-07 through 2026-06.
	assert.Equal(t, "2025-26", result[0].AcademicYear)
	assert.Equal(t, models.Money(2000), result[0].Total)
	assert.Equal(t, 3, result[0].Payments)

	// The June 2025 payment falls in the previous academic year.
	assert.Equal(t, "2024-25", result[1].AcademicYear)
	assert.Equal(t, models.Money(500), result[1].Total)
	assert.Equal(t, 1, result[1].Payments)
}

func TestYearlyComparisonRejectsBadLabel(t *testing.T) {
	s := newTestService(t)
	seedSchool(t, s)

	var vErr *models.ValidationError
	_, err := s.YearlyComparison(context.Background(), []string{"2025"})
	assert.ErrorAs(t, err, &vErr)
}

func TestMonthlyCollection(t *testing.T) {
	s := newTestService(t)
	seedSchool(t, s)
	seedPayments(t, s)

	mc, err := s.MonthlyCollection(context.Background(), "2025-09")
	require.NoError(t, err)
	assert.Equal(t, models.Money(1000), mc.Total)
	assert.Equal(t, 2, mc.Payments)
	require.Len(t, mc.ByFeeType, 1)
	assert.Equal(t, "Tuition", mc.ByFeeType[0].Method)
	assert.Equal(t, models.Money(1000), mc.ByFeeType[0].Total)

	empty, err := s.MonthlyCollection(context.Background(), "2030-01")
	require.NoError(t, err)
	assert.Equal(t, models.Money(0), empty.Total)
	assert.Empty(t, empty.ByFeeType)
}

func TestClassCollectionSummary(t *testing.T) {
	s := newTestService(t)
	seedSchool(t, s)
	seedPayments(t, s)

	// An inactive student does not count toward the assessed roll.
	_, err := s.db.Exec(`INSERT INTO students (id, admission_no, name, class_id, is_active)
		VALUES (3, 'ADM-003', 'Left Mid-Year', 1, 0)`)
	require.NoError(t, err)

	// A prior-year tuition payment stays out of this year's collected sum.
	_, err = s.db.Exec(`INSERT INTO fee_payments
		(student_id, fee_type_id, amount, payment_method, month_year, receipt_number, collected_by, created_at)
		VALUES (1, 1, 700, 'cash', '2024-12', 'RCP-20241210-0001-001', 'admin', '2024-12-10 10:00:00')`)
	require.NoError(t, err)

	summary, err := s.ClassCollectionSummary(context.Background(), 1, "2025-26")
	require.NoError(t, err)
	require.Len(t, summary, 1)

	assert.Equal(t, "Tuition", summary[0].FeeTypeName)
	assert.Equal(t, models.Money(2000), summary[0].Assessed) // 1000 x 2 on roll
	assert.Equal(t, models.Money(2000), summary[0].Collected)
	assert.Equal(t, models.Money(0), summary[0].Outstanding)

	prior, err := s.ClassCollectionSummary(context.Background(), 1, "2024-25")
	require.NoError(t, err)
	assert.Empty(t, prior) // no structure configured for 2024-25
}

func TestClassCollectionSummaryUnknownClass(t *testing.T) {
	s := newTestService(t)
	seedSchool(t, s)

	summary, err := s.ClassCollectionSummary(context.Background(), 99, "2025-26")
	require.NoError(t, err)
	assert.Empty(t, summary)
}
