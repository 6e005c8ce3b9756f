package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"schoolfees_backend/models"
)

// The report operations are grouped aggregation over fee_payments and the
// fee structure. They reuse the same assessed/paid arithmetic as the
// per-student status view and roll it up across the filtered population.

// DailyCashFlow is one day's collection total.
type DailyCashFlow struct {
	Date     string       `json:"date"`
	Total    models.Money `json:"total"`
	Payments int          `json:"payments"`
}

// CashFlowSummary is the collection cash flow over a date range.
type CashFlowSummary struct {
	From     string          `json:"from"`
	To       string          `json:"to"`
	Days     []DailyCashFlow `json:"days"`
	Total    models.Money    `json:"total"`
	Payments int             `json:"payments"`
}

// CashFlow sums collections per day over [from, to] (YYYY-MM-DD, both
// optional).
func (s *Service) CashFlow(ctx context.Context, from, to string) (CashFlowSummary, error) {
	summary := CashFlowSummary{From: from, To: to, Days: []DailyCashFlow{}}

	query := "SELECT date(created_at), SUM(amount), COUNT(*) FROM fee_payments"
	var conditions []string
	var args []any
	if from != "" {
		conditions = append(conditions, "date(created_at) >= ?")
		args = append(args, from)
	}
	if to != "" {
		conditions = append(conditions, "date(created_at) <= ?")
		args = append(args, to)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " GROUP BY date(created_at) ORDER BY date(created_at)"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return summary, fmt.Errorf("summing cash flow: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d DailyCashFlow
		if err := rows.Scan(&d.Date, &d.Total, &d.Payments); err != nil {
			return summary, fmt.Errorf("scanning cash flow: %w", err)
		}
		summary.Days = append(summary.Days, d)
		summary.Total += d.Total
		summary.Payments += d.Payments
	}
	return summary, rows.Err()
}

// MethodBreakdown is the collection total for one payment method.
type MethodBreakdown struct {
	Method   string       `json:"method"`
	Total    models.Money `json:"total"`
	Payments int          `json:"payments"`
}

// PaymentMethodBreakdown groups collections by payment method over an
// optional date range.
func (s *Service) PaymentMethodBreakdown(ctx context.Context, from, to string) ([]MethodBreakdown, error) {
	query := "SELECT payment_method, SUM(amount), COUNT(*) FROM fee_payments"
	var conditions []string
	var args []any
	if from != "" {
		conditions = append(conditions, "date(created_at) >= ?")
		args = append(args, from)
	}
	if to != "" {
		conditions = append(conditions, "date(created_at) <= ?")
		args = append(args, to)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " GROUP BY payment_method ORDER BY SUM(amount) DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("grouping by payment method: %w", err)
	}
	defer rows.Close()

	breakdown := []MethodBreakdown{}
	for rows.Next() {
		var m MethodBreakdown
		if err := rows.Scan(&m.Method, &m.Total, &m.Payments); err != nil {
			return nil, fmt.Errorf("scanning method breakdown: %w", err)
		}
		breakdown = append(breakdown, m)
	}
	return breakdown, rows.Err()
}

// YearCollection is the collection total for one academic year.
type YearCollection struct {
	AcademicYear string       `json:"academic_year"`
	Total        models.Money `json:"total"`
	Payments     int          `json:"payments"`
}

// YearlyComparison sums collections per academic year. Payments carry a
// collection month (month_year), which maps onto the July-June academic
// year; the month range for each label is computed here and matched with
// a BETWEEN on the zero-padded YYYY-MM strings.
func (s *Service) YearlyComparison(ctx context.Context, years []string) ([]YearCollection, error) {
	result := make([]YearCollection, 0, len(years))
	for _, year := range years {
		if !models.ValidAcademicYear(year) {
			return nil, models.Invalid(`years must look like "2025-26"`)
		}
		start, err := strconv.Atoi(year[:4])
		if err != nil {
			return nil, models.Invalid(`years must look like "2025-26"`)
		}
		firstMonth := fmt.Sprintf("%d-07", start)
		lastMonth := fmt.Sprintf("%d-06", start+1)

		yc := YearCollection{AcademicYear: year}
		err = s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0), COUNT(*)
			FROM fee_payments WHERE month_year BETWEEN ? AND ?`,
			firstMonth, lastMonth).Scan(&yc.Total, &yc.Payments)
		if err != nil {
			return nil, fmt.Errorf("summing year %s: %w", year, err)
		}
		result = append(result, yc)
	}
	return result, nil
}

// MonthCollection is the collection summary for one month, broken down by
// fee type.
type MonthCollection struct {
	MonthYear string            `json:"month_year"`
	Total     models.Money      `json:"total"`
	Payments  int               `json:"payments"`
	ByFeeType []MethodBreakdown `json:"by_fee_type"` // Method holds the fee type name here
}

// MonthlyCollection sums payments recorded against one collection month.
func (s *Service) MonthlyCollection(ctx context.Context, monthYear string) (MonthCollection, error) {
	mc := MonthCollection{MonthYear: monthYear, ByFeeType: []MethodBreakdown{}}

	rows, err := s.db.QueryContext(ctx, `SELECT ft.name, SUM(p.amount), COUNT(*)
		FROM fee_payments p
		JOIN fee_types ft ON p.fee_type_id = ft.id
		WHERE p.month_year = ?
		GROUP BY ft.name ORDER BY ft.name`, monthYear)
	if err != nil {
		return mc, fmt.Errorf("summing month %s: %w", monthYear, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m MethodBreakdown
		if err := rows.Scan(&m.Method, &m.Total, &m.Payments); err != nil {
			return mc, fmt.Errorf("scanning month collection: %w", err)
		}
		mc.ByFeeType = append(mc.ByFeeType, m)
		mc.Total += m.Total
		mc.Payments += m.Payments
	}
	return mc, rows.Err()
}

// ClassFeeCollection is one fee type's position across a whole class.
type ClassFeeCollection struct {
	FeeTypeID   int          `json:"fee_type_id"`
	FeeTypeName string       `json:"fee_type_name"`
	Assessed    models.Money `json:"assessed"`    // structure amount x students on roll
	Collected   models.Money `json:"collected"`   // payments by students of the class
	Outstanding models.Money `json:"outstanding"` // assessed - collected, may be negative
}

// ClassCollectionSummary rolls the per-student status computation up to a
// class: for each fee type in the class structure, the amount assessed
// across the active roll, the amount collected, and the difference.
// Collected is windowed to the academic year's collection months, matching
// the assessed year; payments by students who have since left the roll
// still count as collected.
func (s *Service) ClassCollectionSummary(ctx context.Context, classID int, academicYear string) ([]ClassFeeCollection, error) {
	if academicYear == "" {
		academicYear = models.AcademicYearOf(s.now())
	} else if !models.ValidAcademicYear(academicYear) {
		return nil, models.Invalid(`academic_year must look like "2025-26"`)
	}
	start, err := strconv.Atoi(academicYear[:4])
	if err != nil {
		return nil, models.Invalid(`academic_year must look like "2025-26"`)
	}
	firstMonth := fmt.Sprintf("%d-07", start)
	lastMonth := fmt.Sprintf("%d-06", start+1)

	rows, err := s.db.QueryContext(ctx, `SELECT fs.fee_type_id, ft.name,
		fs.amount * (SELECT COUNT(*) FROM students st WHERE st.class_id = fs.class_id AND st.is_active = 1),
		COALESCE((SELECT SUM(p.amount) FROM fee_payments p
			JOIN students st ON p.student_id = st.id
			WHERE st.class_id = fs.class_id AND p.fee_type_id = fs.fee_type_id
				AND p.month_year BETWEEN ? AND ?), 0)
		FROM fee_structure fs
		JOIN fee_types ft ON fs.fee_type_id = ft.id
		WHERE fs.class_id = ? AND fs.academic_year = ?
		ORDER BY ft.name`, firstMonth, lastMonth, classID, academicYear)
	if err != nil {
		return nil, fmt.Errorf("summing class collection: %w", err)
	}
	defer rows.Close()

	summary := []ClassFeeCollection{}
	for rows.Next() {
		var c ClassFeeCollection
		if err := rows.Scan(&c.FeeTypeID, &c.FeeTypeName, &c.Assessed, &c.Collected); err != nil {
			return nil, fmt.Errorf("scanning class collection: %w", err)
		}
		c.Outstanding = c.Assessed - c.Collected
		summary = append(summary, c)
	}
	return summary, rows.Err()
}
