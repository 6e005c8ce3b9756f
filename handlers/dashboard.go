package handlers

import (
	"net/http"

	"schoolfees_backend/models"
)

type dashboardData struct {
	TotalClasses  int `json:"total_classes"`
	TotalStudents int `json:"total_students"`
	TotalFeeTypes int `json:"total_fee_types"`
	TotalPayments int `json:"total_payments"`
	TotalInvoices int `json:"total_invoices"`

	CollectedTotal      models.Money `json:"collected_total"`
	CollectedThisMonth  models.Money `json:"collected_this_month"`
	InvoicedOutstanding models.Money `json:"invoiced_outstanding"` // pending + partial + overdue

	OverdueInvoices int `json:"overdue_invoices"`

	RecentPayments []models.FeePayment `json:"recent_payments"`
}

// GetDashboard retrieves dashboard summary statistics
// @Summary      Get dashboard
// @Description  Get record counts, collection totals, and recent payments.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  Response{data=dashboardData}
// @Router       /dashboard [get]
// @Security     BasicAuth
func GetDashboard(w http.ResponseWriter, r *http.Request) {
	var d dashboardData

	DB.QueryRow("SELECT COUNT(*) FROM classes").Scan(&d.TotalClasses)
	DB.QueryRow("SELECT COUNT(*) FROM students WHERE is_active = 1").Scan(&d.TotalStudents)
	DB.QueryRow("SELECT COUNT(*) FROM fee_types").Scan(&d.TotalFeeTypes)
	DB.QueryRow("SELECT COUNT(*) FROM fee_payments").Scan(&d.TotalPayments)
	DB.QueryRow("SELECT COUNT(*) FROM invoices").Scan(&d.TotalInvoices)

	DB.QueryRow("SELECT COALESCE(SUM(amount), 0) FROM fee_payments").Scan(&d.CollectedTotal)
	DB.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM fee_payments
		WHERE strftime('%Y-%m', created_at) = strftime('%Y-%m', 'now')`).Scan(&d.CollectedThisMonth)
	DB.QueryRow(`SELECT COALESCE(SUM(total_amount), 0) FROM invoices
		WHERE status IN ('pending', 'partial', 'overdue')`).Scan(&d.InvoicedOutstanding)
	DB.QueryRow("SELECT COUNT(*) FROM invoices WHERE status = 'overdue'").Scan(&d.OverdueInvoices)

	// Recent 5 payments
	rows, err := DB.Query(paymentSelectQuery + " ORDER BY p.created_at DESC LIMIT 5")
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			p, err := scanPayment(rows)
			if err != nil {
				break
			}
			d.RecentPayments = append(d.RecentPayments, p)
		}
	}
	if d.RecentPayments == nil {
		d.RecentPayments = []models.FeePayment{}
	}

	writeJSON(w, http.StatusOK, d)
}
