package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"schoolfees_backend/models"
)

const paymentSelectQuery = `SELECT p.id, p.student_id, p.fee_type_id, p.amount, p.payment_method,
	p.month_year, p.transaction_ref, p.remarks, p.receipt_number, p.collected_by, p.created_at,
	s.name,
	ft.name
	FROM fee_payments p
	LEFT JOIN students s ON p.student_id = s.id
	LEFT JOIN fee_types ft ON p.fee_type_id = ft.id`

func scanPayment(scanner interface{ Scan(...any) error }) (models.FeePayment, error) {
	var p models.FeePayment
	err := scanner.Scan(&p.ID, &p.StudentID, &p.FeeTypeID, &p.Amount, &p.PaymentMethod,
		&p.MonthYear, &p.TransactionRef, &p.Remarks, &p.ReceiptNumber, &p.CollectedBy, &p.CreatedAt,
		&p.StudentName, &p.FeeTypeName)
	return p, err
}

// ListPayments lists fee payments
// @Summary      List payments
// @Description  Get fee payments, filterable by student, fee type, method, collection month, and date range.
// @Tags         payments
// @Produce      json
// @Param        student_id   query     int     false  "Filter by student"
// @Param        fee_type_id  query     int     false  "Filter by fee type"
// @Param        method       query     string  false  "Filter by payment method"
// @Param        month_year   query     string  false  "Filter by collection month, e.g. 2025-09"
// @Param        from         query     string  false  "Collected on or after (YYYY-MM-DD)"
// @Param        to           query     string  false  "Collected on or before (YYYY-MM-DD)"
// @Success      200          {object}  Response{data=[]models.FeePayment}
// @Router       /payments [get]
// @Security     BasicAuth
func ListPayments(w http.ResponseWriter, r *http.Request) {
	query := paymentSelectQuery
	var conditions []string
	var args []any

	if sid := r.URL.Query().Get("student_id"); sid != "" {
		conditions = append(conditions, "p.student_id = ?")
		args = append(args, sid)
	}
	if fid := r.URL.Query().Get("fee_type_id"); fid != "" {
		conditions = append(conditions, "p.fee_type_id = ?")
		args = append(args, fid)
	}
	if m := r.URL.Query().Get("method"); m != "" {
		conditions = append(conditions, "p.payment_method = ?")
		args = append(args, m)
	}
	if my := r.URL.Query().Get("month_year"); my != "" {
		conditions = append(conditions, "p.month_year = ?")
		args = append(args, my)
	}
	if from := r.URL.Query().Get("from"); from != "" {
		conditions = append(conditions, "date(p.created_at) >= ?")
		args = append(args, from)
	}
	if to := r.URL.Query().Get("to"); to != "" {
		conditions = append(conditions, "date(p.created_at) <= ?")
		args = append(args, to)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var payments []models.FeePayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		payments = append(payments, p)
	}
	if payments == nil {
		payments = []models.FeePayment{}
	}
	writeJSON(w, http.StatusOK, payments)
}

// GetPayment retrieves a single payment by ID
// @Summary      Get payment
// @Description  Get details of a specific payment.
// @Tags         payments
// @Produce      json
// @Param        id   path      int  true  "Payment ID"
// @Success      200  {object}  Response{data=models.FeePayment}
// @Failure      404  {object}  Response{error=string}
// @Router       /payments/{id} [get]
// @Security     BasicAuth
func GetPayment(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	p, err := scanPayment(DB.QueryRow(paymentSelectQuery+" WHERE p.id = ?", id))
	if err != nil {
		writeError(w, http.StatusNotFound, "payment not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetPaymentByReceipt retrieves a payment by receipt number
// @Summary      Get payment by receipt
// @Description  Look a payment up by its receipt number.
// @Tags         payments
// @Produce      json
// @Param        receiptNumber  path      string  true  "Receipt number"
// @Success      200            {object}  Response{data=models.FeePayment}
// @Failure      404            {object}  Response{error=string}
// @Router       /payments/receipt/{receiptNumber} [get]
// @Security     BasicAuth
func GetPaymentByReceipt(w http.ResponseWriter, r *http.Request) {
	receipt := chi.URLParam(r, "receiptNumber")
	p, err := scanPayment(DB.QueryRow(paymentSelectQuery+" WHERE p.receipt_number = ?", receipt))
	if err != nil {
		writeError(w, http.StatusNotFound, "payment not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CollectPayment records a fee payment
// @Summary      Collect payment
// @Description  Record an append-only fee payment and return the generated receipt number.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        payment  body      models.FeePaymentInput  true  "Payment contents"
// @Success      201      {object}  Response{data=models.FeePayment}
// @Failure      400      {object}  Response{error=string}
// @Failure      404      {object}  Response{error=string}
// @Router       /payments [post]
// @Security     BasicAuth
func CollectPayment(w http.ResponseWriter, r *http.Request) {
	var input models.FeePaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	payment, err := Ledger.CollectPayment(r.Context(), input, Identity(r.Context()))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}
