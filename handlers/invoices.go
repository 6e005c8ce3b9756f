package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"schoolfees_backend/models"
)

const invoiceSelectQuery = `SELECT i.id, i.invoice_number, i.student_id, i.issue_date, i.due_date,
	i.total_amount, i.status, i.created_by, i.created_at, i.updated_at,
	s.name
	FROM invoices i
	LEFT JOIN students s ON i.student_id = s.id`

func scanInvoice(scanner interface{ Scan(...any) error }) (models.Invoice, error) {
	var inv models.Invoice
	err := scanner.Scan(&inv.ID, &inv.InvoiceNumber, &inv.StudentID, &inv.IssueDate, &inv.DueDate,
		&inv.TotalAmount, &inv.Status, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt, &inv.StudentName)
	return inv, err
}

// ListInvoices lists all invoices
// @Summary      List invoices
// @Description  Get invoices without line items, filterable by student, status, and issue date range.
// @Tags         invoices
// @Produce      json
// @Param        student_id  query     int     false  "Filter by student"
// @Param        status      query     string  false  "Filter by status"
// @Param        search      query     string  false  "Search by invoice number or student name"
// @Success      200         {object}  Response{data=[]models.Invoice}
// @Router       /invoices [get]
// @Security     BasicAuth
func ListInvoices(w http.ResponseWriter, r *http.Request) {
	query := invoiceSelectQuery
	var conditions []string
	var args []any

	if sid := r.URL.Query().Get("student_id"); sid != "" {
		conditions = append(conditions, "i.student_id = ?")
		args = append(args, sid)
	}
	if s := r.URL.Query().Get("status"); s != "" {
		conditions = append(conditions, "i.status = ?")
		args = append(args, s)
	}
	if from := r.URL.Query().Get("from"); from != "" {
		conditions = append(conditions, "i.issue_date >= ?")
		args = append(args, from)
	}
	if to := r.URL.Query().Get("to"); to != "" {
		conditions = append(conditions, "i.issue_date <= ?")
		args = append(args, to)
	}
	if search := r.URL.Query().Get("search"); search != "" {
		conditions = append(conditions, "(i.invoice_number LIKE ? OR s.name LIKE ?)")
		q := "%" + search + "%"
		args = append(args, q, q)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY i.created_at DESC"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		invoices = append(invoices, inv)
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	writeJSON(w, http.StatusOK, invoices)
}

// GetInvoice retrieves a single invoice with its line items
// @Summary      Get invoice
// @Description  Get an invoice with its line items.
// @Tags         invoices
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  Response{data=models.Invoice}
// @Failure      404  {object}  Response{error=string}
// @Router       /invoices/{id} [get]
// @Security     BasicAuth
func GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	inv, err := Ledger.InvoiceByID(r.Context(), id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// CreateInvoice creates a new invoice
// @Summary      Create invoice
// @Description  Create an invoice from line items; the total is the sum of the items and header and items are persisted atomically.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        invoice  body      models.InvoiceInput  true  "Invoice contents"
// @Success      201      {object}  Response{data=models.Invoice}
// @Failure      400      {object}  Response{error=string}
// @Failure      404      {object}  Response{error=string}
// @Router       /invoices [post]
// @Security     BasicAuth
func CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var input models.InvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	inv, err := Ledger.CreateInvoice(r.Context(), input, Identity(r.Context()))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

type invoicePaymentInput struct {
	PaidAmount models.Money `json:"paid_amount"`
}

// MarkInvoicePaid applies a paid amount to an invoice
// @Summary      Mark invoice paid
// @Description  Apply a paid amount: paid when it covers the total, partial when something has been paid, otherwise unchanged.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Invoice ID"
// @Param        payment  body      invoicePaymentInput  true  "Paid amount"
// @Success      200      {object}  Response{data=models.Invoice}
// @Failure      400      {object}  Response{error=string}
// @Failure      404      {object}  Response{error=string}
// @Router       /invoices/{id}/payments [post]
// @Security     BasicAuth
func MarkInvoicePaid(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input invoicePaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	inv, err := Ledger.MarkInvoicePaid(r.Context(), id, input.PaidAmount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// CancelInvoice cancels an unpaid invoice
// @Summary      Cancel invoice
// @Description  Cancel a pending or partial invoice. Paid invoices cannot be cancelled.
// @Tags         invoices
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  Response{data=models.Invoice}
// @Failure      400  {object}  Response{error=string}
// @Failure      404  {object}  Response{error=string}
// @Router       /invoices/{id}/cancel [post]
// @Security     BasicAuth
func CancelInvoice(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	inv, err := Ledger.CancelInvoice(r.Context(), id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}
