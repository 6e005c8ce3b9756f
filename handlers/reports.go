package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

// GetCashFlowReport sums collections per day
// @Summary      Cash flow report
// @Description  Per-day collection totals over an optional date range.
// @Tags         reports
// @Produce      json
// @Param        from  query     string  false  "From date (YYYY-MM-DD)"
// @Param        to    query     string  false  "To date (YYYY-MM-DD)"
// @Success      200   {object}  Response{data=ledger.CashFlowSummary}
// @Router       /reports/cash-flow [get]
// @Security     BasicAuth
func GetCashFlowReport(w http.ResponseWriter, r *http.Request) {
	summary, err := Ledger.CashFlow(r.Context(), r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GetPaymentMethodReport groups collections by payment method
// @Summary      Payment method breakdown
// @Description  Collection totals and counts grouped by payment method.
// @Tags         reports
// @Produce      json
// @Param        from  query     string  false  "From date (YYYY-MM-DD)"
// @Param        to    query     string  false  "To date (YYYY-MM-DD)"
// @Success      200   {object}  Response{data=[]ledger.MethodBreakdown}
// @Router       /reports/payment-methods [get]
// @Security     BasicAuth
func GetPaymentMethodReport(w http.ResponseWriter, r *http.Request) {
	breakdown, err := Ledger.PaymentMethodBreakdown(r.Context(), r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

// GetYearlyReport compares collections across academic years
// @Summary      Yearly comparison
// @Description  Collection totals per academic year (comma-separated labels, e.g. years=2024-25,2025-26).
// @Tags         reports
// @Produce      json
// @Param        years  query     string  true  "Comma-separated academic years"
// @Success      200    {object}  Response{data=[]ledger.YearCollection}
// @Failure      400    {object}  Response{error=string}
// @Router       /reports/yearly [get]
// @Security     BasicAuth
func GetYearlyReport(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("years")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "years is required")
		return
	}
	years := strings.Split(raw, ",")
	comparison, err := Ledger.YearlyComparison(r.Context(), years)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}

// GetMonthlyReport sums one collection month
// @Summary      Monthly collection
// @Description  Collection totals for one collection month, broken down by fee type.
// @Tags         reports
// @Produce      json
// @Param        month  query     string  true  "Collection month (YYYY-MM)"
// @Success      200    {object}  Response{data=ledger.MonthCollection}
// @Failure      400    {object}  Response{error=string}
// @Router       /reports/monthly [get]
// @Security     BasicAuth
func GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		writeError(w, http.StatusBadRequest, "month is required")
		return
	}
	mc, err := Ledger.MonthlyCollection(r.Context(), month)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mc)
}

// GetClassCollectionReport rolls fee status up to a class
// @Summary      Class collection summary
// @Description  Per fee type: amount assessed across the class roll, collected, and outstanding.
// @Tags         reports
// @Produce      json
// @Param        class_id       query     int     true   "Class ID"
// @Param        academic_year  query     string  false  "Academic year (defaults to current)"
// @Success      200            {object}  Response{data=[]ledger.ClassFeeCollection}
// @Failure      400            {object}  Response{error=string}
// @Router       /reports/class-collection [get]
// @Security     BasicAuth
func GetClassCollectionReport(w http.ResponseWriter, r *http.Request) {
	classID, err := strconv.Atoi(r.URL.Query().Get("class_id"))
	if err != nil || classID <= 0 {
		writeError(w, http.StatusBadRequest, "class_id is required")
		return
	}
	summary, err := Ledger.ClassCollectionSummary(r.Context(), classID, r.URL.Query().Get("academic_year"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
