package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolfees_backend/db"
	"schoolfees_backend/ledger"
	"schoolfees_backend/models"
)

// setupAPI wires the handler package globals to an in-memory database and
// returns a router with the API routes behind the given credentials. The
// globals make the tests serial, which is fine here.
func setupAPI(t *testing.T, user, pass string) *chi.Mux {
	t.Helper()

	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.Migrate(database))

	DB = database
	Ledger = ledger.NewService(database)

	for _, q := range []string{
		`INSERT INTO classes (id, name, section) VALUES (1, 'Grade 5', 'A')`,
		`INSERT INTO students (id, admission_no, name, class_id) VALUES (1, 'ADM-001', 'Asha Verma', 1)`,
		`INSERT INTO fee_types (id, name, default_amount, is_mandatory) VALUES (1, 'Tuition', 1000, 1)`,
		`INSERT INTO fee_structure (class_id, fee_type_id, academic_year, amount, due_day) VALUES (1, 1, '2025-26', 1000, 10)`,
	} {
		_, err := database.Exec(q)
		require.NoError(t, err)
	}

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(BasicAuth(user, pass))
		r.Get("/classes", ListClasses)
		r.Post("/classes", CreateClass)
		r.Get("/classes/{id}", GetClass)
		r.Delete("/classes/{id}", DeleteClass)
		r.Get("/students/{id}/fee-status", GetStudentFeeStatus)
		r.Put("/fee-structure", UpsertFeeStructure)
		r.Post("/payments", CollectPayment)
		r.Get("/payments/receipt/{receiptNumber}", GetPaymentByReceipt)
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, data any) {
	t.Helper()
	var resp struct {
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Empty(t, resp.Error)
	require.NoError(t, json.Unmarshal(resp.Data, data))
}

func TestBasicAuthRequired(t *testing.T) {
	r := setupAPI(t, "fees", "secret")

	rec := doJSON(t, r, http.MethodGet, "/api/v1/classes", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Basic")

	rec = doJSON(t, r, http.MethodGet, "/api/v1/classes", nil, func(req *http.Request) {
		req.SetBasicAuth("fees", "wrong")
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/v1/classes", nil, func(req *http.Request) {
		req.SetBasicAuth("fees", "secret")
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCollectPaymentAttributesAuthenticatedUser(t *testing.T) {
	r := setupAPI(t, "fees", "secret")

	rec := doJSON(t, r, http.MethodPost, "/api/v1/payments", models.FeePaymentInput{
		StudentID:     1,
		FeeTypeID:     1,
		Amount:        400,
		PaymentMethod: models.MethodCash,
		MonthYear:     "2025-09",
	}, func(req *http.Request) { req.SetBasicAuth("fees", "secret") })
	require.Equal(t, http.StatusCreated, rec.Code)

	var p models.FeePayment
	decodeData(t, rec, &p)
	assert.Equal(t, "fees", p.CollectedBy)
	assert.Regexp(t, fmt.Sprintf(`^RCP-%s-0001-\d{3}$`, time.Now().Format("20060102")), p.ReceiptNumber)

	// The receipt lookup round-trips.
	rec = doJSON(t, r, http.MethodGet, "/api/v1/payments/receipt/"+p.ReceiptNumber, nil,
		func(req *http.Request) { req.SetBasicAuth("fees", "secret") })
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCollectPaymentUnauthenticatedModeDefaultsToAdmin(t *testing.T) {
	r := setupAPI(t, "", "")

	rec := doJSON(t, r, http.MethodPost, "/api/v1/payments", models.FeePaymentInput{
		StudentID:     1,
		FeeTypeID:     1,
		Amount:        400,
		PaymentMethod: models.MethodCash,
		MonthYear:     "2025-09",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var p models.FeePayment
	decodeData(t, rec, &p)
	assert.Equal(t, "admin", p.CollectedBy)
}

func TestCollectPaymentStatusMapping(t *testing.T) {
	r := setupAPI(t, "", "")

	// Validation failure maps to 400.
	rec := doJSON(t, r, http.MethodPost, "/api/v1/payments", models.FeePaymentInput{
		StudentID:     1,
		FeeTypeID:     1,
		Amount:        0,
		PaymentMethod: models.MethodCash,
		MonthYear:     "2025-09",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown student maps to 404.
	rec = doJSON(t, r, http.MethodPost, "/api/v1/payments", models.FeePaymentInput{
		StudentID:     99,
		FeeTypeID:     1,
		Amount:        400,
		PaymentMethod: models.MethodCash,
		MonthYear:     "2025-09",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Malformed JSON maps to 400 as well.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", bytes.NewBufferString("{not json"))
	raw := httptest.NewRecorder()
	r.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)
}

func TestGetStudentFeeStatus(t *testing.T) {
	r := setupAPI(t, "", "")

	rec := doJSON(t, r, http.MethodGet, "/api/v1/students/1/fee-status?academic_year=2025-26", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var statuses []models.StudentFeeStatus
	decodeData(t, rec, &statuses)
	require.Len(t, statuses, 1)
	assert.Equal(t, models.StatusPending, statuses[0].Status)
	assert.Equal(t, models.Money(1000), statuses[0].PendingAmount)

	// A year with no structure is an empty list, not an error.
	rec = doJSON(t, r, http.MethodGet, "/api/v1/students/1/fee-status?academic_year=2019-20", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	statuses = nil
	decodeData(t, rec, &statuses)
	assert.Empty(t, statuses)

	rec = doJSON(t, r, http.MethodGet, "/api/v1/students/99/fee-status", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/v1/students/1/fee-status?academic_year=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpsertFeeStructureOverwrites(t *testing.T) {
	r := setupAPI(t, "", "")

	entry := models.FeeStructureInput{ClassID: 1, FeeTypeID: 1, AcademicYear: "2025-26", Amount: 1200, DueDay: 5}
	rec := doJSON(t, r, http.MethodPut, "/api/v1/fee-structure", entry)
	require.Equal(t, http.StatusOK, rec.Code)

	var f models.FeeStructure
	decodeData(t, rec, &f)
	assert.Equal(t, models.Money(1200), f.Amount)
	assert.Equal(t, 5, f.DueDay)

	// The seeded triple was overwritten, not duplicated.
	var n int
	require.NoError(t, DB.QueryRow("SELECT COUNT(*) FROM fee_structure").Scan(&n))
	assert.Equal(t, 1, n)

	rec = doJSON(t, r, http.MethodPut, "/api/v1/fee-structure",
		models.FeeStructureInput{ClassID: 1, FeeTypeID: 1, AcademicYear: "nope", Amount: 100})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClassLifecycle(t *testing.T) {
	r := setupAPI(t, "", "")

	rec := doJSON(t, r, http.MethodPost, "/api/v1/classes", models.ClassInput{Name: "Grade 6", Section: ptr("B")})
	require.Equal(t, http.StatusCreated, rec.Code)

	var c models.Class
	decodeData(t, rec, &c)
	assert.Equal(t, "Grade 6", c.Name)

	rec = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/classes/%d", c.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/classes/%d", c.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/classes/%d", c.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func ptr(s string) *string { return &s }
