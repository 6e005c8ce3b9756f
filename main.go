package main

//go:generate swag init

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"schoolfees_backend/config"
	"schoolfees_backend/db"
	_ "schoolfees_backend/docs"
	"schoolfees_backend/handlers"
	"schoolfees_backend/ledger"
)

// @title           School Fees Back Office API
// @version         1.0.0
// @description     API for student records, fee collection, invoicing, and collection reports.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.basic  BasicAuth

func main() {
	cfg := config.Load()

	// Configure structured logging
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Run migrations
	if err := db.Migrate(database); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Set shared DB and ledger for handlers
	handlers.DB = database
	handlers.Ledger = ledger.NewService(database)

	// Router setup
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// API routes with basic auth
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(handlers.BasicAuth(cfg.AuthUser, cfg.AuthPass))

		// Classes
		r.Get("/classes", handlers.ListClasses)
		r.Post("/classes", handlers.CreateClass)
		r.Get("/classes/{id}", handlers.GetClass)
		r.Put("/classes/{id}", handlers.UpdateClass)
		r.Delete("/classes/{id}", handlers.DeleteClass)

		// Students
		r.Get("/students", handlers.ListStudents)
		r.Post("/students", handlers.CreateStudent)
		r.Get("/students/{id}", handlers.GetStudent)
		r.Put("/students/{id}", handlers.UpdateStudent)
		r.Delete("/students/{id}", handlers.DeleteStudent)
		r.Get("/students/{id}/fee-status", handlers.GetStudentFeeStatus)

		// Fee types
		r.Get("/fee-types", handlers.ListFeeTypes)
		r.Post("/fee-types", handlers.CreateFeeType)
		r.Get("/fee-types/{id}", handlers.GetFeeType)
		r.Put("/fee-types/{id}", handlers.UpdateFeeType)
		r.Delete("/fee-types/{id}", handlers.DeleteFeeType)

		// Fee structure
		r.Get("/fee-structure", handlers.ListFeeStructure)
		r.Put("/fee-structure", handlers.UpsertFeeStructure)

		// Payments
		r.Get("/payments", handlers.ListPayments)
		r.Post("/payments", handlers.CollectPayment)
		r.Get("/payments/{id}", handlers.GetPayment)
		r.Get("/payments/receipt/{receiptNumber}", handlers.GetPaymentByReceipt)

		// Invoices
		r.Get("/invoices", handlers.ListInvoices)
		r.Post("/invoices", handlers.CreateInvoice)
		r.Get("/invoices/{id}", handlers.GetInvoice)
		r.Post("/invoices/{id}/payments", handlers.MarkInvoicePaid)
		r.Post("/invoices/{id}/cancel", handlers.CancelInvoice)

		// Reports
		r.Get("/reports/cash-flow", handlers.GetCashFlowReport)
		r.Get("/reports/payment-methods", handlers.GetPaymentMethodReport)
		r.Get("/reports/yearly", handlers.GetYearlyReport)
		r.Get("/reports/monthly", handlers.GetMonthlyReport)
		r.Get("/reports/class-collection", handlers.GetClassCollectionReport)

		// Dashboard
		r.Get("/dashboard", handlers.GetDashboard)
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("server starting", "address", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
