package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeePaymentInputValidate(t *testing.T) {
	valid := FeePaymentInput{
		StudentID:     1,
		FeeTypeID:     2,
		Amount:        500,
		PaymentMethod: MethodCash,
		MonthYear:     "2025-09",
	}
	assert.Empty(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*FeePaymentInput)
		want   string
	}{
		{"zero amount", func(in *FeePaymentInput) { in.Amount = 0 }, "amount is required"},
		{"negative amount", func(in *FeePaymentInput) { in.Amount = -1 }, "amount must be greater than 0"},
		{"unknown method", func(in *FeePaymentInput) { in.PaymentMethod = "barter" },
			"payment_method must be one of: cash, card, online, cheque, bank_transfer"},
		{"malformed month", func(in *FeePaymentInput) { in.MonthYear = "September" },
			"month_year must match format 2006-01"},
		{"missing student", func(in *FeePaymentInput) { in.StudentID = 0 }, "student_id is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			assert.Equal(t, tc.want, in.Validate())
		})
	}
}

func TestInvoiceInputValidate(t *testing.T) {
	valid := InvoiceInput{
		StudentID: 1,
		DueDate:   "2025-09-15",
		Items:     []InvoiceItemInput{{FeeTypeID: 1, Amount: 500}},
	}
	assert.Empty(t, valid.Validate())

	noItems := valid
	noItems.Items = nil
	assert.Equal(t, "items is required", noItems.Validate())

	badDate := valid
	badDate.DueDate = "15/09/2025"
	assert.Equal(t, "due_date must match format 2006-01-02", badDate.Validate())

	badItem := valid
	badItem.Items = []InvoiceItemInput{{FeeTypeID: 1, Amount: 0}}
	assert.Equal(t, "amount is required", badItem.Validate())
}

func TestInvoiceInputTotal(t *testing.T) {
	in := InvoiceInput{Items: []InvoiceItemInput{
		{FeeTypeID: 1, Amount: 500},
		{FeeTypeID: 2, Amount: 300},
	}}
	assert.Equal(t, Money(800), in.Total())
	assert.Equal(t, Money(0), (&InvoiceInput{}).Total())
}

func TestStudentInputValidateDefaultsActive(t *testing.T) {
	in := StudentInput{AdmissionNo: "ADM-001", Name: "Asha Verma", ClassID: 1}
	assert.Empty(t, in.Validate())
	if assert.NotNil(t, in.IsActive) {
		assert.True(t, *in.IsActive)
	}

	missing := StudentInput{Name: "Asha Verma", ClassID: 1}
	assert.Equal(t, "admission_no is required", missing.Validate())
}

func TestFeeStructureInputValidate(t *testing.T) {
	valid := FeeStructureInput{ClassID: 1, FeeTypeID: 1, AcademicYear: "2025-26", Amount: 1000, DueDay: 10}
	assert.Empty(t, valid.Validate())

	badYear := valid
	badYear.AcademicYear = "2025"
	assert.Equal(t, `academic_year must look like "2025-26"`, badYear.Validate())

	badDay := valid
	badDay.DueDay = 40
	assert.NotEmpty(t, badDay.Validate())
}
