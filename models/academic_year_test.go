package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAcademicYearOf(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC), "2024-25"},
		{time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), "2025-26"},
		// Century rollover pads the short year.
		{time.Date(2099, time.August, 1, 0, 0, 0, 0, time.UTC), "2099-00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AcademicYearOf(tc.date), "date %s", tc.date.Format("2006-01-02"))
	}
}

func TestValidAcademicYear(t *testing.T) {
	assert.True(t, ValidAcademicYear("2025-26"))
	assert.True(t, ValidAcademicYear("1999-00"))
	assert.False(t, ValidAcademicYear("2025"))
	assert.False(t, ValidAcademicYear("2025-2026"))
	assert.False(t, ValidAcademicYear("2025/26"))
	assert.False(t, ValidAcademicYear(""))
}

func TestDeriveStatus(t *testing.T) {
	assert.Equal(t, StatusPending, DeriveStatus(1000, 0))
	assert.Equal(t, StatusPartial, DeriveStatus(1000, 400))
	assert.Equal(t, StatusPaid, DeriveStatus(1000, 1000))
	// Overpayment still reads as paid.
	assert.Equal(t, StatusPaid, DeriveStatus(1000, 1200))
	// Nothing assessed and nothing paid is pending by convention.
	assert.Equal(t, StatusPending, DeriveStatus(0, 0))
}
