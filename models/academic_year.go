package models

import (
	"fmt"
	"regexp"
	"time"
)

// Academic years run July through June and are labelled "2025-26".
// The source data mixed calendar-year and school-year conventions;
// everything here standardises on the July cut-over.

var academicYearPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// AcademicYearOf returns the academic year label containing t.
func AcademicYearOf(t time.Time) string {
	year := t.Year()
	if t.Month() < time.July {
		year--
	}
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// CurrentAcademicYear returns the academic year label for today.
func CurrentAcademicYear() string {
	return AcademicYearOf(time.Now())
}

// ValidAcademicYear reports whether s looks like an academic year label.
func ValidAcademicYear(s string) bool {
	return academicYearPattern.MatchString(s)
}
