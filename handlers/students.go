package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"schoolfees_backend/models"
)

const studentSelectQuery = `SELECT s.id, s.admission_no, s.name, s.class_id, s.guardian_name,
	s.guardian_phone, s.is_active, s.created_at, s.updated_at,
	c.name
	FROM students s
	LEFT JOIN classes c ON s.class_id = c.id`

func scanStudent(scanner interface{ Scan(...any) error }) (models.Student, error) {
	var s models.Student
	err := scanner.Scan(&s.ID, &s.AdmissionNo, &s.Name, &s.ClassID, &s.GuardianName,
		&s.GuardianPhone, &s.IsActive, &s.CreatedAt, &s.UpdatedAt, &s.ClassName)
	return s, err
}

// ListStudents lists all students
// @Summary      List students
// @Description  Get a list of students, filterable by class and active flag.
// @Tags         students
// @Produce      json
// @Param        class_id   query     int     false  "Filter by class"
// @Param        is_active  query     bool    false  "Filter by active flag"
// @Param        search     query     string  false  "Search by name, admission number, or guardian"
// @Success      200        {object}  Response{data=[]models.Student}
// @Router       /students [get]
// @Security     BasicAuth
func ListStudents(w http.ResponseWriter, r *http.Request) {
	query := studentSelectQuery
	var conditions []string
	var args []any

	if cid := r.URL.Query().Get("class_id"); cid != "" {
		conditions = append(conditions, "s.class_id = ?")
		args = append(args, cid)
	}
	if active := r.URL.Query().Get("is_active"); active != "" {
		conditions = append(conditions, "s.is_active = ?")
		args = append(args, active == "true")
	}
	if search := r.URL.Query().Get("search"); search != "" {
		conditions = append(conditions, "(s.name LIKE ? OR s.admission_no LIKE ? OR s.guardian_name LIKE ?)")
		q := "%" + search + "%"
		args = append(args, q, q, q)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY s.name"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		students = append(students, s)
	}
	if students == nil {
		students = []models.Student{}
	}
	writeJSON(w, http.StatusOK, students)
}

// GetStudent retrieves a single student by ID
// @Summary      Get student
// @Description  Get details of a specific student.
// @Tags         students
// @Produce      json
// @Param        id   path      int  true  "Student ID"
// @Success      200  {object}  Response{data=models.Student}
// @Failure      404  {object}  Response{error=string}
// @Router       /students/{id} [get]
// @Security     BasicAuth
func GetStudent(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	s, err := scanStudent(DB.QueryRow(studentSelectQuery+" WHERE s.id = ?", id))
	if err != nil {
		writeError(w, http.StatusNotFound, "student not found")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// GetStudentFeeStatus computes the student's fee ledger position
// @Summary      Get student fee status
// @Description  Per fee type: assessed amount, paid amount, pending amount, and derived status for an academic year.
// @Tags         students
// @Produce      json
// @Param        id             path      int     true   "Student ID"
// @Param        academic_year  query     string  false  "Academic year, e.g. 2025-26 (defaults to current)"
// @Success      200            {object}  Response{data=[]models.StudentFeeStatus}
// @Failure      404            {object}  Response{error=string}
// @Router       /students/{id}/fee-status [get]
// @Security     BasicAuth
func GetStudentFeeStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	statuses, err := Ledger.StudentFeeStatus(r.Context(), id, r.URL.Query().Get("academic_year"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if statuses == nil {
		statuses = []models.StudentFeeStatus{}
	}
	writeJSON(w, http.StatusOK, statuses)
}

// CreateStudent creates a new student
// @Summary      Create student
// @Description  Enrol a new student.
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        student  body      models.StudentInput  true  "Student contents"
// @Success      201      {object}  Response{data=models.Student}
// @Failure      400      {object}  Response{error=string}
// @Router       /students [post]
// @Security     BasicAuth
func CreateStudent(w http.ResponseWriter, r *http.Request) {
	var input models.StudentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := DB.Exec(`INSERT INTO students (admission_no, name, class_id, guardian_name, guardian_phone, is_active)
		VALUES (?, ?, ?, ?, ?, ?)`,
		input.AdmissionNo, input.Name, input.ClassID, input.GuardianName, input.GuardianPhone, *input.IsActive)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id, _ := result.LastInsertId()
	s, err := scanStudent(DB.QueryRow(studentSelectQuery+" WHERE s.id = ?", id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created student: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

// UpdateStudent updates an existing student
// @Summary      Update student
// @Description  Update details of an existing student.
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Student ID"
// @Param        student  body      models.StudentInput  true  "Updated student contents"
// @Success      200      {object}  Response{data=models.Student}
// @Failure      400      {object}  Response{error=string}
// @Failure      404      {object}  Response{error=string}
// @Router       /students/{id} [put]
// @Security     BasicAuth
func UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.StudentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE students SET admission_no = ?, name = ?, class_id = ?, guardian_name = ?,
		guardian_phone = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		input.AdmissionNo, input.Name, input.ClassID, input.GuardianName, input.GuardianPhone, *input.IsActive, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "student not found")
		return
	}
	s, err := scanStudent(DB.QueryRow(studentSelectQuery+" WHERE s.id = ?", id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated student: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// DeleteStudent deletes a student
// @Summary      Delete student
// @Description  Remove a student. Fails once payments or invoices reference the record.
// @Tags         students
// @Produce      json
// @Param        id   path      int  true  "Student ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /students/{id} [delete]
// @Security     BasicAuth
func DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM students WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "student not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
