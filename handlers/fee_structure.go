package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"schoolfees_backend/models"
)

const feeStructureSelectQuery = `SELECT fs.id, fs.class_id, fs.fee_type_id, fs.academic_year,
	fs.amount, fs.due_day, fs.created_at, fs.updated_at,
	c.name,
	ft.name
	FROM fee_structure fs
	LEFT JOIN classes c ON fs.class_id = c.id
	LEFT JOIN fee_types ft ON fs.fee_type_id = ft.id`

func scanFeeStructure(scanner interface{ Scan(...any) error }) (models.FeeStructure, error) {
	var f models.FeeStructure
	err := scanner.Scan(&f.ID, &f.ClassID, &f.FeeTypeID, &f.AcademicYear, &f.Amount,
		&f.DueDay, &f.CreatedAt, &f.UpdatedAt, &f.ClassName, &f.FeeTypeName)
	return f, err
}

// ListFeeStructure lists fee structure entries
// @Summary      List fee structure
// @Description  Get fee structure entries, filterable by class and academic year.
// @Tags         fee-structure
// @Produce      json
// @Param        class_id       query     int     false  "Filter by class"
// @Param        academic_year  query     string  false  "Filter by academic year, e.g. 2025-26"
// @Success      200            {object}  Response{data=[]models.FeeStructure}
// @Router       /fee-structure [get]
// @Security     BasicAuth
func ListFeeStructure(w http.ResponseWriter, r *http.Request) {
	query := feeStructureSelectQuery
	var conditions []string
	var args []any

	if cid := r.URL.Query().Get("class_id"); cid != "" {
		conditions = append(conditions, "fs.class_id = ?")
		args = append(args, cid)
	}
	if year := r.URL.Query().Get("academic_year"); year != "" {
		conditions = append(conditions, "fs.academic_year = ?")
		args = append(args, year)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY c.name, ft.name"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var entries []models.FeeStructure
	for rows.Next() {
		f, err := scanFeeStructure(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		entries = append(entries, f)
	}
	if entries == nil {
		entries = []models.FeeStructure{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// UpsertFeeStructure creates or overwrites a fee structure entry
// @Summary      Upsert fee structure
// @Description  Set the assessed amount for a (class, fee type, academic year) triple. An existing entry for the triple is overwritten.
// @Tags         fee-structure
// @Accept       json
// @Produce      json
// @Param        entry  body      models.FeeStructureInput  true  "Fee structure entry"
// @Success      200    {object}  Response{data=models.FeeStructure}
// @Failure      400    {object}  Response{error=string}
// @Router       /fee-structure [put]
// @Security     BasicAuth
func UpsertFeeStructure(w http.ResponseWriter, r *http.Request) {
	var input models.FeeStructureInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var id int
	err := DB.QueryRow(`INSERT INTO fee_structure (class_id, fee_type_id, academic_year, amount, due_day)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (class_id, fee_type_id, academic_year)
		DO UPDATE SET amount = excluded.amount, due_day = excluded.due_day, updated_at = CURRENT_TIMESTAMP
		RETURNING id`,
		input.ClassID, input.FeeTypeID, input.AcademicYear, input.Amount, input.DueDay).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	f, err := scanFeeStructure(DB.QueryRow(feeStructureSelectQuery+" WHERE fs.id = ?", id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch fee structure: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, f)
}
