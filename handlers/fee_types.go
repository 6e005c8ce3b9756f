package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"schoolfees_backend/models"
)

const feeTypeSelectQuery = `SELECT id, name, description, default_amount, is_mandatory, created_at, updated_at
	FROM fee_types`

func scanFeeType(scanner interface{ Scan(...any) error }) (models.FeeType, error) {
	var f models.FeeType
	err := scanner.Scan(&f.ID, &f.Name, &f.Description, &f.DefaultAmount, &f.IsMandatory, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

// ListFeeTypes lists all fee types
// @Summary      List fee types
// @Description  Get all configured fee types.
// @Tags         fee-types
// @Produce      json
// @Success      200  {object}  Response{data=[]models.FeeType}
// @Router       /fee-types [get]
// @Security     BasicAuth
func ListFeeTypes(w http.ResponseWriter, r *http.Request) {
	rows, err := DB.Query(feeTypeSelectQuery + " ORDER BY name")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var types []models.FeeType
	for rows.Next() {
		f, err := scanFeeType(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		types = append(types, f)
	}
	if types == nil {
		types = []models.FeeType{}
	}
	writeJSON(w, http.StatusOK, types)
}

// GetFeeType retrieves a single fee type by ID
// @Summary      Get fee type
// @Description  Get details of a specific fee type.
// @Tags         fee-types
// @Produce      json
// @Param        id   path      int  true  "Fee type ID"
// @Success      200  {object}  Response{data=models.FeeType}
// @Failure      404  {object}  Response{error=string}
// @Router       /fee-types/{id} [get]
// @Security     BasicAuth
func GetFeeType(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	f, err := scanFeeType(DB.QueryRow(feeTypeSelectQuery+" WHERE id = ?", id))
	if err != nil {
		writeError(w, http.StatusNotFound, "fee type not found")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// CreateFeeType creates a new fee type
// @Summary      Create fee type
// @Description  Create a new fee type (admin configuration).
// @Tags         fee-types
// @Accept       json
// @Produce      json
// @Param        fee_type  body      models.FeeTypeInput  true  "Fee type contents"
// @Success      201       {object}  Response{data=models.FeeType}
// @Failure      400       {object}  Response{error=string}
// @Router       /fee-types [post]
// @Security     BasicAuth
func CreateFeeType(w http.ResponseWriter, r *http.Request) {
	var input models.FeeTypeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := DB.Exec("INSERT INTO fee_types (name, description, default_amount, is_mandatory) VALUES (?, ?, ?, ?)",
		input.Name, input.Description, input.DefaultAmount, input.IsMandatory)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id, _ := result.LastInsertId()
	f, err := scanFeeType(DB.QueryRow(feeTypeSelectQuery+" WHERE id = ?", id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created fee type: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

// UpdateFeeType updates an existing fee type
// @Summary      Update fee type
// @Description  Update details of an existing fee type.
// @Tags         fee-types
// @Accept       json
// @Produce      json
// @Param        id        path      int                  true  "Fee type ID"
// @Param        fee_type  body      models.FeeTypeInput  true  "Updated fee type contents"
// @Success      200       {object}  Response{data=models.FeeType}
// @Failure      400       {object}  Response{error=string}
// @Failure      404       {object}  Response{error=string}
// @Router       /fee-types/{id} [put]
// @Security     BasicAuth
func UpdateFeeType(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.FeeTypeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE fee_types SET name = ?, description = ?, default_amount = ?, is_mandatory = ?,
		updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		input.Name, input.Description, input.DefaultAmount, input.IsMandatory, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "fee type not found")
		return
	}
	f, err := scanFeeType(DB.QueryRow(feeTypeSelectQuery+" WHERE id = ?", id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated fee type: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// DeleteFeeType deletes a fee type
// @Summary      Delete fee type
// @Description  Remove a fee type. Fails once payments or structures reference it.
// @Tags         fee-types
// @Produce      json
// @Param        id   path      int  true  "Fee type ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /fee-types/{id} [delete]
// @Security     BasicAuth
func DeleteFeeType(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM fee_types WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "fee type not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
