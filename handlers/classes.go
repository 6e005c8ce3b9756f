package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"schoolfees_backend/models"
)

const classSelectQuery = `SELECT id, name, section, created_at, updated_at,
	(SELECT COUNT(*) FROM students s WHERE s.class_id = classes.id AND s.is_active = 1)
	FROM classes`

func scanClass(scanner interface{ Scan(...any) error }) (models.Class, error) {
	var c models.Class
	err := scanner.Scan(&c.ID, &c.Name, &c.Section, &c.CreatedAt, &c.UpdatedAt, &c.StudentCount)
	return c, err
}

// ListClasses lists all classes
// @Summary      List classes
// @Description  Get a list of all classes with active student counts.
// @Tags         classes
// @Produce      json
// @Success      200  {object}  Response{data=[]models.Class}
// @Router       /classes [get]
// @Security     BasicAuth
func ListClasses(w http.ResponseWriter, r *http.Request) {
	rows, err := DB.Query(classSelectQuery + " ORDER BY name")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var classes []models.Class
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		classes = append(classes, c)
	}
	if classes == nil {
		classes = []models.Class{}
	}
	writeJSON(w, http.StatusOK, classes)
}

// GetClass retrieves a single class by ID
// @Summary      Get class
// @Description  Get details of a specific class.
// @Tags         classes
// @Produce      json
// @Param        id   path      int  true  "Class ID"
// @Success      200  {object}  Response{data=models.Class}
// @Failure      404  {object}  Response{error=string}
// @Router       /classes/{id} [get]
// @Security     BasicAuth
func GetClass(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	c, err := scanClass(DB.QueryRow(classSelectQuery+" WHERE id = ?", id))
	if err != nil {
		writeError(w, http.StatusNotFound, "class not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateClass creates a new class
// @Summary      Create class
// @Description  Create a new class.
// @Tags         classes
// @Accept       json
// @Produce      json
// @Param        class  body      models.ClassInput  true  "Class contents"
// @Success      201    {object}  Response{data=models.Class}
// @Failure      400    {object}  Response{error=string}
// @Router       /classes [post]
// @Security     BasicAuth
func CreateClass(w http.ResponseWriter, r *http.Request) {
	var input models.ClassInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := DB.Exec("INSERT INTO classes (name, section) VALUES (?, ?)", input.Name, input.Section)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id, _ := result.LastInsertId()
	c, err := scanClass(DB.QueryRow(classSelectQuery+" WHERE id = ?", id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created class: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// UpdateClass updates an existing class
// @Summary      Update class
// @Description  Update details of an existing class.
// @Tags         classes
// @Accept       json
// @Produce      json
// @Param        id     path      int                true  "Class ID"
// @Param        class  body      models.ClassInput  true  "Updated class contents"
// @Success      200    {object}  Response{data=models.Class}
// @Failure      400    {object}  Response{error=string}
// @Failure      404    {object}  Response{error=string}
// @Router       /classes/{id} [put]
// @Security     BasicAuth
func UpdateClass(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.ClassInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec("UPDATE classes SET name = ?, section = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		input.Name, input.Section, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "class not found")
		return
	}
	c, err := scanClass(DB.QueryRow(classSelectQuery+" WHERE id = ?", id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated class: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteClass deletes a class
// @Summary      Delete class
// @Description  Remove a class. Fails while students are still assigned to it.
// @Tags         classes
// @Produce      json
// @Param        id   path      int  true  "Class ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /classes/{id} [delete]
// @Security     BasicAuth
func DeleteClass(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM classes WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "class not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
