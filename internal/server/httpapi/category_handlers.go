package httpapi

import (
	"encoding/json"
	"net/http"
)

type categoryRequest struct {
	Name  string  `json:"nombre"`
	Color string  `json:"color"`
	Icon  *string `json:"icono"`
}

// handleListCategories returns the caller's categories with task counts.
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	cats, err := s.categories.List(r.Context(), claims.UserID)
	if err != nil {
		s.respondErr(w, err, "", "Error al obtener categorías")
		return
	}
	ok(w, http.StatusOK, cats)
}

// handleGetCategory returns one owned category.
func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	cat, err := s.categories.GetOne(r.Context(), pathID(r, "id"), claims.UserID)
	if err != nil {
		s.respondErr(w, err, "Categoría no encontrada", "Error al obtener categoría")
		return
	}
	ok(w, http.StatusOK, cat)
}

// handleCreateCategory inserts a category owned by the caller.
func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	id, err := s.categories.Create(r.Context(), req.Name, req.Color, req.Icon, claims.UserID)
	if err != nil {
		s.respondErr(w, err, "", "Error al crear categoría")
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "Categoría creada exitosamente",
		Data:    map[string]int64{"id": id},
	})
}

// handleUpdateCategory replaces name, color and icon of an owned category.
func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	err := s.categories.Update(r.Context(), pathID(r, "id"), req.Name, req.Color, req.Icon, claims.UserID)
	if err != nil {
		s.respondErr(w, err, "Categoría no encontrada", "Error al actualizar categoría")
		return
	}
	okMsg(w, "Categoría actualizada exitosamente")
}

// handleDeleteCategory removes an owned category.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	if err := s.categories.Delete(r.Context(), pathID(r, "id"), claims.UserID); err != nil {
		s.respondErr(w, err, "Categoría no encontrada", "Error al eliminar categoría")
		return
	}
	okMsg(w, "Categoría eliminada exitosamente")
}
