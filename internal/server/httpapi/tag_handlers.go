package httpapi

import (
	"encoding/json"
	"net/http"
)

type tagRequest struct {
	Name  string `json:"nombre"`
	Color string `json:"color"`
}

// handleListTags returns the caller's tags.
func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	tags, err := s.tags.List(r.Context(), claims.UserID)
	if err != nil {
		s.respondErr(w, err, "", "Error al obtener etiquetas")
		return
	}
	ok(w, http.StatusOK, tags)
}

// handleGetTag returns one owned tag.
func (s *Server) handleGetTag(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	tag, err := s.tags.GetOne(r.Context(), pathID(r, "id"), claims.UserID)
	if err != nil {
		s.respondErr(w, err, "Etiqueta no encontrada", "Error al obtener etiqueta")
		return
	}
	ok(w, http.StatusOK, tag)
}

// handleCreateTag inserts a tag owned by the caller.
func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())

	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	id, err := s.tags.Create(r.Context(), req.Name, req.Color, claims.UserID)
	if err != nil {
		s.respondErr(w, err, "", "Error al crear etiqueta")
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "Etiqueta creada exitosamente",
		Data:    map[string]int64{"id": id},
	})
}

// handleUpdateTag replaces name and color of an owned tag.
func (s *Server) handleUpdateTag(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())

	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	err := s.tags.Update(r.Context(), pathID(r, "id"), req.Name, req.Color, claims.UserID)
	if err != nil {
		s.respondErr(w, err, "Etiqueta no encontrada", "Error al actualizar etiqueta")
		return
	}
	okMsg(w, "Etiqueta actualizada exitosamente")
}

// handleDeleteTag removes an owned tag.
func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	if err := s.tags.Delete(r.Context(), pathID(r, "id"), claims.UserID); err != nil {
		s.respondErr(w, err, "Etiqueta no encontrada", "Error al eliminar etiqueta")
		return
	}
	okMsg(w, "Etiqueta eliminada exitosamente")
}

// handleTagsByTask lists the tags attached to one owned task.
func (s *Server) handleTagsByTask(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	tags, err := s.tags.ListByTask(r.Context(), pathID(r, "tareaId"), claims.UserID)
	if err != nil {
		s.respondErr(w, err, "Tarea no encontrada", "Error al obtener etiquetas")
		return
	}
	ok(w, http.StatusOK, tags)
}
