package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/tasklyhq/taskly-server/internal/model"
)

// dateOnly accepts a YYYY-MM-DD due date on the wire.
type dateOnly struct{ t *time.Time }

func (d *dateOnly) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		d.t = nil
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		// Fall back to full timestamps sent by older clients.
		t, err = time.Parse(time.RFC3339, *s)
		if err != nil {
			return err
		}
	}
	d.t = &t
	return nil
}

type taskRequest struct {
	Title       string   `json:"titulo"`
	Description *string  `json:"descripcion"`
	DueDate     dateOnly `json:"fecha_limite"`
	Priority    string   `json:"prioridad"`
	Status      string   `json:"estado"`
	CategoryID  *int64   `json:"categoria_id"`
}

func pathID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id
}

// handleListTasks returns all of the caller's tasks.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	tasks, err := s.tasks.List(r.Context(), claims.UserID)
	if err != nil {
		s.respondErr(w, err, "", "Error al obtener tareas")
		return
	}
	ok(w, http.StatusOK, tasks)
}

// handleTasksByStatus filters the caller's tasks by status.
func (s *Server) handleTasksByStatus(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	tasks, err := s.tasks.ListByStatus(r.Context(), claims.UserID, mux.Vars(r)["estado"])
	if err != nil {
		s.respondErr(w, err, "", "Error al obtener tareas")
		return
	}
	ok(w, http.StatusOK, tasks)
}

// handleTasksByCategory filters the caller's tasks by category.
func (s *Server) handleTasksByCategory(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	tasks, err := s.tasks.ListByCategory(r.Context(), claims.UserID, pathID(r, "categoriaId"))
	if err != nil {
		s.respondErr(w, err, "", "Error al obtener tareas")
		return
	}
	ok(w, http.StatusOK, tasks)
}

// handleGetTask returns one owned task.
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	task, err := s.tasks.GetOne(r.Context(), pathID(r, "id"), claims.UserID)
	if err != nil {
		s.respondErr(w, err, "Tarea no encontrada", "Error al obtener tarea")
		return
	}
	ok(w, http.StatusOK, task)
}

// handleCreateTask inserts a new task owned by the caller.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	id, err := s.tasks.Create(r.Context(), model.NewTask{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate.t,
		Priority:    req.Priority,
		OwnerID:     claims.UserID,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		s.respondErr(w, err, "", "Error al crear tarea")
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "Tarea creada exitosamente",
		Data:    map[string]int64{"id": id},
	})
}

// handleUpdateTask is a full-row replace of an owned task.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	err := s.tasks.Update(r.Context(), pathID(r, "id"), model.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate.t,
		Priority:    req.Priority,
		Status:      req.Status,
		CategoryID:  req.CategoryID,
	}, claims.UserID)
	if err != nil {
		s.respondErr(w, err, "Tarea no encontrada", "Error al actualizar tarea")
		return
	}
	okMsg(w, "Tarea actualizada exitosamente")
}

// handleSetTaskStatus transitions the task state.
func (s *Server) handleSetTaskStatus(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())

	var req struct {
		Status string `json:"estado"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if err := s.tasks.SetStatus(r.Context(), pathID(r, "id"), req.Status, claims.UserID); err != nil {
		s.respondErr(w, err, "Tarea no encontrada", "Error al cambiar estado")
		return
	}
	okMsg(w, "Estado de tarea actualizado exitosamente")
}

// handleDeleteTask removes an owned task.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	if err := s.tasks.Delete(r.Context(), pathID(r, "id"), claims.UserID); err != nil {
		s.respondErr(w, err, "Tarea no encontrada", "Error al eliminar tarea")
		return
	}
	okMsg(w, "Tarea eliminada exitosamente")
}

// handleAttachTag links a tag to an owned task, idempotently.
func (s *Server) handleAttachTag(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())

	var req struct {
		TagID int64 `json:"etiquetaId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TagID == 0 {
		fail(w, http.StatusBadRequest, "ID de etiqueta requerido")
		return
	}

	if err := s.tasks.AttachTag(r.Context(), pathID(r, "id"), req.TagID, claims.UserID); err != nil {
		s.respondErr(w, err, "Tarea no encontrada", "Error al asignar etiqueta")
		return
	}
	okMsg(w, "Etiqueta asignada exitosamente")
}

// handleDetachTag removes the tag link if present.
func (s *Server) handleDetachTag(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	err := s.tasks.DetachTag(r.Context(), pathID(r, "id"), pathID(r, "etiquetaId"), claims.UserID)
	if err != nil {
		s.respondErr(w, err, "Tarea no encontrada", "Error al remover etiqueta")
		return
	}
	okMsg(w, "Etiqueta removida exitosamente")
}
