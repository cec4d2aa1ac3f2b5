// Package httpapi exposes the Taskly REST API over gorilla/mux.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/tasklyhq/taskly-server/internal/errs"
	"github.com/tasklyhq/taskly-server/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth       service.AuthService
	tasks      service.TaskService
	categories service.CategoryService
	tags       service.TagService
	analytics  service.AnalyticsService

	log         *zap.Logger
	uploadDir   string
	corsOrigins []string
	dev         bool
}

// Options carries the non-service knobs of the HTTP layer.
type Options struct {
	UploadDir   string
	CORSOrigins []string
	Development bool
}

// New constructs a Server with injected services.
func New(
	auth service.AuthService,
	tasks service.TaskService,
	categories service.CategoryService,
	tags service.TagService,
	analytics service.AnalyticsService,
	log *zap.Logger,
	opts Options,
) *Server {
	return &Server{
		auth:        auth,
		tasks:       tasks,
		categories:  categories,
		tags:        tags,
		analytics:   analytics,
		log:         log,
		uploadDir:   opts.UploadDir,
		corsOrigins: opts.CORSOrigins,
		dev:         opts.Development,
	}
}

// Router assembles the full route table with middleware and CORS.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(Recover(s.log), Logging(s.log))

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("", s.handleInfo).Methods(http.MethodGet)

	// Public auth routes.
	api.HandleFunc("/auth/registrar", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	// Protected routes.
	priv := api.NewRoute().Subrouter()
	priv.Use(Authenticate(s.auth))

	priv.HandleFunc("/auth/perfil", s.handleProfile).Methods(http.MethodGet)
	priv.HandleFunc("/auth/perfil", s.handleUpdateProfile).Methods(http.MethodPut)
	priv.HandleFunc("/auth/cambiar-password", s.handleChangePassword).Methods(http.MethodPut)

	priv.HandleFunc("/tareas", s.handleListTasks).Methods(http.MethodGet)
	priv.HandleFunc("/tareas", s.handleCreateTask).Methods(http.MethodPost)
	priv.HandleFunc("/tareas/estado/{estado}", s.handleTasksByStatus).Methods(http.MethodGet)
	priv.HandleFunc("/tareas/categoria/{categoriaId:[0-9]+}", s.handleTasksByCategory).Methods(http.MethodGet)
	priv.HandleFunc("/tareas/{id:[0-9]+}", s.handleGetTask).Methods(http.MethodGet)
	priv.HandleFunc("/tareas/{id:[0-9]+}", s.handleUpdateTask).Methods(http.MethodPut)
	priv.HandleFunc("/tareas/{id:[0-9]+}", s.handleDeleteTask).Methods(http.MethodDelete)
	priv.HandleFunc("/tareas/{id:[0-9]+}/estado", s.handleSetTaskStatus).Methods(http.MethodPatch)
	priv.HandleFunc("/tareas/{id:[0-9]+}/etiquetas", s.handleAttachTag).Methods(http.MethodPost)
	priv.HandleFunc("/tareas/{id:[0-9]+}/etiquetas/{etiquetaId:[0-9]+}", s.handleDetachTag).Methods(http.MethodDelete)

	priv.HandleFunc("/categorias", s.handleListCategories).Methods(http.MethodGet)
	priv.HandleFunc("/categorias", s.handleCreateCategory).Methods(http.MethodPost)
	priv.HandleFunc("/categorias/{id:[0-9]+}", s.handleGetCategory).Methods(http.MethodGet)
	priv.HandleFunc("/categorias/{id:[0-9]+}", s.handleUpdateCategory).Methods(http.MethodPut)
	priv.HandleFunc("/categorias/{id:[0-9]+}", s.handleDeleteCategory).Methods(http.MethodDelete)

	priv.HandleFunc("/etiquetas", s.handleListTags).Methods(http.MethodGet)
	priv.HandleFunc("/etiquetas", s.handleCreateTag).Methods(http.MethodPost)
	priv.HandleFunc("/etiquetas/{id:[0-9]+}", s.handleGetTag).Methods(http.MethodGet)
	priv.HandleFunc("/etiquetas/{id:[0-9]+}", s.handleUpdateTag).Methods(http.MethodPut)
	priv.HandleFunc("/etiquetas/{id:[0-9]+}", s.handleDeleteTag).Methods(http.MethodDelete)
	priv.HandleFunc("/etiquetas/tarea/{tareaId:[0-9]+}", s.handleTagsByTask).Methods(http.MethodGet)

	priv.HandleFunc("/analytics/estadisticas", s.handleStatistics).Methods(http.MethodGet)
	priv.HandleFunc("/analytics/tareas-categoria", s.handleByCategory).Methods(http.MethodGet)
	priv.HandleFunc("/analytics/tareas-estado", s.handleByStatus).Methods(http.MethodGet)
	priv.HandleFunc("/analytics/tareas-prioridad", s.handleByPriority).Methods(http.MethodGet)
	priv.HandleFunc("/analytics/productividad-semanal", s.handleWeekly).Methods(http.MethodGet)
	priv.HandleFunc("/analytics/proximas-vencer", s.handleUpcoming).Methods(http.MethodGet)
	priv.HandleFunc("/analytics/actividad-reciente", s.handleActivity).Methods(http.MethodGet)
	priv.HandleFunc("/analytics/dashboard", s.handleDashboard).Methods(http.MethodGet)

	// Uploaded profile photos.
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadDir))))

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fail(w, http.StatusNotFound, "Ruta no encontrada")
	})

	cors := handlers.CORS(
		handlers.AllowedOrigins(s.corsOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)
	return cors(r)
}

// handleInfo is the unauthenticated liveness probe.
func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	ok(w, http.StatusOK, map[string]string{
		"service": "taskly-api",
		"version": "1.0.0",
	})
}

// respondErr classifies a service error into the wire envelope.
// notFoundMsg names the entity for the 404 case; internalMsg is logged for
// unclassified errors, whose detail is suppressed outside development.
func (s *Server) respondErr(w http.ResponseWriter, err error, notFoundMsg, internalMsg string) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		fail(w, http.StatusBadRequest, validationDetail(err))
	case errors.Is(err, errs.ErrAlreadyExists):
		fail(w, http.StatusBadRequest, "El nombre ya está en uso")
	case errors.Is(err, errs.ErrInvalidCredentials):
		fail(w, http.StatusUnauthorized, "La contraseña es incorrecta")
	case errors.Is(err, errs.ErrUnauthenticated):
		fail(w, http.StatusUnauthorized, "Token inválido o expirado")
	case errors.Is(err, errs.ErrRateLimited):
		fail(w, http.StatusTooManyRequests, "Demasiados intentos, intenta de nuevo más tarde")
	case errors.Is(err, errs.ErrNotFound):
		fail(w, http.StatusNotFound, notFoundMsg)
	default:
		s.log.Error(internalMsg, zap.Error(err))
		if s.dev {
			fail(w, http.StatusInternalServerError, err.Error())
			return
		}
		fail(w, http.StatusInternalServerError, "Error interno del servidor")
	}
}
