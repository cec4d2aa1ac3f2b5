package httpapi

import (
	"net/http"
	"strconv"
)

// handleStatistics returns the caller's task aggregate.
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	stats, err := s.analytics.Statistics(r.Context(), claims.UserID)
	if err != nil {
		s.respondErr(w, err, "", "Error al obtener estadísticas")
		return
	}
	ok(w, http.StatusOK, stats)
}

// handleByCategory returns grouped task counts per category.
func (s *Server) handleByCategory(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	rows, err := s.analytics.TasksByCategory(r.Context(), claims.UserID)
	if err != nil {
		s.respondErr(w, err, "", "Error al obtener datos")
		return
	}
	ok(w, http.StatusOK, rows)
}

// handleByStatus returns grouped task counts per status.
func (s *Server) handleByStatus(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	rows, err := s.analytics.TasksByStatus(r.Context(), claims.UserID)
	if err != nil {
		s.respondErr(w, err, "", "Error al obtener datos")
		return
	}
	ok(w, http.StatusOK, rows)
}

// handleByPriority returns grouped task counts per priority.
func (s *Server) handleByPriority(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	rows, err := s.analytics.TasksByPriority(r.Context(), claims.UserID)
	if err != nil {
		s.respondErr(w, err, "", "Error al obtener datos")
		return
	}
	ok(w, http.StatusOK, rows)
}

// handleWeekly returns the trailing-7-day completion trend.
func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	rows, err := s.analytics.WeeklyCompletions(r.Context(), claims.UserID)
	if err != nil {
		s.respondErr(w, err, "", "Error al obtener productividad semanal")
		return
	}
	ok(w, http.StatusOK, rows)
}

// handleUpcoming returns non-completed tasks due within the next 7 days.
func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	rows, err := s.analytics.Upcoming(r.Context(), claims.UserID)
	if err != nil {
		s.respondErr(w, err, "", "Error al obtener tareas próximas a vencer")
		return
	}
	ok(w, http.StatusOK, rows)
}

// handleActivity returns the recent activity feed; ?limite=N overrides the
// default size.
func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limite"))
	rows, err := s.analytics.RecentActivity(r.Context(), claims.UserID, limit)
	if err != nil {
		s.respondErr(w, err, "", "Error al obtener actividad")
		return
	}
	ok(w, http.StatusOK, rows)
}

// handleDashboard bundles statistics, recent tasks and recent activity.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	summary, err := s.analytics.Dashboard(r.Context(), claims.UserID)
	if err != nil {
		s.respondErr(w, err, "", "Error al obtener resumen")
		return
	}
	ok(w, http.StatusOK, summary)
}
