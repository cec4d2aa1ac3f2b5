package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tasklyhq/taskly-server/internal/errs"
	"github.com/tasklyhq/taskly-server/internal/model"
	"github.com/tasklyhq/taskly-server/internal/service"
)

const testToken = "valid-session-token"

// stubAuth accepts exactly testToken and delegates the rest to optional
// function fields.
type stubAuth struct {
	register      func(name, email, password string) (int64, error)
	login         func(email, password string) (string, model.PublicUser, error)
	updateProfile func(name, email string, photo *string) error
}

func (s *stubAuth) Register(_ context.Context, name, email, password string) (int64, error) {
	return s.register(name, email, password)
}

func (s *stubAuth) Login(_ context.Context, email, password, _ string) (string, model.PublicUser, error) {
	return s.login(email, password)
}

func (s *stubAuth) Authenticate(token string) (*service.Claims, error) {
	if token != testToken {
		return nil, errs.ErrUnauthenticated
	}
	return &service.Claims{UserID: 1, Email: "ana@example.com"}, nil
}

func (s *stubAuth) Profile(_ context.Context, userID int64) (model.PublicUser, error) {
	return model.PublicUser{ID: userID, Name: "Ana", Email: "ana@example.com"}, nil
}

func (s *stubAuth) UpdateProfile(_ context.Context, _ int64, name, email string, photo *string) error {
	if s.updateProfile != nil {
		return s.updateProfile(name, email, photo)
	}
	return nil
}

func (s *stubAuth) ChangePassword(context.Context, int64, string, string) error { return nil }

type stubTasks struct {
	create    func(t model.NewTask) (int64, error)
	getOne    func(id, ownerID int64) (*model.Task, error)
	setStatus func(id int64, status string, ownerID int64) error
	attachTag func(taskID, tagID, ownerID int64) error
}

func (s *stubTasks) List(context.Context, int64) ([]model.Task, error) {
	return []model.Task{}, nil
}

func (s *stubTasks) ListByStatus(context.Context, int64, string) ([]model.Task, error) {
	return []model.Task{}, nil
}

func (s *stubTasks) ListByCategory(context.Context, int64, int64) ([]model.Task, error) {
	return []model.Task{}, nil
}

func (s *stubTasks) GetOne(_ context.Context, id, ownerID int64) (*model.Task, error) {
	return s.getOne(id, ownerID)
}

func (s *stubTasks) Create(_ context.Context, t model.NewTask) (int64, error) {
	return s.create(t)
}

func (s *stubTasks) Update(context.Context, int64, model.TaskUpdate, int64) error { return nil }

func (s *stubTasks) SetStatus(_ context.Context, id int64, status string, ownerID int64) error {
	return s.setStatus(id, status, ownerID)
}

func (s *stubTasks) Delete(context.Context, int64, int64) error { return nil }

func (s *stubTasks) AttachTag(_ context.Context, taskID, tagID, ownerID int64) error {
	return s.attachTag(taskID, tagID, ownerID)
}

func (s *stubTasks) DetachTag(context.Context, int64, int64, int64) error { return nil }

func (s *stubTasks) Statistics(context.Context, int64) (model.Statistics, error) {
	return model.Statistics{}, nil
}

type stubCategories struct {
	create func(name, color string, icon *string, ownerID int64) (int64, error)
}

func (s *stubCategories) List(context.Context, int64) ([]model.Category, error) {
	return []model.Category{}, nil
}

func (s *stubCategories) GetOne(context.Context, int64, int64) (*model.Category, error) {
	return nil, errs.ErrNotFound
}

func (s *stubCategories) Create(_ context.Context, name, color string, icon *string, ownerID int64) (int64, error) {
	return s.create(name, color, icon, ownerID)
}

func (s *stubCategories) Update(context.Context, int64, string, string, *string, int64) error {
	return nil
}

func (s *stubCategories) Delete(context.Context, int64, int64) error { return nil }

type stubTags struct{}

func (stubTags) List(context.Context, int64) ([]model.Tag, error) { return []model.Tag{}, nil }
func (stubTags) GetOne(context.Context, int64, int64) (*model.Tag, error) { return nil, errs.ErrNotFound }
func (stubTags) Create(context.Context, string, string, int64) (int64, error) { return 1, nil }
func (stubTags) Update(context.Context, int64, string, string, int64) error  { return nil }
func (stubTags) Delete(context.Context, int64, int64) error                  { return nil }
func (stubTags) ListByTask(context.Context, int64, int64) ([]model.Tag, error) {
	return []model.Tag{}, nil
}

type stubAnalytics struct{}

func (stubAnalytics) Statistics(context.Context, int64) (model.Statistics, error) {
	return model.Statistics{}, nil
}

func (stubAnalytics) TasksByCategory(context.Context, int64) ([]model.CategoryCount, error) {
	return nil, nil
}

func (stubAnalytics) TasksByStatus(context.Context, int64) ([]model.StatusCount, error) {
	return nil, nil
}

func (stubAnalytics) TasksByPriority(context.Context, int64) ([]model.PriorityCount, error) {
	return nil, nil
}

func (stubAnalytics) WeeklyCompletions(context.Context, int64) ([]model.DailyCompletion, error) {
	return nil, nil
}

func (stubAnalytics) Upcoming(context.Context, int64) ([]model.Task, error) { return nil, nil }

func (stubAnalytics) RecentActivity(context.Context, int64, int) ([]model.Activity, error) {
	return nil, nil
}

func (stubAnalytics) Dashboard(context.Context, int64) (model.DashboardSummary, error) {
	return model.DashboardSummary{}, nil
}

type wireEnvelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func dataMap(t *testing.T, env wireEnvelope) map[string]any {
	t.Helper()
	m, ok := env.Data.(map[string]any)
	require.True(t, ok)
	return m
}

func newTestRouter(t *testing.T, auth *stubAuth, tasks *stubTasks, categories *stubCategories) http.Handler {
	t.Helper()
	opts := Options{
		UploadDir:   t.TempDir(),
		CORSOrigins: []string{"http://localhost:5173"},
	}
	srv := New(auth, tasks, categories, stubTags{}, stubAnalytics{}, zap.NewNop(), opts)
	return srv.Router()
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, wireEnvelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env wireEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestRouter_Info(t *testing.T) {
	h := newTestRouter(t, &stubAuth{}, &stubTasks{}, &stubCategories{})

	rec, env := doJSON(t, h, http.MethodGet, "/api", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)
	require.Equal(t, "taskly-api", dataMap(t, env)["service"])
}

func TestRouter_UnknownRoute(t *testing.T) {
	h := newTestRouter(t, &stubAuth{}, &stubTasks{}, &stubCategories{})

	rec, env := doJSON(t, h, http.MethodGet, "/api/nada", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.False(t, env.Success)
	require.Equal(t, "Ruta no encontrada", env.Message)
}

func TestRouter_RequiresToken(t *testing.T) {
	h := newTestRouter(t, &stubAuth{}, &stubTasks{}, &stubCategories{})

	for _, token := range []string{"", "token-falso"} {
		rec, env := doJSON(t, h, http.MethodGet, "/api/tareas", token, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Token inválido o expirado", env.Message)
	}

	rec, env := doJSON(t, h, http.MethodGet, "/api/tareas", testToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)
}

func TestRegister(t *testing.T) {
	auth := &stubAuth{
		register: func(name, email, _ string) (int64, error) {
			require.Equal(t, "Ana", name)
			require.Equal(t, "ana@example.com", email)
			return 7, nil
		},
	}
	h := newTestRouter(t, auth, &stubTasks{}, &stubCategories{})

	body := map[string]string{"nombre": "Ana", "email": "ana@example.com", "password": "secreta1"}
	rec, env := doJSON(t, h, http.MethodPost, "/api/auth/registrar", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, env.Success)
	require.Equal(t, "Usuario registrado exitosamente", env.Message)
	require.Equal(t, float64(7), dataMap(t, env)["usuarioId"])
}

func TestRegister_Errors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"duplicate email", errs.ErrAlreadyExists, http.StatusBadRequest, "El correo electrónico ya está registrado"},
		{"validation detail", &wrapped{errs.ErrValidation, "el nombre es requerido"}, http.StatusBadRequest, "el nombre es requerido"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &stubAuth{register: func(string, string, string) (int64, error) { return 0, tc.err }}
			h := newTestRouter(t, auth, &stubTasks{}, &stubCategories{})

			body := map[string]string{"nombre": "Ana", "email": "ana@example.com", "password": "secreta1"}
			rec, env := doJSON(t, h, http.MethodPost, "/api/auth/registrar", "", body)
			require.Equal(t, tc.wantCode, rec.Code)
			require.False(t, env.Success)
			require.Equal(t, tc.wantMsg, env.Message)
		})
	}
}

// wrapped mimics fmt.Errorf("%w: detail", sentinel).
type wrapped struct {
	sentinel error
	detail   string
}

func (w *wrapped) Error() string { return w.sentinel.Error() + ": " + w.detail }
func (w *wrapped) Unwrap() error { return w.sentinel }

func TestLogin(t *testing.T) {
	auth := &stubAuth{
		login: func(email, password string) (string, model.PublicUser, error) {
			switch {
			case email != "ana@example.com":
				return "", model.PublicUser{}, errs.ErrNotFound
			case password != "secreta1":
				return "", model.PublicUser{}, errs.ErrInvalidCredentials
			}
			return "jwt-token", model.PublicUser{ID: 1, Name: "Ana", Email: email}, nil
		},
	}
	h := newTestRouter(t, auth, &stubTasks{}, &stubCategories{})

	rec, env := doJSON(t, h, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "nadie@example.com", "password": "secreta1"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "No existe una cuenta con este correo electrónico", env.Message)

	rec, env = doJSON(t, h, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "ana@example.com", "password": "mala"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "La contraseña es incorrecta", env.Message)

	rec, env = doJSON(t, h, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "ana@example.com", "password": "secreta1"})
	require.Equal(t, http.StatusOK, rec.Code)
	data := dataMap(t, env)
	require.Equal(t, "jwt-token", data["token"])
	usuario, ok := data["usuario"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Ana", usuario["nombre"])
}

func TestLogin_MissingFields(t *testing.T) {
	h := newTestRouter(t, &stubAuth{}, &stubTasks{}, &stubCategories{})

	rec, env := doJSON(t, h, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "ana@example.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Email y contraseña son requeridos", env.Message)
}

func TestLogin_RateLimited(t *testing.T) {
	auth := &stubAuth{
		login: func(string, string) (string, model.PublicUser, error) {
			return "", model.PublicUser{}, errs.ErrRateLimited
		},
	}
	h := newTestRouter(t, auth, &stubTasks{}, &stubCategories{})

	rec, env := doJSON(t, h, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "ana@example.com", "password": "secreta1"})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "Demasiados intentos, intenta de nuevo más tarde", env.Message)
}

func TestCreateTask_ParsesDateOnly(t *testing.T) {
	var got model.NewTask
	tasks := &stubTasks{create: func(nt model.NewTask) (int64, error) {
		got = nt
		return 3, nil
	}}
	h := newTestRouter(t, &stubAuth{}, tasks, &stubCategories{})

	body := map[string]any{
		"titulo":       "Comprar leche",
		"fecha_limite": "2026-09-15",
		"prioridad":    "alta",
	}
	rec, env := doJSON(t, h, http.MethodPost, "/api/tareas", testToken, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "Tarea creada exitosamente", env.Message)
	require.Equal(t, float64(3), dataMap(t, env)["id"])

	require.Equal(t, int64(1), got.OwnerID)
	require.NotNil(t, got.DueDate)
	require.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), got.DueDate.UTC())
}

func TestCreateTask_BadDate(t *testing.T) {
	h := newTestRouter(t, &stubAuth{}, &stubTasks{}, &stubCategories{})

	body := map[string]any{"titulo": "T", "fecha_limite": "15/09/2026"}
	rec, env := doJSON(t, h, http.MethodPost, "/api/tareas", testToken, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "JSON inválido", env.Message)
}

func TestGetTask_NotFound(t *testing.T) {
	tasks := &stubTasks{getOne: func(int64, int64) (*model.Task, error) {
		return nil, errs.ErrNotFound
	}}
	h := newTestRouter(t, &stubAuth{}, tasks, &stubCategories{})

	rec, env := doJSON(t, h, http.MethodGet, "/api/tareas/42", testToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Tarea no encontrada", env.Message)
}

func TestSetTaskStatus(t *testing.T) {
	var gotStatus string
	tasks := &stubTasks{setStatus: func(id int64, status string, ownerID int64) error {
		require.Equal(t, int64(3), id)
		require.Equal(t, int64(1), ownerID)
		gotStatus = status
		return nil
	}}
	h := newTestRouter(t, &stubAuth{}, tasks, &stubCategories{})

	rec, env := doJSON(t, h, http.MethodPatch, "/api/tareas/3/estado", testToken,
		map[string]string{"estado": "completada"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Estado de tarea actualizado exitosamente", env.Message)
	require.Equal(t, "completada", gotStatus)
}

func TestAttachTag_RequiresTagID(t *testing.T) {
	h := newTestRouter(t, &stubAuth{}, &stubTasks{}, &stubCategories{})

	rec, env := doJSON(t, h, http.MethodPost, "/api/tareas/3/etiquetas", testToken,
		map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "ID de etiqueta requerido", env.Message)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	categories := &stubCategories{create: func(string, string, *string, int64) (int64, error) {
		return 0, errs.ErrAlreadyExists
	}}
	h := newTestRouter(t, &stubAuth{}, &stubTasks{}, categories)

	rec, env := doJSON(t, h, http.MethodPost, "/api/categorias", testToken,
		map[string]string{"nombre": "Trabajo", "color": "#F38181"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "El nombre ya está en uso", env.Message)
}

func TestAnalyticsRoutes(t *testing.T) {
	h := newTestRouter(t, &stubAuth{}, &stubTasks{}, &stubCategories{})

	paths := []string{
		"/api/analytics/estadisticas",
		"/api/analytics/tareas-categoria",
		"/api/analytics/tareas-estado",
		"/api/analytics/tareas-prioridad",
		"/api/analytics/productividad-semanal",
		"/api/analytics/proximas-vencer",
		"/api/analytics/actividad-reciente",
		"/api/analytics/dashboard",
	}
	for _, p := range paths {
		rec, env := doJSON(t, h, http.MethodGet, p, testToken, nil)
		require.Equalf(t, http.StatusOK, rec.Code, "path %s", p)
		require.Truef(t, env.Success, "path %s", p)
	}
}

func TestUpdateProfile_JSONReplacesPhoto(t *testing.T) {
	var gotPhoto *string
	called := false
	auth := &stubAuth{updateProfile: func(name, email string, photo *string) error {
		called = true
		require.Equal(t, "Ana", name)
		gotPhoto = photo
		return nil
	}}
	h := newTestRouter(t, auth, &stubTasks{}, &stubCategories{})

	// Omitting foto_perfil clears the stored reference (full replace).
	rec, env := doJSON(t, h, http.MethodPut, "/api/auth/perfil", testToken,
		map[string]string{"nombre": "Ana", "email": "ana@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Perfil actualizado exitosamente", env.Message)
	require.True(t, called)
	require.Nil(t, gotPhoto)

	rec, _ = doJSON(t, h, http.MethodPut, "/api/auth/perfil", testToken,
		map[string]string{"nombre": "Ana", "email": "ana@example.com", "foto_perfil": "abc.png"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotPhoto)
	require.Equal(t, "abc.png", *gotPhoto)
}

func TestCORSHeaders(t *testing.T) {
	h := newTestRouter(t, &stubAuth{}, &stubTasks{}, &stubCategories{})

	req := httptest.NewRequest(http.MethodOptions, "/api/tareas", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
