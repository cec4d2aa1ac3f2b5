// Package model defines domain entities used by services and repositories.
package model

import "time"

// Task status values as stored and served on the wire.
const (
	StatusPending    = "pendiente"
	StatusInProgress = "en_progreso"
	StatusCompleted  = "completada"
)

// Task priority values.
const (
	PriorityLow    = "baja"
	PriorityMedium = "media"
	PriorityHigh   = "alta"
)

// ValidStatus reports whether s is one of the three task states.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// ValidPriority reports whether p is a known priority.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// User is an account row. PasswordHash never leaves the server.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	PhotoURL     *string
	RegisteredAt time.Time
	LastSeenAt   *time.Time
}

// PublicUser is the client-facing projection of a User.
type PublicUser struct {
	ID           int64      `json:"id"`
	Name         string     `json:"nombre"`
	Email        string     `json:"email"`
	PhotoURL     *string    `json:"foto_perfil"`
	RegisteredAt time.Time  `json:"fecha_registro"`
	LastSeenAt   *time.Time `json:"ultima_conexion,omitempty"`
}

// Public strips credential material from a User.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PhotoURL:     u.PhotoURL,
		RegisteredAt: u.RegisteredAt,
		LastSeenAt:   u.LastSeenAt,
	}
}

// Category groups tasks for one owner. (Name, OwnerID) is unique.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nombre"`
	Color     string    `json:"color"`
	Icon      *string   `json:"icono"`
	OwnerID   int64     `json:"usuario_id"`
	CreatedAt time.Time `json:"fecha_creacion"`

	// TaskCount is populated only by the list-with-counts query.
	TaskCount int64 `json:"total_tareas"`
}

// Tag labels tasks for one owner. (Name, OwnerID) is unique.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nombre"`
	Color     string    `json:"color"`
	OwnerID   int64     `json:"usuario_id"`
	CreatedAt time.Time `json:"fecha_creacion"`
}

// Task is a single to-do item. CategoryID may reference a deleted
// category; the schema does not enforce the reference.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"titulo"`
	Description *string    `json:"descripcion"`
	DueDate     *time.Time `json:"fecha_limite"`
	Priority    string     `json:"prioridad"`
	Status      string     `json:"estado"`
	OwnerID     int64      `json:"usuario_id"`
	CategoryID  *int64     `json:"categoria_id"`
	CreatedAt   time.Time  `json:"fecha_creacion"`
	CompletedAt *time.Time `json:"fecha_completada"`

	// Joined fields, present on list queries only.
	CategoryName  *string `json:"categoria_nombre,omitempty"`
	CategoryColor *string `json:"categoria_color,omitempty"`
	TagNames      *string `json:"etiquetas,omitempty"`
}

// NewTask carries the fields accepted on task creation.
type NewTask struct {
	Title       string
	Description *string
	DueDate     *time.Time
	Priority    string
	OwnerID     int64
	CategoryID  *int64
}

// TaskUpdate is a full-row replace of mutable task fields.
type TaskUpdate struct {
	Title       string
	Description *string
	DueDate     *time.Time
	Priority    string
	Status      string
	CategoryID  *int64
}

// Activity is one append-only audit trail entry.
type Activity struct {
	ID      int64     `json:"id"`
	OwnerID int64     `json:"usuario_id"`
	Kind    string    `json:"tipo_actividad"`
	Detail  *string   `json:"detalles"`
	At      time.Time `json:"fecha_actividad"`
}

// Activity kinds recorded by the application.
const (
	ActivityLogin         = "login"
	ActivityTaskCreated   = "tarea_creada"
	ActivityTaskCompleted = "tarea_completada"
	ActivityTaskDeleted   = "tarea_eliminada"
)

// Statistics is the single-row task aggregate for one owner.
type Statistics struct {
	Total        int64 `json:"total_tareas"`
	Completed    int64 `json:"completadas"`
	Pending      int64 `json:"pendientes"`
	InProgress   int64 `json:"en_progreso"`
	HighPriority int64 `json:"alta_prioridad"`
	Overdue      int64 `json:"vencidas"`
}

// CategoryCount is one slice of the tasks-per-category chart.
type CategoryCount struct {
	Category string `json:"categoria"`
	Color    string `json:"color"`
	Count    int64  `json:"cantidad"`
}

// StatusCount is one slice of the tasks-per-status chart.
type StatusCount struct {
	Status string `json:"estado"`
	Count  int64  `json:"cantidad"`
}

// PriorityCount is one slice of the tasks-per-priority chart.
type PriorityCount struct {
	Priority string `json:"prioridad"`
	Count    int64  `json:"cantidad"`
}

// DailyCompletion is one day of the weekly productivity trend.
type DailyCompletion struct {
	Date      time.Time `json:"fecha"`
	Completed int64     `json:"tareas_completadas"`
}

// DashboardSummary bundles the dashboard widgets into one response.
type DashboardSummary struct {
	Statistics  Statistics `json:"estadisticas"`
	RecentTasks []Task     `json:"tareasRecientes"`
	Activities  []Activity `json:"actividades"`
}

// CategorySeed describes one default category created at registration.
type CategorySeed struct {
	Name  string
	Color string
	Icon  string
}

// DefaultCategories are seeded for every new account.
var DefaultCategories = []CategorySeed{
	{Name: "Personal", Color: "#EC4899", Icon: "fas fa-user"},
	{Name: "Trabajo", Color: "#F38181", Icon: "fas fa-briefcase"},
	{Name: "Estudios", Color: "#95E1D3", Icon: "fas fa-book"},
	{Name: "Hogar", Color: "#FFD93D", Icon: "fas fa-home"},
}
