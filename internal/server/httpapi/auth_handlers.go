package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/tasklyhq/taskly-server/internal/errs"
)

// maxUploadBytes caps profile photo uploads at 5 MB.
const maxUploadBytes = 5 << 20

type registerRequest struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	Current string `json:"passwordActual"`
	Next    string `json:"passwordNueva"`
}

// handleRegister creates a new account. No session token is issued.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	id, err := s.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			fail(w, http.StatusBadRequest, "El correo electrónico ya está registrado")
			return
		}
		s.respondErr(w, err, "Usuario no encontrado", "Error al registrar usuario")
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "Usuario registrado exitosamente",
		Data:    map[string]int64{"usuarioId": id},
	})
}

// handleLogin authenticates and issues a 24-hour session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if req.Email == "" || req.Password == "" {
		fail(w, http.StatusBadRequest, "Email y contraseña son requeridos")
		return
	}

	token, user, err := s.auth.Login(r.Context(), req.Email, req.Password, r.RemoteAddr)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			fail(w, http.StatusNotFound, "No existe una cuenta con este correo electrónico")
			return
		}
		s.respondErr(w, err, "", "Error al iniciar sesión")
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Inicio de sesión exitoso",
		Data: map[string]any{
			"token":   token,
			"usuario": user,
		},
	})
}

// handleProfile returns the authenticated user's public projection.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())
	user, err := s.auth.Profile(r.Context(), claims.UserID)
	if err != nil {
		s.respondErr(w, err, "Usuario no encontrado", "Error al obtener perfil")
		return
	}
	ok(w, http.StatusOK, user)
}

// handleUpdateProfile updates name/email and optionally stores an uploaded
// photo. Accepts multipart form data or plain JSON. The photo reference is
// replaced wholesale: a JSON body without foto_perfil clears the stored one.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())

	var name, email string
	var photo *string

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			fail(w, http.StatusBadRequest, "Formulario inválido")
			return
		}
		name = r.FormValue("nombre")
		email = r.FormValue("email")
		if v := r.FormValue("foto_perfil"); v != "" {
			photo = &v
		}
		if file, header, err := r.FormFile("foto_perfil"); err == nil {
			defer file.Close()
			stored, err := s.storeUpload(file, header.Filename)
			if err != nil {
				s.respondErr(w, err, "", "Error al guardar la foto")
				return
			}
			photo = &stored
		}
	} else {
		var req struct {
			Name  string  `json:"nombre"`
			Email string  `json:"email"`
			Photo *string `json:"foto_perfil"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			fail(w, http.StatusBadRequest, "JSON inválido")
			return
		}
		name, email, photo = req.Name, req.Email, req.Photo
	}

	if err := s.auth.UpdateProfile(r.Context(), claims.UserID, name, email, photo); err != nil {
		s.respondErr(w, err, "Usuario no encontrado", "Error al actualizar perfil")
		return
	}
	okMsg(w, "Perfil actualizado exitosamente")
}

// storeUpload writes an uploaded photo under the upload dir with a
// uuid-derived name, keeping the original extension.
func (s *Server) storeUpload(file io.Reader, original string) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	name := id.String() + strings.ToLower(filepath.Ext(original))

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(filepath.Join(s.uploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, maxUploadBytes)); err != nil {
		return "", err
	}
	return name, nil
}

// handleChangePassword verifies the current password and stores a new hash.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, _ := IdentityFromCtx(r.Context())

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if req.Current == "" {
		fail(w, http.StatusBadRequest, "La contraseña actual es requerida")
		return
	}

	if err := s.auth.ChangePassword(r.Context(), claims.UserID, req.Current, req.Next); err != nil {
		if errors.Is(err, errs.ErrInvalidCredentials) {
			fail(w, http.StatusBadRequest, "La contraseña actual es incorrecta")
			return
		}
		s.respondErr(w, err, "Usuario no encontrado", "Error al cambiar contraseña")
		return
	}
	okMsg(w, "Contraseña cambiada exitosamente")
}
