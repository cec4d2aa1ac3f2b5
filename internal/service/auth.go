// Package service contains application services for authentication, tasks,
// categories, tags and analytics.
package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tasklyhq/taskly-server/internal/crypto"
	"github.com/tasklyhq/taskly-server/internal/errs"
	"github.com/tasklyhq/taskly-server/internal/limiter"
	"github.com/tasklyhq/taskly-server/internal/model"
	"github.com/tasklyhq/taskly-server/internal/repository"
)

// TokenTTL is the lifetime of an issued session token.
const TokenTTL = 24 * time.Hour

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 6

// Claims are the session token claims: user identity plus expiry.
type Claims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService defines registration, login and profile operations.
type AuthService interface {
	// Register creates a new user with hashed password and seeded default
	// categories, and returns the new user id. No session is issued.
	Register(ctx context.Context, name, email, password string) (int64, error)
	// Login authenticates by email/password with rate limiting by (email, ip)
	// and returns a signed session token plus the public user projection.
	Login(ctx context.Context, email, password, ip string) (string, model.PublicUser, error)
	// Authenticate verifies a session token and returns the embedded identity.
	Authenticate(token string) (*Claims, error)
	// Profile loads the public projection of a user.
	Profile(ctx context.Context, userID int64) (model.PublicUser, error)
	// UpdateProfile replaces name, email and (optionally) the photo reference.
	UpdateProfile(ctx context.Context, userID int64, name, email string, photo *string) error
	// ChangePassword re-hashes and stores a new password after verifying the
	// current one.
	ChangePassword(ctx context.Context, userID int64, current, next string) error
}

type AuthServiceImpl struct {
	users    repository.UserRepository
	activity repository.ActivityRepository
	signKey  []byte
	lim      limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, activity repository.ActivityRepository, signKey []byte, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, activity: activity, signKey: signKey, lim: lim}
}

// Register validates input, hashes the password and creates the account with
// its four default categories.
func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: el nombre es requerido", errs.ErrValidation)
	}
	if !validEmail(email) {
		return 0, fmt.Errorf("%w: email inválido", errs.ErrValidation)
	}
	if len(password) < MinPasswordLen {
		return 0, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", errs.ErrValidation, MinPasswordLen)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return 0, err
	}
	id, err := s.users.Create(ctx, name, email, hash, model.DefaultCategories)
	if err != nil {
		return 0, err
	}

	detail := "Usuario registrado exitosamente"
	_ = s.activity.Record(ctx, id, model.ActivityLogin, &detail)
	return id, nil
}

// Login authenticates with rate limiting by (email, ip). An unknown email is
// reported as ErrNotFound and a bad password as ErrInvalidCredentials,
// matching the public API contract.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, ip string) (string, model.PublicUser, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return "", model.PublicUser{}, err
	}
	if !allowed {
		return "", model.PublicUser{}, errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", model.PublicUser{}, err
	}
	if !crypto.VerifyPassword(password, u.PasswordHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return "", model.PublicUser{}, errs.ErrRateLimited
		}
		return "", model.PublicUser{}, errs.ErrInvalidCredentials
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, email, ipHash)
	_ = s.users.TouchLastSeen(ctx, u.ID)

	detail := "Inicio de sesión exitoso"
	_ = s.activity.Record(ctx, u.ID, model.ActivityLogin, &detail)

	token, err := s.issueToken(u.ID, u.Email)
	if err != nil {
		return "", model.PublicUser{}, err
	}
	return token, u.Public(), nil
}

// issueToken creates a signed HS256 JWT carrying user id, email and expiry.
func (s *AuthServiceImpl) issueToken(userID int64, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.signKey)
}

// Authenticate parses and verifies a session token. Any failure (missing,
// malformed, expired, bad signature) surfaces as ErrUnauthenticated.
func (s *AuthServiceImpl) Authenticate(token string) (*Claims, error) {
	if token == "" {
		return nil, errs.ErrUnauthenticated
	}
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.signKey, nil
	})
	if err != nil || !parsed.Valid || claims.UserID == 0 {
		return nil, errs.ErrUnauthenticated
	}
	return &claims, nil
}

// Profile loads the public projection of a user.
func (s *AuthServiceImpl) Profile(ctx context.Context, userID int64) (model.PublicUser, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.PublicUser{}, err
	}
	return u.Public(), nil
}

// UpdateProfile replaces name, email and photo reference.
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, userID int64, name, email string, photo *string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: el nombre es requerido", errs.ErrValidation)
	}
	if !validEmail(email) {
		return fmt.Errorf("%w: email inválido", errs.ErrValidation)
	}
	return s.users.UpdateProfile(ctx, userID, name, email, photo)
}

// ChangePassword verifies the current password and stores a new hash.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if len(next) < MinPasswordLen {
		return fmt.Errorf("%w: la nueva contraseña debe tener al menos %d caracteres", errs.ErrValidation, MinPasswordLen)
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !crypto.VerifyPassword(current, u.PasswordHash) {
		return errs.ErrInvalidCredentials
	}
	hash, err := crypto.HashPassword(next)
	if err != nil {
		return err
	}
	return s.users.SetPasswordHash(ctx, userID, hash)
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
