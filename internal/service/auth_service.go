package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"resume-builder/internal/domain"
	"resume-builder/internal/repository"
)

// AuthService coordina los flujos de signup, login y Google sign-in.
type AuthService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	limiter LoginRateLimiter
}

var (
	// ErrInvalidCredentials cubre tanto email desconocido como password
	// incorrecto; el mensaje al cliente nunca distingue entre ambos.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("rate limited")
)

func NewAuthService(logger *zap.Logger, users repository.UserRepository, limiter LoginRateLimiter) *AuthService {
	return &AuthService{
		logger:  logger,
		users:   users,
		limiter: limiter,
	}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// Signup crea una cuenta nueva con isAdmin=false.
// La validacion de forma ocurre en la capa HTTP, antes de tocar el store.
// No emite token: el cliente debe hacer login despues de registrarse.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (domain.User, error) {
	passwordHash, err := HashPassword(strings.TrimSpace(input.Password))
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        normalizeEmail(input.Email),
		PasswordHash: passwordHash,
		IsAdmin:      false,
		CreatedAt:    time.Now().UTC(),
	}

	// La carrera de dos signups concurrentes con el mismo email la resuelve
	// el indice unico: uno inserta, el otro recibe ErrDuplicateEmail.
	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login autentica email + password y devuelve el usuario.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (domain.User, error) {
	emailAddr = normalizeEmail(emailAddr)
	password = strings.TrimSpace(password)
	if emailAddr == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	if s.limiter != nil && !s.limiter.Allow(emailAddr) {
		return domain.User{}, ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if user.PasswordHash == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if !CheckPassword(password, user.PasswordHash) {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

type GoogleSignInInput struct {
	Email    string
	Username string
	Avatar   string
}

// GoogleSignIn busca la cuenta por email y la crea si no existe.
// Devuelve el usuario y true cuando la cuenta es nueva.
func (s *AuthService) GoogleSignIn(ctx context.Context, input GoogleSignInInput) (domain.User, bool, error) {
	emailAddr := normalizeEmail(input.Email)
	displayName := strings.TrimSpace(input.Username)
	avatar := strings.TrimSpace(input.Avatar)

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, false, err
	}

	// Cuenta federada nueva: el password es descartable, solo existe para
	// que el registro tenga un hash valido.
	throwaway, err := randomPassword()
	if err != nil {
		return domain.User{}, false, err
	}
	passwordHash, err := HashPassword(throwaway)
	if err != nil {
		return domain.User{}, false, err
	}

	user = domain.User{
		ID:           uuid.NewString(),
		Name:         displayName,
		Username:     deriveUsername(displayName),
		Email:        emailAddr,
		PasswordHash: passwordHash,
		Avatar:       avatar,
		IsAdmin:      false,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, false, err
	}
	return user, true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// deriveUsername convierte un display name en username: minusculas, sin espacios.
func deriveUsername(displayName string) string {
	return strings.ToLower(strings.ReplaceAll(displayName, " ", ""))
}

func randomPassword() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
