package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/fyren/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=auth.go -destination=mocks/auth_mock.go -package=mocks

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
)

// LockedOutError возвращается, пока действует блокировка после неудачных попыток
type LockedOutError struct {
	Remaining time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("locked out, try again in %ds", e.RemainingSeconds())
}

// RemainingSeconds округляет оставшееся время вверх до целых секунд
func (e *LockedOutError) RemainingSeconds() int {
	return int(math.Ceil(e.Remaining.Seconds()))
}

// SessionRepository хранит пользователя текущей сессии и флаг онбординга
type SessionRepository interface {
	GetCurrent(ctx context.Context) (*models.User, error)
	SaveCurrent(ctx context.Context, user *models.User) error
	ClearCurrent(ctx context.Context) error
	IsOnboarded(ctx context.Context) (bool, error)
	SetOnboarded(ctx context.Context) error
}

// RevokedTokenRepository хранит токены, отозванные при выходе
type RevokedTokenRepository interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RoleResolver определяет роль пользователя при входе
type RoleResolver interface {
	Resolve(ctx context.Context, email string) (models.Role, error)
}

type PasswordVerifier interface {
	Verify(password string) bool
}

// AttemptLimiter ограничивает число неудачных попыток входа
type AttemptLimiter interface {
	Remaining(key string) time.Duration
	Fail(key string) time.Duration
	Reset(key string)
}

// LockoutScope задает, чем разделяются счетчики неудачных попыток
type LockoutScope string

const (
	// LockoutScopeGlobal - одно окно блокировки на все учетные записи
	LockoutScopeGlobal LockoutScope = "global"
	// LockoutScopeEmail - отдельный счетчик для каждого email
	LockoutScopeEmail LockoutScope = "email"
)

const globalLockoutKey = "*"

func (s LockoutScope) key(email string) string {
	if s == LockoutScopeEmail {
		return strings.ToLower(email)
	}
	return globalLockoutKey
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context, session models.SessionToken) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	IsOnboarded(ctx context.Context) (bool, error)
	CompleteOnboarding(ctx context.Context) error
}

type authService struct {
	sessions SessionRepository
	revoked  RevokedTokenRepository
	roles    RoleResolver
	password PasswordVerifier
	limiter  AttemptLimiter
	scope    LockoutScope
	logger   *logrus.Logger
}

func NewAuthService(
	sessions SessionRepository,
	revoked RevokedTokenRepository,
	roles RoleResolver,
	password PasswordVerifier,
	limiter AttemptLimiter,
	scope LockoutScope,
	logger *logrus.Logger,
) AuthService {
	return &authService{
		sessions: sessions,
		revoked:  revoked,
		roles:    roles,
		password: password,
		limiter:  limiter,
		scope:    scope,
		logger:   logger,
	}
}

// Login проверяет блокировку и пароль, затем сохраняет пользователя как текущую сессию
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	key := s.scope.key(email)
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "Login",
		"email":   strings.ToLower(email),
	})

	if remaining := s.limiter.Remaining(key); remaining > 0 {
		log.WithField("remaining", remaining).Warn("Login rejected: locked out")
		return nil, &LockedOutError{Remaining: remaining}
	}

	if !s.password.Verify(password) {
		if lockedFor := s.limiter.Fail(key); lockedFor > 0 {
			log.WithField("locked_for", lockedFor).Warn("Too many failed login attempts, locking out")
			return nil, &LockedOutError{Remaining: lockedFor}
		}
		log.Warn("Login rejected: invalid credentials")
		return nil, ErrInvalidCredentials
	}

	role, err := s.roles.Resolve(ctx, email)
	if err != nil {
		log.WithError(err).Warn("Failed to resolve role")
		return nil, fmt.Errorf("service: could not login: %w", err)
	}
	s.limiter.Reset(key)

	user := &models.User{
		ID:    uuid.NewString(),
		Name:  localPart(email),
		Email: email,
		Role:  role,
	}
	if err := s.sessions.SaveCurrent(ctx, user); err != nil {
		log.WithError(err).Error("Failed to persist session")
		return nil, fmt.Errorf("service: could not login: %w", err)
	}
	if err := s.sessions.SetOnboarded(ctx); err != nil {
		log.WithError(err).Error("Failed to persist onboarding flag")
		return nil, fmt.Errorf("service: could not login: %w", err)
	}

	log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("User logged in")
	return user, nil
}

// Logout отзывает токен вызывающего и удаляет сохраненного пользователя сессии,
// только если сессия принадлежит ему
func (s *authService) Logout(ctx context.Context, session models.SessionToken) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "Logout",
		"user_id": session.UserID,
	})

	if session.ID != "" {
		if err := s.revoked.Revoke(ctx, session.ID, session.ExpiresAt); err != nil {
			log.WithError(err).Error("Failed to revoke session token")
			return fmt.Errorf("service: could not logout: %w", err)
		}
	}

	current, err := s.sessions.GetCurrent(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load session")
		return fmt.Errorf("service: could not logout: %w", err)
	}
	if current != nil && current.ID == session.UserID {
		if err := s.sessions.ClearCurrent(ctx); err != nil {
			log.WithError(err).Error("Failed to clear session")
			return fmt.Errorf("service: could not logout: %w", err)
		}
	}

	log.Info("User logged out")
	return nil
}

func (s *authService) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	revoked, err := s.revoked.IsRevoked(ctx, tokenID)
	if err != nil {
		return false, fmt.Errorf("service: could not check session token: %w", err)
	}
	return revoked, nil
}

// CurrentUser возвращает пользователя сессии или nil
func (s *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	user, err := s.sessions.GetCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not load session: %w", err)
	}
	return user, nil
}

func (s *authService) IsOnboarded(ctx context.Context) (bool, error) {
	done, err := s.sessions.IsOnboarded(ctx)
	if err != nil {
		return false, fmt.Errorf("service: could not load onboarding flag: %w", err)
	}
	return done, nil
}

func (s *authService) CompleteOnboarding(ctx context.Context) error {
	if err := s.sessions.SetOnboarded(ctx); err != nil {
		return fmt.Errorf("service: could not complete onboarding: %w", err)
	}
	return nil
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

// EmailHeuristicResolver выводит роль из подстроки email.
// Это заглушка для демо и тестов, а не модель авторизации.
type EmailHeuristicResolver struct{}

func (EmailHeuristicResolver) Resolve(_ context.Context, email string) (models.Role, error) {
	lower := strings.ToLower(email)
	switch {
	case strings.Contains(lower, "chief"), strings.Contains(lower, "chefe"):
		return models.RoleChief, nil
	case strings.Contains(lower, "admin"):
		return models.RoleAdmin, nil
	default:
		return models.RoleUser, nil
	}
}

// DirectoryResolver берет роль из справочника пользователей.
// Неизвестный email получает роль user, деактивированный пользователь не может войти.
type DirectoryResolver struct {
	users UserRepository
}

func NewDirectoryResolver(users UserRepository) *DirectoryResolver {
	return &DirectoryResolver{users: users}
}

func (r *DirectoryResolver) Resolve(ctx context.Context, email string) (models.Role, error) {
	user, err := r.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.RoleUser, nil
		}
		return "", err
	}
	if !user.Active {
		return "", ErrAccountDisabled
	}
	return user.Role, nil
}
