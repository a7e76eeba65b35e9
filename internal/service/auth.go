package service

//go:generate mockgen -source=auth.go -destination=mocks/auth_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/resqalert/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AdminRepository определяет контракт хранилища учетных записей операторов
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
	GetByUsername(ctx context.Context, role models.Role, username string) (*models.Admin, error)
	UpdateCredentials(ctx context.Context, id uuid.UUID, username, passwordHash string) error
}

// TokenIssuer выпускает и проверяет токены доступа
type TokenIssuer interface {
	Issue(session models.Session) (string, models.Session, error)
	Parse(token string) (models.Session, error)
}

// TokenStore хранит отозванные токены до истечения их срока
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthService - единственное место, где создается и завершается сессия оператора
type AuthService interface {
	Login(ctx context.Context, role models.Role, username, password string) (string, models.Session, error)
	Authenticate(ctx context.Context, token string) (models.Session, error)
	Logout(ctx context.Context, session models.Session) error
	UpdateAccount(ctx context.Context, session models.Session, username, password string) error
	EnsureBootstrapAdmin(ctx context.Context, username, password string) error
}

type authService struct {
	admins AdminRepository
	tokens TokenIssuer
	store  TokenStore
	logger *logrus.Logger
	now    func() time.Time
}

func NewAuthService(admins AdminRepository, tokens TokenIssuer, store TokenStore, logger *logrus.Logger) AuthService {
	return &authService{
		admins: admins,
		tokens: tokens,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Login проверяет пароль и выдает токен, содержащий роль и логин
func (s *authService) Login(ctx context.Context, role models.Role, username, password string) (string, models.Session, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "auth",
		"method":   "Login",
		"role":     role,
		"username": username,
	})

	admin, err := s.admins.GetByUsername(ctx, role, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("Login attempt for unknown account")
			return "", models.Session{}, fmt.Errorf("service: invalid credentials: %w", models.ErrUnauthorized)
		}
		log.WithError(err).Error("Failed to load admin account")
		return "", models.Session{}, fmt.Errorf("service: could not load account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		log.Warn("Login attempt with wrong password")
		return "", models.Session{}, fmt.Errorf("service: invalid credentials: %w", models.ErrUnauthorized)
	}

	token, session, err := s.tokens.Issue(models.Session{
		AdminID:  admin.ID,
		Username: admin.Username,
		Role:     admin.Role,
	})
	if err != nil {
		log.WithError(err).Error("Failed to issue token")
		return "", models.Session{}, fmt.Errorf("service: could not issue token: %w", err)
	}

	log.Info("Admin logged in")
	return token, session, nil
}

// Authenticate восстанавливает сессию по токену и проверяет, что он не отозван
func (s *authService) Authenticate(ctx context.Context, token string) (models.Session, error) {
	session, err := s.tokens.Parse(token)
	if err != nil {
		return models.Session{}, fmt.Errorf("service: invalid token: %w", models.ErrUnauthorized)
	}

	revoked, err := s.store.IsRevoked(ctx, session.TokenID)
	if err != nil {
		return models.Session{}, fmt.Errorf("service: could not check token: %w", err)
	}
	if revoked {
		return models.Session{}, fmt.Errorf("service: token revoked: %w", models.ErrUnauthorized)
	}
	return session, nil
}

// Logout отзывает токен сессии до конца его срока действия
func (s *authService) Logout(ctx context.Context, session models.Session) error {
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.store.Revoke(ctx, session.TokenID, ttl); err != nil {
		s.logger.WithError(err).WithField("username", session.Username).Error("Failed to revoke token")
		return fmt.Errorf("service: could not revoke token: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"service":  "auth",
		"method":   "Logout",
		"username": session.Username,
	}).Info("Admin logged out")
	return nil
}

// UpdateAccount меняет логин и/или пароль оператора текущей сессии
func (s *authService) UpdateAccount(ctx context.Context, session models.Session, username, password string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "auth",
		"method":   "UpdateAccount",
		"username": session.Username,
	})

	username = strings.TrimSpace(username)
	if username == "" && password == "" {
		return fmt.Errorf("service: new username or password is required: %w", models.ErrInvalidInput)
	}

	admin, err := s.admins.GetByID(ctx, session.AdminID)
	if err != nil {
		return fmt.Errorf("service: could not load account: %w", err)
	}

	newUsername := admin.Username
	if username != "" {
		newUsername = username
	}
	newHash := admin.PasswordHash
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return fmt.Errorf("service: password must be at most 72 bytes: %w", models.ErrInvalidInput)
		}
		if err != nil {
			return fmt.Errorf("service: could not hash password: %w", err)
		}
		newHash = string(hash)
	}

	if err := s.admins.UpdateCredentials(ctx, admin.ID, newUsername, newHash); err != nil {
		log.WithError(err).Error("Failed to update account in repository")
		return fmt.Errorf("service: could not update account: %w", err)
	}

	log.Info("Account updated successfully")
	return nil
}

// EnsureBootstrapAdmin создает учетную запись SA при первом запуске
func (s *authService) EnsureBootstrapAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	_, err := s.admins.GetByUsername(ctx, models.RoleSuperAdmin, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("service: could not check bootstrap admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("service: could not hash password: %w", err)
	}
	admin := &models.Admin{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleSuperAdmin,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return fmt.Errorf("service: could not create bootstrap admin: %w", err)
	}

	s.logger.WithField("username", username).Info("Bootstrap super admin created")
	return nil
}
