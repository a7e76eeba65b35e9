package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shenikar/resqalert/internal/models"
)

// ErrInvalidToken - токен не прошел проверку подписи, срока или содержимого
var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	Role    models.Role `json:"role"`
	AdminID string      `json:"aid"`
	jwt.RegisteredClaims
}

// JWTIssuer выпускает и проверяет HS256 токены сессии оператора
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue подписывает токен и возвращает сессию с заполненными TokenID и ExpiresAt
func (i *JWTIssuer) Issue(session models.Session) (string, models.Session, error) {
	now := i.now()
	session.TokenID = uuid.NewString()
	session.ExpiresAt = now.Add(i.ttl).Truncate(time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role:    session.Role,
		AdminID: session.AdminID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.Username,
			ID:        session.TokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", models.Session{}, fmt.Errorf("auth: could not sign token: %w", err)
	}
	return signed, session, nil
}

func (i *JWTIssuer) Parse(token string) (models.Session, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return models.Session{}, fmt.Errorf("auth: %w: %v", ErrInvalidToken, err)
	}

	role, err := models.ParseRole(string(c.Role))
	if err != nil {
		return models.Session{}, fmt.Errorf("auth: %w: %v", ErrInvalidToken, err)
	}
	adminID, err := uuid.Parse(c.AdminID)
	if err != nil {
		return models.Session{}, fmt.Errorf("auth: %w: bad admin id", ErrInvalidToken)
	}
	if c.ID == "" {
		return models.Session{}, fmt.Errorf("auth: %w: missing jti", ErrInvalidToken)
	}

	return models.Session{
		AdminID:   adminID,
		Username:  c.Subject,
		Role:      role,
		TokenID:   c.ID,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
