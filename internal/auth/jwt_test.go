package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/resqalert/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)
	adminID := uuid.New()

	token, issued, err := issuer.Issue(models.Session{AdminID: adminID, Username: "pnp-desk", Role: models.RolePNP})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, issued.TokenID)

	session, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, adminID, session.AdminID)
	assert.Equal(t, "pnp-desk", session.Username)
	assert.Equal(t, models.RolePNP, session.Role)
	assert.Equal(t, issued.TokenID, session.TokenID)
	assert.True(t, issued.ExpiresAt.Equal(session.ExpiresAt))
}

func TestJWTIssuer_Expired(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := issuer.Issue(models.Session{AdminID: uuid.New(), Username: "sa", Role: models.RoleSuperAdmin})
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	token, _, err := NewJWTIssuer("one", time.Hour).Issue(models.Session{AdminID: uuid.New(), Role: models.RoleBFP})
	require.NoError(t, err)

	_, err = NewJWTIssuer("two", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_Garbage(t *testing.T) {
	_, err := NewJWTIssuer("secret", time.Hour).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
