package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/resqalert/internal/models"
	"github.com/shenikar/resqalert/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type authMocks struct {
	admins *mocks.MockAdminRepository
	tokens *mocks.MockTokenIssuer
	store  *mocks.MockTokenStore
}

func newTestAuthService(t *testing.T) (*authService, authMocks) {
	ctrl := gomock.NewController(t)
	m := authMocks{
		admins: mocks.NewMockAdminRepository(ctrl),
		tokens: mocks.NewMockTokenIssuer(ctrl),
		store:  mocks.NewMockTokenStore(ctrl),
	}
	svc := NewAuthService(m.admins, m.tokens, m.store, newTestLogger()).(*authService)
	return svc, m
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLogin_Success(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()
	admin := &models.Admin{ID: uuid.New(), Username: "bfp-desk", Role: models.RoleBFP, PasswordHash: hashPassword(t, "s3cret!")}

	m.admins.EXPECT().GetByUsername(ctx, models.RoleBFP, "bfp-desk").Return(admin, nil)
	m.tokens.EXPECT().Issue(models.Session{AdminID: admin.ID, Username: "bfp-desk", Role: models.RoleBFP}).
		Return("signed", models.Session{AdminID: admin.ID, Username: "bfp-desk", Role: models.RoleBFP, TokenID: "jti"}, nil)

	token, session, err := svc.Login(ctx, models.RoleBFP, " bfp-desk ", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, "signed", token)
	assert.Equal(t, "jti", session.TokenID)
}

func TestLogin_Failures(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()
	admin := &models.Admin{ID: uuid.New(), Username: "pnp", Role: models.RolePNP, PasswordHash: hashPassword(t, "right")}

	m.admins.EXPECT().GetByUsername(ctx, models.RolePNP, "pnp").Return(admin, nil)
	_, _, err := svc.Login(ctx, models.RolePNP, "pnp", "wrong")
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	m.admins.EXPECT().GetByUsername(ctx, models.RolePNP, "ghost").Return(nil, models.ErrNotFound)
	_, _, err = svc.Login(ctx, models.RolePNP, "ghost", "right")
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	m.admins.EXPECT().GetByUsername(ctx, models.RolePNP, "pnp").Return(nil, errors.New("db down"))
	_, _, err = svc.Login(ctx, models.RolePNP, "pnp", "right")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrUnauthorized)
}

func TestAuthenticate(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()
	session := models.Session{Role: models.RoleSuperAdmin, TokenID: "jti-1"}

	m.tokens.EXPECT().Parse("good").Return(session, nil)
	m.store.EXPECT().IsRevoked(ctx, "jti-1").Return(false, nil)
	got, err := svc.Authenticate(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, session, got)

	m.tokens.EXPECT().Parse("revoked").Return(session, nil)
	m.store.EXPECT().IsRevoked(ctx, "jti-1").Return(true, nil)
	_, err = svc.Authenticate(ctx, "revoked")
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	m.tokens.EXPECT().Parse("junk").Return(models.Session{}, errors.New("bad signature"))
	_, err = svc.Authenticate(ctx, "junk")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestLogout_RevokesForRemainingLifetime(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	m.store.EXPECT().Revoke(ctx, "jti-2", 90*time.Minute).Return(nil)
	require.NoError(t, svc.Logout(ctx, models.Session{TokenID: "jti-2", ExpiresAt: now.Add(90 * time.Minute)}))

	// Истекший токен отзывать не нужно
	require.NoError(t, svc.Logout(ctx, models.Session{TokenID: "jti-3", ExpiresAt: now.Add(-time.Minute)}))
}

func TestUpdateAccount(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()
	admin := &models.Admin{ID: uuid.New(), Username: "old", PasswordHash: "old-hash", Role: models.RoleMDRRMO}
	session := models.Session{AdminID: admin.ID, Username: "old", Role: models.RoleMDRRMO}

	err := svc.UpdateAccount(ctx, session, " ", "")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	m.admins.EXPECT().GetByID(ctx, admin.ID).Return(admin, nil)
	m.admins.EXPECT().UpdateCredentials(ctx, admin.ID, "new", "old-hash").Return(nil)
	require.NoError(t, svc.UpdateAccount(ctx, session, "new", ""))

	m.admins.EXPECT().GetByID(ctx, admin.ID).Return(admin, nil)
	m.admins.EXPECT().UpdateCredentials(ctx, admin.ID, "old", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, _ string, hash string) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("n3w-pass")))
			return nil
		})
	require.NoError(t, svc.UpdateAccount(ctx, session, "", "n3w-pass"))

	// bcrypt не принимает пароли длиннее 72 байт
	m.admins.EXPECT().GetByID(ctx, admin.ID).Return(admin, nil)
	m.admins.EXPECT().UpdateCredentials(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	err = svc.UpdateAccount(ctx, session, "", strings.Repeat("p", 73))
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestEnsureBootstrapAdmin(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureBootstrapAdmin(ctx, "", ""))

	m.admins.EXPECT().GetByUsername(ctx, models.RoleSuperAdmin, "root").Return(&models.Admin{}, nil)
	require.NoError(t, svc.EnsureBootstrapAdmin(ctx, "root", "pw"))

	m.admins.EXPECT().GetByUsername(ctx, models.RoleSuperAdmin, "root").Return(nil, models.ErrNotFound)
	m.admins.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, a *models.Admin) error {
			assert.Equal(t, models.RoleSuperAdmin, a.Role)
			assert.Equal(t, "root", a.Username)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("pw")))
			return nil
		})
	require.NoError(t, svc.EnsureBootstrapAdmin(ctx, "root", "pw"))
}
