package services

import (
	"context"
	"testing"

	"fieldside/internal/adapters/persistence/models"
	"fieldside/internal/config"
	"fieldside/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingDirectoryRepo lets a test make role record creation fail the way a
// duplicate index or a lost race would in the real repository.
type failingDirectoryRepo struct {
	*fakeDirectoryRepo
	createManagerErr error
}

func (r *failingDirectoryRepo) CreateManager(ctx context.Context, m *models.Manager) error {
	if r.createManagerErr != nil {
		return r.createManagerErr
	}
	return r.fakeDirectoryRepo.CreateManager(ctx, m)
}

type authFixture struct {
	svc           *AuthService
	userRepo      *fakeUserRepo
	directoryRepo *failingDirectoryRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	userRepo := newFakeUserRepo()
	refreshTokenRepo := newFakeRefreshTokenRepo()
	directoryRepo := &failingDirectoryRepo{fakeDirectoryRepo: newFakeDirectoryRepo()}
	schoolRepo := newFakeSchoolRepo()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}

	return &authFixture{
		svc:           NewAuthService(userRepo, refreshTokenRepo, directoryRepo, schoolRepo, cfg),
		userRepo:      userRepo,
		directoryRepo: directoryRepo,
	}
}

func managerRegisterInput() *RegisterInput {
	return &RegisterInput{
		Username:    "mona",
		Email:       "mona@fieldside.io",
		PhoneNumber: "+19995550001",
		Password:    "longenough",
		Role:        "manager",
	}
}

func TestRegisterManagerRoundTrip(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Register(ctx, managerRegisterInput())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, domain.RoleManager, resp.User.Role)

	_, err = f.directoryRepo.ManagerByUserID(ctx, resp.User.ID)
	require.NoError(t, err)

	login, err := f.svc.Login(ctx, &LoginInput{PhoneNumber: "+19995550001", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegisterRemovesUserWhenRoleRecordFails(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.directoryRepo.createManagerErr = domain.ErrConflict
	_, err := f.svc.Register(ctx, managerRegisterInput())
	require.ErrorIs(t, err, domain.ErrConflict)

	// the failed registration must not burn the unique identity fields
	exists, err := f.userRepo.ExistsByUsername(ctx, "mona")
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = f.userRepo.ExistsByPhone(ctx, "+19995550001")
	require.NoError(t, err)
	assert.False(t, exists)

	// the same registration goes through once the cause is gone
	f.directoryRepo.createManagerErr = nil
	resp, err := f.svc.Register(ctx, managerRegisterInput())
	require.NoError(t, err)
	assert.Equal(t, "mona", resp.User.Username)
}

func TestRegisterDuplicatePhoneConflicts(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, managerRegisterInput())
	require.NoError(t, err)

	dup := managerRegisterInput()
	dup.Username = "mona2"
	dup.Email = "mona2@fieldside.io"
	_, err = f.svc.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}
