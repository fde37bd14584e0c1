package services_test

import (
	"context"
	"testing"

	"staynest-hostels/internal/adapters/persistence/models"
	"staynest-hostels/internal/adapters/persistence/repositories"
	"staynest-hostels/internal/config"
	"staynest-hostels/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (*services.AuthService, *gorm.DB) {
	db := setupTestDB(t)
	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test_secret",
			RefreshSecret:    "test_refresh_secret",
			AccessTokenMins:  10,
			RefreshTokenDays: 7,
		},
	}
	svc := services.NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		repositories.NewPaymentRepository(db),
		cfg,
	)
	return svc, db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &services.RegisterInput{
		Name:     "Asha Nair",
		Email:    "asha@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, resp.User.Role)
	assert.Len(t, resp.User.ReferralCode, 8)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	login, err := svc.Login(ctx, &services.LoginInput{
		Email:    "asha@example.com",
		Password: "secret-password",
	}, models.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(ctx, &services.LoginInput{
		Email:    "asha@example.com",
		Password: "wrong",
	}, models.RoleStudent)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	input := &services.RegisterInput{
		Name:     "Asha Nair",
		Email:    "asha@example.com",
		Password: "secret-password",
	}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, services.ErrUserAlreadyExists)
}

func TestRegisterWithReferralCreditsReferrer(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()

	referrer, err := svc.Register(ctx, &services.RegisterInput{
		Name:     "Asha Nair",
		Email:    "asha@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	referred, err := svc.Register(ctx, &services.RegisterInput{
		Name:         "Vikram Shetty",
		Email:        "vikram@example.com",
		Password:     "secret-password",
		ReferralCode: referrer.User.ReferralCode,
	})
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user, referred.User.ID).Error)
	require.NotNil(t, user.ReferredBy)
	assert.Equal(t, referrer.User.ID, *user.ReferredBy)

	var bonus models.Payment
	require.NoError(t, db.Where("student_id = ?", referrer.User.ID).First(&bonus).Error)
	assert.Equal(t, models.PaymentCredit, bonus.Type)
	assert.Equal(t, services.ReferralBonus, bonus.Amount)
}

func TestRegisterWithUnknownReferralCode(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), &services.RegisterInput{
		Name:         "Vikram Shetty",
		Email:        "vikram@example.com",
		Password:     "secret-password",
		ReferralCode: "NOPE1234",
	})
	assert.ErrorIs(t, err, services.ErrReferrerNotFound)
}

// A student password must not open the vendor or admin surface.
func TestLoginWrongSurface(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &services.RegisterInput{
		Name:     "Asha Nair",
		Email:    "asha@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	input := &services.LoginInput{Email: "asha@example.com", Password: "secret-password"}

	_, err = svc.Login(ctx, input, models.RoleVendor)
	assert.ErrorIs(t, err, services.ErrWrongSurface)

	_, err = svc.Login(ctx, input, models.RoleAdmin)
	assert.ErrorIs(t, err, services.ErrWrongSurface)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &services.RegisterInput{
		Name:     "Asha Nair",
		Email:    "asha@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", resp.User.ID).
		Update("is_active", false).Error)

	_, err = svc.Login(ctx, &services.LoginInput{
		Email: "asha@example.com", Password: "secret-password",
	}, models.RoleStudent)
	assert.ErrorIs(t, err, services.ErrUserInactive)
}

func TestRefreshRotation(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &services.RegisterInput{
		Name:     "Asha Nair",
		Email:    "asha@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	// The old token is revoked by the rotation
	_, err = svc.Refresh(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, services.ErrTokenRevoked)

	// The new one still works
	_, err = svc.Refresh(ctx, rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &services.RegisterInput{
		Name:     "Asha Nair",
		Email:    "asha@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.RefreshToken))

	_, err = svc.Refresh(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, services.ErrTokenRevoked)
}

func TestCreateStaff(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	vendor, err := svc.CreateStaff(ctx, &services.CreateStaffInput{
		Name:     "Hostel Owner",
		Email:    "owner@example.com",
		Password: "secret-password",
		Role:     models.RoleVendor,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleVendor, vendor.Role)

	_, err = svc.CreateStaff(ctx, &services.CreateStaffInput{
		Name:     "Nobody",
		Email:    "nobody@example.com",
		Password: "secret-password",
		Role:     models.RoleStudent,
	})
	assert.Error(t, err)
}
