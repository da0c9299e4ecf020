package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ventasapp/ventas-api/internal/domain/entity"
	"github.com/ventasapp/ventas-api/internal/infrastructure/repository"
	"github.com/ventasapp/ventas-api/pkg/email"
	"github.com/ventasapp/ventas-api/pkg/oauth"
	"github.com/ventasapp/ventas-api/pkg/utils"
	"gorm.io/gorm"
)

func newAuthTestService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	svc := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewPasswordResetTokenRepository(db),
		jwtManager,
		email.NewEmailService(email.EmailConfig{}),
		oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{}),
	)
	return svc, db
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _ := newAuthTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &RegisterInput{
		FirstName: "Juan",
		LastName:  "Perez",
		Email:     "juan@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "juan", user.Username)
	assert.Equal(t, "local", user.Provider)
	assert.NotEqual(t, "secret123", user.Password)

	out, err := svc.Login(ctx, &LoginInput{Email: "juan@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, user.ID, out.User.ID)
}

func TestAuthService_RegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthTestService(t)
	ctx := context.Background()

	input := &RegisterInput{
		FirstName: "Juan",
		LastName:  "Perez",
		Email:     "juan@example.com",
		Password:  "secret123",
	}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	assert.Error(t, err)
}

func TestAuthService_RegisterDisambiguatesUsername(t *testing.T) {
	svc, _ := newAuthTestService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, &RegisterInput{
		FirstName: "Juan",
		LastName:  "Perez",
		Email:     "juan@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "juan", first.Username)

	second, err := svc.Register(ctx, &RegisterInput{
		FirstName: "Juana",
		LastName:  "Diaz",
		Email:     "juan@other.com",
		Password:  "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "juan1", second.Username)
}

func TestAuthService_LoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newAuthTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{
		FirstName: "Juan",
		LastName:  "Perez",
		Email:     "juan@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{Email: "juan@example.com", Password: "wrong"})
	assert.Error(t, err)

	_, err = svc.Login(ctx, &LoginInput{Email: "nobody@example.com", Password: "secret123"})
	assert.Error(t, err)
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc, _ := newAuthTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{
		FirstName: "Juan",
		LastName:  "Perez",
		Email:     "juan@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)

	out, err := svc.Login(ctx, &LoginInput{Email: "juan@example.com", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, out.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(ctx, "not-a-token")
	assert.Error(t, err)
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, _ := newAuthTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &RegisterInput{
		FirstName: "Juan",
		LastName:  "Perez",
		Email:     "juan@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, &ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
	})
	assert.Error(t, err)

	err = svc.ChangePassword(ctx, &ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: "secret123",
		NewPassword:     "newsecret",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{Email: "juan@example.com", Password: "newsecret"})
	assert.NoError(t, err)
}

func TestAuthService_ForgotPasswordHidesUnknownEmail(t *testing.T) {
	svc, _ := newAuthTestService(t)

	err := svc.ForgotPassword(context.Background(), &ForgotPasswordInput{Email: "nobody@example.com"})
	assert.NoError(t, err)
}

func TestAuthService_ForgotPasswordPropagatesStorageErrors(t *testing.T) {
	svc, db := newAuthTestService(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = svc.ForgotPassword(context.Background(), &ForgotPasswordInput{Email: "nobody@example.com"})
	assert.Error(t, err)
}

func TestAuthService_ResetPassword(t *testing.T) {
	svc, db := newAuthTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{
		FirstName: "Juan",
		LastName:  "Perez",
		Email:     "juan@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)

	token := &entity.PasswordResetToken{
		Email:     "juan@example.com",
		Token:     "valid-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(token).Error)

	err = svc.ResetPassword(ctx, &ResetPasswordInput{
		Email:       "juan@example.com",
		Token:       "valid-token",
		NewPassword: "resetpass",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{Email: "juan@example.com", Password: "resetpass"})
	assert.NoError(t, err)

	// The token cannot be replayed
	err = svc.ResetPassword(ctx, &ResetPasswordInput{
		Email:       "juan@example.com",
		Token:       "valid-token",
		NewPassword: "again",
	})
	assert.Error(t, err)
}

func TestAuthService_ResetPasswordRejectsExpiredToken(t *testing.T) {
	svc, db := newAuthTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{
		FirstName: "Juan",
		LastName:  "Perez",
		Email:     "juan@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)

	token := &entity.PasswordResetToken{
		Email:     "juan@example.com",
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, db.Create(token).Error)

	err = svc.ResetPassword(ctx, &ResetPasswordInput{
		Email:       "juan@example.com",
		Token:       "expired-token",
		NewPassword: "resetpass",
	})
	assert.Error(t, err)
}
