package service

import (
	"context"
	"testing"

	"bakehouse-backend/internal/apperr"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (*AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	return NewAuthService(users, []byte("test-secret"), testLogger()), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService()

	user, token, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Nguyễn Văn An",
		Email:    "an@example.com",
		Phone:    "0900000005",
		Password: "matkhau123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "customer", string(user.Role))
	assert.Empty(t, user.Password, "password never leaves the service")

	loggedIn, token, err := svc.Login(context.Background(), "an@example.com", "matkhau123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "Nguyễn Văn An", claims.Name)
	assert.Equal(t, "customer", claims.Role)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService()

	_, _, err := svc.Register(context.Background(), RegisterRequest{Email: "an@example.com"})
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	svc, _ := newAuthService()

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Name: "An", Email: "an@example.com", Password: "matkhau123",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), RegisterRequest{
		Name: "An Hai", Email: "an@example.com", Password: "khac456",
	})
	assert.Equal(t, apperr.CodeEmailTaken, apperr.CodeOf(err))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthService()

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Name: "An", Email: "an@example.com", Password: "matkhau123",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "an@example.com", "sai-mat-khau")
	assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))

	_, _, err = svc.Login(context.Background(), "khong-ton-tai@example.com", "matkhau123")
	assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
}

func TestLoginWithGoogleCreatesCustomerOnce(t *testing.T) {
	svc, _ := newAuthService()

	user, token, err := svc.LoginWithGoogle(context.Background(), "an@gmail.com", "Nguyễn Văn An")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "customer", string(user.Role))
	assert.Empty(t, user.Password, "password never leaves the service")

	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)

	// A second sign-in reuses the account instead of creating another.
	again, _, err := svc.LoginWithGoogle(context.Background(), "an@gmail.com", "Nguyễn Văn An")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}

func TestLoginWithGoogleMatchesRegisteredAccount(t *testing.T) {
	svc, _ := newAuthService()

	registered, _, err := svc.Register(context.Background(), RegisterRequest{
		Name: "An", Email: "an@example.com", Password: "matkhau123",
	})
	require.NoError(t, err)

	viaGoogle, _, err := svc.LoginWithGoogle(context.Background(), "an@example.com", "Nguyễn Văn An")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, viaGoogle.ID)

	_, _, err = svc.LoginWithGoogle(context.Background(), "", "No Email")
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newAuthService()

	user, _, err := svc.Register(context.Background(), RegisterRequest{
		Name: "An", Email: "an@example.com", Password: "matkhau123",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{
		Name:  "Nguyễn Văn An",
		Phone: "0911111111",
	})
	require.NoError(t, err)
	assert.Equal(t, "Nguyễn Văn An", updated.Name)
	assert.Equal(t, "0911111111", updated.Phone)
	assert.Equal(t, "an@example.com", updated.Email)
}
