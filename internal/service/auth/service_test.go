package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medhq/hospital-api/internal/model"
	"github.com/medhq/hospital-api/pkg/auth"
	apperrors "github.com/medhq/hospital-api/pkg/errors"
	"github.com/medhq/hospital-api/pkg/security"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	key := strings.ToLower(user.Email)
	if _, ok := r.users[key]; ok {
		return apperrors.Conflict("user already exists")
	}
	r.users[key] = user
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := r.users[strings.ToLower(email)]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("user")
}

func newTestService() (*Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	svc := NewService(repo, security.NewBcryptHasher(4), auth.NewJWTService("test-secret", 8*time.Hour))
	return svc, repo
}

func signupReq() *model.SignupRequest {
	return &model.SignupRequest{
		FullName: "Jane Roe",
		Email:    "Jane@Example.com",
		Password: "Abcdef1!",
	}
}

func TestSignup(t *testing.T) {
	svc, _ := newTestService()

	user, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", user.FullName)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, model.DefaultRole, user.Role)
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	svc, _ := newTestService()

	req := signupReq()
	req.Password = "abc"
	_, err := svc.Signup(context.Background(), req)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestSignupRejectsDuplicateEmailCaseInsensitive(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	req := signupReq()
	req.Email = "JANE@EXAMPLE.COM"
	_, err = svc.Signup(context.Background(), req)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestSignupNeverReturnsHash(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	stored := repo.users["jane@example.com"]
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "Abcdef1!", stored.PasswordHash)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), "jane@example.com", "Abcdef1!")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jane@example.com", resp.User.Email)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims.UserID)
	assert.Equal(t, "Staff", claims.Role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), "jane@example.com", "Wrong-Pass1!")
	_, unknownEmail := svc.Login(context.Background(), "nobody@example.com", "Abcdef1!")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.True(t, apperrors.IsKind(wrongPassword, apperrors.KindAuth))
	assert.True(t, apperrors.IsKind(unknownEmail, apperrors.KindAuth))
	assert.Equal(t, apperrors.Message(wrongPassword), apperrors.Message(unknownEmail))
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ValidateToken("tampered.token.value")
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuth))
}

func TestCurrentUser(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)
	stored := repo.users["jane@example.com"]

	user, err := svc.CurrentUser(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)

	_, err = svc.CurrentUser(context.Background(), uuid.New())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
