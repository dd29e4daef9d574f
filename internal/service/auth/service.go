package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/medhq/hospital-api/internal/model"
	"github.com/medhq/hospital-api/internal/repository"
	"github.com/medhq/hospital-api/pkg/auth"
	apperrors "github.com/medhq/hospital-api/pkg/errors"
	"github.com/medhq/hospital-api/pkg/security"
)

// invalidCredentials is deliberately identical for unknown-email and
// wrong-password so login failures do not leak which accounts exist.
const invalidCredentials = "invalid credentials"

type Service struct {
	users  repository.UserRepository
	hasher security.PasswordHasher
	tokens auth.TokenService
}

func NewService(users repository.UserRepository, hasher security.PasswordHasher, tokens auth.TokenService) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

func (s *Service) Signup(ctx context.Context, req *model.SignupRequest) (*model.UserSummary, error) {
	if err := security.ValidatePolicy(req.Password); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, _ := s.users.GetByEmail(ctx, email); existing != nil {
		return nil, apperrors.Conflict("user already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	role := req.Role
	if role == "" {
		role = model.DefaultRole
	}

	user := &model.User{
		ID:           uuid.New(),
		FullName:     req.FullName,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsKind(err, apperrors.KindConflict) {
			return nil, err
		}
		return nil, apperrors.Internal(err)
	}

	return user.Summary(), nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, apperrors.Auth(invalidCredentials)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.Auth(invalidCredentials)
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.TokenResponse{Token: token, User: user.Summary()}, nil
}

// ValidateToken verifies a bearer token and returns its identity claims.
func (s *Service) ValidateToken(token string) (*auth.Claims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, apperrors.Auth("invalid token")
	}
	return claims, nil
}

// CurrentUser loads the public summary of the authenticated account.
func (s *Service) CurrentUser(ctx context.Context, id uuid.UUID) (*model.UserSummary, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Summary(), nil
}
