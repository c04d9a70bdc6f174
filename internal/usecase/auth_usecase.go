package usecase

import (
	"context"
	"errors"
	"time"

	"go-talentflow-backend/internal/domain"
	"go-talentflow-backend/pkg/apperror"
	"go-talentflow-backend/pkg/logger"
	"go-talentflow-backend/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

// invalidCredentials is the single message for every credential failure, so
// responses cannot be used to probe which emails are registered.
const invalidCredentials = "Invalid email or password"

type authUsecase struct {
	userRepo domain.UserRepository
	codec    *token.Codec
}

func NewAuthUsecase(userRepo domain.UserRepository, codec *token.Codec) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, codec: codec}
}

func (uc *authUsecase) Register(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
	exists, err := uc.userRepo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.BadRequest("Email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	user := &domain.User{
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	logger.Log.Info("User registered", "email", user.Email, "role", user.Role)

	return uc.result(user)
}

func (uc *authUsecase) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized(invalidCredentials)
		}
		return nil, apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	if !user.IsActive {
		return nil, apperror.Unauthorized("Account is deactivated")
	}

	logger.Log.Info("User logged in", "email", user.Email)
	return uc.result(user)
}

// GetCurrentUser resolves the acting principal to its stored account record.
func (uc *authUsecase) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	p, err := domain.PrincipalFromContext(ctx)
	if err != nil {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	user, err := uc.userRepo.GetByID(ctx, p.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (uc *authUsecase) result(user *domain.User) (*domain.AuthResult, error) {
	signed, err := uc.codec.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.AuthResult{Token: signed, User: user}, nil
}
