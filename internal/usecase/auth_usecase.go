package usecase

import (
	"context"
	"time"

	"gemora/internal/domain/entity"
	"gemora/internal/domain/repository"
	"gemora/pkg/errors"
	"gemora/pkg/logger"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewAuthUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Username string
	Phone    string
	Role     string
}

type AuthResult struct {
	User  *entity.User
	Token string
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if input.Role != entity.RoleSeller && input.Role != entity.RoleBuyer {
		return nil, errors.BadRequest("Role must be seller or buyer", nil)
	}

	// Check if email already exists
	existingUser, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existingUser != nil {
		return nil, errors.BadRequest("Email already in use", nil)
	}

	// Create user in Firebase Auth
	uid, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, input.Username)
	if err != nil {
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:       uid,
		Email:    input.Email,
		Username: input.Username,
		Phone:    input.Phone,
		Role:     input.Role,
		IdentityReview: entity.DocumentReview{
			Status: entity.DocStatusNotUploaded,
		},
		BusinessReview: entity.DocumentReview{
			Status: entity.DocStatusNotUploaded,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal("Failed to create user record", err)
	}

	token, err := uc.firebaseAuth.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{
		User:  user,
		Token: token,
	}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	token, err := uc.firebaseAuth.SignInWithEmailPassword(email, password)
	if err != nil {
		logger.Warn("Login failed: %v", err)
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	uid, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Internal("Failed to verify token", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	return &AuthResult{
		User:  user,
		Token: token,
	}, nil
}

func (uc *AuthUseCase) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return user, nil
}

// ActorFor resolves the acting identity for a request. An empty uid is
// an anonymous actor.
func (uc *AuthUseCase) ActorFor(ctx context.Context, uid string) (Actor, error) {
	if uid == "" {
		return AnonymousActor(), nil
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return Actor{}, errors.NotFound("User", err)
	}

	return Actor{ID: user.ID, Role: user.Role}, nil
}

func (uc *AuthUseCase) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	uid, err := uc.firebaseAuth.VerifyToken(ctx, refreshToken)
	if err != nil {
		return "", errors.Unauthorized("Invalid refresh token", err)
	}

	newToken, err := uc.firebaseAuth.GenerateToken(ctx, uid)
	if err != nil {
		return "", errors.Internal("Failed to generate new token", err)
	}

	return newToken, nil
}
