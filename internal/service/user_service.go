package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/learnroute-api/internal/dto"
	"github.com/noah-isme/learnroute-api/internal/models"
	"github.com/noah-isme/learnroute-api/internal/repository"
)

var userMessages = storeMessages{
	notFound:   "User not found",
	duplicate:  "Email already exists",
	referenced: "User is referenced by enrollments, statuses or activity logs",
}

// UserService manages platform accounts. Password hashes never leave this service.
type UserService interface {
	Create(ctx context.Context, req dto.UserCreateRequest) (dto.UserResponse, error)
	List(ctx context.Context, req dto.UserListRequest) (dto.ListResult[dto.UserResponse], error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Update(ctx context.Context, id string, req dto.UserUpdateRequest) (dto.UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo       repository.Repository[models.User]
	bcryptCost int
	logger     zerolog.Logger
}

// NewUserService constructs the user service. A non-positive cost uses bcrypt.DefaultCost.
func NewUserService(repo repository.Repository[models.User], bcryptCost int, logger zerolog.Logger) UserService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) Create(ctx context.Context, req dto.UserCreateRequest) (dto.UserResponse, error) {
	taken, err := s.repo.Exists(ctx, repository.Filter{"email": req.Email})
	if err != nil {
		return dto.UserResponse{}, translateStoreError(err, userMessages, "check email")
	}
	if taken {
		return dto.UserResponse{}, Conflict(userMessages.duplicate)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Secret()), s.bcryptCost)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         valueOr(req.Role, models.RoleStudent),
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		return dto.UserResponse{}, translateStoreError(err, userMessages, "create user")
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", maskEmail(user.Email)).Str("role", user.Role).Msg("user created")
	return dto.NewUserResponse(user), nil
}

func (s *userService) List(ctx context.Context, req dto.UserListRequest) (dto.ListResult[dto.UserResponse], error) {
	filter := repository.Filter{}
	if req.Role != "" {
		filter["role"] = req.Role
	}

	page, err := s.repo.FindMany(ctx, buildQuery(req.ListQuery, filter))
	if err != nil {
		return dto.ListResult[dto.UserResponse]{}, translateStoreError(err, userMessages, "list users")
	}
	return toListResult(page, dto.NewUserResponse), nil
}

func (s *userService) Get(ctx context.Context, id string) (dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.UserResponse{}, translateStoreError(err, userMessages, "get user")
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, id string, req dto.UserUpdateRequest) (dto.UserResponse, error) {
	if req.Email != nil {
		owner, err := s.repo.FindOne(ctx, repository.Filter{"email": *req.Email})
		switch {
		case err == nil && owner.ID != id:
			return dto.UserResponse{}, Conflict(userMessages.duplicate)
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return dto.UserResponse{}, translateStoreError(err, userMessages, "check email")
		}
	}

	user, err := s.repo.UpdateByID(ctx, id, func(user *models.User) error {
		if req.FullName != nil {
			user.FullName = *req.FullName
		}
		if req.Email != nil {
			user.Email = *req.Email
		}
		if req.Role != nil {
			user.Role = *req.Role
		}
		return nil
	})
	if err != nil {
		return dto.UserResponse{}, translateStoreError(err, userMessages, "update user")
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	user, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return translateStoreError(err, userMessages, "delete user")
	}
	s.logger.Info().Str("user_id", user.ID).Msg("user deleted")
	return nil
}
