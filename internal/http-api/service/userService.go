package service

import (
	"context"
	"errors"

	"reviewhub/internal/apperrors"
	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileDTO) (*dto.ProfileResponse, error)
	ListUsers(ctx context.Context, query dto.UserListQuery) (*dto.Paginated[dto.AuthUserResponse], error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetProfile returns the role-tagged profile: the user's role selects which
// variant of the payload is populated. A user with no profile row yet gets
// the account fields alone.
func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("failed to load user", err)
	}

	profile, err := s.userRepo.FindProfile(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("failed to load profile", err)
	}

	return dto.FromModelToProfileResponse(user, profile), nil
}

// UpdateProfile merges a partial patch over the account and its profile row
// and writes both in one transaction. Fields belonging to the other role
// variant are ignored rather than rejected.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileDTO) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal("failed to load user", err)
	}

	profile, err := s.userRepo.FindProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Internal("failed to load profile", err)
		}
		profile = &models.Profile{UserID: userID}
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.ProfilePhoto != nil {
		user.ProfilePhoto = req.ProfilePhoto
	}
	if req.ContactNumber != nil {
		profile.ContactNumber = *req.ContactNumber
	}
	if user.IsAdmin() {
		if req.Department != nil {
			profile.Department = req.Department
		}
	} else {
		if req.Address != nil {
			profile.Address = req.Address
		}
		if req.Gender != nil {
			profile.Gender = req.Gender
		}
	}

	if err := s.userRepo.SaveWithProfile(ctx, user, profile); err != nil {
		return nil, apperrors.Internal("failed to update profile", err)
	}

	return dto.FromModelToProfileResponse(user, profile), nil
}

// ListUsers is the admin account listing with an optional role filter.
func (s *userService) ListUsers(ctx context.Context, query dto.UserListQuery) (*dto.Paginated[dto.AuthUserResponse], error) {
	p := query.PaginationQuery.Normalize()

	users, total, err := s.userRepo.List(ctx, query.Role, p.Skip, p.Limit)
	if err != nil {
		return nil, apperrors.Internal("failed to list users", err)
	}

	items := make([]dto.AuthUserResponse, 0, len(users))
	for i := range users {
		items = append(items, *dto.FromModelToAuthUserResponse(&users[i]))
	}
	return dto.NewPaginated(items, total, p), nil
}
