package dto

import (
	"time"

	"reviewhub/internal/http-api/models"
)

// AdminProfileDTO and GuestProfileDTO are the role variants of a user
// profile; exactly one of them is set on ProfileResponse, selected by Role.
type AdminProfileDTO struct {
	ContactNumber string  `json:"contact_number"`
	Department    *string `json:"department,omitempty"`
}

type GuestProfileDTO struct {
	ContactNumber string  `json:"contact_number"`
	Address       *string `json:"address,omitempty"`
	Gender        *string `json:"gender,omitempty"`
}

// ProfileResponse is the tagged profile union: Role decides which variant
// is populated.
type ProfileResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Role         string           `json:"role"`
	ProfilePhoto *string          `json:"profile_photo,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	Admin        *AdminProfileDTO `json:"admin,omitempty"`
	Guest        *GuestProfileDTO `json:"guest,omitempty"`
}

// FromModelToProfileResponse selects the profile variant by the user's role.
// A missing profile row yields a response with neither variant set.
func FromModelToProfileResponse(user *models.User, profile *models.Profile) *ProfileResponse {
	resp := &ProfileResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		ProfilePhoto: user.ProfilePhoto,
		CreatedAt:    user.CreatedAt,
	}
	if profile == nil {
		return resp
	}
	if user.Role == models.RoleAdmin {
		resp.Admin = &AdminProfileDTO{
			ContactNumber: profile.ContactNumber,
			Department:    profile.Department,
		}
	} else {
		resp.Guest = &GuestProfileDTO{
			ContactNumber: profile.ContactNumber,
			Address:       profile.Address,
			Gender:        profile.Gender,
		}
	}
	return resp
}

// UpdateProfileDTO is a partial patch across the account and its profile
// row; nil fields are left untouched. Department applies to admin accounts,
// Address and Gender to everyone else.
type UpdateProfileDTO struct {
	Name          *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	ProfilePhoto  *string `json:"profile_photo,omitempty" binding:"omitempty,url"`
	ContactNumber *string `json:"contact_number,omitempty"`
	Address       *string `json:"address,omitempty"`
	Gender        *string `json:"gender,omitempty"`
	Department    *string `json:"department,omitempty"`
}

// UserListQuery filters the admin user listing.
type UserListQuery struct {
	PaginationQuery
	Role *string `form:"role" binding:"omitempty,oneof=ADMIN USER GUEST"`
}
