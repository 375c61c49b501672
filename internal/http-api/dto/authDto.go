package dto

import "reviewhub/internal/http-api/models"

// RegisterDTO for creating an account
type RegisterDTO struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginDTO for authenticating
type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshDTO for exchanging a refresh token
type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthUserResponse is the public shape of an account
type AuthUserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func FromModelToAuthUserResponse(user *models.User) *AuthUserResponse {
	return &AuthUserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

// LoginResponse carries the token pair plus the account
type LoginResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	User         AuthUserResponse `json:"user"`
}

// RefreshResponse carries the rotated access token
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}
