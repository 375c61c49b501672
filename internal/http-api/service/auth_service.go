package service

import (
	"context"
	"errors"
	"time"

	"reviewhub/internal/apperrors"
	"reviewhub/internal/config"
	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/middleware/auth"
	"reviewhub/internal/shared"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterDTO) (*dto.AuthUserResponse, error)
	Login(ctx context.Context, req dto.LoginDTO) (*dto.LoginResponse, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error)
	ValidateToken(tokenString string) (*shared.Principal, error)
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	jwtSecret        string
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtSecret:        cfg.JWTSecret,
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
	}
}

// Register creates a reader account. Everyone starts as USER; admin accounts
// are provisioned out of band.
func (s *authService) Register(ctx context.Context, req dto.RegisterDTO) (*dto.AuthUserResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.Conflict("email already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("failed to look up email", err)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperrors.Internal("failed to create user", err)
	}

	return dto.FromModelToAuthUserResponse(user), nil
}

// Login authenticates by email and returns an access/refresh token pair.
func (s *authService) Login(ctx context.Context, req dto.LoginDTO) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Unknown email still pays for one bcrypt compare so both outcomes
		// take the same time.
		auth.DummyVerify(req.Password)
		return nil, apperrors.Forbidden("invalid credentials")
	}

	if err := auth.VerifyPassword(user.Password, req.Password); err != nil {
		return nil, apperrors.Forbidden("invalid credentials")
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, apperrors.Internal("failed to sign access token", err)
	}

	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return nil, apperrors.Internal("failed to issue refresh token", err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *dto.FromModelToAuthUserResponse(user),
	}, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(s.accessTokenTTL).Unix(),
		"iat":     time.Now().Unix(),
		"type":    "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	refreshToken := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
	}

	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return "", err
	}

	return refreshToken.Token, nil
}

// RefreshAccessToken exchanges a stored refresh token for a fresh access
// token. Expired tokens are deleted on sight.
func (s *authService) RefreshAccessToken(ctx context.Context, refreshTokenString string) (*dto.RefreshResponse, error) {
	refreshToken, err := s.refreshTokenRepo.FindByToken(ctx, refreshTokenString)
	if err != nil {
		return nil, apperrors.Forbidden("invalid refresh token")
	}

	if refreshToken.Revoked {
		return nil, apperrors.Forbidden("refresh token revoked")
	}

	if time.Now().After(refreshToken.ExpiresAt) {
		_ = s.refreshTokenRepo.Delete(ctx, refreshToken.ID)
		return nil, apperrors.Forbidden("refresh token expired")
	}

	user, err := s.userRepo.FindByID(ctx, refreshToken.UserID)
	if err != nil {
		return nil, apperrors.Internal("failed to load user", err)
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, apperrors.Internal("failed to sign access token", err)
	}

	return &dto.RefreshResponse{AccessToken: accessToken}, nil
}

// ValidateToken parses and verifies an access token and returns the
// principal it names.
func (s *authService) ValidateToken(tokenString string) (*shared.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.Forbidden("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.Forbidden("invalid token claims")
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)
	if userID == "" {
		return nil, apperrors.Forbidden("invalid token claims")
	}

	return &shared.Principal{UserID: userID, Role: role, Email: email}, nil
}
