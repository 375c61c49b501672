package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc     service.UserService
	authSvc service.AuthService
}

func NewUserHandler(svc service.UserService, authSvc service.AuthService) *UserHandler {
	return &UserHandler{svc: svc, authSvc: authSvc}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me/profile", middleware.AuthMiddleware(h.authSvc), h.MyProfile)
	rg.PUT("/me/profile", middleware.AuthMiddleware(h.authSvc), h.UpdateMyProfile)

	// Admin-only account listing
	rg.GET("/", middleware.AuthMiddleware(h.authSvc), middleware.RequireAdmin(), h.List)
}

func (h *UserHandler) MyProfile(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)

	profile, err := h.svc.GetProfile(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateMyProfile(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)

	var in dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	profile, err := h.svc.UpdateProfile(c.Request.Context(), principal.UserID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) List(c *gin.Context) {
	var query dto.UserListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.svc.ListUsers(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
