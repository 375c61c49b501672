package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	svc     service.CategoryService
	authSvc service.AuthService
}

func NewCategoryHandler(svc service.CategoryService, authSvc service.AuthService) *CategoryHandler {
	return &CategoryHandler{svc: svc, authSvc: authSvc}
}

func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.List)
	rg.GET("/:category_id", h.Get)
	rg.POST("/", middleware.AuthMiddleware(h.authSvc), middleware.RequireAdmin(), h.Create)
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.svc.GetCategory(c.Request.Context(), c.Param("category_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var in dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.svc.CreateCategory(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}
