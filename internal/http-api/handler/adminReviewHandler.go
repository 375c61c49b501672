package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AdminReviewHandler struct {
	svc     service.AdminReviewService
	authSvc service.AuthService
}

func NewAdminReviewHandler(svc service.AdminReviewService, authSvc service.AuthService) *AdminReviewHandler {
	return &AdminReviewHandler{svc: svc, authSvc: authSvc}
}

// RegisterRoutes mounts the moderation endpoints. Everything here is
// admin-only.
func (h *AdminReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.Use(middleware.AuthMiddleware(h.authSvc), middleware.RequireAdmin())

	rg.GET("/", h.List)
	rg.GET("/stats", h.Stats)
	rg.PATCH("/:review_id/publish", h.Publish)
	rg.PATCH("/:review_id/unpublish", h.Unpublish)
}

func (h *AdminReviewHandler) List(c *gin.Context) {
	var query dto.AdminReviewListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.svc.ListReviews(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *AdminReviewHandler) Stats(c *gin.Context) {
	stats, err := h.svc.GetReviewStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminReviewHandler) Publish(c *gin.Context) {
	var in dto.PublishReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	review, err := h.svc.PublishReview(c.Request.Context(), c.Param("review_id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *AdminReviewHandler) Unpublish(c *gin.Context) {
	var in dto.UnpublishReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	review, err := h.svc.UnpublishReview(c.Request.Context(), c.Param("review_id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}
