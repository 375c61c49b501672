package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"
	"reviewhub/internal/shared"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	svc     service.ReviewService
	authSvc service.AuthService
}

func NewReviewHandler(svc service.ReviewService, authSvc service.AuthService) *ReviewHandler {
	return &ReviewHandler{svc: svc, authSvc: authSvc}
}

func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Public routes; the optional principal tailors visibility and the
	// requester's own vote on the detail view
	rg.GET("/", h.List)
	rg.GET("/featured", h.Featured)
	rg.GET("/:review_id", middleware.OptionalAuthMiddleware(h.authSvc), h.Get)
	rg.GET("/:review_id/related", h.Related)

	// Authenticated routes
	rg.POST("/", middleware.AuthMiddleware(h.authSvc), h.Create)
	rg.GET("/my", middleware.AuthMiddleware(h.authSvc), h.MyReviews)
	rg.PUT("/:review_id", middleware.AuthMiddleware(h.authSvc), h.Update)
	rg.DELETE("/:review_id", middleware.AuthMiddleware(h.authSvc), h.Delete)
	rg.DELETE("/:review_id/images", middleware.AuthMiddleware(h.authSvc), h.RemoveImage)
}

func (h *ReviewHandler) List(c *gin.Context) {
	var query dto.ReviewListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.svc.GetAllReviews(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ReviewHandler) Featured(c *gin.Context) {
	resp, err := h.svc.GetFeaturedReviews(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	var requester *shared.Principal
	if principal, ok := middleware.PrincipalFromContext(c); ok {
		requester = &principal
	}

	review, err := h.svc.GetReviewByID(c.Request.Context(), c.Param("review_id"), requester)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Related(c *gin.Context) {
	related, err := h.svc.GetRelatedReviews(c.Request.Context(), c.Param("review_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": related})
}

func (h *ReviewHandler) Create(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)

	var in dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	review, err := h.svc.CreateReview(c.Request.Context(), principal, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) MyReviews(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)

	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.svc.GetUserReviews(c.Request.Context(), principal.UserID, query.Normalize())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)

	var in dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	review, err := h.svc.UpdateReview(c.Request.Context(), c.Param("review_id"), principal, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)

	if err := h.svc.DeleteReview(c.Request.Context(), c.Param("review_id"), principal); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "review deleted"})
}

func (h *ReviewHandler) RemoveImage(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)

	var in dto.RemoveImageDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	review, err := h.svc.RemoveImage(c.Request.Context(), c.Param("review_id"), principal, in.ImageURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}
