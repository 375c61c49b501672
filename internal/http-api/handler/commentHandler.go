package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc     service.CommentService
	authSvc service.AuthService
}

func NewCommentHandler(svc service.CommentService, authSvc service.AuthService) *CommentHandler {
	return &CommentHandler{svc: svc, authSvc: authSvc}
}

// RegisterReviewRoutes mounts the per-review comment endpoints under the
// review routes; RegisterRoutes mounts the per-comment ones.
func (h *CommentHandler) RegisterReviewRoutes(rg *gin.RouterGroup) {
	rg.GET("/:review_id/comments", h.ListForReview)
	rg.POST("/:review_id/comments", middleware.AuthMiddleware(h.authSvc), h.Create)
}

func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:comment_id/replies", h.Replies)
	rg.PUT("/:comment_id", middleware.AuthMiddleware(h.authSvc), h.Update)
	rg.DELETE("/:comment_id", middleware.AuthMiddleware(h.authSvc), h.Delete)
}

func (h *CommentHandler) Create(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)

	var in dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := h.svc.AddComment(c.Request.Context(), c.Param("review_id"), principal.UserID, in.Content, in.ParentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) ListForReview(c *gin.Context) {
	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.svc.GetReviewComments(c.Request.Context(), c.Param("review_id"), query.Normalize())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *CommentHandler) Replies(c *gin.Context) {
	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.svc.GetCommentReplies(c.Request.Context(), c.Param("comment_id"), query.Normalize())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *CommentHandler) Update(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)

	var in dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := h.svc.UpdateComment(c.Request.Context(), c.Param("comment_id"), principal.UserID, in.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)

	resp, err := h.svc.DeleteComment(c.Request.Context(), c.Param("comment_id"), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
