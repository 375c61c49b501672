package handler

import (
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	svc     service.VoteService
	authSvc service.AuthService
}

func NewVoteHandler(svc service.VoteService, authSvc service.AuthService) *VoteHandler {
	return &VoteHandler{svc: svc, authSvc: authSvc}
}

// RegisterRoutes mounts the vote endpoints under the review routes.
func (h *VoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:review_id/votes", h.Counts)
	rg.POST("/:review_id/votes", middleware.AuthMiddleware(h.authSvc), h.Cast)
	rg.GET("/:review_id/votes/me", middleware.AuthMiddleware(h.authSvc), h.MyChoice)
}

// Cast applies the toggle: same type removes the vote, the other type
// switches it, no prior vote creates one.
func (h *VoteHandler) Cast(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)

	var in dto.CastVoteDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.svc.CastVote(c.Request.Context(), c.Param("review_id"), principal.UserID, in.Type)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *VoteHandler) Counts(c *gin.Context) {
	counts, err := h.svc.GetVoteCounts(c.Request.Context(), c.Param("review_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *VoteHandler) MyChoice(c *gin.Context) {
	principal, _ := middleware.PrincipalFromContext(c)

	choice, err := h.svc.GetVoterChoice(c.Request.Context(), c.Param("review_id"), principal.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, choice)
}
