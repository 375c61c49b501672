package handler

import (
	"net/http"

	"reviewhub/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// respondError writes the uniform error envelope. The status and the safe
// message both come from the error's kind, so every service error maps to
// exactly one response shape.
func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), gin.H{
		"success": false,
		"message": apperrors.Message(err),
		"error": gin.H{
			"kind": apperrors.KindOf(err).String(),
		},
	})
}

// respondBindError covers request binding failures, which never reach the
// service layer.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": err.Error(),
		"error": gin.H{
			"kind": apperrors.KindBadRequest.String(),
		},
	})
}
