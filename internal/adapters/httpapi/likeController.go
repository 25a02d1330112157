package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LikeController struct {
	lc     LikeUseCase
	logger *zap.Logger
}

func NewLikeController(lc LikeUseCase, logger *zap.Logger) *LikeController {
	return &LikeController{lc: lc, logger: logger}
}

func (ctl *LikeController) LikePost(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" form:"user_id" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondInvalidInput(c, err)
		return
	}
	if err := ctl.lc.LikePost(c.Request.Context(), c.Param("id"), req.UserID); err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post liked successfully"})
}

func (ctl *LikeController) GetPostLikes(c *gin.Context) {
	res, err := ctl.lc.GetPostLikes(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
