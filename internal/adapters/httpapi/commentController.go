package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommentController struct {
	cc     CommentUseCase
	logger *zap.Logger
}

func NewCommentController(cc CommentUseCase, logger *zap.Logger) *CommentController {
	return &CommentController{cc: cc, logger: logger}
}

func (ctl *CommentController) CreateComment(c *gin.Context) {
	var req struct {
		Content *string `json:"content" form:"content" binding:"required"`
		PostID  string  `json:"post_id" form:"post_id" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondInvalidInput(c, err)
		return
	}
	res, err := ctl.cc.CreateComment(c.Request.Context(), *req.Content, req.PostID)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *CommentController) GetCommentsByPost(c *gin.Context) {
	res, err := ctl.cc.GetCommentsByPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
