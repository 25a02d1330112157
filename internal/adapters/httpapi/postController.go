package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostController struct {
	pc     PostUseCase
	logger *zap.Logger
}

func NewPostController(pc PostUseCase, logger *zap.Logger) *PostController {
	return &PostController{pc: pc, logger: logger}
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	// *string: پارامتر باید باشد ولی رشته خالی مجاز است
	var req struct {
		Title   *string `json:"title" form:"title" binding:"required"`
		Content *string `json:"content" form:"content" binding:"required"`
		UserID  string  `json:"user_id" form:"user_id" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondInvalidInput(c, err)
		return
	}
	res, err := ctl.pc.CreatePost(c.Request.Context(), *req.Title, *req.Content, req.UserID)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// AttachTags بدنه می‌تواند آرایه خام ["id", ...] یا {"tag_ids": [...]} باشد
func (ctl *PostController) AttachTags(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		respondInvalidInput(c, err)
		return
	}
	tagIDs, err := decodeTagIDs(raw)
	if err != nil {
		respondInvalidInput(c, err)
		return
	}

	res, err := ctl.pc.AttachTags(c.Request.Context(), c.Param("id"), tagIDs)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) GetPostTags(c *gin.Context) {
	tags, err := ctl.pc.GetPostTags(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	if err := ctl.pc.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func decodeTagIDs(raw []byte) ([]string, error) {
	var ids []string
	if err := json.Unmarshal(raw, &ids); err == nil {
		return ids, nil
	}
	var body struct {
		TagIDs []string `json:"tag_ids"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.TagIDs == nil {
		return nil, errors.New("expected a JSON array of tag ids or {\"tag_ids\": [...]}")
	}
	return body.TagIDs, nil
}
