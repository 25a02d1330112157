package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TagController struct {
	tc     TagUseCase
	logger *zap.Logger
}

func NewTagController(tc TagUseCase, logger *zap.Logger) *TagController {
	return &TagController{tc: tc, logger: logger}
}

func (ctl *TagController) CreateTag(c *gin.Context) {
	var req struct {
		Name string `json:"name" form:"name" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondInvalidInput(c, err)
		return
	}
	t, err := ctl.tc.CreateTag(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (ctl *TagController) ListTags(c *gin.Context) {
	tags, err := ctl.tc.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (ctl *TagController) GetPostsByTag(c *gin.Context) {
	posts, err := ctl.tc.GetPostsByTag(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *TagController) DeleteTag(c *gin.Context) {
	if err := ctl.tc.DeleteTag(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}
