package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserController struct {
	uc     UserUseCase
	logger *zap.Logger
}

func NewUserController(uc UserUseCase, logger *zap.Logger) *UserController {
	return &UserController{uc: uc, logger: logger}
}

func (ctl *UserController) CreateUser(c *gin.Context) {
	var req struct {
		Name string `json:"name" form:"name" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondInvalidInput(c, err)
		return
	}
	u, err := ctl.uc.CreateUser(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (ctl *UserController) GetUserPosts(c *gin.Context) {
	res, err := ctl.uc.GetUserPosts(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *UserController) GetPostCounts(c *gin.Context) {
	res, err := ctl.uc.GetPostCounts(c.Request.Context())
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
