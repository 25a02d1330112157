package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SubscriptionController struct {
	sc     SubscriptionUseCase
	logger *zap.Logger
}

func NewSubscriptionController(sc SubscriptionUseCase, logger *zap.Logger) *SubscriptionController {
	return &SubscriptionController{sc: sc, logger: logger}
}

func (ctl *SubscriptionController) Follow(c *gin.Context) {
	msg, err := ctl.sc.Follow(c.Request.Context(), c.Param("id"), c.Param("target"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func (ctl *SubscriptionController) GetFollowers(c *gin.Context) {
	followers, err := ctl.sc.GetFollowers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, followers)
}

func (ctl *SubscriptionController) GetFollowing(c *gin.Context) {
	following, err := ctl.sc.GetFollowing(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, following)
}
