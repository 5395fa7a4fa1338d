package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/wafa-touil/projet-de-fin-de-session/internal/service"
	"github.com/wafa-touil/projet-de-fin-de-session/internal/util"
)

type StatsController struct {
	Service *service.StatsService
}

func NewStatsController(svc *service.StatsService) *StatsController {
	return &StatsController{Service: svc}
}

// GetStats godoc
// @Summary 获取个人统计
// @Description 按测验聚合请求者已完成的答题：总次数、平均分、各测验的次数/最高分/平均分
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.UserStats}
// @Failure 401 {object} util.Response
// @Router /api/stats [get]
func (c *StatsController) GetStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.Service.GetUserStats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
