package controller

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/wafa-touil/projet-de-fin-de-session/internal/service"
	"github.com/wafa-touil/projet-de-fin-de-session/internal/util"
)

type AttemptController struct {
	Service *service.AttemptService
}

func NewAttemptController(svc *service.AttemptService) *AttemptController {
	return &AttemptController{Service: svc}
}

// swagger:model AttemptCreateRequest
type AttemptCreateRequest struct {
	Quiz uint `json:"quiz" binding:"required"`
}

// CreateAttempt godoc
// @Summary 开始答题
// @Description 公开接口；已登录用户记录在答题上，匿名用户 user 为空
// @Tags 答题
// @Accept json
// @Produce json
// @Param body body AttemptCreateRequest true "目标测验"
// @Success 201 {object} util.Response{data=service.AttemptResponse}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/attempts [post]
func (c *AttemptController) CreateAttempt(ctx *gin.Context) {
	var req AttemptCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	// 可选认证：有合法令牌则归属到用户，否则匿名
	var userID *uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		id := claims.UserID
		userID = &id
	}

	attempt, err := c.Service.StartAttempt(req.Quiz, userID)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, attempt)
}

// GetAttempt godoc
// @Summary 获取答题记录
// @Description 公开接口：持有标识符即可读取，无所有权校验
// @Tags 答题
// @Produce json
// @Param id path int true "答题ID"
// @Success 200 {object} util.Response{data=service.AttemptResponse}
// @Failure 404 {object} util.Response
// @Router /api/attempts/{id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	attempt, err := c.Service.GetAttempt(id)
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, attempt)
}

// SubmitAttempt godoc
// @Summary 提交答题
// @Description 公开接口。answers 必须是 题目ID→答案 的对象；重复提交返回400
// @Tags 答题
// @Accept json
// @Produce json
// @Param id path int true "答题ID"
// @Param body body object true "答案映射 {answers: {questionId: answer}}"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response "答案不是对象或已提交"
// @Failure 404 {object} util.Response
// @Router /api/attempts/{id}/submit [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	// answers 先以原始JSON接收，在进入评分前拒绝非对象负载
	var body struct {
		Answers json.RawMessage `json:"answers"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var answers map[string]string
	if len(body.Answers) == 0 || json.Unmarshal(body.Answers, &answers) != nil || answers == nil {
		util.BadRequest(ctx, "answers must be an object of question id to answer")
		return
	}

	res, err := c.Service.SubmitAttempt(id, answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx)
		// 答题开始后测验被删除
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAttemptAlreadySubmitted):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, res)
}

// ListAttempts godoc
// @Summary 获取我的答题记录
// @Tags 答题
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.AttemptResponse}
// @Failure 401 {object} util.Response
// @Router /api/attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempts, err := c.Service.ListAttempts(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// DeleteAttempt godoc
// @Summary 删除我的答题记录
// @Tags 答题
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "答题ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/attempts/{id} [delete]
func (c *AttemptController) DeleteAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))

	if err := c.Service.DeleteAttempt(id, claims.UserID); err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
