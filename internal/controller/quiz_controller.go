package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/wafa-touil/projet-de-fin-de-session/internal/service"
	"github.com/wafa-touil/projet-de-fin-de-session/internal/util"
)

type QuizController struct {
	Service *service.QuizService
	Auth    *service.AuthService
}

func NewQuizController(svc *service.QuizService, auth *service.AuthService) *QuizController {
	return &QuizController{Service: svc, Auth: auth}
}

// ListQuizzes godoc
// @Summary 获取测验列表
// @Description 公开接口，返回全部测验
// @Tags 测验
// @Produce json
// @Success 200 {object} util.Response{data=[]service.QuizResponse}
// @Router /api/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	quizzes, err := c.Service.ListQuizzes()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// GetQuiz godoc
// @Summary 获取测验详情
// @Tags 测验
// @Produce json
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response{data=service.QuizResponse}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	quiz, err := c.Service.GetQuiz(id)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// GetPublicQuiz godoc
// @Summary 获取测验公开详情
// @Description 与详情一致，走缓存，供匿名答题入口使用
// @Tags 测验
// @Produce json
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response{data=service.QuizResponse}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/public [get]
func (c *QuizController) GetPublicQuiz(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	quiz, err := c.Service.GetPublicQuiz(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// CreateQuiz godoc
// @Summary 创建测验
// @Description 仅教师可创建；题目数量必须在5到20之间，题目顺序取数组下标
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizCreateRequest true "测验内容"
// @Success 201 {object} util.Response{data=service.QuizResponse}
// @Failure 400 {object} util.Response "题目数量越界或参数错误"
// @Failure 401 {object} util.Response
// @Failure 403 {object} util.Response "非教师角色"
// @Router /api/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuizCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	creator, err := c.Auth.GetUser(claims.UserID)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	quiz, err := c.Service.CreateQuiz(creator, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTooFewQuestions),
			errors.Is(err, util.ErrTooManyQuestions),
			errors.Is(err, util.ErrInvalidDifficulty),
			errors.Is(err, util.ErrInvalidQuestionType):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, quiz)
}

// UpdateQuiz godoc
// @Summary 更新测验
// @Description 查询范围限定为请求者创建的测验，非所有者观察到404
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Param body body service.QuizUpdateRequest true "更新内容"
// @Success 200 {object} util.Response{data=service.QuizResponse}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))

	var req service.QuizUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Service.UpdateQuiz(claims.UserID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidDifficulty):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// DeleteQuiz godoc
// @Summary 删除测验
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))

	if err := c.Service.DeleteQuiz(claims.UserID, id); err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
