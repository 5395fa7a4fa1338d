package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/wafa-touil/projet-de-fin-de-session/internal/service"
	"github.com/wafa-touil/projet-de-fin-de-session/internal/util"
)

type QuestionController struct {
	Service *service.QuizService
}

func NewQuestionController(svc *service.QuizService) *QuestionController {
	return &QuestionController{Service: svc}
}

// ListQuestions godoc
// @Summary 获取题目列表
// @Description 公开接口，可按测验过滤
// @Tags 题目
// @Produce json
// @Param quiz query int false "测验ID"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	quizID := util.MustParseUint(ctx.Query("quiz"))

	questions, err := c.Service.ListQuestions(quizID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// GetQuestion godoc
// @Summary 获取单个题目
// @Tags 题目
// @Produce json
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	question, err := c.Service.GetQuestion(id)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, question)
}

// CreateQuestion godoc
// @Summary 创建题目
// @Description 向既有测验追加单个题目，order 按请求值写入
// @Tags 题目
// @Accept json
// @Produce json
// @Param body body service.QuestionCreateRequest true "题目内容"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response "测验不存在或题型非法"
// @Router /api/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.CreateQuestion(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound),
			errors.Is(err, util.ErrInvalidQuestionType):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, question)
}
