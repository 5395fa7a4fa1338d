package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/wafa-touil/projet-de-fin-de-session/docs"
	"github.com/wafa-touil/projet-de-fin-de-session/internal/config"
	"github.com/wafa-touil/projet-de-fin-de-session/internal/middleware"
	"github.com/wafa-touil/projet-de-fin-de-session/internal/model"
	"github.com/wafa-touil/projet-de-fin-de-session/pkg/monitoring"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 测验与题目的公开读取；题目可经独立接口追加
		public.GET("/quizzes", c.quiz.ListQuizzes)
		public.GET("/quizzes/:id", c.quiz.GetQuiz)
		public.GET("/quizzes/:id/public", c.quiz.GetPublicQuiz)
		public.GET("/questions", c.question.ListQuestions)
		public.GET("/questions/:id", c.question.GetQuestion)
		public.POST("/questions", c.question.CreateQuestion)

		// 答题：标识符即凭证，读取与提交无需认证；
		// 开始答题可选认证，登录用户记录归属
		public.POST("/attempts", middleware.TryAuthMiddleware(cfg), c.attempt.CreateAttempt)
		public.GET("/attempts/:id", c.attempt.GetAttempt)
		public.POST("/attempts/:id/submit", c.attempt.SubmitAttempt)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.GET("/stats", c.stats.GetStats)

		// 测验写操作；创建仅限教师，修改/删除按创建者过滤
		authGroup.POST("/quizzes", middleware.RoleMiddleware(model.Teacher), c.quiz.CreateQuiz)
		authGroup.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
		authGroup.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)

		// 答题记录的列表/删除仅对本人可见
		authGroup.GET("/attempts", c.attempt.ListAttempts)
		authGroup.DELETE("/attempts/:id", c.attempt.DeleteAttempt)
	}
}
