package app

import (
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerLearnerRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/items/:itemId/results", c.grading.ListItemResults)
		admin.GET("/items/:itemId/diagnose", c.grading.Diagnose)
		admin.POST("/leaderboard/export", c.leaderboard.Export)
	}
}

func (a *App) registerLearnerRoutes(rg *gin.RouterGroup, c *controllers) {
	// 课程与学习项
	rg.GET("/courses/:courseId/items", c.item.ListCourseItems)
	rg.GET("/courses/:courseId/progress", c.progress.CourseProgress)
	rg.GET("/items/:itemId", c.item.GetItem)

	// 提交与结果
	rg.POST("/items/:itemId/submissions", c.grading.Submit)
	rg.GET("/items/:itemId/result", c.grading.GetResult)

	// 进度与排行榜
	rg.GET("/progress", c.progress.Overview)
	rg.GET("/leaderboard", c.leaderboard.GetLeaderboard)

	// 练习运行
	rg.POST("/practice/run", c.practice.Run)
}
