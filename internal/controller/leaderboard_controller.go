package controller

import (
	"learnhub_backend/internal/assessment"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	Service *service.LeaderboardService
	Reports *service.ReportService
}

func NewLeaderboardController(svc *service.LeaderboardService, reports *service.ReportService) *LeaderboardController {
	return &LeaderboardController{Service: svc, Reports: reports}
}

// @Summary 排行榜
// @Description 按分数降序，同分时先完成者靠前；名次为全局名次
// @Tags 排行榜
// @Produce json
// @Security BearerAuth
// @Param courseId query string false "课程ID"
// @Param itemType query string false "类型 test/assignment"
// @Param name query string false "学员姓名（模糊，不区分大小写）"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/leaderboard [get]
func (c *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	var q service.LeaderboardQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	page, err := c.Service.Page(ctx.Request.Context(), q)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

type ExportReq struct {
	CourseID string `json:"courseId"`
	ItemType string `json:"itemType" binding:"omitempty,oneof=test assignment"`
	Name     string `json:"name"`
}

// @Summary 导出排行榜 CSV
// @Tags 管理员
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ExportReq false "过滤条件"
// @Success 201 {object} util.Response{data=service.ExportView}
// @Router /api/admin/leaderboard/export [post]
func (c *LeaderboardController) Export(ctx *gin.Context) {
	var req ExportReq
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	export, err := c.Reports.ExportLeaderboard(ctx.Request.Context(), assessment.LeaderboardFilter{
		CourseID:  req.CourseID,
		ItemType:  assessment.ItemKind(req.ItemType),
		NameQuery: req.Name,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, export)
}
