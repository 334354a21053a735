package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GradingController struct {
	Service *service.GradingService
}

func NewGradingController(svc *service.GradingService) *GradingController {
	return &GradingController{Service: svc}
}

// @Summary 提交测试或作业
// @Description 每个学习项只能提交一次，重复提交返回 409
// @Tags 评分
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "学习项ID"
// @Param body body service.SubmitReq true "作答内容"
// @Success 201 {object} util.Response{data=model.Result}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/items/{itemId}/submissions [post]
func (c *GradingController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.Submit(ctx.Request.Context(), service.ActorFromClaims(user), ctx.Param("itemId"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// @Summary 查看自己的评分结果
// @Tags 评分
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "学习项ID"
// @Success 200 {object} util.Response{data=model.Result}
// @Failure 404 {object} util.Response
// @Router /api/items/{itemId}/result [get]
func (c *GradingController) GetResult(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Service.GetResult(service.ActorFromClaims(user), ctx.Param("itemId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 查看学习项的全部提交结果
// @Tags 管理员
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "学习项ID"
// @Success 200 {object} util.Response{data=[]model.Result}
// @Failure 404 {object} util.Response
// @Router /api/admin/items/{itemId}/results [get]
func (c *GradingController) ListItemResults(ctx *gin.Context) {
	results, err := c.Service.ListItemResults(ctx.Param("itemId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"items": results, "total": len(results)})
}

// @Summary 检查学习项的出题缺陷
// @Description 例如没有题目、缺少正确答案、单选题答案越界
// @Tags 管理员
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "学习项ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/items/{itemId}/diagnose [get]
func (c *GradingController) Diagnose(ctx *gin.Context) {
	problems, err := c.Service.DiagnoseItem(ctx.Param("itemId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"problems": problems, "healthy": len(problems) == 0})
}
