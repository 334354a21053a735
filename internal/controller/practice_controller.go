package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	Judge *service.JudgeService
}

func NewPracticeController(judge *service.JudgeService) *PracticeController {
	return &PracticeController{Judge: judge}
}

// @Summary 运行练习代码
// @Description 转发到 Judge0 执行，不评分也不记录结果
// @Tags 练习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.PracticeRunReq true "代码与语言"
// @Success 200 {object} util.Response{data=service.PracticeRunResult}
// @Failure 502 {object} util.Response
// @Router /api/practice/run [post]
func (c *PracticeController) Run(ctx *gin.Context) {
	var req service.PracticeRunReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Judge.Run(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
