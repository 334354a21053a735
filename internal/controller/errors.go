package controller

import (
	"errors"
	"learnhub_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError 把服务层哨兵错误映射为统一响应
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrItemNotFound),
		errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrResultNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrAccessDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrAlreadySubmitted):
		util.Conflict(ctx, "已提交过该测试或作业")
	case errors.Is(err, util.ErrNotGradable), errors.Is(err, util.ErrItemTypeMismatch):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrJudgeUnavailable):
		util.Error(ctx, http.StatusBadGateway, "判题服务暂不可用")
	default:
		util.LogInternalError(ctx, err)
	}
}
