package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ItemController struct {
	Service *service.ItemService
}

func NewItemController(svc *service.ItemService) *ItemController {
	return &ItemController{Service: svc}
}

// @Summary 获取课程学习项列表
// @Description 学生只能看到公开或指派给自己的学习项
// @Tags 学习项
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=[]service.ItemView}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/items [get]
func (c *ItemController) ListCourseItems(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	items, err := c.Service.ListCourseItems(service.ActorFromClaims(user), ctx.Param("courseId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// @Summary 获取学习项详情
// @Description 学生视图不包含正确答案和解析
// @Tags 学习项
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "学习项ID"
// @Success 200 {object} util.Response{data=service.ItemView}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/items/{itemId} [get]
func (c *ItemController) GetItem(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	item, err := c.Service.GetItem(service.ActorFromClaims(user), ctx.Param("itemId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, item)
}
