package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/service"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/util"
)

type ApplicationController struct {
	ApplicationService *service.ApplicationService
}

func NewApplicationController(applicationService *service.ApplicationService) *ApplicationController {
	return &ApplicationController{ApplicationService: applicationService}
}

// Submit godoc
// @Summary Submit an application
// @Description Stores an intake form with status "new"
// @Tags applications
// @Accept json
// @Produce json
// @Param body body service.ApplicationInput true "Application"
// @Success 201 {object} util.Response{data=model.Application}
// @Failure 400 {object} util.Response
// @Router /applications [post]
func (c *ApplicationController) Submit(ctx *gin.Context) {
	var req service.ApplicationInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	app, err := c.ApplicationService.Submit(ctx.Request.Context(), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Created(ctx, app)
}

// List godoc
// @Summary List applications
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Application}
// @Router /admin/applications [get]
func (c *ApplicationController) List(ctx *gin.Context) {
	apps, err := c.ApplicationService.List(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, apps)
}
