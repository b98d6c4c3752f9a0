package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/service"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/util"
)

type DiscoveryController struct {
	DiscoveryService *service.DiscoveryService
}

func NewDiscoveryController(discoveryService *service.DiscoveryService) *DiscoveryController {
	return &DiscoveryController{DiscoveryService: discoveryService}
}

// Questions godoc
// @Summary Self-discovery quiz
// @Description Returns the six quiz questions and their options
// @Tags discovery
// @Produce json
// @Success 200 {object} util.Response{data=[]assessment.Question}
// @Router /discovery/questions [get]
func (c *DiscoveryController) Questions(ctx *gin.Context) {
	util.Success(ctx, c.DiscoveryService.Questions())
}

// Submit godoc
// @Summary Score the quiz
// @Description Scores the answers and returns the habit blueprint
// @Tags discovery
// @Accept json
// @Produce json
// @Param body body service.DiscoveryInput true "Answers"
// @Success 200 {object} util.Response{data=assessment.Blueprint}
// @Failure 400 {object} util.Response
// @Router /discovery [post]
func (c *DiscoveryController) Submit(ctx *gin.Context) {
	var req service.DiscoveryInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, c.DiscoveryService.Submit(req))
}

// List godoc
// @Summary List quiz responses
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.DiscoveryResponse}
// @Router /admin/discovery [get]
func (c *DiscoveryController) List(ctx *gin.Context) {
	rows, err := c.DiscoveryService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
