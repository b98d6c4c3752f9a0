package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/service"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/util"
)

type ChallengeController struct {
	ChallengeService *service.ChallengeService
	GroupService     *service.GroupService
}

func NewChallengeController(challengeService *service.ChallengeService, groupService *service.GroupService) *ChallengeController {
	return &ChallengeController{
		ChallengeService: challengeService,
		GroupService:     groupService,
	}
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

// List godoc
// @Summary Coach dashboard
// @Description All challenges with day number, completed days, adherence and tracker link
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.ChallengeSummary}
// @Router /admin/challenges [get]
func (c *ChallengeController) List(ctx *gin.Context) {
	rows, err := c.ChallengeService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// Create godoc
// @Summary Start a challenge
// @Description Creates a challenge and issues its tracker token
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateChallengeInput true "Challenge"
// @Success 201 {object} util.Response{data=service.CreatedChallenge}
// @Failure 400 {object} util.Response
// @Router /admin/challenges [post]
func (c *ChallengeController) Create(ctx *gin.Context) {
	var req service.CreateChallengeInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	out, err := c.ChallengeService.Create(req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, out)
}

// UpdateStatus godoc
// @Summary Change challenge status
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Challenge ID"
// @Param body body StatusRequest true "Status"
// @Success 200 {object} util.Response{data=model.Challenge}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /admin/challenges/{id}/status [patch]
func (c *ChallengeController) UpdateStatus(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "Invalid challenge ID")
		return
	}

	var req StatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ch, err := c.ChallengeService.UpdateStatus(id, model.ChallengeStatus(req.Status))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, ch)
}

// Export godoc
// @Summary Export the roster
// @Description Writes the dashboard as CSV to storage and returns its URL
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ExportResult}
// @Router /admin/challenges/export [post]
func (c *ChallengeController) Export(ctx *gin.Context) {
	res, err := c.ChallengeService.Export(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// CreateGroup godoc
// @Summary Create an accountability group
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateGroupRequest true "Group"
// @Success 201 {object} util.Response{data=model.Group}
// @Failure 400 {object} util.Response
// @Router /admin/groups [post]
func (c *ChallengeController) CreateGroup(ctx *gin.Context) {
	var req CreateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	g, err := c.GroupService.Create(req.Name)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, g)
}
