package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/service"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/util"
)

// TrackerController serves the participant pages. The :token path segment is
// the participant's only credential.
type TrackerController struct {
	TrackerService  *service.TrackerService
	IdentityService *service.IdentityService
}

func NewTrackerController(trackerService *service.TrackerService, identityService *service.IdentityService) *TrackerController {
	return &TrackerController{
		TrackerService:  trackerService,
		IdentityService: identityService,
	}
}

type DeclarationRequest struct {
	Declaration string `json:"declaration"`
}

type JoinGroupRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

// GetTracker godoc
// @Summary Tracker page
// @Description Challenge with its habits and today's check-in
// @Tags tracker
// @Produce json
// @Param token path string true "Tracker token"
// @Success 200 {object} util.Response{data=service.TrackerView}
// @Failure 404 {object} util.Response
// @Router /tracker/{token} [get]
func (c *TrackerController) GetTracker(ctx *gin.Context) {
	view, err := c.TrackerService.GetTracker(ctx.Param("token"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Checkin godoc
// @Summary Record today's check-in
// @Tags tracker
// @Accept json
// @Produce json
// @Param token path string true "Tracker token"
// @Param body body service.CheckinInput true "Completion flags"
// @Success 200 {object} util.Response{data=service.CheckinResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /tracker/{token}/checkin [post]
func (c *TrackerController) Checkin(ctx *gin.Context) {
	var req service.CheckinInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.TrackerService.Checkin(ctx.Request.Context(), ctx.Param("token"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// Progress godoc
// @Summary Progress dashboard
// @Description Streaks, adherence, milestones and leaderboards
// @Tags tracker
// @Produce json
// @Param token path string true "Tracker token"
// @Success 200 {object} util.Response{data=service.ProgressView}
// @Failure 404 {object} util.Response
// @Router /tracker/{token}/progress [get]
func (c *TrackerController) Progress(ctx *gin.Context) {
	view, err := c.TrackerService.Progress(ctx.Param("token"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Setup godoc
// @Summary Choose duration and habits
// @Tags tracker
// @Accept json
// @Produce json
// @Param token path string true "Tracker token"
// @Param body body service.SetupInput true "Setup"
// @Success 200 {object} util.Response{data=model.Challenge}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /tracker/{token}/setup [post]
func (c *TrackerController) Setup(ctx *gin.Context) {
	var req service.SetupInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ch, err := c.TrackerService.Setup(ctx.Param("token"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"challenge": ch})
}

// JoinGroup godoc
// @Summary Join an accountability group
// @Tags tracker
// @Accept json
// @Produce json
// @Param token path string true "Tracker token"
// @Param body body JoinGroupRequest true "Invite code"
// @Success 200 {object} util.Response{data=model.Group}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /tracker/{token}/group [post]
func (c *TrackerController) JoinGroup(ctx *gin.Context) {
	var req JoinGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	g, err := c.TrackerService.JoinGroup(ctx.Param("token"), req.InviteCode)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, g)
}

// GetOnboarding godoc
// @Summary Onboarding state
// @Tags identity
// @Produce json
// @Param token path string true "Tracker token"
// @Success 200 {object} util.Response{data=service.OnboardingView}
// @Failure 404 {object} util.Response
// @Router /tracker/{token}/onboarding [get]
func (c *TrackerController) GetOnboarding(ctx *gin.Context) {
	view, err := c.IdentityService.Onboarding(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// SaveDeclaration godoc
// @Summary Save the identity declaration
// @Tags identity
// @Accept json
// @Produce json
// @Param token path string true "Tracker token"
// @Param body body DeclarationRequest true "Declaration"
// @Success 200 {object} util.Response{data=model.IdentityDeclaration}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /tracker/{token}/onboarding [post]
func (c *TrackerController) SaveDeclaration(ctx *gin.Context) {
	var req DeclarationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	d, err := c.IdentityService.SaveDeclaration(ctx.Request.Context(), ctx.Param("token"), req.Declaration)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"declaration": d})
}

// GetIdentityCheckin godoc
// @Summary Weekly identity check-in state
// @Tags identity
// @Produce json
// @Param token path string true "Tracker token"
// @Success 200 {object} util.Response{data=service.IdentityCheckinView}
// @Failure 404 {object} util.Response
// @Router /tracker/{token}/identity-checkin [get]
func (c *TrackerController) GetIdentityCheckin(ctx *gin.Context) {
	view, err := c.IdentityService.IdentityCheckin(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// SaveIdentityCheckin godoc
// @Summary Rate this week against the declared identity
// @Tags identity
// @Accept json
// @Produce json
// @Param token path string true "Tracker token"
// @Param body body service.IdentityCheckinInput true "Rating"
// @Success 200 {object} util.Response{data=model.IdentityCheckin}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /tracker/{token}/identity-checkin [post]
func (c *TrackerController) SaveIdentityCheckin(ctx *gin.Context) {
	var req service.IdentityCheckinInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	checkin, err := c.IdentityService.SaveIdentityCheckin(ctx.Param("token"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"checkin": checkin, "week_number": checkin.WeekNumber})
}
