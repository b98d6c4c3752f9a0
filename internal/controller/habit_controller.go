package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/service"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/util"
)

type HabitController struct {
	HabitService *service.HabitService
}

func NewHabitController(habitService *service.HabitService) *HabitController {
	return &HabitController{HabitService: habitService}
}

// Library godoc
// @Summary Habit library
// @Description Lists habit domains and library habits
// @Tags habits
// @Produce json
// @Success 200 {object} util.Response{data=service.HabitLibrary}
// @Router /habits [get]
func (c *HabitController) Library(ctx *gin.Context) {
	lib, err := c.HabitService.Library()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lib)
}

// Create godoc
// @Summary Add a library habit
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.HabitInput true "Habit"
// @Success 201 {object} util.Response{data=model.Habit}
// @Failure 400 {object} util.Response
// @Router /admin/habits [post]
func (c *HabitController) Create(ctx *gin.Context) {
	var req service.HabitInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	h, err := c.HabitService.Create(req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, h)
}

// Update godoc
// @Summary Edit a library habit
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Habit ID"
// @Param body body service.HabitPatch true "Changed fields"
// @Success 200 {object} util.Response{data=model.Habit}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /admin/habits/{id} [patch]
func (c *HabitController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "Invalid habit ID")
		return
	}

	var req service.HabitPatch
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	h, err := c.HabitService.Update(id, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, h)
}

// Delete godoc
// @Summary Remove a library habit
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Habit ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /admin/habits/{id} [delete]
func (c *HabitController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "Invalid habit ID")
		return
	}

	if err := c.HabitService.Delete(id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}
