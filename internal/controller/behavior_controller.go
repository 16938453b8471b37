package controller

import (
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/service"
	"design_hub_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type BehaviorController struct {
	BehaviorService *service.BehaviorService
}

func NewBehaviorController(behaviorService *service.BehaviorService) *BehaviorController {
	return &BehaviorController{BehaviorService: behaviorService}
}

type IncidentRequest struct {
	StudentID   uint   `json:"studentId" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// LogIncident godoc
// @Summary Record a workshop incident
// @Tags behavior
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   body body IncidentRequest true "incident"
// @Success 201 {object} util.Response{data=model.BehaviorLog}
// @Failure 404 {object} util.Response "unknown student"
// @Router /api/teacher/incidents [post]
func (c *BehaviorController) LogIncident(ctx *gin.Context) {
	var req IncidentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	log, err := c.BehaviorService.LogIncident(req.StudentID, model.IncidentType(req.Type), req.Description, claims.Name)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmptyDescription):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, log)
}

// ListByStudent godoc
// @Summary Incident history for one student
// @Tags behavior
// @Security BearerAuth
// @Produce  json
// @Param   id path int true "student id"
// @Success 200 {object} util.Response{data=[]model.BehaviorLog}
// @Router /api/teacher/students/{id}/incidents [get]
func (c *BehaviorController) ListByStudent(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	logs, err := c.BehaviorService.ListByStudent(uint(id))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, logs)
}
