package controller

import (
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/service"
	"design_hub_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// Snapshot godoc
// @Summary Current student's skill matrix snapshot
// @Description XP, level, the derived progress toward the next level, and the per-challenge status map.
// @Tags progress
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} util.Response{data=service.ProgressSnapshot}
// @Router /api/progress [get]
func (c *ProgressController) Snapshot(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	snapshot, err := c.ProgressService.Snapshot(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, snapshot)
}

// StudentSnapshot godoc
// @Summary A student's skill matrix snapshot (teacher view)
// @Tags progress
// @Security BearerAuth
// @Produce  json
// @Param   id path int true "student id"
// @Success 200 {object} util.Response{data=service.ProgressSnapshot}
// @Router /api/teacher/students/{id}/progress [get]
func (c *ProgressController) StudentSnapshot(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	snapshot, err := c.ProgressService.Snapshot(uint(id))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, snapshot)
}

// GetStatus godoc
// @Summary Status of one challenge cell
// @Description Returns LOCKED for any cell the student has never touched.
// @Tags progress
// @Security BearerAuth
// @Produce  json
// @Param   domain query string true "skill domain"
// @Param   grade query string true "grade level"
// @Success 200 {object} util.Response{data=object}
// @Router /api/progress/status [get]
func (c *ProgressController) GetStatus(ctx *gin.Context) {
	domain := model.SkillDomain(ctx.Query("domain"))
	grade := model.GradeLevel(ctx.Query("grade"))
	if domain == "" || grade == "" {
		util.BadRequest(ctx, "domain and grade are required")
		return
	}

	claims := util.GetUserFromContext(ctx)
	key := model.ChallengeKey(domain, grade)
	status, err := c.ProgressService.GetStatus(claims.UserID, key)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"key": key, "status": status})
}

type StatusUpdateRequest struct {
	Domain model.SkillDomain     `json:"domain" binding:"required"`
	Grade  model.GradeLevel      `json:"grade" binding:"required"`
	Status model.ChallengeStatus `json:"status" binding:"required"`
}

// SetStatus godoc
// @Summary Move a challenge cell to a new status
// @Description The first transition into SUBMITTED for a cell awards bonus XP; later transitions never do.
// @Tags progress
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   body body StatusUpdateRequest true "transition"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "unknown status value"
// @Router /api/progress/status [put]
func (c *ProgressController) SetStatus(ctx *gin.Context) {
	var req StatusUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	key := model.ChallengeKey(req.Domain, req.Grade)
	if err := c.ProgressService.SetStatus(claims.UserID, key, req.Status); err != nil {
		if errors.Is(err, util.ErrInvalidStatus) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type CompleteRequest struct {
	Domain      model.SkillDomain `json:"domain" binding:"required"`
	Grade       model.GradeLevel  `json:"grade" binding:"required"`
	ChallengeID string            `json:"challengeId" binding:"required"`
	XPReward    int               `json:"xpReward"`
}

// Complete godoc
// @Summary Mark a challenge completed (teacher sign-off)
// @Tags progress
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   id path int true "student id"
// @Param   body body CompleteRequest true "completion"
// @Success 200 {object} util.Response
// @Router /api/teacher/students/{id}/complete [post]
func (c *ProgressController) Complete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	var req CompleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	key := model.ChallengeKey(req.Domain, req.Grade)
	if err := c.ProgressService.MarkCompleted(uint(id), key, req.ChallengeID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if req.XPReward > 0 {
		if err := c.ProgressService.AwardXP(uint(id), req.XPReward); err != nil {
			util.LogInternalError(ctx, err)
			return
		}
	}
	util.Success(ctx, nil)
}

type AwardXPRequest struct {
	Amount int `json:"amount" binding:"required,gt=0"`
}

// AwardXP godoc
// @Summary Grant XP to a student
// @Tags progress
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   id path int true "student id"
// @Param   body body AwardXPRequest true "amount"
// @Success 200 {object} util.Response
// @Router /api/teacher/students/{id}/xp [post]
func (c *ProgressController) AwardXP(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	var req AwardXPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ProgressService.AwardXP(uint(id), req.Amount); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
