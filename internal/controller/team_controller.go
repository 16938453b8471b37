package controller

import (
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/service"
	"design_hub_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TeamController struct {
	TeamService *service.TeamService
}

func NewTeamController(teamService *service.TeamService) *TeamController {
	return &TeamController{TeamService: teamService}
}

type CreateTeamRequest struct {
	Name    string             `json:"name" binding:"required"`
	Members []model.TeamMember `json:"members"`
}

// Create godoc
// @Summary Create a team
// @Tags teams
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   body body CreateTeamRequest true "team"
// @Success 201 {object} util.Response{data=model.Team}
// @Router /api/teams [post]
func (c *TeamController) Create(ctx *gin.Context) {
	var req CreateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	team, err := c.TeamService.CreateTeam(req.Name, req.Members)
	if err != nil {
		if errors.Is(err, util.ErrEmptyTeamName) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, team)
}

// List godoc
// @Summary List all teams
// @Tags teams
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Team}
// @Router /api/teams [get]
func (c *TeamController) List(ctx *gin.Context) {
	teams, err := c.TeamService.ListTeams()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, teams)
}

// Get godoc
// @Summary Fetch one team
// @Tags teams
// @Security BearerAuth
// @Produce  json
// @Param   id path string true "team id"
// @Success 200 {object} util.Response{data=model.Team}
// @Failure 404 {object} util.Response
// @Router /api/teams/{id} [get]
func (c *TeamController) Get(ctx *gin.Context) {
	team, err := c.TeamService.GetTeam(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "team not found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, team)
}

type AdoptProjectRequest struct {
	Theme string `json:"theme"`
}

// AdoptProject godoc
// @Summary Generate and adopt a collaborative project for a team
// @Tags teams
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   id path string true "team id"
// @Param   body body AdoptProjectRequest true "project theme"
// @Success 200 {object} util.Response{data=model.Team}
// @Router /api/teams/{id}/project [post]
func (c *TeamController) AdoptProject(ctx *gin.Context) {
	var req AdoptProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	team, err := c.TeamService.AdoptProject(ctx.Request.Context(), ctx.Param("id"), req.Theme)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "team not found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, team)
}

type TeamProgressRequest struct {
	Progress int `json:"progress" binding:"min=0,max=100"`
}

// UpdateProgress godoc
// @Summary Update a team's project progress
// @Tags teams
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   id path string true "team id"
// @Param   body body TeamProgressRequest true "progress percent"
// @Success 200 {object} util.Response{data=model.Team}
// @Router /api/teams/{id}/progress [put]
func (c *TeamController) UpdateProgress(ctx *gin.Context) {
	var req TeamProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	team, err := c.TeamService.UpdateProgress(ctx.Param("id"), req.Progress)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "team not found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, team)
}

type TeamLogRequest struct {
	Author  string `json:"author" binding:"required"`
	Role    string `json:"role"`
	Message string `json:"message" binding:"required"`
}

// AddLog godoc
// @Summary Append a process-journal entry
// @Tags teams
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   id path string true "team id"
// @Param   body body TeamLogRequest true "log entry"
// @Success 201 {object} util.Response{data=model.TeamLog}
// @Router /api/teams/{id}/logs [post]
func (c *TeamController) AddLog(ctx *gin.Context) {
	var req TeamLogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	log, err := c.TeamService.AddLog(ctx.Param("id"), req.Author, req.Role, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmptyLogMessage):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx, "team not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, log)
}

// ListLogs godoc
// @Summary List a team's process journal
// @Tags teams
// @Security BearerAuth
// @Produce  json
// @Param   id path string true "team id"
// @Success 200 {object} util.Response{data=[]model.TeamLog}
// @Router /api/teams/{id}/logs [get]
func (c *TeamController) ListLogs(ctx *gin.Context) {
	logs, err := c.TeamService.ListLogs(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, logs)
}

// Assess godoc
// @Summary AI assessment of a team's collaboration (teacher view)
// @Tags teams
// @Security BearerAuth
// @Produce  json
// @Param   id path string true "team id"
// @Success 200 {object} util.Response{data=object}
// @Router /api/teacher/teams/{id}/assessment [get]
func (c *TeamController) Assess(ctx *gin.Context) {
	assessment, err := c.TeamService.AssessTeam(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "team not found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"assessment": assessment})
}
