package controller

import (
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/service"
	"design_hub_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ChallengeController struct {
	ChallengeService *service.ChallengeService
	Generator        *service.GeneratorService
	Archive          *service.ArchiveService
	AuthService      *service.AuthService
}

func NewChallengeController(challengeService *service.ChallengeService, generator *service.GeneratorService, archive *service.ArchiveService, authService *service.AuthService) *ChallengeController {
	return &ChallengeController{
		ChallengeService: challengeService,
		Generator:        generator,
		Archive:          archive,
		AuthService:      authService,
	}
}

type GenerateRequest struct {
	Domain     model.SkillDomain     `json:"domain" binding:"required"`
	Grade      model.GradeLevel      `json:"grade" binding:"required"`
	Difficulty model.DifficultyLevel `json:"difficulty"`
	Practice   bool                  `json:"practice"`
}

// Generate godoc
// @Summary Generate a challenge
// @Description Produces an AI-authored challenge for a skill domain and grade. Falls back to an offline brief when the model is unreachable, so this never fails.
// @Tags challenges
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   body body GenerateRequest true "generation parameters"
// @Success 200 {object} util.Response{data=model.Challenge}
// @Router /api/challenges/generate [post]
func (c *ChallengeController) Generate(ctx *gin.Context) {
	var req GenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var challenge *model.Challenge
	if req.Practice {
		challenge = c.Generator.GeneratePracticeChallenge(ctx.Request.Context(), req.Domain, req.Grade)
	} else {
		challenge = c.Generator.GenerateChallenge(ctx.Request.Context(), req.Domain, req.Grade, req.Difficulty)
	}
	util.Success(ctx, challenge)
}

// ListVisible godoc
// @Summary List challenges visible to the current student
// @Description Published library challenges for the student's grade, filtered by assignment.
// @Tags challenges
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Challenge}
// @Router /api/challenges [get]
func (c *ChallengeController) ListVisible(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	grade := user.Grade
	if g := ctx.Query("grade"); g != "" && user.Role != model.Student {
		grade = model.GradeLevel(g)
	}

	challenges, err := c.ChallengeService.ListVisible(grade, userIDParam(user.ID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, challenges)
}

// Get godoc
// @Summary Fetch one challenge
// @Tags challenges
// @Security BearerAuth
// @Produce  json
// @Param   id path string true "challenge id"
// @Success 200 {object} util.Response{data=model.Challenge}
// @Failure 404 {object} util.Response
// @Router /api/challenges/{id} [get]
func (c *ChallengeController) Get(ctx *gin.Context) {
	challenge, err := c.ChallengeService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrChallengeNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "challenge not found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, challenge)
}

// CreateLibrary godoc
// @Summary Author a library challenge
// @Description Teachers draft reusable challenges. Drafts stay invisible to students until published.
// @Tags challenge-library
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   body body service.ChallengeRequest true "challenge fields"
// @Success 201 {object} util.Response{data=model.Challenge}
// @Router /api/library/challenges [post]
func (c *ChallengeController) CreateLibrary(ctx *gin.Context) {
	var req service.ChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	challenge, err := c.ChallengeService.CreateLibraryChallenge(claims.Name, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, challenge)
}

// UpdateLibrary godoc
// @Summary Update a library challenge
// @Tags challenge-library
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   id path string true "challenge id"
// @Param   body body service.ChallengeRequest true "challenge fields"
// @Success 200 {object} util.Response{data=model.Challenge}
// @Failure 403 {object} util.Response "not the author"
// @Router /api/library/challenges/{id} [put]
func (c *ChallengeController) UpdateLibrary(ctx *gin.Context) {
	var req service.ChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	challenge, err := c.ChallengeService.UpdateLibraryChallenge(ctx.Param("id"), claims.Name, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx, "challenge not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, challenge)
}

// Publish godoc
// @Summary Publish a draft challenge
// @Tags challenge-library
// @Security BearerAuth
// @Produce  json
// @Param   id path string true "challenge id"
// @Success 200 {object} util.Response
// @Router /api/library/challenges/{id}/publish [post]
func (c *ChallengeController) Publish(ctx *gin.Context) {
	if err := c.ChallengeService.Publish(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ArchiveChallenge godoc
// @Summary Archive a library challenge
// @Tags challenge-library
// @Security BearerAuth
// @Produce  json
// @Param   id path string true "challenge id"
// @Success 200 {object} util.Response
// @Router /api/library/challenges/{id}/archive [post]
func (c *ChallengeController) ArchiveChallenge(ctx *gin.Context) {
	if err := c.ChallengeService.Archive(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type AssignRequest struct {
	StudentIDs []string `json:"studentIds" binding:"required"`
}

// Assign godoc
// @Summary Assign a challenge to specific students
// @Description An empty prior assignment means open to all; assigning narrows visibility to the listed students.
// @Tags challenge-library
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   id path string true "challenge id"
// @Param   body body AssignRequest true "student ids"
// @Success 200 {object} util.Response
// @Router /api/library/challenges/{id}/assign [post]
func (c *ChallengeController) Assign(ctx *gin.Context) {
	var req AssignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.ChallengeService.Assign(ctx.Param("id"), req.StudentIDs); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListMine godoc
// @Summary List challenges authored by the current teacher
// @Tags challenge-library
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Challenge}
// @Router /api/library/challenges [get]
func (c *ChallengeController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	challenges, err := c.ChallengeService.ListByAuthor(claims.Name)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, challenges)
}

// Export godoc
// @Summary Export a challenge brief as a document
// @Description Requests a document from the export gateway; when the gateway is slow or down, returns a printable HTML brief instead with isFallback set.
// @Tags challenges
// @Security BearerAuth
// @Produce  json
// @Param   id path string true "challenge id"
// @Success 200 {object} util.Response{data=service.ExportResult}
// @Router /api/challenges/{id}/export [post]
func (c *ChallengeController) Export(ctx *gin.Context) {
	challenge, err := c.ChallengeService.Get(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx, "challenge not found")
		return
	}

	claims := util.GetUserFromContext(ctx)
	result := c.Archive.ExportDocument(ctx.Request.Context(), challenge, claims.Name)
	util.Success(ctx, result)
}
