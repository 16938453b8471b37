package controller

import (
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/service"
	"design_hub_backend/internal/util"
	"errors"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func userIDParam(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

type SubmissionController struct {
	SubmissionService *service.SubmissionService
	SubmissionRepo    SubmissionLister
	ChallengeService  *service.ChallengeService
	Storage           *service.StorageService
	AuthService       *service.AuthService
}

// SubmissionLister covers the read paths the controller needs.
type SubmissionLister interface {
	ListByUser(userID uint) ([]model.Submission, error)
	ListByGrade(grade model.GradeLevel) ([]model.Submission, error)
	ListRecent(limit int) ([]model.Submission, error)
	FindByID(id string) (*model.Submission, error)
	UpdateScore(submissionID string, score float64) error
}

func NewSubmissionController(submissionService *service.SubmissionService, repo SubmissionLister, challengeService *service.ChallengeService, storage *service.StorageService, authService *service.AuthService) *SubmissionController {
	return &SubmissionController{
		SubmissionService: submissionService,
		SubmissionRepo:    repo,
		ChallengeService:  challengeService,
		Storage:           storage,
		AuthService:       authService,
	}
}

type SubmitBody struct {
	ChallengeID string   `json:"challengeId" binding:"required"`
	Content     string   `json:"content"`
	FileURLs    []string `json:"fileUrls"`
}

// Submit godoc
// @Summary Submit work against a challenge
// @Description Runs the full pipeline: validation, AI feedback analysis, best-effort archival, status transition (with first-submission XP), then the permanent record. Analyzer failure aborts with nothing changed.
// @Tags submissions
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   body body SubmitBody true "submission"
// @Success 201 {object} util.Response{data=service.SubmitOutcome}
// @Failure 400 {object} util.Response "empty submission or unready challenge"
// @Failure 403 {object} util.Response "challenge not assigned to this student"
// @Failure 502 {object} util.Response "feedback analyzer unavailable"
// @Router /api/submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	var body SubmitBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	challenge, err := c.ChallengeService.Get(body.ChallengeID)
	if err != nil {
		util.NotFound(ctx, "challenge not found")
		return
	}

	outcome, err := c.SubmissionService.Submit(ctx.Request.Context(), service.SubmitRequest{
		User:      user,
		Challenge: challenge,
		Content:   body.Content,
		FileURLs:  body.FileURLs,
	})
	if err != nil {
		var analyzerErr *util.AnalyzerError
		switch {
		case errors.Is(err, util.ErrEmptySubmission), errors.Is(err, util.ErrChallengeNotReady):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrNotAssigned):
			util.Error(ctx, 403, err.Error())
		case errors.As(err, &analyzerErr):
			util.Error(ctx, 502, "feedback is temporarily unavailable, please try again")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, outcome)
}

// Upload godoc
// @Summary Upload a submission file
// @Description Stores the file on the configured backend and returns its URL for use in a submission.
// @Tags submissions
// @Security BearerAuth
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "file"
// @Success 200 {object} util.Response{data=object}
// @Router /api/submissions/upload [post]
func (c *SubmissionController) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	filename := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")
	url, err := c.Storage.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url, "filename": filename})
}

// ListMine godoc
// @Summary List the current student's submissions, most recent first
// @Tags submissions
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Router /api/submissions [get]
func (c *SubmissionController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	submissions, err := c.SubmissionRepo.ListByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

// ListForReview godoc
// @Summary List grade-mate submissions available for peer review
// @Tags submissions
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Router /api/submissions/review-queue [get]
func (c *SubmissionController) ListForReview(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	submissions, err := c.SubmissionRepo.ListByGrade(user.Grade)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	// Students do not review their own work.
	peers := make([]model.Submission, 0, len(submissions))
	for _, s := range submissions {
		if s.UserID != user.ID {
			peers = append(peers, s)
		}
	}
	util.Success(ctx, peers)
}

// Get godoc
// @Summary Fetch one submission with its peer reviews
// @Tags submissions
// @Security BearerAuth
// @Produce  json
// @Param   id path string true "submission id"
// @Success 200 {object} util.Response{data=model.Submission}
// @Failure 404 {object} util.Response
// @Router /api/submissions/{id} [get]
func (c *SubmissionController) Get(ctx *gin.Context) {
	submission, err := c.SubmissionRepo.FindByID(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx, "submission not found")
		return
	}
	util.Success(ctx, submission)
}

// ListRecent godoc
// @Summary Recent submissions across the class (teacher view)
// @Tags submissions
// @Security BearerAuth
// @Produce  json
// @Param   limit query int false "max rows" default(50)
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Router /api/teacher/submissions [get]
func (c *SubmissionController) ListRecent(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	submissions, err := c.SubmissionRepo.ListRecent(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

type ScoreRequest struct {
	Score float64 `json:"score" binding:"min=0"`
}

// Score godoc
// @Summary Record a teacher's final score on a submission
// @Tags submissions
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   id path string true "submission id"
// @Param   body body ScoreRequest true "score"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/teacher/submissions/{id}/score [put]
func (c *SubmissionController) Score(ctx *gin.Context) {
	var req ScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := ctx.Param("id")
	if _, err := c.SubmissionRepo.FindByID(id); err != nil {
		util.NotFound(ctx, "submission not found")
		return
	}
	if err := c.SubmissionRepo.UpdateScore(id, req.Score); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
