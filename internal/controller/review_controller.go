package controller

import (
	"design_hub_backend/internal/repository"
	"design_hub_backend/internal/service"
	"design_hub_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	ReviewService *service.ReviewService
	ReviewRepo    *repository.ReviewRepository
	AuthService   *service.AuthService
}

func NewReviewController(reviewService *service.ReviewService, reviewRepo *repository.ReviewRepository, authService *service.AuthService) *ReviewController {
	return &ReviewController{
		ReviewService: reviewService,
		ReviewRepo:    reviewRepo,
		AuthService:   authService,
	}
}

// Submit godoc
// @Summary Submit a peer review
// @Description Feedback passes through the constructive-tone gate before anything is saved. A rejected review returns a rewrite suggestion and may be resubmitted any number of times.
// @Tags reviews
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   body body service.ReviewRequest true "review"
// @Success 200 {object} util.Response{data=service.ReviewOutcome}
// @Failure 400 {object} util.Response "empty feedback"
// @Failure 404 {object} util.Response "submission not found"
// @Router /api/reviews [post]
func (c *ReviewController) Submit(ctx *gin.Context) {
	var req service.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reviewer := c.AuthService.GetCurrentUser(ctx)
	if reviewer == nil {
		util.Unauthorized(ctx)
		return
	}

	outcome, err := c.ReviewService.SubmitReview(ctx.Request.Context(), reviewer, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmptyFeedback):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrSubmissionNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, outcome)
}

// ListMine godoc
// @Summary Reviews written by the current student, newest first
// @Tags reviews
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.PeerReview}
// @Router /api/reviews/mine [get]
func (c *ReviewController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	reviews, err := c.ReviewRepo.ListByReviewer(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, reviews)
}
