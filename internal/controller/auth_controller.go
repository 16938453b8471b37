package controller

import (
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/service"
	"design_hub_backend/internal/util"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService   *service.AuthService
	MetricService *service.MetricService
}

func NewAuthController(authService *service.AuthService, metricService *service.MetricService) *AuthController {
	return &AuthController{
		AuthService:   authService,
		MetricService: metricService,
	}
}

// RegisterRequest defines the payload for registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=student teacher"`
	Grade    string `json:"grade"`
}

// Register godoc
// @Summary Register a new account
// @Description Creates a user. The email must belong to an allow-listed school domain.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "registration details"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response "email domain not allowed"
// @Failure 409 {object} util.Response "email already registered"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.UserRole(req.Role),
		Grade:    model.GradeLevel(req.Grade),
	}

	if err := c.AuthService.Register(user); err != nil {
		switch {
		case errors.Is(err, util.ErrEmailNotAllowed):
			util.Error(ctx, 403, err.Error())
		case errors.Is(err, util.ErrEmailRegistered):
			util.Error(ctx, 409, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials, records the login in the engagement metrics, and returns a JWT plus the session start time the client must echo back on logout.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "credentials"
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrEmailNotAllowed) {
			util.Error(ctx, 403, err.Error())
			return
		}
		util.Unauthorized(ctx)
		return
	}

	sessionStart, err := c.MetricService.OnLogin(ctx.Request.Context(), user.Email)
	if err != nil {
		// Metrics must never block a login.
		sessionStart = time.Now()
	}

	util.Success(ctx, gin.H{
		"token":        token,
		"sessionStart": sessionStart,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
			"grade": user.Grade,
		},
	})
}

type LogoutRequest struct {
	SessionStart time.Time `json:"sessionStart"`
}

// Logout godoc
// @Summary Log out
// @Description Closes the session and folds its duration into the engagement metrics.
// @Tags auth
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   body body LogoutRequest true "session start returned by login"
// @Success 200 {object} util.Response
// @Router /api/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req LogoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.MetricService.OnLogout(ctx.Request.Context(), claims.Email, req.SessionStart); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Me godoc
// @Summary Current user profile
// @Tags auth
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /api/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	user.Password = ""
	util.Success(ctx, user)
}
