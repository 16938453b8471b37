package controller

import (
	"design_hub_backend/internal/model"
	"design_hub_backend/internal/repository"
	"design_hub_backend/internal/service"
	"design_hub_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// DashboardController serves the teacher overview: engagement metrics,
// award nominations, and recent workshop incidents.
type DashboardController struct {
	MetricService   *service.MetricService
	NominationRepo  *repository.NominationRepository
	BehaviorService *service.BehaviorService
	UserRepo        *repository.UserRepository
}

func NewDashboardController(metricService *service.MetricService, nominationRepo *repository.NominationRepository, behaviorService *service.BehaviorService, userRepo *repository.UserRepository) *DashboardController {
	return &DashboardController{
		MetricService:   metricService,
		NominationRepo:  nominationRepo,
		BehaviorService: behaviorService,
		UserRepo:        userRepo,
	}
}

// Engagement godoc
// @Summary Class engagement metrics
// @Description Login counts, accumulated minutes, and whether each student is currently online.
// @Tags teacher-dashboard
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} util.Response{data=[]service.EngagementEntry}
// @Router /api/teacher/engagement [get]
func (c *DashboardController) Engagement(ctx *gin.Context) {
	entries, err := c.MetricService.Engagement(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// Nominations godoc
// @Summary Award nominations, newest first
// @Tags teacher-dashboard
// @Security BearerAuth
// @Produce  json
// @Param   student query string false "filter by student name"
// @Success 200 {object} util.Response{data=[]model.Nomination}
// @Router /api/teacher/nominations [get]
func (c *DashboardController) Nominations(ctx *gin.Context) {
	var (
		nominations []model.Nomination
		err         error
	)
	if student := ctx.Query("student"); student != "" {
		nominations, err = c.NominationRepo.ListByStudent(student)
	} else {
		nominations, err = c.NominationRepo.ListAll()
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nominations)
}

// Awards godoc
// @Summary The award catalog
// @Tags teacher-dashboard
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.AwardDefinition}
// @Router /api/awards [get]
func (c *DashboardController) Awards(ctx *gin.Context) {
	util.Success(ctx, model.Awards)
}

// RecentIncidents godoc
// @Summary Recent workshop incidents
// @Tags teacher-dashboard
// @Security BearerAuth
// @Produce  json
// @Param   limit query int false "max rows" default(20)
// @Success 200 {object} util.Response{data=[]model.BehaviorLog}
// @Router /api/teacher/incidents [get]
func (c *DashboardController) RecentIncidents(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	logs, err := c.BehaviorService.ListRecent(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, logs)
}

// Students godoc
// @Summary Student roster
// @Tags teacher-dashboard
// @Security BearerAuth
// @Produce  json
// @Param   grade query string false "filter by grade"
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/teacher/students [get]
func (c *DashboardController) Students(ctx *gin.Context) {
	var (
		students []model.User
		err      error
	)
	if grade := ctx.Query("grade"); grade != "" {
		students, err = c.UserRepo.ListStudentsByGrade(model.GradeLevel(grade))
	} else {
		students, err = c.UserRepo.ListStudents()
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	for i := range students {
		students[i].Password = ""
	}
	util.Success(ctx, students)
}
