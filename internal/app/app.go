package app

import (
	"context"
	"design_hub_backend/internal/config"
	"design_hub_backend/internal/controller"
	"design_hub_backend/internal/repository"
	"design_hub_backend/internal/service"
	"design_hub_backend/pkg/database"
	"design_hub_backend/pkg/logger"
	"design_hub_backend/pkg/monitoring"
	"design_hub_backend/pkg/security"
	"design_hub_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	progress   *repository.ProgressRepository
	challenge  *repository.ChallengeRepository
	submission *repository.SubmissionRepository
	review     *repository.ReviewRepository
	metric     *repository.MetricRepository
	team       *repository.TeamRepository
	behavior   *repository.BehaviorRepository
	nomination *repository.NominationRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	ai         *service.AIClient
	generator  *service.GeneratorService
	feedback   *service.FeedbackService
	archive    *service.ArchiveService
	challenge  *service.ChallengeService
	progress   *service.ProgressService
	submission *service.SubmissionService
	review     *service.ReviewService
	metric     *service.MetricService
	team       *service.TeamService
	behavior   *service.BehaviorService
}

type controllers struct {
	auth       *controller.AuthController
	challenge  *controller.ChallengeController
	submission *controller.SubmissionController
	review     *controller.ReviewController
	progress   *controller.ProgressController
	dashboard  *controller.DashboardController
	team       *controller.TeamController
	behavior   *controller.BehaviorController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig propagates a reloaded config to every registered callback.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		progress:   repository.NewProgressRepository(db),
		challenge:  repository.NewChallengeRepository(db),
		submission: repository.NewSubmissionRepository(db),
		review:     repository.NewReviewRepository(db),
		metric:     repository.NewMetricRepository(rdb),
		team:       repository.NewTeamRepository(db),
		behavior:   repository.NewBehaviorRepository(db),
		nomination: repository.NewNominationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.ai = service.NewAIClient(cfg.AI)
	s.generator = service.NewGeneratorService(s.ai)
	s.feedback = service.NewFeedbackService(s.ai)
	s.archive = service.NewArchiveService(cfg.Archive)
	s.challenge = service.NewChallengeService(repos.challenge)
	s.progress = service.NewProgressService(repos.progress, func(userID uint, newLevel int) {
		logger.Log.Info("student leveled up",
			zap.Uint("user_id", userID),
			zap.Int("level", newLevel))
	})
	s.submission = service.NewSubmissionService(repos.submission, s.progress, s.feedback, s.archive)
	s.review = service.NewReviewService(repos.submission, repos.nomination, s.feedback)
	s.metric = service.NewMetricService(repos.metric)
	s.team = service.NewTeamService(repos.team, s.generator, s.ai)
	s.behavior = service.NewBehaviorService(repos.behavior, repos.user)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.metric),
		challenge:  controller.NewChallengeController(s.challenge, s.generator, s.archive, s.auth),
		submission: controller.NewSubmissionController(s.submission, repos.submission, s.challenge, s.storage, s.auth),
		review:     controller.NewReviewController(s.review, repos.review, s.auth),
		progress:   controller.NewProgressController(s.progress),
		dashboard:  controller.NewDashboardController(s.metric, repos.nomination, s.behavior, repos.user),
		team:       controller.NewTeamController(s.team),
		behavior:   controller.NewBehaviorController(s.behavior),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	runMigrations := cfg.ForceMigrate || cfg.Server.Mode != "release"
	db, err := database.InitDB(&cfg.Database, runMigrations)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("design-pathway-hub", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
