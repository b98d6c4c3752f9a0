package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/config"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/controller"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/repository"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/service"
	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/util"
	"github.com/vignesh-sundaramoorthi/identity-sprint/pkg/configwatcher"
	"github.com/vignesh-sundaramoorthi/identity-sprint/pkg/database"
	"github.com/vignesh-sundaramoorthi/identity-sprint/pkg/logger"
	"github.com/vignesh-sundaramoorthi/identity-sprint/pkg/monitoring"
	"github.com/vignesh-sundaramoorthi/identity-sprint/pkg/security"
	"github.com/vignesh-sundaramoorthi/identity-sprint/pkg/tracing"
)

const configFile = "configs/config.yaml"

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	origins         *security.OriginList
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
	stop            context.CancelFunc
}

type repositories struct {
	user         *repository.UserRepository
	challenge    *repository.ChallengeRepository
	checkin      *repository.CheckinRepository
	habit        *repository.HabitRepository
	identity     *repository.IdentityRepository
	group        *repository.GroupRepository
	discovery    *repository.DiscoveryRepository
	applications repository.ApplicationStore
	milestones   repository.MilestoneLedger
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	notifier    *service.EmailNotifier
	application *service.ApplicationService
	discovery   *service.DiscoveryService
	habit       *service.HabitService
	challenge   *service.ChallengeService
	group       *service.GroupService
	tracker     *service.TrackerService
	identity    *service.IdentityService
}

type controllers struct {
	health      *controller.HealthController
	auth        *controller.AuthController
	application *controller.ApplicationController
	discovery   *controller.DiscoveryController
	habit       *controller.HabitController
	tracker     *controller.TrackerController
	challenge   *controller.ChallengeController
}

// OnConfigChange registers a callback run with every reloaded config.
func (a *App) OnConfigChange(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	repos := &repositories{
		user:      repository.NewUserRepository(db),
		challenge: repository.NewChallengeRepository(db),
		checkin:   repository.NewCheckinRepository(db),
		habit:     repository.NewHabitRepository(db),
		identity:  repository.NewIdentityRepository(db),
		group:     repository.NewGroupRepository(db),
		discovery: repository.NewDiscoveryRepository(db),
	}

	if cfg.ApplicationStore.Type == util.ApplicationStoreRedis && rdb != nil {
		repos.applications = repository.NewRedisApplicationStore(rdb, cfg.ApplicationStore.Key)
	} else {
		repos.applications = repository.NewMemoryApplicationStore()
	}

	dedup := time.Duration(cfg.Notification.MilestoneDedupHours) * time.Hour
	if rdb != nil {
		repos.milestones = repository.NewRedisMilestoneLedger(rdb, dedup)
	} else {
		repos.milestones = repository.NewMemoryMilestoneLedger(dedup)
	}
	return repos
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.notifier = service.NewEmailNotifier(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.application = service.NewApplicationService(repos.applications)
	s.discovery = service.NewDiscoveryService(repos.discovery)
	s.habit = service.NewHabitService(repos.habit)
	s.challenge = service.NewChallengeService(repos.challenge, repos.checkin, repos.habit, s.storage)
	s.group = service.NewGroupService(repos.group)
	s.tracker = service.NewTrackerService(
		repos.challenge,
		repos.checkin,
		repos.habit,
		repos.group,
		s.notifier,
		repos.milestones,
		cfg.Notification.LowAdherenceThreshold,
	)
	s.identity = service.NewIdentityService(repos.challenge, repos.identity, s.application)

	a.OnConfigChange(s.notifier.Apply)
	a.OnConfigChange(func(c *config.Config) {
		s.tracker.SetLowAdherenceThreshold(c.Notification.LowAdherenceThreshold)
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		health:      controller.NewHealthController(db),
		auth:        controller.NewAuthController(s.auth),
		application: controller.NewApplicationController(s.application),
		discovery:   controller.NewDiscoveryController(s.discovery),
		habit:       controller.NewHabitController(s.habit),
		tracker:     controller.NewTrackerController(s.tracker, s.identity),
		challenge:   controller.NewChallengeController(s.challenge, s.group),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	a.origins = security.NewOriginList(cfg.CORS.AllowedOrigins)
	a.OnConfigChange(func(c *config.Config) {
		a.origins.Set(c.CORS.AllowedOrigins)
	})

	router.Use(security.CORS(a.origins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(ctx context.Context, s *services) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.challenge.CompleteFinished()
				if err != nil {
					logger.Log.Error("Challenge completion sweep failed", zap.Error(err))
					continue
				}
				if n > 0 {
					logger.Log.Info("Challenges completed", zap.Int("count", n))
				}
			}
		}
	}()

	go func() {
		if err := configwatcher.Watch(ctx, configFile, a.applyConfig); err != nil {
			logger.Log.Warn("Config hot reload disabled", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate
	db, err := database.InitDB(cfg, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	app.Redis = rdb

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/exports", cfg.Storage.LocalPath)
	}

	ctx, cancel := context.WithCancel(context.Background())
	app.stop = cancel
	app.startBackgroundTasks(ctx, services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	if a.stop != nil {
		a.stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
