package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/defect-service/internal/api/http"
	"github.com/spec-kit/defect-service/internal/api/http/handlers"
	"github.com/spec-kit/defect-service/internal/auth"
	"github.com/spec-kit/defect-service/internal/config"
	"github.com/spec-kit/defect-service/internal/events"
	"github.com/spec-kit/defect-service/internal/observability"
	"github.com/spec-kit/defect-service/internal/persistence"
	"github.com/spec-kit/defect-service/internal/repository"
	"github.com/spec-kit/defect-service/internal/service"
	"github.com/spec-kit/defect-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	objectRepo := repository.NewObjectRepository(pool)
	defectRepo := repository.NewDefectRepository(pool)
	commentRepo := repository.NewDefectCommentRepository(pool)
	historyRepo := repository.NewDefectHistoryRepository(pool)
	imageRepo := repository.NewDefectImageRepository(pool)

	membershipCache := persistence.NewMembershipCache(redis, logger, config.MembershipCacheTTL)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, userRepo)
	projectService := service.NewProjectService(projectRepo, userRepo, membershipCache)
	objectService := service.NewObjectService(objectRepo, projectRepo)
	defectService := service.NewDefectService(service.DefectDependencies{
		DefectRepo:  defectRepo,
		ObjectRepo:  objectRepo,
		ProjectRepo: projectRepo,
		CommentRepo: commentRepo,
		HistoryRepo: historyRepo,
		ImageRepo:   imageRepo,
		Members:     membershipCache,
		Dispatcher:  dispatcher,
	})
	reportService := service.NewReportService(projectRepo, objectRepo, defectRepo)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: 32 * 1024 * 1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Projects:       handlers.NewProjectsHandler(projectService),
		Objects:        handlers.NewObjectsHandler(objectService),
		Defects:        handlers.NewDefectsHandler(defectService),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
