package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	config "github.com/maheshrc27/dreamwall/configs"
	"github.com/maheshrc27/dreamwall/internal/api/handlers"
	"github.com/maheshrc27/dreamwall/internal/api/middleware"
	"github.com/maheshrc27/dreamwall/internal/cache"
	"github.com/maheshrc27/dreamwall/internal/database"
	job "github.com/maheshrc27/dreamwall/internal/jobs"
	"github.com/maheshrc27/dreamwall/internal/queue"
	"github.com/maheshrc27/dreamwall/internal/repository"
	"github.com/maheshrc27/dreamwall/internal/service"
	"github.com/maheshrc27/dreamwall/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()
	if err := logger.Init(cfg.LogLevel, cfg.Environment == "development"); err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.L().Fatal("invalid configuration", zap.Error(err))
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
		}); err != nil {
			logger.Warn("sentry disabled", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.Open(ctx, cfg.PostgresURI)
	if err != nil {
		logger.L().Fatal("failed to connect to database", zap.Error(err))
	}
	database.TunePool(db)
	if err := database.EnsureSchema(ctx, db); err != nil {
		logger.L().Fatal("failed to apply schema", zap.Error(err))
	}

	r2Service, err := service.NewR2Service(ctx, *cfg)
	cancel()
	if err != nil {
		logger.L().Fatal("failed to configure object storage", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	counterRepo := repository.NewCounterRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reportRepo := repository.NewReportRepository(db)
	keywordRepo := repository.NewKeywordRepository(db)
	lotteryRepo := repository.NewLotteryRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	var (
		cleaner     service.MediaCleaner = service.NewInlineCleaner(r2Service)
		homeCache   service.HomeCache
		asynqServer *asynq.Server
	)
	if cfg.RedisURI != "" {
		opts, err := redisOptions(cfg.RedisURI)
		if err != nil {
			logger.L().Fatal("invalid REDIS_URI", zap.Error(err))
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		homeCache = cache.NewHomeCache(rdb, cfg.HomeCacheTTL)

		redisConn := asynq.RedisClientOpt{Addr: opts.Addr, Username: opts.Username, Password: opts.Password, DB: opts.DB, TLSConfig: opts.TLSConfig}
		client := asynq.NewClient(redisConn)
		defer client.Close()
		cleaner = queue.NewCleaner(client, r2Service)

		queueW := queue.NewQueue(r2Service)
		asynqServer = asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 4,
			Logger:      logger.L().Sugar(),
		})
		go func() {
			mux := asynq.NewServeMux()
			mux.HandleFunc(queue.TaskTypeDeleteMedia, queueW.HandleDeleteMediaTask)

			logger.Info("starting the asynq server")
			if err := asynqServer.Run(mux); err != nil {
				logger.L().Fatal("could not start asynq server", zap.Error(err))
			}
		}()
	} else {
		logger.Warn("REDIS_URI not set, home cache off and media cleanup runs inline")
	}

	luckyService := service.NewLuckyNumberService(db, postRepo, counterRepo)
	mediaService := service.NewMediaService(r2Service, cfg.Media)
	postService := service.NewPostService(*cfg, postRepo, userRepo, luckyService, mediaService, cleaner)
	lotteryService := service.NewLotteryService(lotteryRepo)

	services := handlers.Services{
		Auth:      service.NewAuthService(*cfg, userRepo),
		Users:     service.NewUserService(userRepo, postRepo, commentRepo),
		Posts:     postService,
		Likes:     service.NewLikeService(likeRepo),
		Comments:  service.NewCommentService(commentRepo),
		Home:      service.NewHomeService(postRepo, keywordRepo, homeCache),
		Admin:     service.NewAdminService(postRepo, userRepo, commentRepo, reportRepo, keywordRepo, lotteryRepo, luckyService),
		Reports:   service.NewReportService(reportRepo),
		Keywords:  service.NewKeywordService(keywordRepo),
		Lotteries: lotteryService,
		Media:     mediaService,
		Settings:  service.NewSettingsService(settingsRepo),
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ReadTimeout:           time.Minute,
		WriteTimeout:          time.Minute,
		BodyLimit:             (service.MaxUploadFiles + 1) * service.MaxUploadSize,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			if code == fiber.StatusInternalServerError {
				logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
				return c.Status(code).JSON(fiber.Map{"error": "Server error"})
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(sentryfiber.New(sentryfiber.Options{Repanic: true}))
	app.Use(middleware.RequestID())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:request_id} ${status} ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           3600,
	}))
	app.Use(compress.New())
	app.Use(middleware.Timeout(cfg.RequestTimeout))

	handlers.RegisterRoutes(app, *cfg, services)

	// cron jobs
	auditJob := job.NewLuckyAuditJob(luckyService)

	c := cron.New()
	if err := c.AddFunc("@hourly", auditJob.Run); err != nil {
		logger.L().Fatal("failed to schedule lucky number audit", zap.Error(err))
	}
	c.Start()
	defer c.Stop()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.L().Fatal("failed to start server", zap.Error(err))
		}
	}()
	logger.Info("server is running", zap.String("port", cfg.Port))

	gracefulShutdown(app, db, asynqServer)
}

// redisOptions accepts either a redis:// URL or a bare host:port.
func redisOptions(uri string) (*redis.Options, error) {
	if strings.Contains(uri, "://") {
		return redis.ParseURL(uri)
	}
	return &redis.Options{Addr: uri}, nil
}

func closeDB(db *sqlx.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sqlx.DB, asynqServer *asynq.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("failed to shut down server", zap.Error(err))
	}
	if asynqServer != nil {
		asynqServer.Shutdown()
	}

	closeDB(db)
	logger.Info("server shutdown complete")
}
