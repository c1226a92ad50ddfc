package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/pattadon/socialshift/configs"
	"github.com/pattadon/socialshift/internal/api/handlers"
	"github.com/pattadon/socialshift/internal/api/middleware"
	job "github.com/pattadon/socialshift/internal/jobs"
	"github.com/pattadon/socialshift/internal/queue"
	"github.com/pattadon/socialshift/internal/repository"
	"github.com/pattadon/socialshift/internal/service"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	creatorRepo := repository.NewCreatorRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	postLogRepo := repository.NewPostLogRepository(db)
	planRepo := repository.NewPlanRepository(db)
	settingsRepository := repository.NewSettingsRepository(db)
	apiKeyRepository := repository.NewApiKeyRepository(db)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	r2Service := service.NewR2Service(*cfg)
	settingsService := service.NewSettingsService(*cfg, settingsRepository)
	creatorService := service.NewCreatorService(creatorRepo, accountRepo)
	accountService := service.NewAccountService(accountRepo, creatorRepo)
	planService := service.NewPlanService(accountRepo, creatorRepo, planRepo, postLogRepo, settingsService)
	postLogService := service.NewPostLogService(db, postLogRepo, accountRepo, creatorRepo, planRepo, planService, settingsService)
	recommendationService := service.NewRecommendationService(accountRepo, creatorRepo, postLogService, settingsService)
	exportService := service.NewExportService(*cfg, creatorRepo, accountRepo, postLogRepo, *r2Service)
	apiKeyService := service.NewApiKeyService(apiKeyRepository)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)

	settings := handlers.NewSettingsHandler(settingsService)
	api.Get("/settings/info", settings.GetSettingsInfo)
	api.Post("/settings/update", settings.UpdateSettings)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateApiKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveAPIKey)

	creator := handlers.NewCreatorHandler(creatorService)
	api.Post("/creators/create", creator.CreateCreator)
	api.Get("/creators", creator.ListCreators)
	api.Post("/creators/update", creator.UpdateCreator)
	api.Post("/creators/remove", creator.RemoveCreator)

	account := handlers.NewAccountHandler(accountService)
	api.Post("/accounts/create", account.CreateAccount)
	api.Get("/accounts", account.ListAccounts)
	api.Post("/accounts/update", account.UpdateAccount)
	api.Post("/accounts/remove", account.RemoveAccount)

	plan := handlers.NewPlanHandler(planService)
	api.Get("/plan/today", plan.GetToday)
	api.Post("/plan/refresh", plan.RefreshPlan)

	recommendation := handlers.NewRecommendationHandler(recommendationService)
	api.Get("/recommendations", recommendation.Worklist)
	api.Get("/recommendations/next", recommendation.NextForAccount)

	postLog := handlers.NewLogHandler(postLogService)
	api.Post("/logs/create", postLog.CreatePostLog)
	api.Post("/plan/slots/:id/skip", postLog.SkipSlot)
	api.Get("/logs/today", postLog.ListToday)
	api.Get("/logs", postLog.ListAll)

	export := handlers.NewExportHandler(exportService)
	api.Post("/export", export.ExportSchedule)
	api.Post("/import", export.ImportSchedule)

	// cron jobs
	planRefreshJob := job.NewPlanRefreshJob(planService)
	reminderJob := job.NewReminderJob(recommendationService, client)

	//queue
	queueW := queue.NewQueue(accountRepo, recommendationService, settingsService)

	c := cron.New()
	c.AddFunc("@every 00h01m00s", planRefreshJob.RefreshPlan)
	c.AddFunc("@every 00h05m00s", reminderJob.DispatchReminders)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePostReminder, queueW.HandleReminderTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
