package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"findmyvakeel/backend/internal/config"
	"findmyvakeel/backend/internal/handlers"
	"findmyvakeel/backend/internal/logger"
	"findmyvakeel/backend/internal/repositories"
	"findmyvakeel/backend/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	log.Info("database connected")

	// Repositories
	caseRepo := repositories.NewCaseRepository(db)
	lawyerRepo := repositories.NewLawyerRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// Storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal("failed to create upload directory", zap.Error(err))
	}
	pdfParser := services.NewPDFParserService()

	// AI pipeline
	llmService, err := services.NewLLMService(cfg.LLM)
	if err != nil {
		log.Fatal("failed to initialize llm client", zap.Error(err))
	}
	analyzer := services.NewProblemAnalyzer(llmService, log.Named("analyzer"))
	matcher := services.NewLawyerMatcher(llmService, log.Named("matcher"))
	assistant := services.NewCaseAssistant(llmService, log.Named("assistant"))
	pipeline := services.NewCasePipeline(caseRepo, lawyerRepo, analyzer, matcher, log.Named("pipeline"))
	log.Info("ai pipeline initialized", zap.String("model", cfg.LLM.Model))

	// Handlers
	caseHandler := handlers.NewCaseHandler(pipeline, caseRepo)
	chatHandler := handlers.NewChatHandler(messageRepo, caseRepo, userRepo, assistant)
	aiHandler := handlers.NewAIHandler(analyzer, assistant)
	uploadHandler := handlers.NewUploadHandler(storageService, pdfParser, cfg.Storage.MaxFileSize)
	lawyerHandler := handlers.NewLawyerHandler(lawyerRepo)

	app := fiber.New(fiber.Config{
		AppName:      "Find My Vakeel API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-User-ID",
	}))

	app.Static("/uploads", cfg.Storage.UploadPath)

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Find My Vakeel API is running",
			"time":    time.Now(),
		})
	})

	// Public AI endpoints used by the problem wizard before sign-in.
	api.Post("/ai/process", aiHandler.HandleProcess)
	api.Post("/ai/chat", aiHandler.HandleChat)

	api.Get("/lawyers", lawyerHandler.HandleList)

	// Everything below requires a resolved user identity.
	cases := api.Group("/cases", handlers.RequireUser)
	cases.Post("/", caseHandler.HandleCreate)
	cases.Get("/", caseHandler.HandleList)
	cases.Get("/:id", caseHandler.HandleGet)
	cases.Post("/:id/select-lawyer", caseHandler.HandleSelectLawyer)
	cases.Post("/:id/documents", caseHandler.HandleAddDocument)
	cases.Patch("/:id/status", caseHandler.HandleUpdateStatus)

	chat := api.Group("/chat", handlers.RequireUser)
	chat.Get("/:caseId", chatHandler.HandleListMessages)
	chat.Post("/:caseId", chatHandler.HandleSendMessage)
	chat.Patch("/:caseId/read", chatHandler.HandleMarkRead)
	chat.Post("/:caseId/ai-assist", chatHandler.HandleAIAssist)

	upload := api.Group("/upload", handlers.RequireUser)
	upload.Post("/single", uploadHandler.HandleUploadSingle)
	upload.Post("/multiple", uploadHandler.HandleUploadMultiple)
	upload.Delete("/:filename", uploadHandler.HandleDelete)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
