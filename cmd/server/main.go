package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/bom-extractor/backend/internal/api"
	"github.com/bom-extractor/backend/internal/config"
	"github.com/bom-extractor/backend/internal/extract"
	"github.com/bom-extractor/backend/internal/extract/openai"
	"github.com/bom-extractor/backend/internal/results"
	"github.com/bom-extractor/backend/internal/storage"
	"github.com/bom-extractor/backend/internal/web"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load .env for OPENAI_API_KEY and friends; a missing file is fine.
	_ = godotenv.Load()

	// Get the executable's directory for config resolution
	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}
	exeDir := filepath.Dir(exePath)

	configPath := filepath.Join(exeDir, "BOMExtractor.config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Initialize storage
	fileStore, err := storage.NewLocalStore(cfg.GetUploadDir(), cfg.GetOutputDir())
	if err != nil {
		fmt.Printf("Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}

	// Initialize result retention
	resultMgr, err := results.NewManager(cfg.GetResultsDir())
	if err != nil {
		fmt.Printf("Failed to initialize result store: %v\n", err)
		os.Exit(1)
	}

	// Background result cleanup
	go func() {
		interval := time.Duration(cfg.Processing.CleanupIntervalMinutes) * time.Minute
		maxAge := time.Duration(cfg.Processing.ResultTTLMinutes) * time.Minute
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			resultMgr.CleanupOld(maxAge)
		}
	}()

	// Initialize the extraction pipeline
	schemas := extract.DefaultSchemas()
	if cfg.Extraction.SchemaFile != "" {
		schemas, err = extract.LoadSchemas(cfg.Extraction.SchemaFile)
		if err != nil {
			fmt.Printf("Failed to load extraction schemas: %v\n", err)
			os.Exit(1)
		}
	}

	llm := openai.NewClient(openai.Config{
		BaseURL:     cfg.Extraction.BaseURL,
		Model:       cfg.Extraction.Model,
		Temperature: cfg.Extraction.Temperature,
		Timeout:     time.Duration(cfg.Extraction.TimeoutSeconds) * time.Second,
	}, logger)
	extractor := extract.NewService(llm, schemas, logger)

	e := echo.New()
	e.HideBanner = true

	// Configure middleware
	api.SetupMiddleware(e)

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/api/health"
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	// Uploads are capped well below what the LLM context can take anyway.
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	if cfg.Processing.EnableCompression {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
			Level: cfg.Processing.CompressionLevel,
		}))
	}

	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	// API routes
	handlers := api.NewHandlers(&api.Dependencies{
		Store:     fileStore,
		Artifacts: fileStore,
		Extractor: extractor,
		Results:   resultMgr,
		Version:   Version,
	})
	api.RegisterRoutes(e, handlers)

	// Embedded upload page
	embeddedMode := web.HasEmbeddedFiles()
	if embeddedMode {
		if err := web.RegisterStaticRoutes(e); err != nil {
			fmt.Printf("Warning: failed to register static routes: %v\n", err)
		}
	}

	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	fmt.Printf("BOM Extractor Server %s (built %s)\n", Version, BuildTime)
	fmt.Printf("  Config:   %s\n", configPath)
	fmt.Printf("  Listen:   http://%s\n", cfg.GetServerAddr())
	fmt.Printf("  Data Dir: %s\n", cfg.Storage.DataDirectory)
	fmt.Printf("  Model:    %s\n", cfg.Extraction.Model)
	if os.Getenv("OPENAI_API_KEY") == "" {
		fmt.Println("  WARNING: OPENAI_API_KEY is not set; extractions will fail")
	}
	if embeddedMode {
		fmt.Printf("Open http://localhost:%d in your browser\n", cfg.Server.Port)
	}

	e.Logger.Fatal(e.StartServer(s))
}
