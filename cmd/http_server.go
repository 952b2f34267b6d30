package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sgonzalez/retail-management/internal"
	"github.com/sgonzalez/retail-management/internal/attendance"
	attendancePostgres "github.com/sgonzalez/retail-management/internal/attendance/postgres"
	"github.com/sgonzalez/retail-management/internal/auth"
	authPostgres "github.com/sgonzalez/retail-management/internal/auth/postgres"
	"github.com/sgonzalez/retail-management/internal/client"
	clientPostgres "github.com/sgonzalez/retail-management/internal/client/postgres"
	"github.com/sgonzalez/retail-management/internal/core/clock"
	"github.com/sgonzalez/retail-management/internal/core/events"
	"github.com/sgonzalez/retail-management/internal/product"
	productPostgres "github.com/sgonzalez/retail-management/internal/product/postgres"
	"github.com/sgonzalez/retail-management/internal/purchase"
	purchasePostgres "github.com/sgonzalez/retail-management/internal/purchase/postgres"
	"github.com/sgonzalez/retail-management/internal/schedule"
	schedulePostgres "github.com/sgonzalez/retail-management/internal/schedule/postgres"
	"github.com/sgonzalez/retail-management/internal/settings"
	settingsPostgres "github.com/sgonzalez/retail-management/internal/settings/postgres"
	"github.com/sgonzalez/retail-management/internal/transport/rest"
	"github.com/sgonzalez/retail-management/internal/user"
	userPostgres "github.com/sgonzalez/retail-management/internal/user/postgres"
	"github.com/sgonzalez/retail-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	lg := deps.Logger

	// Auth
	tokenGen := auth.NewJWTTokenGenerator(
		deps.Config.Security.AccessTokenSecret,
		deps.Config.Security.RefreshTokenSecret,
		deps.Config.Security.AccessTokenDuration,
		deps.Config.Security.RefreshTokenDuration,
	)
	authRepo := authPostgres.NewRepository(deps.GormDB)
	authService := auth.NewService(authRepo, tokenGen, deps.Config.Security.BCryptCost, lg)
	authHandler := auth.NewHandler(authService)

	// Attendance ledger
	attendanceRepo := attendancePostgres.NewRepository(deps.GormDB)
	attendanceService := attendance.NewService(attendanceRepo, clock.System(), lg)
	attendanceHandler := attendance.NewHandler(attendanceService)

	// Products + inventory alerts
	productRepo := productPostgres.NewRepository(deps.GormDB)
	productService := product.NewService(productRepo, lg)
	productHandler := product.NewHandler(productService)

	eventBus := events.NewEventBus(lg)
	product.NewEventHandler(productService, lg).RegisterEventHandlers(eventBus)

	// Clients
	clientRepo := clientPostgres.NewRepository(deps.GormDB)
	clientService := client.NewService(clientRepo, lg)
	clientHandler := client.NewHandler(clientService)

	// Purchases and returns
	purchaseRepo := purchasePostgres.NewRepository(deps.GormDB)
	purchaseService := purchase.NewService(purchaseRepo, lg)
	purchaseHandler := purchase.NewHandler(purchaseService, eventBus)

	// Users
	userRepo := userPostgres.NewRepository(deps.GormDB)
	userService := user.NewService(userRepo, lg)
	userHandler := user.NewHandler(userService)

	// Schedules
	scheduleRepo := schedulePostgres.NewRepository(deps.GormDB)
	scheduleService := schedule.NewService(scheduleRepo, lg)
	scheduleHandler := schedule.NewHandler(scheduleService)

	// Settings
	settingsRepo := settingsPostgres.NewRepository(deps.GormDB)
	settingsService := settings.NewService(settingsRepo, lg)
	settingsHandler := settings.NewHandler(settingsService)

	origins := strings.Split(deps.Config.Server.AllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, rest.Handlers{
		Auth:       authHandler,
		Attendance: attendanceHandler,
		Product:    productHandler,
		Client:     clientHandler,
		Purchase:   purchaseHandler,
		User:       userHandler,
		Schedule:   scheduleHandler,
		Settings:   settingsHandler,
	}, origins, lg)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()

	validateAPISpec(lg)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// validateAPISpec checks the served OpenAPI document so a broken spec shows
// up at startup instead of in the swagger UI.
func validateAPISpec(lg *slog.Logger) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile("./api/openapi.yml")
	if err != nil {
		lg.Warn("could not load OpenAPI spec", "error", err)
		return
	}
	if err := doc.Validate(loader.Context); err != nil {
		lg.Warn("OpenAPI spec is invalid", "error", err)
		return
	}
	lg.Info("OpenAPI spec validated", "paths", doc.Paths.Len())
}

// initDB initializes the pooled database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
