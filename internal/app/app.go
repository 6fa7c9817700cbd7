package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/iotsphere/iotsphere-backend/internal/db"
	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/sse"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	SSEHub   *sse.Hub
	cancel   context.CancelFunc
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	dbService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("database automigrate: %w", err)
	}
	theDB := dbService.DB()

	hub := sse.NewHub(log)

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(log, cfg, reposet, hub)
	handlerset := wireHandlers(log, serviceset, hub)
	router := wireRouter(handlerset)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		SSEHub:   hub,
	}, nil
}

// Start launches the Redis alert forwarder so events published by other
// instances reach this instance's SSE clients.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if a.Services.AlertBus != nil {
		if err := a.Services.AlertBus.StartForwarder(ctx, func(m sse.Message) {
			a.SSEHub.Broadcast(m)
		}); err != nil {
			a.Log.Warn("Alert forwarder failed to start", "error", err)
		}
	}
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.Services.AlertBus != nil {
		a.Services.AlertBus.Close()
	}
	if a.Services.ReadingCache != nil {
		a.Services.ReadingCache.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
