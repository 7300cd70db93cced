package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/aurelia-jewelry/aurelia/internal/app"
	"github.com/aurelia-jewelry/aurelia/internal/config"
	"github.com/aurelia-jewelry/aurelia/internal/logger"
	"github.com/aurelia-jewelry/aurelia/internal/models"

	"github.com/gin-gonic/gin"
)

func main() {
	fmt.Println("aurelia: jewelry storefront cart & checkout API")

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("database init failed: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("database migration failed: %v", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "run mode: all (default), api, worker")
	flag.Parse()

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("server exited with error: %v", err)
	}
}
