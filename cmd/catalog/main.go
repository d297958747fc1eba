package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mytheresa/go-catalog/app/categories"
	"github.com/mytheresa/go-catalog/app/server"
	"github.com/mytheresa/go-catalog/config"
	"github.com/mytheresa/go-catalog/database"
	"github.com/mytheresa/go-catalog/logger"
	"github.com/mytheresa/go-catalog/models"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to the YAML config file",
		EnvVars: []string{"CATALOG_CONFIG"},
	}

	return &cli.App{
		Name:  "catalog",
		Usage: "product catalog service",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP API",
				Flags:  []cli.Flag{configFlag},
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update the catalog schema",
				Flags:  []cli.Flag{configFlag},
				Action: migrate,
			},
		},
		DefaultCommand: "serve",
	}
}

// bootstrap loads config, logger and database shared by every command.
func bootstrap(c *cli.Context) (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, nil, err
	}

	log := logger.New(cfg.Log)
	db, err := database.Open(cfg.Database, log)
	if err != nil {
		log.Sync()
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}

func serve(c *cli.Context) error {
	cfg, log, db, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer database.Close(db)

	if cfg.Database.AutoMigrate {
		if err := models.Migrate(db); err != nil {
			return err
		}
		log.Info("schema migrated")
	}

	gin.SetMode(cfg.App.Mode)

	service := categories.NewService(models.NewCategoriesRepository(db))
	ping := func(ctx context.Context) error { return database.Ping(ctx, db) }
	router := server.NewRouter(cfg, service, ping, log)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg, router, log).Run(ctx, cfg.App.ShutdownTimeout); err != nil {
		log.Error("http server stopped", zap.Error(err))
		return err
	}
	log.Info("http server stopped")
	return nil
}

func migrate(c *cli.Context) error {
	_, log, db, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer database.Close(db)

	if err := models.Migrate(db); err != nil {
		log.Error("migration failed", zap.Error(err))
		return err
	}
	log.Info("schema migrated")
	return nil
}
