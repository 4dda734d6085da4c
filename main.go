package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"learninghub/config"
	"learninghub/db"
	"learninghub/handlers"
	"learninghub/repository"
	"learninghub/routes"
	"learninghub/services/email"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	conn, err := db.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database connection", zap.Error(err))
	}

	var mail email.Service
	if cfg.Mail.Configured() {
		mail = email.NewSendGridService(cfg.Mail.SendGridKey, cfg.Mail.FromName, cfg.Mail.FromEmail, cfg.Server.BaseURL, logger)
		logger.Info("Outgoing email enabled via SendGrid")
	} else {
		mail = email.NewConsoleService(cfg.Server.BaseURL, logger)
		logger.Info("No mail transport configured, password reset emails will be logged")
	}

	repo := repository.New(conn)
	h := handlers.New(cfg, repo, mail, logger)

	gin.SetMode(gin.ReleaseMode)
	router := routes.Setup(cfg, h, logger)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Server running", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
