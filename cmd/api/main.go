package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/margin-report-api/internal/api"
	"github.com/vfg2006/margin-report-api/internal/bootstrap"
	"github.com/vfg2006/margin-report-api/internal/config"
	"github.com/vfg2006/margin-report-api/internal/scheduler"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	bootstrap.ConfigureLogLevel(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reportService, closer, err := bootstrap.NewReportService(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar a origem dos dados")
	}
	defer closer.Close()

	// A API sobe mesmo sem dataset; os endpoints respondem 503 até uma recarga funcionar
	if _, err := reportService.Load(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao carregar o dataset inicial")
	}

	reloadService := scheduler.NewDatasetReloadService(reportService, cfg)
	if err := reloadService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recarga do dataset")
	} else {
		logrus.Info("Agendador de recarga do dataset iniciado com sucesso")
	}

	server, err := api.New(cfg, reportService, reloadService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
