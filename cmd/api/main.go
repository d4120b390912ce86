package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/datasource"
	"github.com/vfg2006/sales-dashboard-api/internal/api"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source, closeSource, err := datasource.Open(ctx, cfg.Dataset.Source, cfg.Dataset.Dir, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao abrir a origem dos dados")
	}
	defer closeSource()

	loader := loading.NewService(source)

	// A primeira carga é obrigatória; sem ela o dashboard não tem o que exibir
	dataset, err := loader.Dataset(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar as tabelas de origem")
	}

	info := dataset.Info()
	for _, warning := range info.Warnings {
		logrus.Warn(warning)
	}

	logrus.WithFields(logrus.Fields{
		"dataset_id": info.ID,
		"source":     info.Source,
		"events":     info.RowCounts[domain.TableEvents],
		"synthetic":  info.Synthetic,
	}).Info("Dados carregados com sucesso")

	dashboardService := reporting.NewService(loader, cfg.Analytics, reporting.NewRandomFactory(cfg.Dataset.RandomSeed))

	datasetReloadService := scheduler.NewDatasetReloadService(loader, cfg)
	if err := datasetReloadService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recarga dos dados")
	} else {
		logrus.Info("Agendador de recarga dos dados iniciado com sucesso")
	}

	server := api.New(cfg, dashboardService, handler.CronJobServices{
		DatasetReloadService: datasetReloadService,
	})

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
