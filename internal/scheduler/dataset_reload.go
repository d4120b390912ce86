package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
)

// DatasetReloadConfig representa a configuração do agendador de recarga dos dados
type DatasetReloadConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// DatasetReloadService relê periodicamente as tabelas de origem e troca o snapshot em memória
type DatasetReloadService struct {
	scheduler           *gocron.Scheduler
	config              DatasetReloadConfig
	reloader            loading.Reloader
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastDatasetID       string
	lastError           string
}

func NewDatasetReloadService(reloader loading.Reloader, appConfig *config.Config) *DatasetReloadService {
	reloadConfig := DatasetReloadConfig{
		CronSchedule: appConfig.DatasetReload.CronSchedule,
		SyncEnabled:  appConfig.DatasetReload.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": reloadConfig.CronSchedule,
		"sync_enabled":  reloadConfig.SyncEnabled,
	}).Info("Configuração do agendador de recarga de dados carregada")

	return &DatasetReloadService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    reloadConfig,
		reloader:  reloader,
	}
}

// Start inicia o agendador; desabilitado por configuração não agenda nada
func (s *DatasetReloadService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Recarga agendada de dados desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de recarga de dados")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.reload(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recarga de dados: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de recarga de dados")
		s.scheduler.Stop()
	}()

	return nil
}

// reload executa uma recarga; execuções concorrentes são ignoradas
func (s *DatasetReloadService) reload(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recarga de dados já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	startTime := time.Now()
	dataset, err := s.reloader.Reload(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()

	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).Error("Erro na recarga de dados, snapshot anterior mantido")
		return
	}

	s.lastError = ""
	s.lastDatasetID = dataset.ID

	logrus.WithFields(logrus.Fields{
		"duration":   time.Since(startTime).String(),
		"dataset_id": dataset.ID,
	}).Info("Recarga de dados concluída")
}

// TriggerManualSync inicia manualmente uma recarga em segundo plano
func (s *DatasetReloadService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recarga de dados já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando recarga manual de dados")
	go s.reload(context.Background())
}

// GetStatus retorna o status atual da recarga
func (s *DatasetReloadService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_dataset_id":        s.lastDatasetID,
		"last_error":             s.lastError,
	}
}
