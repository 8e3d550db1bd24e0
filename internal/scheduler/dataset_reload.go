package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/margin-report-api/internal/config"
	"github.com/vfg2006/margin-report-api/internal/domain"
)

// ErrReloadInProgress indica que já existe uma recarga em andamento
var ErrReloadInProgress = errors.New("recarga do dataset já em andamento")

// Reloader é a parte do serviço de relatório usada pelo agendador
type Reloader interface {
	Reload(ctx context.Context) (*domain.Dataset, error)
}

// DatasetReloadConfig representa a configuração do agendador de recarga
type DatasetReloadConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// DatasetReloadService agenda e executa a recarga do dataset a partir da origem
type DatasetReloadService struct {
	scheduler           *gocron.Scheduler
	config              DatasetReloadConfig
	reloader            Reloader
	baseCtx             context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
	lastDatasetID       string
}

// NewDatasetReloadService cria o serviço de recarga do dataset
func NewDatasetReloadService(reloader Reloader, appConfig *config.Config) *DatasetReloadService {
	reloadConfig := DatasetReloadConfig{
		CronSchedule: appConfig.DatasetReload.CronSchedule,
		SyncEnabled:  appConfig.DatasetReload.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": reloadConfig.CronSchedule,
		"sync_enabled":  reloadConfig.SyncEnabled,
	}).Info("Configuração do agendador de recarga do dataset carregada")

	return &DatasetReloadService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    reloadConfig,
		reloader:  reloader,
		baseCtx:   context.Background(),
	}
}

// Start inicia o agendador
func (s *DatasetReloadService) Start(ctx context.Context) error {
	s.syncMutex.Lock()
	s.baseCtx = ctx
	s.syncMutex.Unlock()

	if !s.config.SyncEnabled {
		logrus.Info("Recarga agendada do dataset desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de recarga do dataset")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.reloadDataset()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recarga do dataset: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de recarga do dataset")
		s.scheduler.Stop()
	}()

	return nil
}

// reloadDataset recarrega o dataset; execuções concorrentes são ignoradas
func (s *DatasetReloadService) reloadDataset() {
	ctx, ok := s.acquire()
	if !ok {
		logrus.Info("Recarga do dataset já em andamento, ignorando")
		return
	}

	_, _ = s.runReload(ctx)
}

// acquire marca a recarga como em andamento. Retorna false se já houver uma.
func (s *DatasetReloadService) acquire() (context.Context, bool) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return nil, false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	return s.baseCtx, true
}

func (s *DatasetReloadService) runReload(ctx context.Context) (*domain.Dataset, error) {
	startTime := time.Now()

	dataset, err := s.reloader.Reload(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()

	if err != nil {
		s.lastSyncError = err.Error()
		logrus.WithError(err).Error("Erro ao recarregar o dataset")
		return nil, err
	}

	s.lastSyncError = ""
	s.lastDatasetID = dataset.ID

	logrus.WithFields(logrus.Fields{
		"dataset_id": dataset.ID,
		"rows":       dataset.Len(),
		"duration":   time.Since(startTime).String(),
	}).Info("Recarga do dataset concluída")

	return dataset, nil
}

// RunNow recarrega o dataset no contexto informado e espera o resultado,
// atualizando o status como qualquer outra recarga. Retorna
// ErrReloadInProgress quando outra recarga está rodando.
func (s *DatasetReloadService) RunNow(ctx context.Context) (*domain.Dataset, error) {
	if _, ok := s.acquire(); !ok {
		return nil, ErrReloadInProgress
	}

	logrus.Info("Iniciando recarga síncrona do dataset")
	return s.runReload(ctx)
}

// TriggerManualSync inicia manualmente uma recarga do dataset. Retorna false
// quando já existe uma recarga em andamento.
func (s *DatasetReloadService) TriggerManualSync() bool {
	ctx, ok := s.acquire()
	if !ok {
		logrus.Info("Recarga do dataset já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando recarga manual do dataset")
	go func() { _, _ = s.runReload(ctx) }()

	return true
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
		"last_sync_error":        s.lastSyncError,
		"last_dataset_id":        s.lastDatasetID,
	}
}
