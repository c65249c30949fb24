package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-pipeline-api/internal/config"
	"github.com/vfg2006/campaign-pipeline-api/internal/domain"
	"github.com/vfg2006/campaign-pipeline-api/internal/usecases/pipelining"
)

// RepublishSyncConfig representa a configuração do agendador de republicação
type RepublishSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// RepublishSyncService reexecuta o pipeline com um lote vazio em horário
// agendado: o staging acumulado inteiro é relimpo, reenriquecido e o
// snapshot da tabela fato é republicado. A operação é idempotente.
type RepublishSyncService struct {
	scheduler           *gocron.Scheduler
	config              RepublishSyncConfig
	appConfig           *config.Config
	pipeline            pipelining.Pipeliner
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

// NewRepublishSyncService cria uma nova instância do serviço de republicação
func NewRepublishSyncService(
	pipeline pipelining.Pipeliner,
	appConfig *config.Config,
) *RepublishSyncService {
	syncConfig := RepublishSyncConfig{
		CronSchedule: appConfig.RepublishSync.CronSchedule,
		SyncEnabled:  appConfig.RepublishSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de republicação carregada")

	return &RepublishSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		appConfig:   appConfig,
		pipeline:    pipeline,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *RepublishSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Republicação agendada do snapshot desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de republicação do snapshot")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.republishSnapshot()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar republicação do snapshot: %w", err)
	}

	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de republicação do snapshot")
		s.scheduler.Stop()
	}()

	return nil
}

// republishSnapshot executa o pipeline com lote vazio sobre o staging atual
func (s *RepublishSyncService) republishSnapshot() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Republicação do snapshot já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando republicação do snapshot a partir do staging acumulado")

	result, err := s.pipeline.Run(context.Background(), domain.Frame{})
	if err != nil {
		s.lastSyncError = err.Error()
		logrus.WithError(err).Error("Erro ao republicar o snapshot")
		return
	}

	s.lastSyncError = ""
	s.lastSyncCompletedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"run_id":         result.RunID,
		"rows_staging":   result.StagingRows,
		"rows_published": result.PublishedRows,
		"duration":       time.Since(startTime).String(),
	}).Info("Republicação do snapshot concluída")
}

// TriggerManualSync inicia manualmente uma republicação do snapshot
func (s *RepublishSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Republicação do snapshot já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando republicação manual do snapshot")
	go s.republishSnapshot()
}

// GetStatus retorna o status atual do agendador
func (s *RepublishSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}
