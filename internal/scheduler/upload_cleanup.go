// Package scheduler agrupa as rotinas agendadas da aplicação
package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/branch-analytics-api/internal/config"
)

// UploadCleanupConfig representa a configuração da limpeza do diretório de
// uploads
type UploadCleanupConfig struct {
	CronSchedule string
	UploadDir    string
	MaxAgeHours  int
	Enabled      bool
}

// UploadCleanupService remove periodicamente os arquivos temporários de
// upload. As planilhas só são necessárias durante o processamento; o dataset
// vive em memória depois disso.
type UploadCleanupService struct {
	scheduler          *gocron.Scheduler
	config             UploadCleanupConfig
	cleanupRunning     bool
	cleanupMutex       sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
}

// NewUploadCleanupService cria uma nova instância do serviço de limpeza
func NewUploadCleanupService(appConfig *config.Config) *UploadCleanupService {
	cleanupConfig := UploadCleanupConfig{
		CronSchedule: appConfig.UploadCleanup.CronSchedule,
		UploadDir:    appConfig.Upload.Dir,
		MaxAgeHours:  appConfig.UploadCleanup.MaxAgeHours,
		Enabled:      appConfig.UploadCleanup.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": cleanupConfig.CronSchedule,
		"upload_dir":    cleanupConfig.UploadDir,
		"max_age_hours": cleanupConfig.MaxAgeHours,
		"enabled":       cleanupConfig.Enabled,
	}).Info("Configuração da limpeza de uploads carregada")

	return &UploadCleanupService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    cleanupConfig,
	}
}

// Start inicia o agendador
func (s *UploadCleanupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Limpeza de uploads desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de limpeza de uploads")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.cleanupUploads()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de uploads: %w", err)
	}

	s.scheduler.StartAsync()

	// Parar o agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza de uploads")
		s.scheduler.Stop()
	}()

	return nil
}

// cleanupUploads remove os arquivos mais antigos que o limite configurado
func (s *UploadCleanupService) cleanupUploads() {
	s.cleanupMutex.Lock()
	if s.cleanupRunning {
		s.cleanupMutex.Unlock()
		logrus.Info("Limpeza de uploads já em andamento, ignorando")
		return
	}
	s.cleanupRunning = true
	s.cleanupMutex.Unlock()

	startTime := time.Now()
	s.lastRunStartedAt = startTime

	defer func() {
		s.cleanupMutex.Lock()
		s.cleanupRunning = false
		s.cleanupMutex.Unlock()
	}()

	cutoff := startTime.Add(-time.Duration(s.config.MaxAgeHours) * time.Hour)

	entries, err := os.ReadDir(s.config.UploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		logrus.WithError(err).Error("Erro ao ler o diretório de uploads")
		return
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			logrus.WithError(err).WithField("file", entry.Name()).Warn("Erro ao inspecionar arquivo de upload")
			continue
		}

		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(s.config.UploadDir, entry.Name())
		if err := os.Remove(path); err != nil {
			logrus.WithError(err).WithField("file", path).Error("Erro ao remover arquivo de upload expirado")
			continue
		}
		removed++
	}

	s.lastRunCompletedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"removed":  removed,
		"duration": time.Since(startTime).String(),
	}).Info("Limpeza de uploads concluída")
}

// TriggerManualCleanup dispara manualmente uma limpeza
func (s *UploadCleanupService) TriggerManualCleanup() {
	s.cleanupMutex.Lock()
	if s.cleanupRunning {
		s.cleanupMutex.Unlock()
		logrus.Info("Limpeza de uploads já em andamento, ignorando solicitação manual")
		return
	}
	s.cleanupMutex.Unlock()

	logrus.Info("Iniciando limpeza manual de uploads")
	go s.cleanupUploads()
}

// GetStatus retorna o status atual do agendador
func (s *UploadCleanupService) GetStatus() map[string]any {
	return map[string]any{
		"cleanup_enabled":       s.config.Enabled,
		"cleanup_cron":          s.config.CronSchedule,
		"cleanup_max_age_hours": s.config.MaxAgeHours,
		"upload_dir":            s.config.UploadDir,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
	}
}
