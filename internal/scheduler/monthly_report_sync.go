package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-insight-api/infrastructure/repository"
	"github.com/vfg2006/finance-insight-api/internal/config"
	"github.com/vfg2006/finance-insight-api/internal/domain"
	"github.com/vfg2006/finance-insight-api/internal/usecases/reporting"
	"github.com/vfg2006/finance-insight-api/pkg/utils"
)

// MonthlyReportSyncConfig representa a configuração do agendador de consolidação mensal
type MonthlyReportSyncConfig struct {
	CronSchedule  string
	SyncEnabled   bool
	MonthLookback int
}

// MonthlyReportSyncService gerencia o agendamento e execução da consolidação
// mensal de relatórios financeiros
type MonthlyReportSyncService struct {
	scheduler           *gocron.Scheduler
	config              MonthlyReportSyncConfig
	reportService       reporting.Reporter
	snapshotRepo        repository.ReportSnapshotRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewMonthlyReportSyncService cria uma nova instância do serviço de consolidação mensal
func NewMonthlyReportSyncService(
	reportService reporting.Reporter,
	snapshotRepo repository.ReportSnapshotRepository,
	appConfig *config.Config,
) *MonthlyReportSyncService {
	// Criar a configuração com base na config global
	syncConfig := MonthlyReportSyncConfig{
		CronSchedule:  appConfig.MonthlyReportSync.CronSchedule,
		SyncEnabled:   appConfig.MonthlyReportSync.Enabled,
		MonthLookback: appConfig.MonthlyReportSync.MonthLookback,
	}

	// Criar o agendador
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  syncConfig.CronSchedule,
		"sync_enabled":   syncConfig.SyncEnabled,
		"month_lookback": syncConfig.MonthLookback,
	}).Info("Configuração do agendador de consolidação mensal carregada")

	return &MonthlyReportSyncService{
		scheduler:     scheduler,
		config:        syncConfig,
		reportService: reportService,
		snapshotRepo:  snapshotRepo,
		syncRunning:   false,
	}
}

// Start inicia o agendador
func (s *MonthlyReportSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Consolidação mensal de relatórios desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de consolidação mensal de relatórios")

	// Agendar a consolidação
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncMonthlyReports()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar consolidação mensal de relatórios: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de consolidação mensal de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// syncMonthlyReports consolida e persiste um snapshot por mês fechado,
// retrocedendo MonthLookback meses a partir do mês anterior ao atual
func (s *MonthlyReportSyncService) syncMonthlyReports() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Consolidação mensal de relatórios já em andamento, ignorando")
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

	logrus.Info("Iniciando consolidação mensal de relatórios financeiros")

	synced := 0
	for i := 1; i <= s.config.MonthLookback; i++ {
		now := time.Now()
		month := now.AddDate(0, -i, 0)

		if err := s.consolidateMonth(month); err != nil {
			logrus.WithError(err).WithField("month", month.Format("01-2006")).
				Error("Erro ao consolidar relatório mensal")
			continue
		}
		synced++
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"months":   synced,
	}).Info("Consolidação mensal de relatórios concluída")

	s.lastSyncCompletedAt = time.Now()
}

// consolidateMonth monta o snapshot do mês de referência e grava no banco
func (s *MonthlyReportSyncService) consolidateMonth(month time.Time) error {
	firstDayOfMonth := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	lastDayOfMonth := time.Date(month.Year(), month.Month()+1, 1, 0, 0, 0, 0, month.Location()).AddDate(0, 0, -1)
	endOfMonth := utils.EndOfDay(lastDayOfMonth)

	logrus.WithFields(logrus.Fields{
		"start_date": firstDayOfMonth.Format(time.DateOnly),
		"end_date":   lastDayOfMonth.Format(time.DateOnly),
	}).Info("Período para consolidação mensal de relatórios")

	window := domain.TimeWindow{
		Start: firstDayOfMonth,
		End:   &endOfMonth,
	}

	snapshot, err := s.reportService.SnapshotForWindow(window)
	if err != nil {
		return fmt.Errorf("erro ao montar snapshot do mês: %w", err)
	}

	period := fmt.Sprintf("%02d-%04d", int(firstDayOfMonth.Month()), firstDayOfMonth.Year())

	entry := &domain.MonthlyReportEntry{
		Period:   period,
		Snapshot: snapshot,
	}

	if err := s.snapshotRepo.SaveOrUpdate(entry); err != nil {
		return fmt.Errorf("erro ao salvar snapshot mensal: %w", err)
	}

	logrus.WithField("period", period).Info("Snapshot mensal salvo com sucesso")

	return nil
}

// TriggerManualSync inicia manualmente uma consolidação mensal
func (s *MonthlyReportSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Consolidação mensal já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando consolidação manual de relatórios mensais")
	go s.syncMonthlyReports()
}

// GetStatus retorna o status atual da consolidação
func (s *MonthlyReportSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"month_lookback":         s.config.MonthLookback,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
