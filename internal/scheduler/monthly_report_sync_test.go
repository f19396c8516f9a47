package scheduler

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-insight-api/infrastructure/repository/mocks"
	"github.com/vfg2006/finance-insight-api/internal/config"
	"github.com/vfg2006/finance-insight-api/internal/domain"
	"github.com/vfg2006/finance-insight-api/internal/usecases/reporting"
	"go.uber.org/mock/gomock"
)

type stubReporter struct {
	snapshot    *domain.AggregateSnapshot
	err         error
	lastWindow  domain.TimeWindow
	invocations int
}

func (s *stubReporter) GetFinancialReport(reporting.WindowParams) (*domain.FinancialReport, error) {
	return nil, nil
}

func (s *stubReporter) GetReportBundle(reporting.WindowParams) (*reporting.ReportBundle, error) {
	return nil, nil
}

func (s *stubReporter) SnapshotForWindow(window domain.TimeWindow) (*domain.AggregateSnapshot, error) {
	s.lastWindow = window
	s.invocations++
	return s.snapshot, s.err
}

func (s *stubReporter) GetMonthlyReport(string) (*domain.MonthlyReportEntry, error) {
	return nil, nil
}

func (s *stubReporter) GetAvailablePeriods() (*domain.AvailablePeriods, error) {
	return nil, nil
}

func newSyncService(
	reporter reporting.Reporter,
	snapshotRepo *mocks.MockReportSnapshotRepository,
) *MonthlyReportSyncService {
	cfg := &config.Config{}
	cfg.MonthlyReportSync.CronSchedule = "0 5 1 * *"
	cfg.MonthlyReportSync.Enabled = true
	cfg.MonthlyReportSync.MonthLookback = 1

	return NewMonthlyReportSyncService(reporter, snapshotRepo, cfg)
}

func TestConsolidateMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Consolida o mês de referência com período no formato mm-yyyy", func(t *testing.T) {
		snapshot := &domain.AggregateSnapshot{Revenue: 1500, NetProfit: 300}
		reporter := &stubReporter{snapshot: snapshot}
		snapshotRepo := mocks.NewMockReportSnapshotRepository(ctrl)

		var saved *domain.MonthlyReportEntry
		snapshotRepo.EXPECT().SaveOrUpdate(gomock.Any()).DoAndReturn(
			func(entry *domain.MonthlyReportEntry) error {
				saved = entry
				return nil
			},
		)

		service := newSyncService(reporter, snapshotRepo)

		err := service.consolidateMonth(time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		// Janela do mês-calendário completo, do primeiro ao último dia
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), reporter.lastWindow.Start)
		require.NotNil(t, reporter.lastWindow.End)
		assert.Equal(t, 31, reporter.lastWindow.End.Day())
		assert.Equal(t, time.March, reporter.lastWindow.End.Month())
		assert.Equal(t, 23, reporter.lastWindow.End.Hour())

		require.NotNil(t, saved)
		assert.Equal(t, "03-2025", saved.Period)
		assert.Same(t, snapshot, saved.Snapshot)
	})

	t.Run("Fevereiro fecha no dia correto mesmo em ano não bissexto", func(t *testing.T) {
		reporter := &stubReporter{snapshot: &domain.AggregateSnapshot{}}
		snapshotRepo := mocks.NewMockReportSnapshotRepository(ctrl)
		snapshotRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)

		service := newSyncService(reporter, snapshotRepo)

		err := service.consolidateMonth(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		require.NotNil(t, reporter.lastWindow.End)
		assert.Equal(t, 28, reporter.lastWindow.End.Day())
	})

	t.Run("Falha na montagem do snapshot não grava nada", func(t *testing.T) {
		reporter := &stubReporter{err: errors.New("falha na agregação")}
		snapshotRepo := mocks.NewMockReportSnapshotRepository(ctrl)

		service := newSyncService(reporter, snapshotRepo)

		err := service.consolidateMonth(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
		assert.Error(t, err)
	})

	t.Run("Falha de persistência retorna erro", func(t *testing.T) {
		reporter := &stubReporter{snapshot: &domain.AggregateSnapshot{}}
		snapshotRepo := mocks.NewMockReportSnapshotRepository(ctrl)
		snapshotRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(errors.New("banco indisponível"))

		service := newSyncService(reporter, snapshotRepo)

		err := service.consolidateMonth(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
		assert.Error(t, err)
	})
}

func TestSyncMonthlyReports(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("Retrocede a quantidade configurada de meses", func(t *testing.T) {
		reporter := &stubReporter{snapshot: &domain.AggregateSnapshot{}}
		snapshotRepo := mocks.NewMockReportSnapshotRepository(ctrl)
		snapshotRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil).Times(3)

		service := newSyncService(reporter, snapshotRepo)
		service.config.MonthLookback = 3

		service.syncMonthlyReports()

		assert.Equal(t, 3, reporter.invocations)
		assert.False(t, service.GetStatus()["sync_running"].(bool))
	})

	t.Run("Falha em um mês não interrompe os demais", func(t *testing.T) {
		reporter := &stubReporter{err: errors.New("falha na agregação")}
		snapshotRepo := mocks.NewMockReportSnapshotRepository(ctrl)

		service := newSyncService(reporter, snapshotRepo)
		service.config.MonthLookback = 2

		service.syncMonthlyReports()

		assert.Equal(t, 2, reporter.invocations)
	})
}

func TestGetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := &stubReporter{}
	snapshotRepo := mocks.NewMockReportSnapshotRepository(ctrl)

	service := newSyncService(reporter, snapshotRepo)

	status := service.GetStatus()

	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, "0 5 1 * *", status["sync_cron"])
	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, 1, status["month_lookback"])
}
