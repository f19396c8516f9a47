package reporting

import (
	"github.com/vfg2006/finance-insight-api/internal/domain"
)

// Reporter é a interface do motor de relatórios financeiros.
type Reporter interface {
	GetFinancialReport(params WindowParams) (*domain.FinancialReport, error)
	GetReportBundle(params WindowParams) (*ReportBundle, error)
	SnapshotForWindow(window domain.TimeWindow) (*domain.AggregateSnapshot, error)
	GetMonthlyReport(period string) (*domain.MonthlyReportEntry, error)
	GetAvailablePeriods() (*domain.AvailablePeriods, error)
}

// ReportBundle agrupa o relatório com a lista de despesas da janela, que o
// motor de insights consome para a análise de estrutura de custos.
type ReportBundle struct {
	Report   *domain.FinancialReport
	Expenses []*domain.ExpenseRecord
}
