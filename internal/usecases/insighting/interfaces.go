package insighting

import (
	"github.com/vfg2006/finance-insight-api/internal/domain"
	"github.com/vfg2006/finance-insight-api/internal/usecases/reporting"
)

// Insighter define a interface do motor de insights financeiros
type Insighter interface {
	// GetFinancialInsights avalia as regras de classificação sobre o relatório
	// da janela e devolve a lista ordenada de insights com o resumo por severidade
	GetFinancialInsights(params reporting.WindowParams) (*InsightResponse, error)
}

// InsightResponse é a resposta completa do motor: o relatório agregado usado
// na avaliação e os insights derivados dele.
type InsightResponse struct {
	Report   *domain.FinancialReport `json:"report"`
	Insights []domain.Insight        `json:"insights"`
	Summary  domain.InsightSummary   `json:"summary"`
}

// ReportSource fornece o relatório agregado que alimenta o motor de insights
type ReportSource interface {
	GetReportBundle(params reporting.WindowParams) (*reporting.ReportBundle, error)
}
