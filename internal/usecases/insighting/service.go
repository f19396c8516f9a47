package insighting

import (
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-insight-api/internal/domain"
	"github.com/vfg2006/finance-insight-api/internal/usecases/reporting"
)

type Service struct {
	reportSource ReportSource
}

func NewService(reportSource ReportSource) Insighter {
	return &Service{reportSource: reportSource}
}

// GetFinancialInsights monta o relatório financeiro da janela e roda os
// quatro grupos de regras sobre ele, em ordem fixa: receita, custo,
// tendência e despesas.
func (s *Service) GetFinancialInsights(params reporting.WindowParams) (*InsightResponse, error) {
	bundle, err := s.reportSource.GetReportBundle(params)
	if err != nil {
		logrus.WithError(err).Error("Erro ao montar o relatório para geração de insights")
		return nil, err
	}

	snapshot := bundle.Report.Snapshot

	insights := make([]domain.Insight, 0)
	insights = append(insights, revenueInsights(snapshot, bundle.Report.PreviousRevenue)...)
	insights = append(insights, costInsights(snapshot)...)
	insights = append(insights, trendInsights(snapshot.MonthlyTrend)...)
	insights = append(insights, expenseInsights(snapshot, bundle.Expenses)...)

	return &InsightResponse{
		Report:   bundle.Report,
		Insights: insights,
		Summary:  domain.Summarize(insights),
	}, nil
}
