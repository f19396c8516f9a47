package insighting

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-insight-api/internal/domain"
	"github.com/vfg2006/finance-insight-api/internal/usecases/reporting"
)

type stubReportSource struct {
	bundle *reporting.ReportBundle
	err    error
}

func (s *stubReportSource) GetReportBundle(reporting.WindowParams) (*reporting.ReportBundle, error) {
	return s.bundle, s.err
}

func TestService_GetFinancialInsights(t *testing.T) {
	t.Run("Gera os quatro grupos de insights na ordem fixa", func(t *testing.T) {
		bundle := &reporting.ReportBundle{
			Report: &domain.FinancialReport{
				Snapshot: &domain.AggregateSnapshot{
					Revenue:           1000,
					COGS:              500,
					OperatingExpenses: 100,
					GrossProfit:       500,
					NetProfit:         400,
					GrossMarginPct:    50,
					NetMarginPct:      40,
					TopProducts: []domain.TopProduct{
						{Name: "SG-100", Quantity: 5, Revenue: 300},
					},
					MonthlyTrend: []domain.TrendBucket{
						{Month: "2025-01", Revenue: 400, NetProfit: 150},
						{Month: "2025-02", Revenue: 600, NetProfit: 250},
					},
				},
				PreviousRevenue: 800,
			},
			Expenses: []*domain.ExpenseRecord{
				{Category: "租金", Amount: 60},
				{Category: "水電", Amount: 40},
			},
		}

		service := NewService(&stubReportSource{bundle: bundle})

		response, err := service.GetFinancialInsights(reporting.WindowParams{Preset: domain.RangeMonth})

		require.NoError(t, err)
		assert.Same(t, bundle.Report, response.Report)

		// receita (crescimento + concentração), custo (4), tendência (1),
		// despesas (1): oito insights no total
		require.Len(t, response.Insights, 8)

		assert.Equal(t, "營收成長強勁", response.Insights[0].Title)
		assert.Equal(t, "產品組合均衡", response.Insights[1].Title)
		assert.Equal(t, "成本控制良好", response.Insights[2].Title)
		assert.Equal(t, "費用控制良好", response.Insights[3].Title)
		assert.Equal(t, "毛利率健康", response.Insights[4].Title)
		assert.Equal(t, "獲利能力優異", response.Insights[5].Title)
		assert.Equal(t, "營收持續成長", response.Insights[6].Title)
		assert.Equal(t, "主要費用類別", response.Insights[7].Title)

		assert.Equal(t, 8, response.Summary.Total)
		assert.Equal(t, 7, response.Summary.SuccessCount)
		assert.Equal(t, 1, response.Summary.InfoCount)
		assert.Equal(t, 0, response.Summary.WarningCount)
		assert.Equal(t, 0, response.Summary.DangerCount)
	})

	t.Run("Falha do relatório propaga o erro sem gerar insights", func(t *testing.T) {
		service := NewService(&stubReportSource{err: reporting.ErrUpstreamFetch})

		response, err := service.GetFinancialInsights(reporting.WindowParams{})

		assert.Nil(t, response)
		assert.True(t, errors.Is(err, reporting.ErrUpstreamFetch))
	})

	t.Run("Resumo contabiliza cada severidade emitida", func(t *testing.T) {
		bundle := &reporting.ReportBundle{
			Report: &domain.FinancialReport{
				Snapshot: &domain.AggregateSnapshot{
					Revenue:           1000,
					COGS:              750,
					OperatingExpenses: 250,
					GrossProfit:       250,
					NetProfit:         0,
					GrossMarginPct:    25,
					NetMarginPct:      0,
				},
				PreviousRevenue: 1200,
			},
		}

		service := NewService(&stubReportSource{bundle: bundle})

		response, err := service.GetFinancialInsights(reporting.WindowParams{})

		require.NoError(t, err)

		// queda de receita (warning), COGS >70% (danger), opex >20%
		// (warning), margens baixas (warning + danger), sem despesas (info)
		assert.Equal(t, 6, response.Summary.Total)
		assert.Equal(t, 3, response.Summary.WarningCount)
		assert.Equal(t, 2, response.Summary.DangerCount)
		assert.Equal(t, 1, response.Summary.InfoCount)
		assert.Equal(t, 0, response.Summary.SuccessCount)
	})
}
