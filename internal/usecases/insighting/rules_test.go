package insighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-insight-api/internal/domain"
)

func TestRevenueGrowth(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		expected float64
	}{
		{
			name:     "Crescimento positivo simples",
			current:  1100,
			previous: 1000,
			expected: 10,
		},
		{
			name:     "Queda em relação ao período anterior",
			current:  800,
			previous: 1000,
			expected: -20,
		},
		{
			name:     "Período anterior zerado com receita vale 100%",
			current:  500,
			previous: 0,
			expected: 100,
		},
		{
			name:     "Período anterior zerado sem receita vale 0%",
			current:  0,
			previous: 0,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, revenueGrowth(tt.current, tt.previous))
		})
	}
}

func TestRevenueInsights(t *testing.T) {
	t.Run("Crescimento acima de 10% emite sucesso com métricas", func(t *testing.T) {
		snapshot := &domain.AggregateSnapshot{Revenue: 1200}

		insights := revenueInsights(snapshot, 1000)

		require.NotEmpty(t, insights)
		assert.Equal(t, domain.SeveritySuccess, insights[0].Severity)
		assert.Equal(t, "營收成長強勁", insights[0].Title)

		require.NotNil(t, insights[0].Metrics)
		assert.Equal(t, 1200.0, insights[0].Metrics.Current)
		assert.Equal(t, 1000.0, insights[0].Metrics.Previous)
		assert.Equal(t, 200.0, insights[0].Metrics.Change)
		assert.Equal(t, 20.0, insights[0].Metrics.ChangePercent)
	})

	t.Run("Período anterior zerado com receita classifica como crescimento de 100%", func(t *testing.T) {
		snapshot := &domain.AggregateSnapshot{Revenue: 500}

		insights := revenueInsights(snapshot, 0)

		assert.Equal(t, domain.SeveritySuccess, insights[0].Severity)
		assert.Equal(t, 100.0, insights[0].Metrics.ChangePercent)
	})

	t.Run("Queda acima de 5% emite alerta", func(t *testing.T) {
		snapshot := &domain.AggregateSnapshot{Revenue: 900}

		insights := revenueInsights(snapshot, 1000)

		assert.Equal(t, domain.SeverityWarning, insights[0].Severity)
		assert.Equal(t, "營收下滑警告", insights[0].Title)
	})

	t.Run("Variação pequena emite informativo de estabilidade", func(t *testing.T) {
		snapshot := &domain.AggregateSnapshot{Revenue: 1020}

		insights := revenueInsights(snapshot, 1000)

		assert.Equal(t, domain.SeverityInfo, insights[0].Severity)
		assert.Equal(t, "營收穩定", insights[0].Title)
	})

	t.Run("Produto líder acima de 40% da receita emite alerta de concentração", func(t *testing.T) {
		snapshot := &domain.AggregateSnapshot{
			Revenue: 1000,
			TopProducts: []domain.TopProduct{
				{Name: "SG-100", Revenue: 450},
				{Name: "SG-200", Revenue: 300},
			},
		}

		insights := revenueInsights(snapshot, 1000)

		require.Len(t, insights, 2)
		assert.Equal(t, domain.SeverityWarning, insights[1].Severity)
		assert.Equal(t, "產品集中度過高", insights[1].Title)
		assert.Contains(t, insights[1].Message, "SG-100")
	})

	t.Run("Concentração saudável emite sucesso", func(t *testing.T) {
		snapshot := &domain.AggregateSnapshot{
			Revenue: 1000,
			TopProducts: []domain.TopProduct{
				{Name: "SG-100", Revenue: 250},
			},
		}

		insights := revenueInsights(snapshot, 1000)

		require.Len(t, insights, 2)
		assert.Equal(t, domain.SeveritySuccess, insights[1].Severity)
		assert.Equal(t, "產品組合均衡", insights[1].Title)
	})

	t.Run("Sem ranking de produtos não há insight de concentração", func(t *testing.T) {
		snapshot := &domain.AggregateSnapshot{Revenue: 1000}

		insights := revenueInsights(snapshot, 1000)

		assert.Len(t, insights, 1)
	})
}

func TestCostInsights(t *testing.T) {
	tests := []struct {
		name               string
		snapshot           *domain.AggregateSnapshot
		expectedSeverities []domain.Severity
		expectedTitles     []string
	}{
		{
			name: "Custo de venda acima de 70% é crítico",
			snapshot: &domain.AggregateSnapshot{
				Revenue:        1000,
				COGS:           750,
				GrossMarginPct: 25,
				NetMarginPct:   15,
			},
			expectedSeverities: []domain.Severity{
				domain.SeverityDanger,
				domain.SeveritySuccess,
				domain.SeverityWarning,
				domain.SeveritySuccess,
			},
			expectedTitles: []string{"銷貨成本過高", "費用控制良好", "毛利率偏低", "淨利率良好"},
		},
		{
			name: "Estrutura saudável emite quatro sucessos",
			snapshot: &domain.AggregateSnapshot{
				Revenue:           1000,
				COGS:              500,
				OperatingExpenses: 100,
				GrossMarginPct:    50,
				NetMarginPct:      40,
			},
			expectedSeverities: []domain.Severity{
				domain.SeveritySuccess,
				domain.SeveritySuccess,
				domain.SeveritySuccess,
				domain.SeveritySuccess,
			},
			expectedTitles: []string{"成本控制良好", "費用控制良好", "毛利率健康", "獲利能力優異"},
		},
		{
			name: "Margens baixas disparam os dois alertas críticos",
			snapshot: &domain.AggregateSnapshot{
				Revenue:           1000,
				COGS:              650,
				OperatingExpenses: 180,
				GrossMarginPct:    15,
				NetMarginPct:      3,
			},
			expectedSeverities: []domain.Severity{
				domain.SeverityWarning,
				domain.SeverityInfo,
				domain.SeverityDanger,
				domain.SeverityDanger,
			},
			expectedTitles: []string{"銷貨成本偏高", "營業費用偏高", "毛利率過低", "淨利率過低"},
		},
		{
			name:     "Receita zerada trata as participações como zero",
			snapshot: &domain.AggregateSnapshot{},
			expectedSeverities: []domain.Severity{
				domain.SeveritySuccess,
				domain.SeveritySuccess,
				domain.SeverityDanger,
				domain.SeverityDanger,
			},
			expectedTitles: []string{"成本控制良好", "費用控制良好", "毛利率過低", "淨利率過低"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights := costInsights(tt.snapshot)

			require.Len(t, insights, 4)
			for i := range insights {
				assert.Equal(t, tt.expectedSeverities[i], insights[i].Severity)
				assert.Equal(t, tt.expectedTitles[i], insights[i].Title)
			}
		})
	}
}

func TestTrendInsights(t *testing.T) {
	t.Run("Série com menos de dois meses não avalia direção", func(t *testing.T) {
		trend := []domain.TrendBucket{{Month: "2025-01", Revenue: 100, NetProfit: 10}}

		assert.Empty(t, trendInsights(trend))
	})

	t.Run("Três meses em alta emitem sucesso", func(t *testing.T) {
		trend := []domain.TrendBucket{
			{Month: "2025-01", Revenue: 100, NetProfit: 10},
			{Month: "2025-02", Revenue: 150, NetProfit: 20},
			{Month: "2025-03", Revenue: 200, NetProfit: 30},
		}

		insights := trendInsights(trend)

		require.Len(t, insights, 1)
		assert.Equal(t, domain.SeveritySuccess, insights[0].Severity)
		assert.Equal(t, "營收持續成長", insights[0].Title)
	})

	t.Run("Série estável resolve como crescimento", func(t *testing.T) {
		trend := []domain.TrendBucket{
			{Month: "2025-01", Revenue: 100, NetProfit: 10},
			{Month: "2025-02", Revenue: 100, NetProfit: 10},
			{Month: "2025-03", Revenue: 100, NetProfit: 10},
		}

		insights := trendInsights(trend)

		require.Len(t, insights, 1)
		assert.Equal(t, "營收持續成長", insights[0].Title)
	})

	t.Run("Três meses em queda emitem alerta", func(t *testing.T) {
		trend := []domain.TrendBucket{
			{Month: "2025-01", Revenue: 300, NetProfit: 30},
			{Month: "2025-02", Revenue: 200, NetProfit: 20},
			{Month: "2025-03", Revenue: 100, NetProfit: 10},
		}

		insights := trendInsights(trend)

		require.Len(t, insights, 1)
		assert.Equal(t, domain.SeverityWarning, insights[0].Severity)
		assert.Equal(t, "營收連續下滑", insights[0].Title)
	})

	t.Run("Apenas os três últimos meses contam para a direção", func(t *testing.T) {
		trend := []domain.TrendBucket{
			{Month: "2025-01", Revenue: 900, NetProfit: 90},
			{Month: "2025-02", Revenue: 100, NetProfit: 10},
			{Month: "2025-03", Revenue: 150, NetProfit: 15},
			{Month: "2025-04", Revenue: 200, NetProfit: 20},
		}

		insights := trendInsights(trend)

		require.Len(t, insights, 1)
		assert.Equal(t, "營收持續成長", insights[0].Title)
	})

	t.Run("Meses com prejuízo emitem alerta crítico sobre toda a série", func(t *testing.T) {
		trend := []domain.TrendBucket{
			{Month: "2025-01", Revenue: 100, NetProfit: -10},
			{Month: "2025-02", Revenue: 150, NetProfit: 20},
			{Month: "2025-03", Revenue: 200, NetProfit: -5},
			{Month: "2025-04", Revenue: 250, NetProfit: 30},
		}

		insights := trendInsights(trend)

		require.Len(t, insights, 2)
		assert.Equal(t, domain.SeverityDanger, insights[1].Severity)
		assert.Equal(t, "出現虧損月份", insights[1].Title)
		assert.Contains(t, insights[1].Message, "2 個月")
		assert.Contains(t, insights[1].Message, "50.0%")
	})
}

func TestExpenseInsights(t *testing.T) {
	t.Run("Sem despesas emite informativo de ausência", func(t *testing.T) {
		snapshot := &domain.AggregateSnapshot{Revenue: 1000}

		insights := expenseInsights(snapshot, nil)

		require.Len(t, insights, 1)
		assert.Equal(t, domain.SeverityInfo, insights[0].Severity)
		assert.Equal(t, "無費用記錄", insights[0].Title)
	})

	t.Run("Aponta a maior categoria dentro do limite saudável", func(t *testing.T) {
		snapshot := &domain.AggregateSnapshot{Revenue: 1000}
		expenses := []*domain.ExpenseRecord{
			{Category: "租金", Amount: 80},
			{Category: "水電", Amount: 15},
		}

		insights := expenseInsights(snapshot, expenses)

		require.Len(t, insights, 1)
		assert.Equal(t, "主要費用類別", insights[0].Title)
		assert.Contains(t, insights[0].Message, "租金")
	})

	t.Run("Categoria acima de 10% da receita emite alerta de concentração", func(t *testing.T) {
		snapshot := &domain.AggregateSnapshot{Revenue: 1000}
		expenses := []*domain.ExpenseRecord{
			{Category: "租金", Amount: 150},
			{Category: "水電", Amount: 30},
		}

		insights := expenseInsights(snapshot, expenses)

		require.Len(t, insights, 2)
		assert.Equal(t, domain.SeverityWarning, insights[1].Severity)
		assert.Equal(t, "費用集中度過高", insights[1].Title)
		assert.Contains(t, insights[1].Message, "租金")
	})

	t.Run("Despesa sem categoria cai no rótulo padrão", func(t *testing.T) {
		snapshot := &domain.AggregateSnapshot{Revenue: 1000}
		expenses := []*domain.ExpenseRecord{
			{Category: "", Amount: 50},
		}

		insights := expenseInsights(snapshot, expenses)

		require.Len(t, insights, 1)
		assert.Contains(t, insights[0].Message, domain.DefaultExpenseCategory)
	})

	t.Run("Empate exato mantém a categoria vista primeiro", func(t *testing.T) {
		snapshot := &domain.AggregateSnapshot{Revenue: 10000}
		expenses := []*domain.ExpenseRecord{
			{Category: "水電", Amount: 100},
			{Category: "租金", Amount: 100},
		}

		insights := expenseInsights(snapshot, expenses)

		require.Len(t, insights, 1)
		assert.Contains(t, insights[0].Message, "水電")
	})
}
