package insighting

import (
	"fmt"

	"github.com/vfg2006/finance-insight-api/internal/domain"
	"github.com/vfg2006/finance-insight-api/pkg/utils"
)

// Categorias dos insights emitidos por cada grupo de regras.
const (
	categoryRevenue = "revenue"
	categoryProduct = "product"
	categoryCost    = "cost"
	categoryMargin  = "margin"
	categoryTrend   = "trend"
	categoryExpense = "expense"
)

// thresholdRule é uma linha de uma tabela ordenada de classificação: a
// primeira regra cujo predicado casa com o valor produz o insight.
type thresholdRule struct {
	applies  func(value float64) bool
	severity domain.Severity
	title    string
	message  func(value float64) string
}

// anyValue é o predicado da linha final de cada tabela.
func anyValue(float64) bool { return true }

func classify(rules []thresholdRule, category string, value float64) domain.Insight {
	for _, rule := range rules {
		if !rule.applies(value) {
			continue
		}

		return domain.Insight{
			Severity: rule.severity,
			Category: category,
			Title:    rule.title,
			Message:  rule.message(value),
		}
	}

	// Tabelas terminam com uma linha anyValue; nunca chega aqui.
	return domain.Insight{}
}

var growthRules = []thresholdRule{
	{
		applies:  func(growth float64) bool { return growth > 10 },
		severity: domain.SeveritySuccess,
		title:    "營收成長強勁",
		message: func(growth float64) string {
			return fmt.Sprintf("營收較上期成長 %.1f%%，成長動能強勁", growth)
		},
	},
	{
		applies:  func(growth float64) bool { return growth < -5 },
		severity: domain.SeverityWarning,
		title:    "營收下滑警告",
		message: func(growth float64) string {
			return fmt.Sprintf("營收較上期下滑 %.1f%%，建議檢視銷售與定價策略", -growth)
		},
	},
	{
		applies:  anyValue,
		severity: domain.SeverityInfo,
		title:    "營收穩定",
		message: func(growth float64) string {
			return fmt.Sprintf("營收較上期變動 %.1f%%，表現穩定", growth)
		},
	},
}

var cogsShareRules = []thresholdRule{
	{
		applies:  func(share float64) bool { return share > 70 },
		severity: domain.SeverityDanger,
		title:    "銷貨成本過高",
		message: func(share float64) string {
			return fmt.Sprintf("銷貨成本佔營收 %.1f%%，已超過 70%%，毛利空間嚴重受壓", share)
		},
	},
	{
		applies:  func(share float64) bool { return share > 60 },
		severity: domain.SeverityWarning,
		title:    "銷貨成本偏高",
		message: func(share float64) string {
			return fmt.Sprintf("銷貨成本佔營收 %.1f%%，高於 60%% 警戒水準", share)
		},
	},
	{
		applies:  anyValue,
		severity: domain.SeveritySuccess,
		title:    "成本控制良好",
		message: func(share float64) string {
			return fmt.Sprintf("銷貨成本佔營收 %.1f%%，維持在健康範圍", share)
		},
	},
}

var opexShareRules = []thresholdRule{
	{
		applies:  func(share float64) bool { return share > 20 },
		severity: domain.SeverityWarning,
		title:    "營業費用過高",
		message: func(share float64) string {
			return fmt.Sprintf("營業費用佔營收 %.1f%%，超過 20%%，建議檢視費用結構", share)
		},
	},
	{
		applies:  func(share float64) bool { return share > 15 },
		severity: domain.SeverityInfo,
		title:    "營業費用偏高",
		message: func(share float64) string {
			return fmt.Sprintf("營業費用佔營收 %.1f%%，略高於 15%%，值得留意", share)
		},
	},
	{
		applies:  anyValue,
		severity: domain.SeveritySuccess,
		title:    "費用控制良好",
		message: func(share float64) string {
			return fmt.Sprintf("營業費用佔營收 %.1f%%，控制得宜", share)
		},
	},
}

var grossMarginRules = []thresholdRule{
	{
		applies:  func(margin float64) bool { return margin < 20 },
		severity: domain.SeverityDanger,
		title:    "毛利率過低",
		message: func(margin float64) string {
			return fmt.Sprintf("毛利率僅 %.1f%%，低於 20%%，須立即檢討成本與定價", margin)
		},
	},
	{
		applies:  func(margin float64) bool { return margin < 30 },
		severity: domain.SeverityWarning,
		title:    "毛利率偏低",
		message: func(margin float64) string {
			return fmt.Sprintf("毛利率 %.1f%%，低於 30%%，仍有改善空間", margin)
		},
	},
	{
		applies:  anyValue,
		severity: domain.SeveritySuccess,
		title:    "毛利率健康",
		message: func(margin float64) string {
			return fmt.Sprintf("毛利率 %.1f%%，表現良好", margin)
		},
	},
}

var netMarginRules = []thresholdRule{
	{
		applies:  func(margin float64) bool { return margin < 5 },
		severity: domain.SeverityDanger,
		title:    "淨利率過低",
		message: func(margin float64) string {
			return fmt.Sprintf("淨利率僅 %.1f%%，低於 5%%，獲利能力堪憂", margin)
		},
	},
	{
		applies:  func(margin float64) bool { return margin < 10 },
		severity: domain.SeverityWarning,
		title:    "淨利率偏低",
		message: func(margin float64) string {
			return fmt.Sprintf("淨利率 %.1f%%，低於 10%%，建議強化獲利結構", margin)
		},
	},
	{
		applies:  func(margin float64) bool { return margin > 20 },
		severity: domain.SeveritySuccess,
		title:    "獲利能力優異",
		message: func(margin float64) string {
			return fmt.Sprintf("淨利率達 %.1f%%，獲利能力十分出色", margin)
		},
	},
	{
		applies:  anyValue,
		severity: domain.SeveritySuccess,
		title:    "淨利率良好",
		message: func(margin float64) string {
			return fmt.Sprintf("淨利率 %.1f%%，獲利能力穩健", margin)
		},
	},
}

// revenueGrowth calcula a taxa de crescimento em relação ao período anterior.
// Período anterior zerado vale 100% quando há receita corrente, senão 0.
func revenueGrowth(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}

	return (current - previous) / previous * 100
}

// revenueInsights avalia o crescimento da receita e, quando há ranking de
// produtos, a concentração do produto líder.
func revenueInsights(snapshot *domain.AggregateSnapshot, previousRevenue float64) []domain.Insight {
	growth := revenueGrowth(snapshot.Revenue, previousRevenue)

	insight := classify(growthRules, categoryRevenue, growth)
	insight.Metrics = &domain.InsightMetrics{
		Current:       snapshot.Revenue,
		Previous:      previousRevenue,
		Change:        snapshot.Revenue - previousRevenue,
		ChangePercent: utils.RoundWithTwoDecimalPlace(growth),
	}

	insights := []domain.Insight{insight}

	if len(snapshot.TopProducts) > 0 {
		top := snapshot.TopProducts[0]

		var share float64
		if snapshot.Revenue > 0 {
			share = top.Revenue / snapshot.Revenue * 100
		}

		if share > 40 {
			insights = append(insights, domain.Insight{
				Severity: domain.SeverityWarning,
				Category: categoryProduct,
				Title:    "產品集中度過高",
				Message:  fmt.Sprintf("主力產品「%s」佔營收 %.1f%%，超過 40%%，建議分散產品組合", top.Name, share),
			})
		} else {
			insights = append(insights, domain.Insight{
				Severity: domain.SeveritySuccess,
				Category: categoryProduct,
				Title:    "產品組合均衡",
				Message:  fmt.Sprintf("主力產品「%s」佔營收 %.1f%%，集中度在健康範圍", top.Name, share),
			})
		}
	}

	return insights
}

// costInsights roda as quatro verificações independentes de estrutura de
// custo contra a receita da janela.
func costInsights(snapshot *domain.AggregateSnapshot) []domain.Insight {
	var cogsShare, opexShare float64
	if snapshot.Revenue > 0 {
		cogsShare = snapshot.COGS / snapshot.Revenue * 100
		opexShare = snapshot.OperatingExpenses / snapshot.Revenue * 100
	}

	return []domain.Insight{
		classify(cogsShareRules, categoryCost, cogsShare),
		classify(opexShareRules, categoryExpense, opexShare),
		classify(grossMarginRules, categoryMargin, snapshot.GrossMarginPct),
		classify(netMarginRules, categoryMargin, snapshot.NetMarginPct),
	}
}

// trendInsights analisa a série mensal: direção dos últimos três meses e
// meses com prejuízo em toda a série. A verificação de crescimento é
// avaliada primeiro; uma sequência estável satisfaz ambas as condições e
// resolve como crescimento.
func trendInsights(trend []domain.TrendBucket) []domain.Insight {
	insights := make([]domain.Insight, 0)

	if len(trend) >= 2 {
		recent := trend
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}

		if isNonDecreasing(recent) {
			insights = append(insights, domain.Insight{
				Severity: domain.SeveritySuccess,
				Category: categoryTrend,
				Title:    "營收持續成長",
				Message:  fmt.Sprintf("近 %d 個月營收逐月上升，成長動能良好", len(recent)),
			})
		} else if isNonIncreasing(recent) {
			insights = append(insights, domain.Insight{
				Severity: domain.SeverityWarning,
				Category: categoryTrend,
				Title:    "營收連續下滑",
				Message:  fmt.Sprintf("近 %d 個月營收逐月下降，請留意營運狀況", len(recent)),
			})
		}
	}

	lossMonths := 0
	for _, bucket := range trend {
		if bucket.NetProfit < 0 {
			lossMonths++
		}
	}

	if lossMonths > 0 {
		lossShare := float64(lossMonths) / float64(len(trend)) * 100
		insights = append(insights, domain.Insight{
			Severity: domain.SeverityDanger,
			Category: categoryTrend,
			Title:    "出現虧損月份",
			Message:  fmt.Sprintf("統計期間內有 %d 個月出現淨虧損（佔 %.1f%%），請檢視成本結構", lossMonths, lossShare),
		})
	}

	return insights
}

func isNonDecreasing(buckets []domain.TrendBucket) bool {
	for i := 1; i < len(buckets); i++ {
		if buckets[i].Revenue < buckets[i-1].Revenue {
			return false
		}
	}
	return true
}

func isNonIncreasing(buckets []domain.TrendBucket) bool {
	for i := 1; i < len(buckets); i++ {
		if buckets[i].Revenue > buckets[i-1].Revenue {
			return false
		}
	}
	return true
}

// expenseInsights analisa a estrutura de despesas por categoria: aponta a
// maior categoria e alerta quando ela passa de 10% da receita.
func expenseInsights(snapshot *domain.AggregateSnapshot, expenses []*domain.ExpenseRecord) []domain.Insight {
	if len(expenses) == 0 {
		return []domain.Insight{{
			Severity: domain.SeverityInfo,
			Category: categoryExpense,
			Title:    "無費用記錄",
			Message:  "期間內沒有任何費用記錄",
		}}
	}

	totals := make(map[string]float64)
	order := make([]string, 0)

	for _, expense := range expenses {
		label := expense.CategoryLabel()
		if _, exists := totals[label]; !exists {
			order = append(order, label)
		}
		totals[label] += expense.Amount
	}

	// Empate exato mantém a categoria vista primeiro.
	largest := order[0]
	for _, label := range order[1:] {
		if totals[label] > totals[largest] {
			largest = label
		}
	}

	var share float64
	if snapshot.Revenue > 0 {
		share = totals[largest] / snapshot.Revenue * 100
	}

	insights := []domain.Insight{{
		Severity: domain.SeverityInfo,
		Category: categoryExpense,
		Title:    "主要費用類別",
		Message:  fmt.Sprintf("最大費用類別為「%s」，佔營收 %.1f%%", largest, share),
	}}

	if share > 10 {
		insights = append(insights, domain.Insight{
			Severity: domain.SeverityWarning,
			Category: categoryExpense,
			Title:    "費用集中度過高",
			Message:  fmt.Sprintf("費用類別「%s」佔營收 %.1f%%，超過 10%% 警戒線", largest, share),
		})
	}

	return insights
}
