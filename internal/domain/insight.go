package domain

// Severity classifica um insight financeiro.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityDanger  Severity = "danger"
)

// InsightMetrics é o conjunto opcional de métricas que acompanha um insight,
// usado principalmente na comparação de receita entre períodos.
type InsightMetrics struct {
	Current       float64 `json:"current"`
	Previous      float64 `json:"previous"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// Insight é uma afirmação classificada sobre uma métrica financeira. Insights
// são imutáveis, construídos a cada requisição e nunca persistidos.
type Insight struct {
	Severity Severity        `json:"severity"`
	Category string          `json:"category"`
	Title    string          `json:"title"`
	Message  string          `json:"message"`
	Metrics  *InsightMetrics `json:"metrics,omitempty"`
}

// InsightSummary contabiliza os insights emitidos por severidade.
type InsightSummary struct {
	Total        int `json:"total"`
	SuccessCount int `json:"success_count"`
	WarningCount int `json:"warning_count"`
	DangerCount  int `json:"danger_count"`
	InfoCount    int `json:"info_count"`
}

// Summarize reconta o resumo a partir da lista de insights.
func Summarize(insights []Insight) InsightSummary {
	summary := InsightSummary{Total: len(insights)}

	for _, insight := range insights {
		switch insight.Severity {
		case SeveritySuccess:
			summary.SuccessCount++
		case SeverityWarning:
			summary.WarningCount++
		case SeverityDanger:
			summary.DangerCount++
		case SeverityInfo:
			summary.InfoCount++
		}
	}

	return summary
}
