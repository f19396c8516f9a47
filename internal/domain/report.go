package domain

import "time"

// TopProduct é uma posição do ranking de produtos por receita.
type TopProduct struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// TrendBucket é o agregado de um mês-calendário dentro da série de tendência.
// Month usa o formato YYYY-MM, o que torna a ordenação lexicográfica válida.
type TrendBucket struct {
	Month             string  `json:"month"`
	Revenue           float64 `json:"revenue"`
	COGS              float64 `json:"cogs"`
	OperatingExpenses float64 `json:"operating_expenses"`
	GrossProfit       float64 `json:"gross_profit"`
	NetProfit         float64 `json:"net_profit"`
}

// AggregateSnapshot reúne os indicadores financeiros de uma janela.
// Invariantes: GrossProfit = Revenue - COGS; NetProfit = GrossProfit -
// OperatingExpenses; margens valem 0 quando Revenue = 0.
type AggregateSnapshot struct {
	Revenue           float64       `json:"revenue"`
	COGS              float64       `json:"cogs"`
	OperatingExpenses float64       `json:"operating_expenses"`
	GrossProfit       float64       `json:"gross_profit"`
	NetProfit         float64       `json:"net_profit"`
	GrossMarginPct    float64       `json:"gross_margin_pct"`
	NetMarginPct      float64       `json:"net_margin_pct"`
	ProductCount      int           `json:"product_count"`
	TopProducts       []TopProduct  `json:"top_products"`
	MonthlyTrend      []TrendBucket `json:"monthly_trend"`
}

// FinancialReport é a resposta do relatório financeiro: o snapshot agregado
// mais a janela resolvida e a receita do período anterior usada na comparação.
type FinancialReport struct {
	Window          *ResolvedWindow    `json:"window"`
	Snapshot        *AggregateSnapshot `json:"snapshot"`
	PreviousRevenue float64            `json:"previous_revenue"`
}

// MonthlyReportEntry é um snapshot mensal pré-calculado pelo agendador e
// armazenado no banco. Period usa o formato mm-yyyy.
type MonthlyReportEntry struct {
	ID        int64              `json:"id"`
	Period    string             `json:"period"`
	Snapshot  *AggregateSnapshot `json:"snapshot"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// AvailablePeriods lista os períodos mensais já consolidados, agrupados por
// ano para facilitar a montagem de seletores no frontend.
type AvailablePeriods struct {
	Periods []string            `json:"periods"`
	Years   []string            `json:"years"`
	Months  map[string][]string `json:"months"`
}
