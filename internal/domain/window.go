package domain

import "time"

// Presets de janela de tempo aceitos pelo resolvedor.
const (
	RangeWeek    = "week"
	RangeMonth   = "month"
	RangeQuarter = "quarter"
	RangeYear    = "year"
	RangeTrend   = "trend"
)

// TimeWindow é um intervalo de datas inclusivo. End nulo significa janela
// aberta até "agora" (janelas de preset).
type TimeWindow struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// Contains indica se o instante está dentro da janela.
func (w TimeWindow) Contains(t time.Time) bool {
	if t.Before(w.Start) {
		return false
	}
	if w.End != nil && t.After(*w.End) {
		return false
	}
	return true
}

// Duration retorna a duração da janela. Janelas abertas não têm duração
// definida e retornam zero.
func (w TimeWindow) Duration() time.Duration {
	if w.End == nil {
		return 0
	}
	return w.End.Sub(w.Start)
}

// ResolvedWindow é o resultado do resolvedor: a janela corrente, o preset que
// a originou (vazio para intervalos explícitos) e a janela imediatamente
// anterior de mesma duração, disponível apenas para intervalos explícitos.
type ResolvedWindow struct {
	Window   TimeWindow  `json:"window"`
	Preset   string      `json:"preset,omitempty"`
	Previous *TimeWindow `json:"previous,omitempty"`
}
