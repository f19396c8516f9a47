package reporting

import (
	"fmt"
	"time"

	"github.com/vfg2006/finance-insight-api/internal/domain"
	"github.com/vfg2006/finance-insight-api/pkg/utils"
)

// WindowParams são os parâmetros crus de uma requisição de relatório: um
// preset nomeado ou um par explícito de datas ISO (YYYY-MM-DD).
type WindowParams struct {
	Preset    string
	StartDate string
	EndDate   string
}

// ResolveWindow converte os parâmetros em uma janela concreta de datas.
//
// Um par explícito de datas produz uma janela de dia inteiro inclusivo
// (00:00:00.000 até 23:59:59.999 no fuso de referência) e a janela
// imediatamente anterior de mesma duração. Datas malformadas ou intervalo
// invertido falham com ErrInvalidWindow; nunca há fallback silencioso.
//
// Um preset produz uma janela aberta terminando em "agora", sem janela
// anterior. Preset desconhecido ou vazio resolve para o padrão mensal.
func ResolveWindow(params WindowParams, now time.Time, loc *time.Location) (*domain.ResolvedWindow, error) {
	if params.StartDate != "" || params.EndDate != "" {
		return resolveExplicit(params.StartDate, params.EndDate, loc)
	}

	return resolvePreset(params.Preset, now), nil
}

func resolveExplicit(startStr, endStr string, loc *time.Location) (*domain.ResolvedWindow, error) {
	if startStr == "" || endStr == "" {
		return nil, fmt.Errorf("%w: é necessário informar as datas de início e fim", ErrInvalidWindow)
	}

	startDay, err := time.ParseInLocation("2006-01-02", startStr, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: data de início malformada %q", ErrInvalidWindow, startStr)
	}

	endDay, err := time.ParseInLocation("2006-01-02", endStr, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: data de fim malformada %q", ErrInvalidWindow, endStr)
	}

	start := utils.StartOfDay(startDay)
	end := utils.EndOfDay(endDay)

	if end.Before(start) {
		return nil, fmt.Errorf("%w: a data de início não pode ser posterior à data de fim", ErrInvalidWindow)
	}

	// Janela anterior: mesma duração, terminando no instante imediatamente
	// anterior ao início da janela corrente.
	duration := end.Sub(start)
	prevStart := start.Add(-duration)
	prevEnd := start.Add(-time.Millisecond)
	previous := &domain.TimeWindow{Start: prevStart, End: &prevEnd}

	return &domain.ResolvedWindow{
		Window:   domain.TimeWindow{Start: start, End: &end},
		Previous: previous,
	}, nil
}

func resolvePreset(preset string, now time.Time) *domain.ResolvedWindow {
	var start time.Time

	switch preset {
	case domain.RangeWeek:
		start = now.AddDate(0, 0, -7)
	case domain.RangeQuarter:
		start = now.AddDate(0, -3, 0)
	case domain.RangeYear:
		start = now.AddDate(-1, 0, 0)
	case domain.RangeTrend:
		start = now.AddDate(0, -12, 0)
	case domain.RangeMonth:
		start = now.AddDate(0, -1, 0)
	default:
		// Preset desconhecido ou ausente resolve para o padrão mensal.
		preset = domain.RangeMonth
		start = now.AddDate(0, -1, 0)
	}

	return &domain.ResolvedWindow{
		Window: domain.TimeWindow{Start: start},
		Preset: preset,
	}
}
