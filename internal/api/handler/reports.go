package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/finance-insight-api/internal/usecases/insighting"
	"github.com/vfg2006/finance-insight-api/internal/usecases/reporting"
	"github.com/vfg2006/finance-insight-api/pkg/apiErrors"
	"github.com/vfg2006/finance-insight-api/pkg/log"
)

// windowParamsFromRequest extrai os parâmetros de janela da query string.
// range carrega o preset; start_date e end_date, quando presentes, têm
// precedência e definem uma janela explícita.
func windowParamsFromRequest(r *http.Request) reporting.WindowParams {
	query := r.URL.Query()

	return reporting.WindowParams{
		Preset:    query.Get("range"),
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
	}
}

// handleReportError traduz os erros do motor de relatórios para a resposta
// padronizada da API.
func handleReportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reporting.ErrInvalidWindow):
		apiErrors.WriteError(w, apiErrors.ErrInvalidWindow, err.Error(), nil)

	case errors.Is(err, reporting.ErrUpstreamFetch):
		apiErrors.WriteError(w, apiErrors.ErrUpstreamFetch, "Erro ao carregar registros para o relatório", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao montar o relatório", nil)
	}
}

// GetFinancialReport monta o relatório financeiro agregado da janela pedida
func GetFinancialReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		params := windowParamsFromRequest(r)

		logger.WithFields(log.Fields{
			"range":      params.Preset,
			"start_date": params.StartDate,
			"end_date":   params.EndDate,
		}).Info("reports: fetching financial report")

		report, err := service.GetFinancialReport(params)
		if err != nil {
			logger.WithError(err).Error("reports: failed to build financial report")
			handleReportError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("reports: failed to encode response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// GetFinancialInsights monta o relatório e a análise de insights da janela
func GetFinancialInsights(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		params := windowParamsFromRequest(r)

		logger.WithFields(log.Fields{
			"range":      params.Preset,
			"start_date": params.StartDate,
			"end_date":   params.EndDate,
		}).Info("insights: generating financial insights")

		response, err := service.GetFinancialInsights(params)
		if err != nil {
			logger.WithError(err).Error("insights: failed to generate insights")
			handleReportError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"insights": response.Summary.Total,
			"danger":   response.Summary.DangerCount,
			"warning":  response.Summary.WarningCount,
		}).Info("insights: analysis completed")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("insights: failed to encode response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}
