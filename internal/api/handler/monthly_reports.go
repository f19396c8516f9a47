package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vfg2006/finance-insight-api/internal/usecases/reporting"
	"github.com/vfg2006/finance-insight-api/pkg/apiErrors"
	"github.com/vfg2006/finance-insight-api/pkg/log"
)

// GetMonthlyReport retorna o snapshot mensal consolidado de um período específico
func GetMonthlyReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		// Obter parâmetros de consulta
		month := r.URL.Query().Get("month")
		year := r.URL.Query().Get("year")

		if month == "" || year == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "É necessário informar mês e ano nos parâmetros", nil)
			return
		}

		// Validar mês (entre 01 e 12)
		if len(month) != 2 || month < "01" || month > "12" {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Mês inválido. Use formato de dois dígitos (01-12)", nil)
			return
		}

		// Validar ano (4 dígitos)
		if len(year) != 4 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Ano inválido. Use formato de quatro dígitos (ex: 2025)", nil)
			return
		}

		// Formar o período no formato esperado mm-yyyy
		period := fmt.Sprintf("%s-%s", month, year)

		logger.WithFields(log.Fields{
			"month":  month,
			"year":   year,
			"period": period,
		}).Info("monthly-reports: buscando snapshot mensal consolidado")

		entry, err := service.GetMonthlyReport(period)
		if err != nil {
			logger.WithError(err).WithField("period", period).
				Error("monthly-reports: erro ao buscar snapshot mensal")
			handleReportError(w, err)
			return
		}

		if entry == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Período ainda não consolidado", map[string]any{
				"period": period,
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entry); err != nil {
			logger.WithError(err).Error("monthly-reports: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// GetAvailablePeriods retorna os períodos (meses e anos) já consolidados
func GetAvailablePeriods(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("report-periods: buscando períodos disponíveis")

		availablePeriods, err := service.GetAvailablePeriods()
		if err != nil {
			logger.WithError(err).Error("report-periods: erro ao buscar períodos disponíveis")
			handleReportError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"total_periods": len(availablePeriods.Periods),
			"years":         availablePeriods.Years,
		}).Info("report-periods: períodos disponíveis recuperados com sucesso")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(availablePeriods); err != nil {
			logger.WithError(err).Error("report-periods: erro ao codificar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}
