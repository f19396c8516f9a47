package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vfg2006/finance-insight-api/infrastructure/repository"
	"github.com/vfg2006/finance-insight-api/internal/domain"
	"github.com/vfg2006/finance-insight-api/internal/usecases/reporting"
	"github.com/vfg2006/finance-insight-api/pkg/apiErrors"
	"github.com/vfg2006/finance-insight-api/pkg/log"
)

// ListExpenses lista as despesas da janela pedida via query string
func ListExpenses(repo repository.ExpenseRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		resolved, err := reporting.ResolveWindow(windowParamsFromRequest(r), time.Now(), time.Local)
		if err != nil {
			logger.WithError(err).Warn("expenses: invalid window parameters")
			handleReportError(w, err)
			return
		}

		expenses, err := repo.ListByWindow(resolved.Window)
		if err != nil {
			logger.WithError(err).Error("expenses: failed to list records")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar despesas", nil)
			return
		}

		logger.WithFields(log.Fields{
			"start_date": resolved.Window.Start.Format(time.DateOnly),
			"records":    len(expenses),
		}).Info("expenses: records listed")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(expenses); err != nil {
			logger.WithError(err).Error("expenses: failed to encode response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// CreateExpense registra uma nova despesa. Categoria em branco recebe a
// categoria padrão.
func CreateExpense(repo repository.ExpenseRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var expense domain.ExpenseRecord
		if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
			logger.WithError(err).Warn("expenses: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		expense.Category = expense.CategoryLabel()

		if err := repo.Create(&expense); err != nil {
			logger.WithError(err).Error("expenses: failed to create record")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao registrar despesa", nil)
			return
		}

		logger.WithField("expense_id", expense.ID).Info("expenses: record created")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(expense); err != nil {
			logger.WithError(err).Error("expenses: failed to encode response")
		}
	})
}
