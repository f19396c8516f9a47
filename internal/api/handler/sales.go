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

// ListSales lista as vendas da janela pedida via query string
func ListSales(repo repository.SaleRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		resolved, err := reporting.ResolveWindow(windowParamsFromRequest(r), time.Now(), time.Local)
		if err != nil {
			logger.WithError(err).Warn("sales: invalid window parameters")
			handleReportError(w, err)
			return
		}

		sales, err := repo.ListByWindow(resolved.Window)
		if err != nil {
			logger.WithError(err).Error("sales: failed to list records")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar vendas", nil)
			return
		}

		logger.WithFields(log.Fields{
			"start_date": resolved.Window.Start.Format(time.DateOnly),
			"records":    len(sales),
		}).Info("sales: records listed")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(sales); err != nil {
			logger.WithError(err).Error("sales: failed to encode response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// CreateSale registra uma nova venda
func CreateSale(repo repository.SaleRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var sale domain.SaleRecord
		if err := json.NewDecoder(r.Body).Decode(&sale); err != nil {
			logger.WithError(err).Warn("sales: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if sale.Quantity < 0 || sale.UnitPrice < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Quantidade e preço unitário não podem ser negativos", nil)
			return
		}

		if err := repo.Create(&sale); err != nil {
			logger.WithError(err).Error("sales: failed to create record")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao registrar venda", nil)
			return
		}

		logger.WithField("sale_id", sale.ID).Info("sales: record created")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(sale); err != nil {
			logger.WithError(err).Error("sales: failed to encode response")
		}
	})
}
