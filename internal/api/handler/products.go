package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/finance-insight-api/infrastructure/repository"
	"github.com/vfg2006/finance-insight-api/internal/domain"
	"github.com/vfg2006/finance-insight-api/pkg/apiErrors"
	"github.com/vfg2006/finance-insight-api/pkg/log"
	"github.com/vfg2006/finance-insight-api/pkg/utils"
)

type UpdateProductCostRequest struct {
	AvgUnitCost float64 `json:"avg_unit_cost"`
}

// ListProducts lista o catálogo completo de produtos com seus custos médios
func ListProducts(repo repository.ProductRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		products, err := repo.ListAll()
		if err != nil {
			logger.WithError(err).Error("products: failed to list catalog")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar produtos", nil)
			return
		}

		logger.WithField("records", len(products)).Info("products: catalog listed")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(products); err != nil {
			logger.WithError(err).Error("products: failed to encode response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// CreateProduct cadastra um novo produto no catálogo
func CreateProduct(repo repository.ProductRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var product domain.ProductCostRecord
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			logger.WithError(err).Warn("products: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if product.Name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome do produto é obrigatório", nil)
			return
		}

		if product.AvgUnitCost < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Custo médio não pode ser negativo", nil)
			return
		}

		if product.Code == "" {
			code, err := utils.GenerateID()
			if err != nil {
				logger.WithError(err).Error("products: failed to generate product code")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar código do produto", nil)
				return
			}
			product.Code = code
		}

		if err := repo.Create(&product); err != nil {
			logger.WithError(err).Error("products: failed to create record")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao cadastrar produto", nil)
			return
		}

		logger.WithField("product_id", product.ID).Info("products: record created")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(product); err != nil {
			logger.WithError(err).Error("products: failed to encode response")
		}
	})
}

// UpdateProductCost atualiza o custo unitário médio de um produto
func UpdateProductCost(repo repository.ProductRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do produto inválido", nil)
			return
		}

		var req UpdateProductCostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WithError(err).Warn("products: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if req.AvgUnitCost < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Custo médio não pode ser negativo", nil)
			return
		}

		if err := repo.UpdateCost(id, req.AvgUnitCost); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Produto não encontrado", map[string]any{
					"product_id": id,
				})
				return
			}

			logger.WithError(err).WithField("product_id", id).Error("products: failed to update cost")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar custo do produto", nil)
			return
		}

		logger.WithFields(log.Fields{
			"product_id":    id,
			"avg_unit_cost": req.AvgUnitCost,
		}).Info("products: cost updated")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	})
}
