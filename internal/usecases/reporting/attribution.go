package reporting

import "github.com/vfg2006/finance-insight-api/internal/domain"

// CostIndex é a visão indexada por identificador do catálogo de produtos,
// construída uma vez por requisição para lookup O(1) na atribuição de custo.
type CostIndex map[int64]float64

// BuildCostIndex indexa o custo unitário médio de cada produto pelo seu ID.
func BuildCostIndex(products []*domain.ProductCostRecord) CostIndex {
	index := make(CostIndex, len(products))
	for _, product := range products {
		if product == nil {
			continue
		}
		index[product.ID] = product.AvgUnitCost
	}
	return index
}

// AttributeCost calcula o custo das mercadorias vendidas para o conjunto de
// vendas: custo unitário médio x quantidade para vendas com produto no
// índice; vendas sem correspondência contribuem exatamente zero, nunca um
// valor estimado. Nenhum arredondamento é aplicado aqui.
func AttributeCost(sales []*domain.SaleRecord, index CostIndex) float64 {
	var total float64

	for _, sale := range sales {
		if sale == nil || sale.ProductID == nil {
			continue
		}

		avgUnitCost, ok := index[*sale.ProductID]
		if !ok {
			continue
		}

		total += avgUnitCost * float64(sale.Quantity)
	}

	return total
}
