package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/finance-insight-api/internal/domain"
)

func int64Ptr(v int64) *int64 { return &v }

func TestBuildCostIndex(t *testing.T) {
	products := []*domain.ProductCostRecord{
		{ID: 1, Name: "Produto A", AvgUnitCost: 100},
		{ID: 2, Name: "Produto B", AvgUnitCost: 250.5},
		nil,
	}

	index := BuildCostIndex(products)

	assert.Len(t, index, 2)
	assert.Equal(t, 100.0, index[1])
	assert.Equal(t, 250.5, index[2])
}

func TestAttributeCost(t *testing.T) {
	index := CostIndex{
		1: 100,
		2: 50,
	}

	tests := []struct {
		name     string
		sales    []*domain.SaleRecord
		expected float64
	}{
		{
			name: "Vendas com produto no índice somam custo x quantidade",
			sales: []*domain.SaleRecord{
				{ProductID: int64Ptr(1), Quantity: 2},
				{ProductID: int64Ptr(2), Quantity: 3},
			},
			expected: 350,
		},
		{
			name: "Venda sem ID de produto contribui exatamente zero",
			sales: []*domain.SaleRecord{
				{ProductID: nil, Quantity: 10, UnitPrice: 999},
				{ProductID: int64Ptr(1), Quantity: 1},
			},
			expected: 100,
		},
		{
			name: "Venda com produto fora do índice contribui exatamente zero",
			sales: []*domain.SaleRecord{
				{ProductID: int64Ptr(42), Quantity: 5},
			},
			expected: 0,
		},
		{
			name:     "Lista vazia soma zero",
			sales:    nil,
			expected: 0,
		},
		{
			name: "Custo zero no catálogo é um custo válido",
			sales: []*domain.SaleRecord{
				{ProductID: int64Ptr(3), Quantity: 4},
			},
			expected: 0,
		},
	}

	index[3] = 0

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AttributeCost(tt.sales, index))
		})
	}
}
