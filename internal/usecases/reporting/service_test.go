package reporting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-insight-api/infrastructure/repository/mocks"
	"github.com/vfg2006/finance-insight-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestBuildSnapshot(t *testing.T) {
	products := []*domain.ProductCostRecord{
		{ID: 1, Name: "Produto A", AvgUnitCost: 60},
		{ID: 2, Name: "Produto B", AvgUnitCost: 30},
	}

	t.Run("Agregação completa de uma janela com vendas e despesas", func(t *testing.T) {
		sales := []*domain.SaleRecord{
			{ProductID: int64Ptr(1), ProductName: "Produto A", Quantity: 8, UnitPrice: 100},
			{ProductID: int64Ptr(2), ProductName: "Produto B", Quantity: 4, UnitPrice: 50},
		}
		expenses := []*domain.ExpenseRecord{
			{Category: "租金", Amount: 60},
			{Category: "水電", Amount: 40},
		}

		snapshot := BuildSnapshot(sales, expenses, products)

		assert.Equal(t, 1000.0, snapshot.Revenue)
		assert.Equal(t, 600.0, snapshot.COGS)
		assert.Equal(t, 100.0, snapshot.OperatingExpenses)
		assert.Equal(t, 400.0, snapshot.GrossProfit)
		assert.Equal(t, 300.0, snapshot.NetProfit)
		assert.Equal(t, 40.0, snapshot.GrossMarginPct)
		assert.Equal(t, 30.0, snapshot.NetMarginPct)
		assert.Equal(t, 2, snapshot.ProductCount)
	})

	t.Run("Agregação é independente da ordem dos registros", func(t *testing.T) {
		sales := []*domain.SaleRecord{
			{ProductID: int64Ptr(2), ProductName: "Produto B", Quantity: 4, UnitPrice: 50},
			{ProductID: int64Ptr(1), ProductName: "Produto A", Quantity: 8, UnitPrice: 100},
		}
		expenses := []*domain.ExpenseRecord{
			{Category: "水電", Amount: 40},
			{Category: "租金", Amount: 60},
		}

		snapshot := BuildSnapshot(sales, expenses, products)

		assert.Equal(t, 1000.0, snapshot.Revenue)
		assert.Equal(t, 600.0, snapshot.COGS)
		assert.Equal(t, 300.0, snapshot.NetProfit)
	})

	t.Run("Margens valem zero quando não há receita", func(t *testing.T) {
		expenses := []*domain.ExpenseRecord{{Category: "租金", Amount: 500}}

		snapshot := BuildSnapshot(nil, expenses, products)

		assert.Equal(t, 0.0, snapshot.Revenue)
		assert.Equal(t, 0.0, snapshot.GrossMarginPct)
		assert.Equal(t, 0.0, snapshot.NetMarginPct)
		assert.Equal(t, -500.0, snapshot.NetProfit)
	})

	t.Run("Venda sem correspondência no catálogo entra na receita mas não no custo", func(t *testing.T) {
		sales := []*domain.SaleRecord{
			{ProductID: int64Ptr(99), ProductName: "Produto X", Quantity: 2, UnitPrice: 100},
		}

		snapshot := BuildSnapshot(sales, nil, products)

		assert.Equal(t, 200.0, snapshot.Revenue)
		assert.Equal(t, 0.0, snapshot.COGS)
		assert.Equal(t, 200.0, snapshot.GrossProfit)
	})
}

func TestRankTopProducts(t *testing.T) {
	t.Run("Agrupa por modelo, depois nome, depois Unknown", func(t *testing.T) {
		sales := []*domain.SaleRecord{
			{Model: "SG-100", ProductName: "太陽眼鏡", Quantity: 1, UnitPrice: 500},
			{Model: "SG-100", ProductName: "太陽眼鏡", Quantity: 2, UnitPrice: 500},
			{Model: "", ProductName: "鏡片清潔組", Quantity: 3, UnitPrice: 100},
			{Model: "", ProductName: "", Quantity: 1, UnitPrice: 50},
		}

		ranking, distinct := rankTopProducts(sales)

		require.Len(t, ranking, 3)
		assert.Equal(t, 3, distinct)

		assert.Equal(t, "SG-100", ranking[0].Name)
		assert.Equal(t, 3, ranking[0].Quantity)
		assert.Equal(t, 1500.0, ranking[0].Revenue)

		assert.Equal(t, "鏡片清潔組", ranking[1].Name)
		assert.Equal(t, "Unknown", ranking[2].Name)
	})

	t.Run("Empate de receita mantém a ordem de primeira aparição", func(t *testing.T) {
		sales := []*domain.SaleRecord{
			{Model: "B-200", Quantity: 1, UnitPrice: 100},
			{Model: "A-100", Quantity: 1, UnitPrice: 100},
		}

		ranking, _ := rankTopProducts(sales)

		require.Len(t, ranking, 2)
		assert.Equal(t, "B-200", ranking[0].Name)
		assert.Equal(t, "A-100", ranking[1].Name)
	})

	t.Run("Ranking é truncado em dez posições mas a contagem é total", func(t *testing.T) {
		sales := make([]*domain.SaleRecord, 0, 15)
		for i := 0; i < 15; i++ {
			sales = append(sales, &domain.SaleRecord{
				Model:     string(rune('A' + i)),
				Quantity:  1,
				UnitPrice: float64(100 * (15 - i)),
			})
		}

		ranking, distinct := rankTopProducts(sales)

		assert.Len(t, ranking, 10)
		assert.Equal(t, 15, distinct)
		assert.Equal(t, 1500.0, ranking[0].Revenue)
	})
}

func TestBuildMonthlyTrend(t *testing.T) {
	index := CostIndex{1: 60}

	january := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	february := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	sales := []*domain.SaleRecord{
		{ProductID: int64Ptr(1), Quantity: 2, UnitPrice: 100, Date: timePtr(january)},
		{ProductID: int64Ptr(1), Quantity: 1, UnitPrice: 100, Date: timePtr(february)},
		// Sem data de transação: agrupa pela data de criação
		{ProductID: int64Ptr(1), Quantity: 1, UnitPrice: 100, CreatedAt: february},
	}
	expenses := []*domain.ExpenseRecord{
		{Amount: 30, Date: timePtr(january)},
		{Amount: 50, Date: timePtr(february)},
	}

	trend := buildMonthlyTrend(sales, expenses, index)

	require.Len(t, trend, 2)

	assert.Equal(t, "2025-01", trend[0].Month)
	assert.Equal(t, 200.0, trend[0].Revenue)
	assert.Equal(t, 120.0, trend[0].COGS)
	assert.Equal(t, 30.0, trend[0].OperatingExpenses)
	assert.Equal(t, 80.0, trend[0].GrossProfit)
	assert.Equal(t, 50.0, trend[0].NetProfit)

	assert.Equal(t, "2025-02", trend[1].Month)
	assert.Equal(t, 200.0, trend[1].Revenue)
	assert.Equal(t, 120.0, trend[1].COGS)
	assert.Equal(t, 50.0, trend[1].OperatingExpenses)
	assert.Equal(t, 30.0, trend[1].NetProfit)
}

func TestService_GetReportBundle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSaleRepo := mocks.NewMockSaleRepository(ctrl)
	mockExpenseRepo := mocks.NewMockExpenseRepository(ctrl)
	mockProductRepo := mocks.NewMockProductRepository(ctrl)

	service := &Service{
		location:          time.UTC,
		saleRepository:    mockSaleRepo,
		expenseRepository: mockExpenseRepo,
		productRepository: mockProductRepo,
	}

	t.Run("Preset usa 90% da receita corrente como comparação", func(t *testing.T) {
		mockSaleRepo.EXPECT().ListByWindow(gomock.Any()).Return([]*domain.SaleRecord{
			{Quantity: 10, UnitPrice: 100},
		}, nil)
		mockExpenseRepo.EXPECT().ListByWindow(gomock.Any()).Return(nil, nil)
		mockProductRepo.EXPECT().ListAll().Return(nil, nil)

		bundle, err := service.GetReportBundle(WindowParams{Preset: domain.RangeMonth})

		require.NoError(t, err)
		assert.Equal(t, 1000.0, bundle.Report.Snapshot.Revenue)
		assert.Equal(t, 900.0, bundle.Report.PreviousRevenue)
	})

	t.Run("Janela explícita busca as vendas do período anterior", func(t *testing.T) {
		// Primeira chamada: janela corrente; segunda: janela anterior
		gomock.InOrder(
			mockSaleRepo.EXPECT().ListByWindow(gomock.Any()).Return([]*domain.SaleRecord{
				{Quantity: 1, UnitPrice: 500},
			}, nil),
			mockSaleRepo.EXPECT().ListByWindow(gomock.Any()).Return([]*domain.SaleRecord{
				{Quantity: 2, UnitPrice: 150},
			}, nil),
		)
		mockExpenseRepo.EXPECT().ListByWindow(gomock.Any()).Return(nil, nil)
		mockProductRepo.EXPECT().ListAll().Return(nil, nil)

		bundle, err := service.GetReportBundle(WindowParams{
			StartDate: "2025-03-01",
			EndDate:   "2025-03-31",
		})

		require.NoError(t, err)
		assert.Equal(t, 500.0, bundle.Report.Snapshot.Revenue)
		assert.Equal(t, 300.0, bundle.Report.PreviousRevenue)
	})

	t.Run("Falha em qualquer busca aborta a requisição inteira", func(t *testing.T) {
		mockSaleRepo.EXPECT().ListByWindow(gomock.Any()).Return(nil, nil)
		mockExpenseRepo.EXPECT().ListByWindow(gomock.Any()).Return(nil, errors.New("conexão recusada"))
		mockProductRepo.EXPECT().ListAll().Return(nil, nil)

		_, err := service.GetReportBundle(WindowParams{Preset: domain.RangeWeek})

		assert.ErrorIs(t, err, ErrUpstreamFetch)
	})

	t.Run("Janela inválida falha antes de tocar os repositórios", func(t *testing.T) {
		_, err := service.GetReportBundle(WindowParams{
			StartDate: "2025-03-31",
			EndDate:   "2025-03-01",
		})

		assert.ErrorIs(t, err, ErrInvalidWindow)
	})
}

func TestService_GetAvailablePeriods(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSnapshotRepo := mocks.NewMockReportSnapshotRepository(ctrl)

	service := &Service{
		location:           time.UTC,
		snapshotRepository: mockSnapshotRepo,
	}

	mockSnapshotRepo.EXPECT().GetAllPeriods().Return([]string{
		"11-2024", "12-2024", "01-2025", "02-2025",
	}, nil)

	available, err := service.GetAvailablePeriods()

	require.NoError(t, err)
	assert.Equal(t, []string{"2024", "2025"}, available.Years)
	assert.Equal(t, []string{"11", "12"}, available.Months["2024"])
	assert.Equal(t, []string{"01", "02"}, available.Months["2025"])
	assert.Len(t, available.Periods, 4)
}
