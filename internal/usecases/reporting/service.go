package reporting

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-insight-api/infrastructure/repository"
	"github.com/vfg2006/finance-insight-api/internal/config"
	"github.com/vfg2006/finance-insight-api/internal/domain"
	"github.com/vfg2006/finance-insight-api/pkg/utils"
)

// Quantidade máxima de posições no ranking de produtos.
const topProductsLimit = 10

// Janelas de preset não produzem período anterior; a comparação de receita
// usa 90% da receita corrente como aproximação documentada.
const presetPreviousFactor = 0.9

// Service implementa o motor de relatórios: resolve a janela, busca os três
// conjuntos de registros em paralelo e agrega os indicadores financeiros.
type Service struct {
	cfg                *config.Config
	location           *time.Location
	saleRepository     repository.SaleRepository
	expenseRepository  repository.ExpenseRepository
	productRepository  repository.ProductRepository
	snapshotRepository repository.ReportSnapshotRepository
}

// NewService cria uma nova instância do serviço de relatórios
func NewService(
	cfg *config.Config,
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
	productRepo repository.ProductRepository,
	snapshotRepo repository.ReportSnapshotRepository,
) Reporter {
	location, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		logrus.WithError(err).Warnf("Fuso horário inválido: %s, usando o fuso local", cfg.Report.Timezone)
		location = time.Local
	}

	return &Service{
		cfg:                cfg,
		location:           location,
		saleRepository:     saleRepo,
		expenseRepository:  expenseRepo,
		productRepository:  productRepo,
		snapshotRepository: snapshotRepo,
	}
}

// GetFinancialReport resolve a janela e devolve o snapshot agregado com a
// receita do período anterior usada na comparação.
func (s *Service) GetFinancialReport(params WindowParams) (*domain.FinancialReport, error) {
	bundle, err := s.GetReportBundle(params)
	if err != nil {
		return nil, err
	}

	return bundle.Report, nil
}

// GetReportBundle é a variante usada pelo motor de insights: além do
// relatório, devolve as despesas da janela para a análise por categoria.
func (s *Service) GetReportBundle(params WindowParams) (*ReportBundle, error) {
	resolved, err := ResolveWindow(params, time.Now().In(s.location), s.location)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"preset":     resolved.Preset,
		"start_date": resolved.Window.Start.Format(time.DateOnly),
	}).Info("reports: building financial report")

	sales, expenses, products, err := s.fetchRecords(resolved.Window)
	if err != nil {
		return nil, err
	}

	snapshot := BuildSnapshot(sales, expenses, products)
	logrus.Debug("reports: snapshot calculado: ", utils.PrettyJson(snapshot))

	previousRevenue, err := s.previousRevenue(resolved, snapshot)
	if err != nil {
		return nil, err
	}

	return &ReportBundle{
		Report: &domain.FinancialReport{
			Window:          resolved,
			Snapshot:        snapshot,
			PreviousRevenue: previousRevenue,
		},
		Expenses: expenses,
	}, nil
}

// SnapshotForWindow agrega uma janela já resolvida. Usado pelo agendador de
// snapshots mensais, que monta as janelas por mês-calendário.
func (s *Service) SnapshotForWindow(window domain.TimeWindow) (*domain.AggregateSnapshot, error) {
	sales, expenses, products, err := s.fetchRecords(window)
	if err != nil {
		return nil, err
	}

	return BuildSnapshot(sales, expenses, products), nil
}

// GetMonthlyReport devolve o snapshot já consolidado do período mm-yyyy, ou
// nil quando o mês ainda não foi consolidado.
func (s *Service) GetMonthlyReport(period string) (*domain.MonthlyReportEntry, error) {
	entry, err := s.snapshotRepository.GetByPeriod(period)
	if err != nil {
		logrus.WithError(err).WithField("period", period).Error("reports: failed to fetch monthly snapshot")
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}

	return entry, nil
}

// GetAvailablePeriods lista os períodos mensais consolidados, agrupados por
// ano na ordem em que aparecem.
func (s *Service) GetAvailablePeriods() (*domain.AvailablePeriods, error) {
	periods, err := s.snapshotRepository.GetAllPeriods()
	if err != nil {
		logrus.WithError(err).Error("reports: failed to list consolidated periods")
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}

	available := &domain.AvailablePeriods{
		Periods: periods,
		Years:   make([]string, 0),
		Months:  make(map[string][]string),
	}

	for _, period := range periods {
		parts := strings.SplitN(period, "-", 2)
		if len(parts) != 2 {
			continue
		}
		month, year := parts[0], parts[1]

		if _, exists := available.Months[year]; !exists {
			available.Years = append(available.Years, year)
		}
		available.Months[year] = append(available.Months[year], month)
	}

	sort.Strings(available.Years)

	return available, nil
}

// fetchRecords busca vendas, despesas e o catálogo completo de produtos em
// goroutines independentes. Qualquer falha aborta a requisição inteira.
func (s *Service) fetchRecords(window domain.TimeWindow) (
	[]*domain.SaleRecord,
	[]*domain.ExpenseRecord,
	[]*domain.ProductCostRecord,
	error,
) {
	var (
		sales    []*domain.SaleRecord
		expenses []*domain.ExpenseRecord
		products []*domain.ProductCostRecord

		salesErr    error
		expensesErr error
		productsErr error
	)

	wg := sync.WaitGroup{}
	wg.Add(3)

	go func() {
		defer wg.Done()
		sales, salesErr = s.saleRepository.ListByWindow(window)
	}()

	go func() {
		defer wg.Done()
		expenses, expensesErr = s.expenseRepository.ListByWindow(window)
	}()

	go func() {
		defer wg.Done()
		// O catálogo é sempre buscado completo: vendas da janela podem
		// referenciar produtos cadastrados fora dela.
		products, productsErr = s.productRepository.ListAll()
	}()

	wg.Wait()

	for _, err := range []error{salesErr, expensesErr, productsErr} {
		if err != nil {
			logrus.WithError(err).Error("reports: failed to fetch records for window")
			return nil, nil, nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
		}
	}

	return sales, expenses, products, nil
}

func (s *Service) previousRevenue(resolved *domain.ResolvedWindow, snapshot *domain.AggregateSnapshot) (float64, error) {
	if resolved.Previous == nil {
		return snapshot.Revenue * presetPreviousFactor, nil
	}

	previousSales, err := s.saleRepository.ListByWindow(*resolved.Previous)
	if err != nil {
		logrus.WithError(err).Error("reports: failed to fetch previous window sales")
		return 0, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}

	return sumRevenue(previousSales), nil
}

// BuildSnapshot agrega os três conjuntos de registros de uma janela em um
// snapshot financeiro. Função pura: não toca repositórios nem estado global.
func BuildSnapshot(
	sales []*domain.SaleRecord,
	expenses []*domain.ExpenseRecord,
	products []*domain.ProductCostRecord,
) *domain.AggregateSnapshot {
	index := BuildCostIndex(products)

	revenue := sumRevenue(sales)
	cogs := AttributeCost(sales, index)

	var operatingExpenses float64
	for _, expense := range expenses {
		operatingExpenses += expense.Amount
	}

	grossProfit := revenue - cogs
	netProfit := grossProfit - operatingExpenses

	snapshot := &domain.AggregateSnapshot{
		Revenue:           revenue,
		COGS:              cogs,
		OperatingExpenses: operatingExpenses,
		GrossProfit:       grossProfit,
		NetProfit:         netProfit,
	}

	// Margens valem zero quando não há receita; nunca divisão por zero.
	if revenue > 0 {
		snapshot.GrossMarginPct = grossProfit / revenue * 100
		snapshot.NetMarginPct = netProfit / revenue * 100
	}

	snapshot.TopProducts, snapshot.ProductCount = rankTopProducts(sales)
	snapshot.MonthlyTrend = buildMonthlyTrend(sales, expenses, index)

	return snapshot
}

func sumRevenue(sales []*domain.SaleRecord) float64 {
	var revenue float64
	for _, sale := range sales {
		revenue += sale.Amount()
	}
	return revenue
}

// rankTopProducts agrupa as vendas pela chave de exibição do produto e
// devolve as dez maiores posições por receita, além da contagem de produtos
// distintos vendidos. Empates mantêm a ordem de primeira aparição.
func rankTopProducts(sales []*domain.SaleRecord) ([]domain.TopProduct, int) {
	groups := make(map[string]*domain.TopProduct)
	order := make([]string, 0)

	for _, sale := range sales {
		key := sale.DisplayName()

		group, exists := groups[key]
		if !exists {
			group = &domain.TopProduct{Name: key}
			groups[key] = group
			order = append(order, key)
		}

		group.Quantity += sale.Quantity
		group.Revenue += sale.Amount()
	}

	ranking := make([]domain.TopProduct, 0, len(order))
	for _, key := range order {
		ranking = append(ranking, *groups[key])
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Revenue > ranking[j].Revenue
	})

	distinct := len(ranking)
	if len(ranking) > topProductsLimit {
		ranking = ranking[:topProductsLimit]
	}

	return ranking, distinct
}

type trendAccumulator struct {
	sales             []*domain.SaleRecord
	operatingExpenses float64
}

// buildMonthlyTrend agrupa vendas e despesas por mês-calendário e agrega
// cada balde de forma independente, reexecutando a atribuição de custo
// restrita às vendas do mês para impedir vazamento entre meses.
func buildMonthlyTrend(
	sales []*domain.SaleRecord,
	expenses []*domain.ExpenseRecord,
	index CostIndex,
) []domain.TrendBucket {
	buckets := make(map[string]*trendAccumulator)

	accumulatorFor := func(key string) *trendAccumulator {
		accumulator, exists := buckets[key]
		if !exists {
			accumulator = &trendAccumulator{}
			buckets[key] = accumulator
		}
		return accumulator
	}

	for _, sale := range sales {
		accumulator := accumulatorFor(utils.MonthKey(sale.BucketDate()))
		accumulator.sales = append(accumulator.sales, sale)
	}

	for _, expense := range expenses {
		accumulator := accumulatorFor(utils.MonthKey(expense.BucketDate()))
		accumulator.operatingExpenses += expense.Amount
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}

	// Chaves YYYY-MM têm zero à esquerda, então a ordenação lexicográfica
	// coincide com a cronológica.
	sort.Strings(keys)

	trend := make([]domain.TrendBucket, 0, len(keys))
	for _, key := range keys {
		accumulator := buckets[key]

		revenue := sumRevenue(accumulator.sales)
		cogs := AttributeCost(accumulator.sales, index)
		grossProfit := revenue - cogs
		netProfit := grossProfit - accumulator.operatingExpenses

		trend = append(trend, domain.TrendBucket{
			Month:             key,
			Revenue:           revenue,
			COGS:              cogs,
			OperatingExpenses: accumulator.operatingExpenses,
			GrossProfit:       grossProfit,
			NetProfit:         netProfit,
		})
	}

	return trend
}
