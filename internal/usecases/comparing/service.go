// Package comparing consolida a performance das filiais: ranking de receita,
// indicadores do dashboard e insights de concentração entre filiais
package comparing

import (
	"math"
	"sort"

	"github.com/vfg2006/branch-analytics-api/infrastructure/dataset"
	"github.com/vfg2006/branch-analytics-api/internal/config"
	"github.com/vfg2006/branch-analytics-api/internal/domain"
	"github.com/vfg2006/branch-analytics-api/pkg/utils"
)

const (
	dashboardTopBranches = 10
	dashboardPieBranches = 8
	dashboardTopProducts = 10
)

type Comparer interface {
	BranchComparison() (*domain.BranchComparisonResponse, error)
	SummaryStats() (*domain.SummaryStats, error)
	DashboardCharts() ([]domain.ChartSeries, error)
}

type Service struct {
	store          *dataset.Store
	currencySymbol string
}

func NewService(cfg *config.Config, store *dataset.Store) Comparer {
	return &Service{
		store:          store,
		currencySymbol: cfg.Display.CurrencySymbol,
	}
}

// BranchComparison monta o ranking de filiais por receita, os insights de
// concentração e as séries da tela de comparação
func (s *Service) BranchComparison() (*domain.BranchComparisonResponse, error) {
	items, err := s.branchItems()
	if err != nil {
		return nil, err
	}

	return &domain.BranchComparisonResponse{
		Ranking:  items,
		Insights: crossBranchInsights(items),
		Charts:   s.comparisonCharts(items),
	}, nil
}

// SummaryStats calcula os indicadores agregados do dashboard principal
func (s *Service) SummaryStats() (*domain.SummaryStats, error) {
	records := s.store.Snapshot()
	if len(records) == 0 {
		return nil, ErrNoData
	}
	info := s.store.Info()

	stats := &domain.SummaryStats{
		TotalBranches:     len(info.Branches),
		TotalRecords:      info.TotalRecords,
		DateRange:         utils.FormatDateRange(info.MinDate, info.MaxDate),
		TotalTransactions: len(records),
		Files:             info.Files,
	}

	var cogsPctSum float64
	products := make(map[string]bool)
	for _, r := range records {
		stats.TotalRevenue += r.Total
		stats.TotalMargin += r.Margin
		stats.TotalCOGS += r.COGSTotal
		cogsPctSum += r.COGSPercentage
		products[r.Menu] = true
	}

	stats.UniqueProducts = len(products)
	stats.AvgCOGSPercentage = utils.SafeDivide(cogsPctSum, float64(len(records)))
	stats.GrossMarginPct = utils.SafePercentage(stats.TotalMargin, stats.TotalRevenue)
	stats.AvgTransactionValue = utils.SafeDivide(stats.TotalRevenue, float64(len(records)))

	return stats, nil
}

// DashboardCharts monta as séries da página inicial: receita por filial,
// distribuição de receita e top produtos
func (s *Service) DashboardCharts() ([]domain.ChartSeries, error) {
	items, err := s.branchItems()
	if err != nil {
		return nil, err
	}

	top := items
	if len(top) > dashboardTopBranches {
		top = top[:dashboardTopBranches]
	}
	revenueBar := domain.ChartSeries{
		ID:    "revenue_bar",
		Title: "Revenue per Branch (Top 10)",
		Kind:  domain.ChartBar,
	}
	for _, item := range top {
		revenueBar.Labels = append(revenueBar.Labels, item.Branch)
		revenueBar.Values = append(revenueBar.Values, item.TotalRevenue)
		revenueBar.Text = append(revenueBar.Text, utils.FormatCurrency(s.currencySymbol, item.TotalRevenue))
	}

	pieTop := items
	if len(pieTop) > dashboardPieBranches {
		pieTop = pieTop[:dashboardPieBranches]
	}
	revenuePie := domain.ChartSeries{
		ID:    "revenue_pie",
		Title: "Revenue Distribution per Branch (Top 8)",
		Kind:  domain.ChartPie,
	}
	for _, item := range pieTop {
		revenuePie.Labels = append(revenuePie.Labels, item.Branch)
		revenuePie.Values = append(revenuePie.Values, item.TotalRevenue)
	}

	return []domain.ChartSeries{revenueBar, revenuePie, s.topProductsChart()}, nil
}

// branchItems agrega o dataset por filial e ordena por receita decrescente,
// atribuindo o rank 1-based
func (s *Service) branchItems() ([]domain.BranchComparisonItem, error) {
	records := s.store.Snapshot()
	if len(records) == 0 {
		return nil, ErrNoData
	}

	index := make(map[string]int)
	var items []domain.BranchComparisonItem

	for _, r := range records {
		i, ok := index[r.Branch]
		if !ok {
			i = len(items)
			index[r.Branch] = i
			items = append(items, domain.BranchComparisonItem{
				Branch:    r.Branch,
				StartDate: r.SoldAt,
				EndDate:   r.SoldAt,
			})
		}

		items[i].TotalRevenue += r.Total
		items[i].TotalMargin += r.Margin
		items[i].TotalCOGS += r.COGSTotal
		items[i].TotalQty += r.Qty
		items[i].TransactionCount++

		if r.SoldAt.Before(items[i].StartDate) {
			items[i].StartDate = r.SoldAt
		}
		if r.SoldAt.After(items[i].EndDate) {
			items[i].EndDate = r.SoldAt
		}
	}

	for i := range items {
		item := &items[i]
		item.AvgTransaction = utils.SafeDivide(item.TotalRevenue, float64(item.TransactionCount))
		item.AvgMargin = utils.SafeDivide(item.TotalMargin, float64(item.TransactionCount))
		item.MarginPercentage = utils.SafePercentage(item.TotalMargin, item.TotalRevenue)
		item.COGSPercentage = utils.SafePercentage(item.TotalCOGS, item.TotalRevenue)

		days := int(item.EndDate.Sub(item.StartDate).Hours()/24) + 1
		if days < 1 {
			days = 1
		}
		item.RevenuePerDay = item.TotalRevenue / float64(days)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].TotalRevenue > items[j].TotalRevenue
	})
	for i := range items {
		items[i].RevenueRank = i + 1
	}

	return items, nil
}

// crossBranchInsights mede a concentração de receita: participação do top 3,
// do bottom 3 e a desigualdade (desvio padrão / média)
func crossBranchInsights(items []domain.BranchComparisonItem) domain.CrossBranchInsights {
	var total float64
	for _, item := range items {
		total += item.TotalRevenue
	}

	var top3, bottom3 float64
	for i, item := range items {
		if i < 3 {
			top3 += item.TotalRevenue
		}
		if i >= len(items)-3 {
			bottom3 += item.TotalRevenue
		}
	}

	return domain.CrossBranchInsights{
		Top3RevenueShare:    utils.SafePercentage(top3, total),
		Bottom3RevenueShare: utils.SafePercentage(bottom3, total),
		RevenueInequality:   revenueInequality(items),
	}
}

// revenueInequality é o coeficiente de variação da receita entre filiais
// (desvio padrão amostral sobre a média); 0 com menos de duas filiais
func revenueInequality(items []domain.BranchComparisonItem) float64 {
	if len(items) < 2 {
		return 0
	}

	var sum float64
	for _, item := range items {
		sum += item.TotalRevenue
	}
	mean := sum / float64(len(items))
	if mean == 0 {
		return 0
	}

	var sq float64
	for _, item := range items {
		d := item.TotalRevenue - mean
		sq += d * d
	}
	stddev := math.Sqrt(sq / float64(len(items)-1))

	return stddev / mean
}

func (s *Service) comparisonCharts(items []domain.BranchComparisonItem) []domain.ChartSeries {
	revenue := domain.ChartSeries{
		ID:    "revenue_comparison",
		Title: "Total Revenue per Branch",
		Kind:  domain.ChartBar,
	}
	marginCogs := domain.ChartSeries{
		ID:    "margin_vs_cogs",
		Title: "Margin vs COGS per Branch",
		Kind:  domain.ChartBar,
	}
	for _, item := range items {
		revenue.Labels = append(revenue.Labels, item.Branch)
		revenue.Values = append(revenue.Values, item.TotalRevenue)
		revenue.Text = append(revenue.Text, utils.FormatCurrency(s.currencySymbol, item.TotalRevenue))

		marginCogs.Labels = append(marginCogs.Labels, item.Branch)
		marginCogs.Values = append(marginCogs.Values, utils.RoundWithTwoDecimalPlace(item.MarginPercentage))
		marginCogs.Text = append(marginCogs.Text, "COGS "+utils.FormatPercentage(item.COGSPercentage))
	}

	// Eficiência ordenada pela receita média por transação
	byEfficiency := make([]domain.BranchComparisonItem, len(items))
	copy(byEfficiency, items)
	sort.SliceStable(byEfficiency, func(i, j int) bool {
		return byEfficiency[i].AvgTransaction > byEfficiency[j].AvgTransaction
	})

	efficiency := domain.ChartSeries{
		ID:    "efficiency",
		Title: "Revenue per Transaction",
		Kind:  domain.ChartBar,
	}
	for _, item := range byEfficiency {
		efficiency.Labels = append(efficiency.Labels, item.Branch)
		efficiency.Values = append(efficiency.Values, item.AvgTransaction)
		efficiency.Text = append(efficiency.Text, utils.FormatCurrency(s.currencySymbol, item.AvgTransaction))
	}

	return []domain.ChartSeries{revenue, marginCogs, efficiency}
}

// topProductsChart soma a receita por produto em todas as filiais e devolve
// os 10 maiores
func (s *Service) topProductsChart() domain.ChartSeries {
	index := make(map[string]int)
	type productTotal struct {
		menu    string
		revenue float64
	}
	var totals []productTotal

	for _, r := range s.store.Snapshot() {
		i, ok := index[r.Menu]
		if !ok {
			i = len(totals)
			index[r.Menu] = i
			totals = append(totals, productTotal{menu: r.Menu})
		}
		totals[i].revenue += r.Total
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].revenue > totals[j].revenue
	})
	if len(totals) > dashboardTopProducts {
		totals = totals[:dashboardTopProducts]
	}

	chart := domain.ChartSeries{
		ID:    "top_products",
		Title: "Top 10 Products by Revenue",
		Kind:  domain.ChartBar,
	}
	for _, p := range totals {
		chart.Labels = append(chart.Labels, p.menu)
		chart.Values = append(chart.Values, p.revenue)
		chart.Text = append(chart.Text, utils.FormatCurrency(s.currencySymbol, p.revenue))
	}

	return chart
}
