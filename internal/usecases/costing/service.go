// Package costing analisa o custo de mercadoria vendida (COGS): custo por
// produto por filial, eficiência média por filial e variação do custo de um
// mesmo produto entre filiais
package costing

import (
	"errors"
	"math"
	"sort"

	"github.com/vfg2006/branch-analytics-api/infrastructure/dataset"
	"github.com/vfg2006/branch-analytics-api/internal/domain"
	"github.com/vfg2006/branch-analytics-api/pkg/utils"
)

// ErrNoData indica que não existe dataset carregado
var ErrNoData = errors.New("no dataset loaded")

const (
	heatmapTopProducts  = 15
	variabilityTopCount = 15
)

type Coster interface {
	COGSAnalysis() (*domain.COGSAnalysisResponse, error)
}

type Service struct {
	store *dataset.Store
}

func NewService(store *dataset.Store) Coster {
	return &Service{store: store}
}

// COGSAnalysis consolida o custo por produto/filial e deriva as visões de
// eficiência e variabilidade
func (s *Service) COGSAnalysis() (*domain.COGSAnalysisResponse, error) {
	records := s.store.Snapshot()
	if len(records) == 0 {
		return nil, ErrNoData
	}

	products := productCOGS(records)
	branches := branchCOGS(records)
	variability := cogsVariability(products)

	return &domain.COGSAnalysisResponse{
		Products:    products,
		Branches:    branches,
		Variability: variability,
		Charts:      buildCharts(products, branches, variability),
	}, nil
}

// productCOGS agrega por (produto, filial): soma de custo, receita,
// quantidade e margem, com o COGS % médio das vendas do par. A eficiência é
// o complemento do COGS % (100 − custo).
func productCOGS(records []domain.SalesRecord) []domain.ProductCOGSItem {
	type key struct {
		menu   string
		branch string
	}
	type bucket struct {
		item    domain.ProductCOGSItem
		pctSum  float64
		pctHits int
	}
	index := make(map[key]int)
	var buckets []bucket

	for _, r := range records {
		k := key{menu: r.Menu, branch: r.Branch}
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, bucket{item: domain.ProductCOGSItem{Menu: r.Menu, Branch: r.Branch}})
		}

		buckets[i].item.TotalCOGS += r.COGSTotal
		buckets[i].item.TotalRevenue += r.Total
		buckets[i].item.TotalQty += r.Qty
		buckets[i].item.TotalMargin += r.Margin
		buckets[i].pctSum += r.COGSPercentage
		buckets[i].pctHits++
	}

	items := make([]domain.ProductCOGSItem, len(buckets))
	for i, b := range buckets {
		item := b.item
		item.AvgCOGSPct = utils.SafeDivide(b.pctSum, float64(b.pctHits))
		item.COGSPerUnit = utils.SafeDivide(item.TotalCOGS, item.TotalQty)
		item.RevenuePerUnit = utils.SafeDivide(item.TotalRevenue, item.TotalQty)
		item.MarginPerUnit = utils.SafeDivide(item.TotalMargin, item.TotalQty)
		item.Efficiency = 100 - item.AvgCOGSPct
		items[i] = item
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Menu != items[j].Menu {
			return items[i].Menu < items[j].Menu
		}
		return items[i].AvgCOGSPct < items[j].AvgCOGSPct
	})

	return items
}

// branchCOGS calcula o COGS % médio de cada filial, ordenado da mais para a
// menos eficiente
func branchCOGS(records []domain.SalesRecord) []domain.BranchCOGSItem {
	type bucket struct {
		pctSum float64
		hits   int
	}
	index := make(map[string]int)
	var branches []string
	var buckets []bucket

	for _, r := range records {
		i, ok := index[r.Branch]
		if !ok {
			i = len(buckets)
			index[r.Branch] = i
			branches = append(branches, r.Branch)
			buckets = append(buckets, bucket{})
		}
		buckets[i].pctSum += r.COGSPercentage
		buckets[i].hits++
	}

	items := make([]domain.BranchCOGSItem, len(buckets))
	for i, b := range buckets {
		avg := utils.SafeDivide(b.pctSum, float64(b.hits))
		items[i] = domain.BranchCOGSItem{
			Branch:     branches[i],
			AvgCOGSPct: avg,
			Efficiency: 100 - avg,
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Efficiency > items[j].Efficiency
	})

	return items
}

// cogsVariability mede, para cada produto vendido em mais de uma filial, a
// dispersão do COGS % entre filiais (coeficiente de variação, desvio padrão
// amostral). Produtos com média ou desvio zero ficam de fora.
func cogsVariability(products []domain.ProductCOGSItem) []domain.COGSVariabilityItem {
	byMenu := make(map[string][]float64)
	var menus []string
	for _, p := range products {
		if _, ok := byMenu[p.Menu]; !ok {
			menus = append(menus, p.Menu)
		}
		byMenu[p.Menu] = append(byMenu[p.Menu], p.AvgCOGSPct)
	}

	var items []domain.COGSVariabilityItem
	for _, menu := range menus {
		pcts := byMenu[menu]
		if len(pcts) < 2 {
			continue
		}

		var sum float64
		for _, v := range pcts {
			sum += v
		}
		mean := sum / float64(len(pcts))
		if mean <= 0 {
			continue
		}

		var sq float64
		for _, v := range pcts {
			d := v - mean
			sq += d * d
		}
		stddev := math.Sqrt(sq / float64(len(pcts)-1))
		if stddev <= 0 {
			continue
		}

		items = append(items, domain.COGSVariabilityItem{
			Menu:       menu,
			MeanPct:    mean,
			StdDev:     stddev,
			CV:         stddev / mean,
			BranchHits: len(pcts),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CV > items[j].CV
	})
	if len(items) > variabilityTopCount {
		items = items[:variabilityTopCount]
	}

	return items
}

func buildCharts(products []domain.ProductCOGSItem, branches []domain.BranchCOGSItem, variability []domain.COGSVariabilityItem) []domain.ChartSeries {
	heatmap := domain.ChartSeries{
		ID:    "cogs_heatmap",
		Title: "COGS % per Product per Branch (Top 15)",
		Kind:  domain.ChartBar,
	}
	for _, p := range topProductsByRevenue(products, heatmapTopProducts) {
		heatmap.Labels = append(heatmap.Labels, p.Menu+" / "+p.Branch)
		heatmap.Values = append(heatmap.Values, utils.RoundWithTwoDecimalPlace(p.AvgCOGSPct))
	}

	efficiency := domain.ChartSeries{
		ID:    "branch_efficiency",
		Title: "COGS Efficiency per Branch",
		Kind:  domain.ChartBar,
	}
	for _, b := range branches {
		efficiency.Labels = append(efficiency.Labels, b.Branch)
		efficiency.Values = append(efficiency.Values, utils.RoundWithTwoDecimalPlace(b.Efficiency))
		efficiency.Text = append(efficiency.Text, utils.FormatPercentage(b.Efficiency))
	}

	variance := domain.ChartSeries{
		ID:    "cogs_variance",
		Title: "Top 15 Products by COGS Variation",
		Kind:  domain.ChartBar,
	}
	for _, v := range variability {
		variance.Labels = append(variance.Labels, v.Menu)
		variance.Values = append(variance.Values, utils.RoundWithTwoDecimalPlace(v.CV))
	}

	return []domain.ChartSeries{heatmap, efficiency, variance}
}

// topProductsByRevenue filtra os itens dos produtos com maior receita total,
// somada entre filiais
func topProductsByRevenue(products []domain.ProductCOGSItem, n int) []domain.ProductCOGSItem {
	totals := make(map[string]float64)
	var menus []string
	for _, p := range products {
		if _, ok := totals[p.Menu]; !ok {
			menus = append(menus, p.Menu)
		}
		totals[p.Menu] += p.TotalRevenue
	}

	sort.SliceStable(menus, func(i, j int) bool {
		return totals[menus[i]] > totals[menus[j]]
	})
	if len(menus) > n {
		menus = menus[:n]
	}

	keep := make(map[string]bool, len(menus))
	for _, m := range menus {
		keep[m] = true
	}

	var filtered []domain.ProductCOGSItem
	for _, p := range products {
		if keep[p.Menu] {
			filtered = append(filtered, p)
		}
	}

	return filtered
}
