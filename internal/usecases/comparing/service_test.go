package comparing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/branch-analytics-api/infrastructure/dataset"
	"github.com/vfg2006/branch-analytics-api/internal/config"
	"github.com/vfg2006/branch-analytics-api/internal/domain"
)

func newService(records ...domain.SalesRecord) Comparer {
	store := dataset.NewStore()
	if len(records) > 0 {
		store.Replace(records, map[string]domain.BranchFile{})
	}

	cfg := &config.Config{}
	cfg.Display.CurrencySymbol = "Rp"
	return NewService(cfg, store)
}

func saleAt(branch, menu string, total, margin, cogs, cogsPct, qty float64, day int) domain.SalesRecord {
	return domain.SalesRecord{
		Branch:         branch,
		Menu:           menu,
		SoldAt:         time.Date(2024, 3, day, 12, 0, 0, 0, time.UTC),
		Total:          total,
		Margin:         margin,
		COGSTotal:      cogs,
		COGSPercentage: cogsPct,
		Qty:            qty,
	}
}

func TestService_BranchComparison(t *testing.T) {
	service := newService(
		saleAt("A", "X", 100, 20, 40, 40, 2, 1),
		saleAt("A", "Y", 300, 90, 90, 30, 3, 3),
		saleAt("B", "X", 600, 120, 240, 40, 4, 2),
	)

	resp, err := service.BranchComparison()
	require.NoError(t, err)
	require.Len(t, resp.Ranking, 2)

	// B lidera em receita
	first := resp.Ranking[0]
	assert.Equal(t, "B", first.Branch)
	assert.Equal(t, 1, first.RevenueRank)
	assert.Equal(t, 600.0, first.TotalRevenue)
	assert.Equal(t, 1, first.TransactionCount)
	assert.Equal(t, 600.0, first.AvgTransaction)
	assert.Equal(t, 20.0, first.MarginPercentage)
	assert.Equal(t, 40.0, first.COGSPercentage)
	// Um único dia de vendas
	assert.Equal(t, 600.0, first.RevenuePerDay)

	second := resp.Ranking[1]
	assert.Equal(t, "A", second.Branch)
	assert.Equal(t, 2, second.RevenueRank)
	assert.Equal(t, 400.0, second.TotalRevenue)
	assert.Equal(t, 200.0, second.AvgTransaction)
	// 3 dias corridos entre a primeira e a última venda
	assert.InDelta(t, 400.0/3.0, second.RevenuePerDay, 0.0001)

	// Com 2 filiais, top 3 e bottom 3 cobrem todas
	assert.Equal(t, 100.0, resp.Insights.Top3RevenueShare)
	assert.Equal(t, 100.0, resp.Insights.Bottom3RevenueShare)

	// std amostral de {600, 400} = ~141.42; média 500
	assert.InDelta(t, 0.2828, resp.Insights.RevenueInequality, 0.001)

	require.Len(t, resp.Charts, 3)
	assert.Equal(t, "revenue_comparison", resp.Charts[0].ID)
	assert.Equal(t, []string{"B", "A"}, resp.Charts[0].Labels)
	assert.Equal(t, "Rp 600", resp.Charts[0].Text[0])
}

func TestService_BranchComparison_NoData(t *testing.T) {
	service := newService()
	_, err := service.BranchComparison()
	assert.ErrorIs(t, err, ErrNoData)
}

func TestService_SummaryStats(t *testing.T) {
	service := newService(
		saleAt("A", "X", 100, 20, 40, 40, 2, 1),
		saleAt("A", "Y", 300, 90, 90, 30, 3, 3),
		saleAt("B", "X", 600, 120, 240, 40, 4, 2),
	)

	stats, err := service.SummaryStats()
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalBranches)
	assert.Equal(t, 3, stats.TotalTransactions)
	assert.Equal(t, 1000.0, stats.TotalRevenue)
	assert.Equal(t, 230.0, stats.TotalMargin)
	assert.Equal(t, 370.0, stats.TotalCOGS)
	assert.Equal(t, 2, stats.UniqueProducts)
	assert.InDelta(t, 36.6667, stats.AvgCOGSPercentage, 0.001)
	assert.Equal(t, 23.0, stats.GrossMarginPct)
	assert.InDelta(t, 333.333, stats.AvgTransactionValue, 0.001)
	assert.Equal(t, "01/03/2024 - 03/03/2024", stats.DateRange)
}

func TestService_DashboardCharts(t *testing.T) {
	service := newService(
		saleAt("A", "X", 100, 20, 40, 40, 2, 1),
		saleAt("B", "Y", 600, 120, 240, 40, 4, 2),
		saleAt("B", "X", 50, 10, 20, 40, 1, 2),
	)

	charts, err := service.DashboardCharts()
	require.NoError(t, err)
	require.Len(t, charts, 3)

	assert.Equal(t, "revenue_bar", charts[0].ID)
	assert.Equal(t, []string{"B", "A"}, charts[0].Labels)

	assert.Equal(t, "revenue_pie", charts[1].ID)
	assert.Equal(t, domain.ChartPie, charts[1].Kind)

	// Top produtos soma entre filiais: X = 100 + 50
	assert.Equal(t, "top_products", charts[2].ID)
	assert.Equal(t, []string{"Y", "X"}, charts[2].Labels)
	assert.Equal(t, []float64{600, 150}, charts[2].Values)
}
