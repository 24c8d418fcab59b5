package presenting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/branch-analytics-api/internal/config"
	"github.com/vfg2006/branch-analytics-api/internal/domain"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/analyzing"
)

func newPresenter() Presenter {
	cfg := &config.Config{}
	cfg.Display.CurrencySymbol = "Rp"
	return NewService(cfg)
}

func TestRankTier(t *testing.T) {
	assert.Equal(t, "excellent", RankTier(1))
	assert.Equal(t, "excellent", RankTier(3))
	assert.Equal(t, "good", RankTier(4))
	assert.Equal(t, "good", RankTier(10))
	assert.Equal(t, "fair", RankTier(11))
}

func TestMarginTier(t *testing.T) {
	assert.Equal(t, "excellent", MarginTier(30.1))
	assert.Equal(t, "good", MarginTier(30))
	assert.Equal(t, "good", MarginTier(20.5))
	assert.Equal(t, "fair", MarginTier(20))
	assert.Equal(t, "fair", MarginTier(10.5))
	assert.Equal(t, "poor", MarginTier(10))
	assert.Equal(t, "poor", MarginTier(-5))
}

func TestCompositeStatus(t *testing.T) {
	tests := []struct {
		name      string
		position  int
		marginPct float64
		want      string
	}{
		// Regra composta, não concatenação de tiers: rank 2 com margem 25
		// é Star Product mesmo com os dois tiers individuais em "excellent"
		{name: "top 3 com margem alta", position: 2, marginPct: 25, want: "Star Product"},
		{name: "top 3 com margem baixa cai na regra seguinte", position: 2, marginPct: 16, want: "Good Performer"},
		{name: "top 10 com margem razoável", position: 8, marginPct: 18, want: "Good Performer"},
		{name: "margem acima de 10 independe da posição", position: 50, marginPct: 12, want: "Average"},
		{name: "sem regra aplicável", position: 50, marginPct: 5, want: "Needs Review"},
		{name: "top 3 com margem ruim", position: 1, marginPct: 8, want: "Needs Review"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompositeStatus(tt.position, tt.marginPct))
		})
	}
}

func TestService_ProductAnalysis(t *testing.T) {
	longName := strings.Repeat("Nasi Goreng Spesial ", 4) // 80 caracteres

	analysis := &analyzing.BranchAnalysis{
		Branch:  "A",
		SortKey: domain.SortByRevenue,
		Limit:   10,
		Ranked: []domain.RankedEntry{
			{ProductAggregate: domain.ProductAggregate{Menu: longName, TotalRevenue: 12500, TotalQty: 100, TotalMargin: 3125, MarginPercentage: 25, AveragePrice: 125}, Position: 1},
			{ProductAggregate: domain.ProductAggregate{Menu: "Es Teh", TotalRevenue: 7500, TotalQty: 500, TotalMargin: 750, MarginPercentage: 10, AveragePrice: 15}, Position: 2},
		},
		ProductOptions: []string{"Es Teh", longName},
		TotalCount:     7,
	}

	resp := newPresenter().ProductAnalysis(analysis)

	require.Len(t, resp.Table, 2)
	first := resp.Table[0]
	assert.Equal(t, 1, first.Position)
	// Tabela trunca em 50 + reticências
	assert.Equal(t, 53, len([]rune(first.Menu)))
	assert.True(t, strings.HasSuffix(first.Menu, "..."))
	assert.Equal(t, "Rp 12,500", first.Revenue)
	assert.Equal(t, "100", first.Qty)
	assert.Equal(t, "Rp 125", first.AveragePrice)
	assert.Equal(t, "excellent", first.RankTier)
	assert.Equal(t, "good", first.MarginTier)
	assert.Equal(t, "Star Product", first.Status)

	second := resp.Table[1]
	assert.Equal(t, "Needs Review", second.Status)

	// Resumo: top 3 truncado em 35, totais sobre as entradas exibidas e
	// margem média ponderada pela receita
	require.Len(t, resp.Summary.TopProducts, 2)
	assert.Equal(t, 38, len([]rune(resp.Summary.TopProducts[0])))
	assert.Equal(t, "Rp 20,000", resp.Summary.TotalRevenue)
	assert.Equal(t, "19.4%", resp.Summary.AvgMarginPct)
	assert.Equal(t, 2, resp.Summary.ShownCount)
	assert.Equal(t, 7, resp.Summary.TotalCount)

	// Dropdown trunca em 60
	require.Len(t, resp.ProductOptions, 2)
	assert.Equal(t, "Es Teh", resp.ProductOptions[0])
	assert.Equal(t, 63, len([]rune(resp.ProductOptions[1])))
}

func TestService_ProductDetail(t *testing.T) {
	detail := &domain.ProductDetail{
		Menu:             "Nasi Goreng",
		Branch:           "A",
		TotalRevenue:     250,
		TotalQty:         5,
		TotalMargin:      50,
		MarginPercentage: 20,
		Breakdown: []domain.BreakdownComponent{
			{Label: "Net Revenue", Value: 150},
			{Label: "Margin", Value: 50},
			{Label: "COGS", Value: 100},
		},
	}

	resp := newPresenter().ProductDetail(detail)
	assert.Equal(t, "Rp 250", resp.TotalRevenue)
	assert.Equal(t, "5", resp.TotalQty)
	assert.Equal(t, "Rp 50", resp.TotalMargin)
	assert.Equal(t, 20.0, resp.MarginPercentage)
	// A decomposição segue numérica para o gráfico
	assert.Len(t, resp.Breakdown, 3)
}
