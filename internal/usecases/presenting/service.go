// Package presenting transforma os resultados brutos da análise em payloads
// prontos para exibição: moeda formatada, rótulos truncados e badges
// qualitativos
package presenting

import (
	"github.com/vfg2006/branch-analytics-api/internal/config"
	"github.com/vfg2006/branch-analytics-api/internal/domain"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/branch-analytics-api/pkg/utils"
)

// Limites de truncamento por ponto de exibição. São independentes: cada
// chamada usa o seu.
const (
	tableLabelLimit    = 50
	summaryLabelLimit  = 35
	dropdownLabelLimit = 60
)

const topProductsCount = 3

type Presenter interface {
	ProductAnalysis(analysis *analyzing.BranchAnalysis) *domain.ProductAnalysisResponse
	ProductDetail(detail *domain.ProductDetail) *domain.ProductDetailResponse
	Currency(v float64) string
}

type Service struct {
	currencySymbol string
}

func NewService(cfg *config.Config) Presenter {
	return &Service{currencySymbol: cfg.Display.CurrencySymbol}
}

// ProductAnalysis monta a tabela de Top Performers, o resumo e as opções do
// dropdown a partir do ranking bruto
func (s *Service) ProductAnalysis(analysis *analyzing.BranchAnalysis) *domain.ProductAnalysisResponse {
	table := make([]domain.ProductTableRow, len(analysis.Ranked))
	for i, entry := range analysis.Ranked {
		table[i] = domain.ProductTableRow{
			Position:         entry.Position,
			Menu:             utils.TruncateLabel(entry.Menu, tableLabelLimit),
			Revenue:          s.Currency(entry.TotalRevenue),
			Qty:              utils.FormatNumber(entry.TotalQty),
			MarginPercentage: utils.RoundWithTwoDecimalPlace(entry.MarginPercentage),
			AveragePrice:     s.Currency(entry.AveragePrice),
			RankTier:         RankTier(entry.Position),
			MarginTier:       MarginTier(entry.MarginPercentage),
			Status:           CompositeStatus(entry.Position, entry.MarginPercentage),
		}
	}

	options := make([]string, len(analysis.ProductOptions))
	for i, name := range analysis.ProductOptions {
		options[i] = utils.TruncateLabel(name, dropdownLabelLimit)
	}

	return &domain.ProductAnalysisResponse{
		Branch:         analysis.Branch,
		SortKey:        analysis.SortKey,
		Limit:          analysis.Limit,
		Table:          table,
		Summary:        s.summary(analysis),
		ProductOptions: options,
	}
}

// ProductDetail formata a visão de um único produto. A decomposição segue
// numérica: ela alimenta o colaborador de gráficos, não a tela.
func (s *Service) ProductDetail(detail *domain.ProductDetail) *domain.ProductDetailResponse {
	return &domain.ProductDetailResponse{
		Menu:             detail.Menu,
		Branch:           detail.Branch,
		TotalRevenue:     s.Currency(detail.TotalRevenue),
		TotalQty:         utils.FormatNumber(detail.TotalQty),
		TotalMargin:      s.Currency(detail.TotalMargin),
		MarginPercentage: utils.RoundWithTwoDecimalPlace(detail.MarginPercentage),
		Breakdown:        detail.Breakdown,
	}
}

// Currency formata um valor com o símbolo configurado da aplicação
func (s *Service) Currency(v float64) string {
	return utils.FormatCurrency(s.currencySymbol, v)
}

// summary resume as entradas exibidas: top 3 nomes, receita total e margem
// média ponderada pela receita
func (s *Service) summary(analysis *analyzing.BranchAnalysis) domain.ProductSummary {
	var topProducts []string
	for i, entry := range analysis.Ranked {
		if i >= topProductsCount {
			break
		}
		topProducts = append(topProducts, utils.TruncateLabel(entry.Menu, summaryLabelLimit))
	}

	var revenue, margin float64
	for _, entry := range analysis.Ranked {
		revenue += entry.TotalRevenue
		margin += entry.TotalMargin
	}

	return domain.ProductSummary{
		TopProducts:  topProducts,
		TotalRevenue: s.Currency(revenue),
		AvgMarginPct: utils.FormatPercentage(utils.SafePercentage(margin, revenue)),
		ShownCount:   len(analysis.Ranked),
		TotalCount:   analysis.TotalCount,
	}
}

// RankTier classifica a posição no ranking. Só existem três níveis aqui,
// diferente do tier de margem.
func RankTier(position int) string {
	switch {
	case position <= 3:
		return "excellent"
	case position <= 10:
		return "good"
	default:
		return "fair"
	}
}

// MarginTier classifica a margem percentual em quatro níveis
func MarginTier(marginPct float64) string {
	switch {
	case marginPct > 30:
		return "excellent"
	case marginPct > 20:
		return "good"
	case marginPct > 10:
		return "fair"
	default:
		return "poor"
	}
}

// CompositeStatus combina posição E margem, avaliado nesta ordem de
// prioridade: a primeira regra que casar vence
func CompositeStatus(position int, marginPct float64) string {
	switch {
	case position <= 3 && marginPct > 20:
		return "Star Product"
	case position <= 10 && marginPct > 15:
		return "Good Performer"
	case marginPct > 10:
		return "Average"
	default:
		return "Needs Review"
	}
}
