// Package analyzing implementa o pipeline de análise de produtos por filial:
// filtro de filial, agregação por produto, ranking e resolução de detalhe.
// Todos os estágios são funções puras sobre o snapshot do dataset; nada é
// cacheado entre chamadas.
package analyzing

import (
	"sort"

	"github.com/vfg2006/branch-analytics-api/infrastructure/dataset"
	"github.com/vfg2006/branch-analytics-api/internal/domain"
	"github.com/vfg2006/branch-analytics-api/pkg/utils"
)

// BranchAnalysis é o resultado bruto (ainda não formatado) da análise de uma
// filial: ranking cortado, contagem total antes do corte e as opções de
// produto do dropdown
type BranchAnalysis struct {
	Branch         string
	SortKey        string
	Limit          int
	Ranked         []domain.RankedEntry
	ProductOptions []string
	TotalCount     int
}

type Analyzer interface {
	AnalyzeBranch(branch, sortKey string, limit int) (*BranchAnalysis, error)
	ProductDetail(branch, menu string) (*domain.ProductDetail, error)
}

type Service struct {
	store *dataset.Store
}

func NewService(store *dataset.Store) Analyzer {
	return &Service{store: store}
}

// AnalyzeBranch executa o pipeline completo para uma filial: filtro,
// agregação, ranking e lista de produtos. A filial vazia é uma pré-condição
// violada, não um resultado vazio.
func (s *Service) AnalyzeBranch(branch, sortKey string, limit int) (*BranchAnalysis, error) {
	if branch == "" {
		return nil, ErrNoBranchSelected
	}

	filtered := FilterBranch(s.store.Snapshot(), branch)
	if len(filtered) == 0 {
		return nil, ErrNoDataForSelection
	}

	aggregates := AggregateProducts(filtered)

	ranked, err := RankProducts(aggregates, sortKey, limit)
	if err != nil {
		return nil, err
	}

	return &BranchAnalysis{
		Branch:         branch,
		SortKey:        sortKey,
		Limit:          limit,
		Ranked:         ranked,
		ProductOptions: productNames(aggregates),
		TotalCount:     len(aggregates),
	}, nil
}

// ProductDetail recalcula os totais de um produto em uma filial a partir dos
// registros brutos e monta a decomposição em três componentes, mantendo
// apenas os estritamente positivos
func (s *Service) ProductDetail(branch, menu string) (*domain.ProductDetail, error) {
	if branch == "" {
		return nil, ErrNoBranchSelected
	}

	var revenue, qty, margin, cogs float64
	found := false
	for _, r := range s.store.Snapshot() {
		if r.Branch != branch || r.Menu != menu {
			continue
		}
		found = true
		revenue += r.Total
		qty += r.Qty
		margin += r.Margin
		cogs += r.COGSTotal
	}

	if !found {
		return nil, ErrNoDataForSelection
	}

	detail := &domain.ProductDetail{
		Menu:             menu,
		Branch:           branch,
		TotalRevenue:     revenue,
		TotalQty:         qty,
		TotalMargin:      margin,
		TotalCOGS:        cogs,
		MarginPercentage: utils.SafePercentage(margin, revenue),
	}

	components := []domain.BreakdownComponent{
		{Label: "Net Revenue", Value: revenue - cogs},
		{Label: "Margin", Value: margin},
		{Label: "COGS", Value: cogs},
	}
	for _, c := range components {
		if c.Value > 0 {
			detail.Breakdown = append(detail.Breakdown, c)
		}
	}

	if len(detail.Breakdown) == 0 {
		return nil, ErrInvalidBreakdown
	}

	return detail, nil
}

// FilterBranch retorna a subsequência de registros da filial, comparando o
// nome de forma exata e sensível a maiúsculas
func FilterBranch(records []domain.SalesRecord, branch string) []domain.SalesRecord {
	var filtered []domain.SalesRecord
	for _, r := range records {
		if r.Branch == branch {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// AggregateProducts agrupa os registros por produto na ordem de primeira
// aparição e deriva margem percentual e preço médio com fallback 0 quando o
// denominador é 0
func AggregateProducts(records []domain.SalesRecord) []domain.ProductAggregate {
	index := make(map[string]int)
	var aggregates []domain.ProductAggregate

	for _, r := range records {
		i, ok := index[r.Menu]
		if !ok {
			i = len(aggregates)
			index[r.Menu] = i
			aggregates = append(aggregates, domain.ProductAggregate{Menu: r.Menu})
		}

		aggregates[i].TotalQty += r.Qty
		aggregates[i].TotalRevenue += r.Total
		aggregates[i].TotalMargin += r.Margin
	}

	for i := range aggregates {
		aggregates[i].MarginPercentage = utils.SafePercentage(aggregates[i].TotalMargin, aggregates[i].TotalRevenue)
		aggregates[i].AveragePrice = utils.SafeDivide(aggregates[i].TotalRevenue, aggregates[i].TotalQty)
	}

	return aggregates
}

// RankProducts ordena os agregados pela chave pedida em ordem decrescente,
// preservando a ordem de inserção em caso de empate, corta pelo limite e
// atribui as posições 1-based. Limite <= 0 significa sem corte.
func RankProducts(aggregates []domain.ProductAggregate, sortKey string, limit int) ([]domain.RankedEntry, error) {
	value, err := sortKeyValue(sortKey)
	if err != nil {
		return nil, err
	}

	sorted := make([]domain.ProductAggregate, len(aggregates))
	copy(sorted, aggregates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return value(sorted[i]) > value(sorted[j])
	})

	if limit > domain.UnlimitedResults && limit < len(sorted) {
		sorted = sorted[:limit]
	}

	ranked := make([]domain.RankedEntry, len(sorted))
	for i, agg := range sorted {
		ranked[i] = domain.RankedEntry{ProductAggregate: agg, Position: i + 1}
	}

	return ranked, nil
}

func sortKeyValue(sortKey string) (func(domain.ProductAggregate) float64, error) {
	switch sortKey {
	case domain.SortByRevenue:
		return func(a domain.ProductAggregate) float64 { return a.TotalRevenue }, nil
	case domain.SortByQuantity:
		return func(a domain.ProductAggregate) float64 { return a.TotalQty }, nil
	case domain.SortByMarginPercentage:
		return func(a domain.ProductAggregate) float64 { return a.MarginPercentage }, nil
	default:
		return nil, ErrInvalidSortKey
	}
}

func productNames(aggregates []domain.ProductAggregate) []string {
	names := make([]string, len(aggregates))
	for i, agg := range aggregates {
		names[i] = agg.Menu
	}
	sort.Strings(names)
	return names
}
