package domain

// Chaves de ordenação aceitas pelo ranking de produtos
const (
	SortByRevenue          = "revenue"
	SortByQuantity         = "quantity"
	SortByMarginPercentage = "margin_percentage"
)

// UnlimitedResults é o sentinela de "sem limite" para o ranking
const UnlimitedResults = 0

// ProductAggregate acumula as vendas de um produto dentro da filial
// selecionada. Os campos derivados são calculados uma única vez após a
// acumulação, com fallback 0 quando o denominador é 0.
type ProductAggregate struct {
	Menu             string  `json:"menu"`
	TotalQty         float64 `json:"total_qty"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalMargin      float64 `json:"total_margin"`
	MarginPercentage float64 `json:"margin_percentage"`
	AveragePrice     float64 `json:"average_price"`
}

// RankedEntry é um agregado de produto com a posição (1-based) após a
// ordenação e o corte do ranking
type RankedEntry struct {
	ProductAggregate
	Position int `json:"position"`
}

// BreakdownComponent é uma fatia da decomposição financeira entregue ao
// colaborador de gráficos
type BreakdownComponent struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ProductDetail é a visão de um único produto em uma filial: totais
// recalculados a partir dos registros brutos e a decomposição em três
// componentes (receita líquida, margem, COGS), já filtrada para valores
// estritamente positivos.
type ProductDetail struct {
	Menu             string               `json:"menu"`
	Branch           string               `json:"branch"`
	TotalRevenue     float64              `json:"total_revenue"`
	TotalQty         float64              `json:"total_qty"`
	TotalMargin      float64              `json:"total_margin"`
	TotalCOGS        float64              `json:"total_cogs"`
	MarginPercentage float64              `json:"margin_percentage"`
	Breakdown        []BreakdownComponent `json:"breakdown"`
}

// ProductTableRow é uma linha formatada da tabela de Top Performers
type ProductTableRow struct {
	Position         int     `json:"position"`
	Menu             string  `json:"menu"`
	Revenue          string  `json:"revenue"`
	Qty              string  `json:"qty"`
	MarginPercentage float64 `json:"margin_percentage"`
	AveragePrice     string  `json:"average_price"`
	RankTier         string  `json:"rank_tier"`
	MarginTier       string  `json:"margin_tier"`
	Status           string  `json:"status"`
}

// ProductSummary resume o ranking exibido (top 3, totais e contagens)
type ProductSummary struct {
	TopProducts      []string `json:"top_products"`
	TotalRevenue     string   `json:"total_revenue"`
	AvgMarginPct     string   `json:"avg_margin_percentage"`
	ShownCount       int      `json:"shown_count"`
	TotalCount       int      `json:"total_count"`
}

// ProductAnalysisResponse é o payload completo da análise de produtos de uma
// filial: tabela ranqueada, resumo e opções do dropdown de produtos
type ProductAnalysisResponse struct {
	Branch         string            `json:"branch"`
	SortKey        string            `json:"sort_key"`
	Limit          int               `json:"limit"`
	Table          []ProductTableRow `json:"table"`
	Summary        ProductSummary    `json:"summary"`
	ProductOptions []string          `json:"product_options"`
}

// ProductDetailResponse é o payload da visão de um único produto
type ProductDetailResponse struct {
	Menu             string               `json:"menu"`
	Branch           string               `json:"branch"`
	TotalRevenue     string               `json:"total_revenue"`
	TotalQty         string               `json:"total_qty"`
	TotalMargin      string               `json:"total_margin"`
	MarginPercentage float64              `json:"margin_percentage"`
	Breakdown        []BreakdownComponent `json:"breakdown"`
}
