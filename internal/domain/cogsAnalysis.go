package domain

// ProductCOGSItem consolida o custo de um produto em uma filial
type ProductCOGSItem struct {
	Menu           string  `json:"menu"`
	Branch         string  `json:"branch"`
	TotalCOGS      float64 `json:"total_cogs"`
	AvgCOGSPct     float64 `json:"avg_cogs_percentage"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalQty       float64 `json:"total_qty"`
	TotalMargin    float64 `json:"total_margin"`
	COGSPerUnit    float64 `json:"cogs_per_unit"`
	RevenuePerUnit float64 `json:"revenue_per_unit"`
	MarginPerUnit  float64 `json:"margin_per_unit"`
	Efficiency     float64 `json:"cogs_efficiency"`
}

// BranchCOGSItem é a eficiência média de COGS de uma filial
type BranchCOGSItem struct {
	Branch     string  `json:"branch"`
	AvgCOGSPct float64 `json:"avg_cogs_percentage"`
	Efficiency float64 `json:"cogs_efficiency"`
}

// COGSVariabilityItem mede a variação do COGS % de um produto entre filiais
// (coeficiente de variação)
type COGSVariabilityItem struct {
	Menu       string  `json:"menu"`
	MeanPct    float64 `json:"mean_cogs_percentage"`
	StdDev     float64 `json:"stddev_cogs_percentage"`
	CV         float64 `json:"coefficient_of_variation"`
	BranchHits int     `json:"branches"`
}

// COGSAnalysisResponse é o payload da visão de análise de COGS
type COGSAnalysisResponse struct {
	Products    []ProductCOGSItem     `json:"products"`
	Branches    []BranchCOGSItem      `json:"branches"`
	Variability []COGSVariabilityItem `json:"variability"`
	Charts      []ChartSeries         `json:"charts"`
}
