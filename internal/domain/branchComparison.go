package domain

import "time"

// BranchComparisonItem consolida a performance de uma filial no período do
// dataset carregado
type BranchComparisonItem struct {
	Branch           string    `json:"branch"`
	TotalRevenue     float64   `json:"total_revenue"`
	AvgTransaction   float64   `json:"avg_transaction"`
	TransactionCount int       `json:"transaction_count"`
	TotalMargin      float64   `json:"total_margin"`
	AvgMargin        float64   `json:"avg_margin"`
	TotalCOGS        float64   `json:"total_cogs"`
	TotalQty         float64   `json:"total_qty"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	MarginPercentage float64   `json:"margin_percentage"`
	COGSPercentage   float64   `json:"cogs_percentage"`
	RevenuePerDay    float64   `json:"revenue_per_day"`
	RevenueRank      int       `json:"revenue_rank"`
}

// SummaryStats são os indicadores do dashboard principal
type SummaryStats struct {
	TotalBranches       int                   `json:"total_branches"`
	TotalRecords        int                   `json:"total_records"`
	DateRange           string                `json:"date_range"`
	TotalRevenue        float64               `json:"total_revenue"`
	TotalMargin         float64               `json:"total_margin"`
	TotalCOGS           float64               `json:"total_cogs"`
	AvgCOGSPercentage   float64               `json:"avg_cogs_percentage"`
	GrossMarginPct      float64               `json:"gross_margin_percentage"`
	TotalTransactions   int                   `json:"total_transactions"`
	UniqueProducts      int                   `json:"unique_products"`
	AvgTransactionValue float64               `json:"avg_transaction_value"`
	Files               map[string]BranchFile `json:"files_processed"`
}

// CrossBranchInsights mede a concentração de receita entre filiais
type CrossBranchInsights struct {
	Top3RevenueShare    float64 `json:"top_3_branches_share"`
	Bottom3RevenueShare float64 `json:"bottom_3_branches_share"`
	RevenueInequality   float64 `json:"revenue_inequality"`
}

// BranchComparisonResponse é o payload da visão de comparação de filiais
type BranchComparisonResponse struct {
	Ranking  []BranchComparisonItem `json:"ranking"`
	Insights CrossBranchInsights    `json:"insights"`
	Charts   []ChartSeries          `json:"charts"`
}
