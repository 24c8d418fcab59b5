package domain

import "time"

// HourlyPoint agrega as vendas de uma filial por hora do dia
type HourlyPoint struct {
	Branch  string  `json:"branch"`
	Hour    int     `json:"hour"`
	Revenue float64 `json:"revenue"`
	Qty     float64 `json:"qty"`
	Margin  float64 `json:"margin"`
}

// DayOfWeekPoint agrega as vendas de uma filial por dia da semana
type DayOfWeekPoint struct {
	Branch     string  `json:"branch"`
	Day        string  `json:"day"`
	Revenue    float64 `json:"revenue"`
	AvgRevenue float64 `json:"avg_revenue"`
	Qty        float64 `json:"qty"`
}

// DailyPoint agrega as vendas de uma filial por data
type DailyPoint struct {
	Branch  string    `json:"branch"`
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
	Qty     float64   `json:"qty"`
	Margin  float64   `json:"margin"`
}

// WeeklyPoint agrega as vendas de uma filial por semana ISO
type WeeklyPoint struct {
	Branch  string  `json:"branch"`
	Week    int     `json:"week"`
	Revenue float64 `json:"revenue"`
	Qty     float64 `json:"qty"`
}

// MonthlyPoint agrega as vendas de uma filial por mês
type MonthlyPoint struct {
	Branch  string  `json:"branch"`
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
	Qty     float64 `json:"qty"`
	Margin  float64 `json:"margin"`
}

// TimeAnalysis reúne todas as visões temporais de todas as filiais
type TimeAnalysis struct {
	Hourly       []HourlyPoint    `json:"hourly"`
	DailyPattern []DayOfWeekPoint `json:"daily_pattern"`
	DailyTrend   []DailyPoint     `json:"daily_trend"`
	Weekly       []WeeklyPoint    `json:"weekly"`
	Monthly      []MonthlyPoint   `json:"monthly"`
}

// TimeAnalysisResponse é o payload da visão de tendências temporais
type TimeAnalysisResponse struct {
	Analysis TimeAnalysis  `json:"analysis"`
	Charts   []ChartSeries `json:"charts"`
	Summary  struct {
		TotalBranches int    `json:"total_branches"`
		DateRange     string `json:"date_range"`
		TotalRecords  int    `json:"total_records"`
	} `json:"summary"`
}
