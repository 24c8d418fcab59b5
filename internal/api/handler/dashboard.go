package handler

import (
	"net/http"

	"github.com/vfg2006/branch-analytics-api/internal/domain"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/comparing"
)

// DashboardResponse reúne os indicadores e as séries da página inicial
type DashboardResponse struct {
	Summary *domain.SummaryStats `json:"summary"`
	Charts  []domain.ChartSeries `json:"charts"`
}

// GetDashboard retorna o resumo geral do dataset e os gráficos do dashboard
func GetDashboard(service comparing.Comparer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := service.SummaryStats()
		if err != nil {
			writeUsecaseError(w, err)
			return
		}

		charts, err := service.DashboardCharts()
		if err != nil {
			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, DashboardResponse{Summary: summary, Charts: charts})
	}
}

// GetBranchComparison retorna o ranking de filiais, os insights de
// concentração e os gráficos da visão de comparação
func GetBranchComparison(service comparing.Comparer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := service.BranchComparison()
		if err != nil {
			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, resp)
	}
}
