package handler

import (
	"net/http"

	"github.com/vfg2006/branch-analytics-api/internal/usecases/costing"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/trending"
)

// GetTrends retorna as visões temporais de todas as filiais
func GetTrends(service trending.Trender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := service.TimeAnalysis()
		if err != nil {
			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, resp)
	}
}

// GetCOGSAnalysis retorna a análise de custo por produto e filial
func GetCOGSAnalysis(service costing.Coster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := service.COGSAnalysis()
		if err != nil {
			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, resp)
	}
}
