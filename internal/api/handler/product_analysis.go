package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/branch-analytics-api/internal/domain"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/presenting"
	"github.com/vfg2006/branch-analytics-api/pkg/apiErrors"
)

// GetProductAnalysis retorna a tabela de Top Performers de uma filial.
// Parâmetros: sort_key (revenue, quantity, margin_percentage) e limit
// (ausente ou <= 0 significa sem corte).
func GetProductAnalysis(analyzer analyzing.Analyzer, presenter presenting.Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branch := httprouter.ParamsFromContext(r.Context()).ByName("branch")

		sortKey := r.URL.Query().Get("sort_key")
		if sortKey == "" {
			sortKey = domain.SortByRevenue
		}

		limit := domain.UnlimitedResults
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Limite inválido", map[string]string{"limit": raw})
				return
			}
			limit = parsed
		}

		analysis, err := analyzer.AnalyzeBranch(branch, sortKey, limit)
		if err != nil {
			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, presenter.ProductAnalysis(analysis))
	}
}

// GetProductDetail retorna a visão de um único produto da filial, com a
// decomposição para o gráfico. O produto vem por query string porque nomes
// de menu podem conter barras.
func GetProductDetail(analyzer analyzing.Analyzer, presenter presenting.Presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branch := httprouter.ParamsFromContext(r.Context()).ByName("branch")

		menu := r.URL.Query().Get("menu")
		if menu == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Produto não informado", nil)
			return
		}

		detail, err := analyzer.ProductDetail(branch, menu)
		if err != nil {
			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, presenter.ProductDetail(detail))
	}
}
