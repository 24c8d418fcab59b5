package handler

import (
	"net/http"

	"github.com/vfg2006/branch-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/branch-analytics-api/pkg/apiErrors"
)

type selectBranchRequest struct {
	Branch string `json:"branch"`
}

type selectProductRequest struct {
	Product string `json:"product"`
}

type selectSortingRequest struct {
	SortKey string `json:"sort_key"`
	Limit   int    `json:"limit"`
}

// GetSelection retorna a seleção ativa do dashboard
func GetSelection(selection *analyzing.Selection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, selection.View())
	}
}

// SelectBranch troca a filial ativa. Seleção vazia volta ao estado inicial;
// qualquer troca descarta o produto selecionado.
func SelectBranch(selection *analyzing.Selection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selectBranchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		respondJSON(w, selection.SelectBranch(req.Branch))
	}
}

// SelectProduct marca um produto da filial ativa
func SelectProduct(selection *analyzing.Selection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selectProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		view, err := selection.SelectProduct(req.Product)
		if err != nil {
			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, view)
	}
}

// SelectSorting ajusta a chave de ordenação e o limite da seleção ativa
func SelectSorting(selection *analyzing.Selection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selectSortingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		view, err := selection.SetSorting(req.SortKey, req.Limit)
		if err != nil {
			writeUsecaseError(w, err)
			return
		}

		respondJSON(w, view)
	}
}
