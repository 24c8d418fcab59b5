package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/branch-analytics-api/infrastructure/dataset"
	"github.com/vfg2006/branch-analytics-api/internal/api/handler/router"
	"github.com/vfg2006/branch-analytics-api/internal/config"
	"github.com/vfg2006/branch-analytics-api/internal/domain"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/comparing"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/presenting"
	"github.com/vfg2006/branch-analytics-api/pkg/apiErrors"
)

func testRouter(store *dataset.Store, selection *analyzing.Selection) router.Router {
	cfg := &config.Config{}
	cfg.Display.CurrencySymbol = "Rp"

	analyzer := analyzing.NewService(store)
	presenter := presenting.NewService(cfg)
	comparer := comparing.NewService(cfg, store)

	return router.New(
		router.WithRoutes(Uploads(cfg, nil, store, selection)...),
		router.WithRoutes(Dashboard(comparer)...),
		router.WithRoutes(ProductAnalysis(analyzer, presenter)...),
		router.WithRoutes(Selection(selection)...),
	)
}

func storeWithSales() *dataset.Store {
	store := dataset.NewStore()
	store.Replace([]domain.SalesRecord{
		{Branch: "Cabang A", Menu: "Nasi Goreng", Qty: 2, Total: 100, Margin: 25, COGSTotal: 40},
		{Branch: "Cabang A", Menu: "Es Teh", Qty: 5, Total: 50, Margin: 5, COGSTotal: 20},
		{Branch: "Cabang B", Menu: "Bakso", Qty: 1, Total: 40, Margin: 4, COGSTotal: 20},
	}, map[string]domain.BranchFile{})
	return store
}

func doRequest(t *testing.T, rt router.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestGetProductAnalysis(t *testing.T) {
	rt := testRouter(storeWithSales(), analyzing.NewSelection())

	rec := doRequest(t, rt, http.MethodGet, "/v1/branches/Cabang%20A/products?sort_key=revenue&limit=10", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.ProductAnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Cabang A", resp.Branch)
	require.Len(t, resp.Table, 2)
	assert.Equal(t, "Nasi Goreng", resp.Table[0].Menu)
	assert.Equal(t, 1, resp.Table[0].Position)
	assert.Equal(t, "Rp 100", resp.Table[0].Revenue)
	assert.Equal(t, "Star Product", resp.Table[0].Status)
	assert.Equal(t, 2, resp.Summary.TotalCount)
	assert.Equal(t, []string{"Es Teh", "Nasi Goreng"}, resp.ProductOptions)
}

func TestGetProductAnalysis_Errors(t *testing.T) {
	rt := testRouter(storeWithSales(), analyzing.NewSelection())

	// Chave de ordenação desconhecida falha alto
	rec := doRequest(t, rt, http.MethodGet, "/v1/branches/Cabang%20A/products?sort_key=profit", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidSortKey, decodeError(t, rec).Code)

	// Filial sem registros
	rec = doRequest(t, rt, http.MethodGet, "/v1/branches/Inexistente/products", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrNoDataForSelection, decodeError(t, rec).Code)

	// Limite não numérico
	rec = doRequest(t, rt, http.MethodGet, "/v1/branches/Cabang%20A/products?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidRequest, decodeError(t, rec).Code)
}

func TestGetProductDetail(t *testing.T) {
	rt := testRouter(storeWithSales(), analyzing.NewSelection())

	rec := doRequest(t, rt, http.MethodGet, "/v1/branches/Cabang%20A/products/detail?menu=Nasi%20Goreng", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.ProductDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Rp 100", resp.TotalRevenue)
	assert.Len(t, resp.Breakdown, 3)

	// Sem o produto na query: dado obrigatório ausente
	rec = doRequest(t, rt, http.MethodGet, "/v1/branches/Cabang%20A/products/detail", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeError(t, rec).Code)
}

func TestGetDataset(t *testing.T) {
	rt := testRouter(dataset.NewStore(), analyzing.NewSelection())

	rec := doRequest(t, rt, http.MethodGet, "/v1/dataset", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apiErrors.ErrNoDatasetLoaded, decodeError(t, rec).Code)
}

func TestGetDashboard(t *testing.T) {
	rt := testRouter(storeWithSales(), analyzing.NewSelection())

	rec := doRequest(t, rt, http.MethodGet, "/v1/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Summary.TotalBranches)
	assert.Equal(t, 190.0, resp.Summary.TotalRevenue)
	assert.Len(t, resp.Charts, 3)
}

func TestSelectionFlow(t *testing.T) {
	selection := analyzing.NewSelection()
	rt := testRouter(storeWithSales(), selection)

	// Sem filial, selecionar produto é uma pré-condição violada
	rec := doRequest(t, rt, http.MethodPut, "/v1/selection/product", `{"product":"Nasi Goreng"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrNoBranchSelected, decodeError(t, rec).Code)

	rec = doRequest(t, rt, http.MethodPut, "/v1/selection/branch", `{"branch":"Cabang A"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, rt, http.MethodPut, "/v1/selection/product", `{"product":"Nasi Goreng"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var view analyzing.SelectionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, analyzing.StateProductSelected, view.State)

	// Trocar de filial zera o produto
	rec = doRequest(t, rt, http.MethodPut, "/v1/selection/branch", `{"branch":"Cabang B"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, analyzing.StateBranchSelected, view.State)
	assert.Empty(t, view.Product)
}
