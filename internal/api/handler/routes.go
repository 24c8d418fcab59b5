package handler

import (
	"net/http"

	"github.com/vfg2006/branch-analytics-api/infrastructure/dataset"
	"github.com/vfg2006/branch-analytics-api/infrastructure/excel"
	"github.com/vfg2006/branch-analytics-api/internal/api/handler/router"
	"github.com/vfg2006/branch-analytics-api/internal/config"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/chatting"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/comparing"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/costing"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/presenting"
	"github.com/vfg2006/branch-analytics-api/internal/usecases/trending"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Uploads(cfg *config.Config, loader *excel.Loader, store *dataset.Store, selection *analyzing.Selection) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/uploads",
			Method:  http.MethodPost,
			Handler: UploadFiles(cfg, loader, store, selection),
		},
		{
			Path:    "/v1/dataset",
			Method:  http.MethodGet,
			Handler: GetDataset(store),
		},
		{
			Path:    "/v1/dataset",
			Method:  http.MethodDelete,
			Handler: ClearDataset(store, selection),
		},
	}
}

func Dashboard(service comparing.Comparer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(service),
		},
		{
			Path:    "/v1/branches/comparison",
			Method:  http.MethodGet,
			Handler: GetBranchComparison(service),
		},
	}
}

func ProductAnalysis(analyzer analyzing.Analyzer, presenter presenting.Presenter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/branches/:branch/products",
			Method:  http.MethodGet,
			Handler: GetProductAnalysis(analyzer, presenter),
		},
		{
			Path:    "/v1/branches/:branch/products/detail",
			Method:  http.MethodGet,
			Handler: GetProductDetail(analyzer, presenter),
		},
	}
}

func Selection(selection *analyzing.Selection) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/selection",
			Method:  http.MethodGet,
			Handler: GetSelection(selection),
		},
		{
			Path:    "/v1/selection/branch",
			Method:  http.MethodPut,
			Handler: SelectBranch(selection),
		},
		{
			Path:    "/v1/selection/product",
			Method:  http.MethodPut,
			Handler: SelectProduct(selection),
		},
		{
			Path:    "/v1/selection/sorting",
			Method:  http.MethodPut,
			Handler: SelectSorting(selection),
		},
	}
}

func Trends(service trending.Trender) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/trends",
			Method:  http.MethodGet,
			Handler: GetTrends(service),
		},
	}
}

func COGS(service costing.Coster) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cogs",
			Method:  http.MethodGet,
			Handler: GetCOGSAnalysis(service),
		},
	}
}

func ChatRoutes(service chatting.Chatter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/chat",
			Method:  http.MethodPost,
			Handler: Chat(service),
		},
		{
			Path:    "/v1/chat/status",
			Method:  http.MethodGet,
			Handler: ChatStatus(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
