package handler

import (
	"net/http"

	"github.com/vfg2006/rank-tracker-api/internal/api/handler/router"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/scanning"
	"github.com/vfg2006/rank-tracker-api/internal/usecases/tracking"
	"github.com/vfg2006/rank-tracker-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: MetricsHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Keywords(service tracking.TrackingService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/keywords/search",
			Method:      http.MethodPost,
			Handler:     SearchKeywords(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/keywords",
			Method:      http.MethodGet,
			Handler:     ListKeywords(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/keywords/options",
			Method:      http.MethodGet,
			Handler:     KeywordOptions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/quota/keywords",
			Method:      http.MethodGet,
			Handler:     KeywordQuota(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/rankmap",
			Method:      http.MethodPost,
			Handler:     RankMap(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// ScanMap retorna as rotas das campanhas de scan e da gestão de créditos
func ScanMap(service scanning.ScanService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/scanmap",
			Method:      http.MethodPost,
			Handler:     CreateScanCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/scanmap/usage",
			Method:      http.MethodGet,
			Handler:     ScanUsage(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/admin/users/:id/scan-credits",
			Method:      http.MethodPost,
			Handler:     GrantScanCredits(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
