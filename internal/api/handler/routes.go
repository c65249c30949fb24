package handler

import (
	"net/http"

	"github.com/vfg2006/campaign-pipeline-api/internal/api/handler/router"
	"github.com/vfg2006/campaign-pipeline-api/internal/scheduler"
	"github.com/vfg2006/campaign-pipeline-api/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-pipeline-api/internal/usecases/pipelining"
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

func Pipeline(service pipelining.Pipeliner) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/pipeline/run",
			Method:  http.MethodPost,
			Handler: RunPipeline(service),
		},
	}
}

func Fact(service pipelining.Pipeliner) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/fact/preview",
			Method:  http.MethodGet,
			Handler: PreviewFact(service),
		},
		{
			Path:    "/v1/fact/export",
			Method:  http.MethodGet,
			Handler: ExportFact(service),
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
			Handler: CreateUser(service),
		},
		{
			Path:    "/v1/me",
			Method:  http.MethodGet,
			Handler: GetMe(service),
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

// CronJobServices contém os serviços de cron necessários para execução manual
type CronJobServices struct {
	RepublishSyncService *scheduler.RepublishSyncService
}
