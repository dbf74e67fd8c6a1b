package handler

import (
	"net/http"

	"github.com/vfg2006/adcp-dispatch-api/internal/api/handler/router"
	"github.com/vfg2006/adcp-dispatch-api/internal/usecases/authenticating"
	"github.com/vfg2006/adcp-dispatch-api/internal/usecases/dispatching"
	"github.com/vfg2006/adcp-dispatch-api/pkg/middleware"
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

// MediaBuys retorna as rotas de compra do protocolo. Todas exigem a chave de
// API do comprador.
func MediaBuys(service dispatching.Dispatcher, auth authenticating.Authenticator) []router.Route {
	buyerAuth := []func(http.Handler) http.Handler{middleware.PrincipalAuth(auth)}

	return []router.Route{
		{
			Path:        "/v1/media-buys",
			Method:      http.MethodPost,
			Handler:     CreateMediaBuy(service),
			Middlewares: buyerAuth,
		},
		{
			Path:        "/v1/media-buys",
			Method:      http.MethodGet,
			Handler:     ListMediaBuys(service),
			Middlewares: buyerAuth,
		},
		{
			Path:        "/v1/media-buys/:id",
			Method:      http.MethodPut,
			Handler:     UpdateMediaBuy(service),
			Middlewares: buyerAuth,
		},
		{
			Path:        "/v1/media-buys/:id/creatives",
			Method:      http.MethodPost,
			Handler:     AddCreativeAssets(service),
			Middlewares: buyerAuth,
		},
		{
			Path:        "/v1/media-buys/:id/status",
			Method:      http.MethodGet,
			Handler:     CheckMediaBuyStatus(service),
			Middlewares: buyerAuth,
		},
		{
			Path:        "/v1/media-buys/:id/delivery",
			Method:      http.MethodGet,
			Handler:     GetMediaBuyDelivery(service),
			Middlewares: buyerAuth,
		},
		{
			Path:        "/v1/media-buys/:id/delivery/history",
			Method:      http.MethodGet,
			Handler:     GetMediaBuyDeliveryHistory(service),
			Middlewares: buyerAuth,
		},
		{
			Path:        "/v1/media-buys/:id/performance-index",
			Method:      http.MethodPost,
			Handler:     UpdatePerformanceIndex(service),
			Middlewares: buyerAuth,
		},
		{
			Path:        "/v1/media-buys/:id/tasks",
			Method:      http.MethodGet,
			Handler:     ListMediaBuyTasks(service),
			Middlewares: buyerAuth,
		},
	}
}

// WorkflowTasks retorna as rotas de task: consulta pelo comprador e
// conclusão pelo operador.
func WorkflowTasks(service dispatching.Dispatcher, auth authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/workflow-tasks/:id",
			Method:      http.MethodGet,
			Handler:     GetWorkflowTask(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.PrincipalAuth(auth)},
		},
		{
			Path:    "/v1/workflow-tasks/:id/complete",
			Method:  http.MethodPost,
			Handler: CompleteWorkflowTask(service),
			Middlewares: []func(http.Handler) http.Handler{
				middleware.OperatorAuth(auth),
				middleware.AdminOrOperator(),
			},
		},
	}
}

// Authentication retorna as rotas administrativas de credenciais: emissão de
// tokens de operador e gestão de principals.
func Authentication(service authenticating.Authenticator) []router.Route {
	adminOnly := []func(http.Handler) http.Handler{
		middleware.OperatorAuth(service),
		middleware.AdminOnly(),
	}

	return []router.Route{
		{
			Path:        "/v1/operators/token",
			Method:      http.MethodPost,
			Handler:     GenerateOperatorToken(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/principals",
			Method:      http.MethodPost,
			Handler:     RegisterPrincipal(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/principals",
			Method:      http.MethodGet,
			Handler:     ListPrincipals(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/principals/:id/rotate-key",
			Method:      http.MethodPost,
			Handler:     RotateAPIKey(service),
			Middlewares: adminOnly,
		},
	}
}

func CronJobs(services CronJobServices, auth authenticating.Authenticator) []router.Route {
	operatorAuth := []func(http.Handler) http.Handler{
		middleware.OperatorAuth(auth),
		middleware.AdminOrOperator(),
	}

	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: operatorAuth,
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: operatorAuth,
		},
	}
}
