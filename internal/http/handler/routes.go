package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"rateanalysis/internal/http/header"
	"rateanalysis/internal/model"
	"rateanalysis/internal/service"
)

// Entity tags used in alert headers and error bodies.
const (
	RaParametersEntity     = "rateAnalysisRaParameters"
	WorkEstimateLeadEntity = "rateAnalysisWorkEstimateLead"
)

// Collection paths.
const (
	RaParametersPath      = "/api/ra-parameters"
	WorkEstimateLeadsPath = "/api/work-estimate-leads"
)

// Services are the persistence services behind the resources.
type Services struct {
	RaParameters      service.Service[model.RaParameters]
	WorkEstimateLeads service.Service[model.WorkEstimateLead]
}

// RouteConfig carries the process-wide settings shared by the resources.
type RouteConfig struct {
	Alerts header.Alerts
	Paging Paging
	Logger *slog.Logger
}

// RegisterRoutes attaches the health probes and both resources to app.
// The ra-parameters listing is unpaginated; the work-estimate-leads listing is paginated.
func RegisterRoutes(app *fiber.App, db Pinger, svcs Services, cfg RouteConfig) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	NewResource[model.RaParameters](svcs.RaParameters, ResourceOptions{
		EntityName: RaParametersEntity,
		BasePath:   RaParametersPath,
		Alerts:     cfg.Alerts,
		Paging:     cfg.Paging,
		Logger:     cfg.Logger,
	}).Mount(app.Group(RaParametersPath))

	NewResource[model.WorkEstimateLead](svcs.WorkEstimateLeads, ResourceOptions{
		EntityName: WorkEstimateLeadEntity,
		BasePath:   WorkEstimateLeadsPath,
		Paginated:  true,
		Alerts:     cfg.Alerts,
		Paging:     cfg.Paging,
		Logger:     cfg.Logger,
	}).Mount(app.Group(WorkEstimateLeadsPath))
}
