package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	_ "topology-builder/internal/api/docs"
	"topology-builder/internal/api/handler"
	"topology-builder/pkg/router"
)

// @title Topology Builder API
// @version 1.0
// @description Translates visual pipeline graphs into stream runtime execution descriptors.
// @host localhost:8080
// @BasePath /api/v1
func RegisterRoutes(r *router.Router, h *handler.Handler) {
	r.POST("/api/v1/topologies", h.CreateTopology)
	r.GET("/api/v1/topologies", h.ListTopologies)
	// More specific routes first
	r.GET("/api/v1/topologies/*/descriptor", h.GetDescriptor)
	r.GET("/api/v1/topologies/*/diagnostics", h.GetDiagnostics)
	r.GET("/api/v1/topologies/*/errors", h.GetErrors)
	// Generic topology routes last
	r.GET("/api/v1/topologies/*", h.GetTopology)
	r.DELETE("/api/v1/topologies/*", h.DeleteTopology)

	r.POST("/api/v1/modules", h.CreateModule)
	r.POST("/api/v1/module-versions", h.CreateModuleVersion)
	r.GET("/api/v1/module-versions/*", h.GetModuleVersion)

	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))
}
