package api

import (
	"net/http"

	"github.com/r3d91ll/qmreport/pkg/evaluator"
	"github.com/r3d91ll/qmreport/pkg/history"
	"github.com/r3d91ll/qmreport/pkg/metrics"
)

// Services are the collaborators behind the API routes.
type Services struct {
	Evaluator *evaluator.Evaluator
	History   *history.Store
	Renderer  *Renderer
	Threshold metrics.Threshold

	// Hub serves /ws. Nil disables the websocket.
	Hub *Hub

	// Events receives server events. Nil uses Hub when set.
	Events EventBroadcaster

	// Version is reported by /api/health.
	Version string
}

// HealthResponse is the response body for GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version,omitempty"`
	Datasets  int    `json:"datasets"`
	Records   int    `json:"records"`
	WSClients int    `json:"wsClients"`
}

// RegisterRoutes registers every API route on router.
func RegisterRoutes(router *Router, svc Services) {
	events := svc.Events
	if svc.Hub != nil {
		if events == nil {
			events = svc.Hub
		}
		router.GET("/ws", NewWebSocketHandler(svc.Hub).HandleFunc())
	}
	if events == nil {
		events = NopBroadcaster{}
	}
	if svc.Renderer.Events == nil {
		svc.Renderer.Events = events
	}

	router.GET("/api/health", func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:   "ok",
			Version:  svc.Version,
			Datasets: len(svc.Evaluator.Registry().IDs()),
			Records:  svc.History.Count(),
		}
		if svc.Hub != nil {
			resp.WSClients = svc.Hub.ClientCount()
		}
		WriteJSON(w, http.StatusOK, resp)
	})

	NewReportHandler(svc.Renderer).RegisterRoutes(router)
	NewDatasetHandler(svc.Evaluator, svc.Renderer, events).RegisterRoutes(router)
	NewTrainingHandler(svc.Evaluator, svc.Renderer, events, svc.Threshold).RegisterRoutes(router)
	NewHistoryHandler(svc.History, svc.Renderer, svc.Threshold).RegisterRoutes(router)
}
