package handler

import (
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/kameti-auth/internal/service"
)

// Health serves grpc.health.v1 and records dependency status published by the health service.
type Health struct {
	*health.Server
}

// NewHealth creates a Health handler. Every service starts as NOT_SERVING until the first check.
func NewHealth() *Health {
	h := &Health{Server: health.NewServer()}
	h.Server.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return h
}

var _ service.StatusReporter = (*Health)(nil)

// SetServing maps a boolean dependency state onto the health protocol.
func (h *Health) SetServing(name string, serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	h.Server.SetServingStatus(name, st)
}
