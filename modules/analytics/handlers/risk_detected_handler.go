package handlers

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/skillforge/skillforge/modules/analytics/domain/analysis"
	"github.com/skillforge/skillforge/modules/analytics/services"
	"github.com/skillforge/skillforge/pkg/application"
	"github.com/skillforge/skillforge/pkg/composables"
)

// RiskDetectedHandler turns detection events into durable risk cases. It
// runs on the bus, detached from the analytics call that found the risk: a
// persistence failure here is logged and never reaches the caller.
type RiskDetectedHandler struct {
	pool  *pgxpool.Pool
	cases *services.RiskCaseService
	log   *logrus.Logger
}

func RegisterRiskDetectedHandler(app application.Application, cases *services.RiskCaseService) *RiskDetectedHandler {
	handler := &RiskDetectedHandler{
		pool:  app.DB(),
		cases: cases,
		log:   app.Logger(),
	}
	app.EventPublisher().Subscribe(handler.onRiskDetected)
	return handler
}

func (h *RiskDetectedHandler) onRiskDetected(event *analysis.RiskDetected) {
	ctx := composables.WithPool(context.Background(), h.pool)
	ctx = composables.WithWorkspaceID(ctx, event.WorkspaceID)
	if _, err := h.cases.EnsureRiskCase(ctx, event); err != nil {
		h.log.WithError(err).
			WithField("employee_id", event.EmployeeID).
			WithField("category", event.Category).
			Error("failed to record detected risk")
	}
}
