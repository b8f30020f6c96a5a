package handlers

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/skillforge/skillforge/modules/analytics/domain/entities/riskcase"
	"github.com/skillforge/skillforge/modules/analytics/domain/entities/scenario"
	"github.com/skillforge/skillforge/modules/analytics/domain/notification"
	"github.com/skillforge/skillforge/pkg/application"
)

// NotificationHandler forwards notification-worthy events to the host's
// dispatcher. One attempt per event; failures are logged and dropped.
type NotificationHandler struct {
	dispatcher notification.Dispatcher
	log        *logrus.Logger
}

func RegisterNotificationHandler(app application.Application, dispatcher notification.Dispatcher) *NotificationHandler {
	if dispatcher == nil {
		dispatcher = notification.NopDispatcher{}
	}
	handler := &NotificationHandler{dispatcher: dispatcher, log: app.Logger()}
	app.EventPublisher().Subscribe(handler.onRiskCaseCreated)
	app.EventPublisher().Subscribe(handler.onRiskCaseResolved)
	app.EventPublisher().Subscribe(handler.onScenarioCreated)
	return handler
}

func (h *NotificationHandler) onRiskCaseCreated(event *riskcase.CreatedEvent) {
	h.dispatch(notification.Message{
		Title: fmt.Sprintf("New %s risk case", event.Result.Severity()),
		Body:  event.Result.Title(),
		Link:  fmt.Sprintf("/risk-cases/%s", event.Result.ID()),
	})
}

func (h *NotificationHandler) onRiskCaseResolved(event *riskcase.ResolvedEvent) {
	h.dispatch(notification.Message{
		Title: "Risk case resolved",
		Body:  event.Result.Title(),
		Link:  fmt.Sprintf("/risk-cases/%s", event.Result.ID()),
	})
}

func (h *NotificationHandler) onScenarioCreated(event *scenario.CreatedEvent) {
	h.dispatch(notification.Message{
		Title: "Move scenario drafted",
		Body:  fmt.Sprintf("%s (%d actions)", event.Result.Title(), len(event.Result.Actions())),
		Link:  fmt.Sprintf("/scenarios/%s", event.Result.ID()),
	})
}

func (h *NotificationHandler) dispatch(msg notification.Message) {
	if err := h.dispatcher.Dispatch(context.Background(), msg); err != nil {
		h.log.WithError(err).WithField("title", msg.Title).Warn("notification dispatch failed")
	}
}
