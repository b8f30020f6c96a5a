package eventbus

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/skillforge/skillforge/pkg/logging"
)

type riskEvent struct {
	payload string
}

type otherEvent struct {
	payload string
}

func TestPublisher_PublishNoSubscribersWarns(t *testing.T) {
	logBuffer := bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(&logBuffer)
	log.SetLevel(logrus.WarnLevel)

	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *riskEvent) {
		t.Error("should not be called")
	})
	publisher.Publish(&otherEvent{payload: "test"})

	output := logBuffer.String()
	require.NotEmpty(t, output)
	require.True(t, strings.Contains(output, "no matching subscribers"), "got: %q", output)
}

func TestPublisher_SubscribeAndPublish(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))

	var got string
	publisher.Subscribe(func(e *riskEvent) {
		got = e.payload
	})
	publisher.Publish(&riskEvent{payload: "bus factor dropped"})

	require.Equal(t, "bus factor dropped", got)
}

func TestPublisher_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	logBuffer := bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(&logBuffer)

	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *riskEvent) {
		panic("boom")
	})
	called := false
	publisher.Subscribe(func(e *riskEvent) {
		called = true
	})

	publisher.Publish(&riskEvent{payload: "x"})
	require.True(t, called)
	require.Contains(t, logBuffer.String(), "panicked")
}

func TestPublisher_Unsubscribe(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))

	handler := func(e *riskEvent) {
		t.Error("should not be called after unsubscribe")
	}
	publisher.Subscribe(handler)
	require.Equal(t, 1, publisher.SubscribersCount())

	publisher.Unsubscribe(handler)
	require.Equal(t, 0, publisher.SubscribersCount())
}

func TestMatchSignature(t *testing.T) {
	handler := func(e *riskEvent) {}
	require.True(t, MatchSignature(handler, []interface{}{&riskEvent{}}))
	require.False(t, MatchSignature(handler, []interface{}{&otherEvent{}}))
	require.False(t, MatchSignature(handler, []interface{}{&riskEvent{}, &riskEvent{}}))
	require.False(t, MatchSignature("not a func", []interface{}{&riskEvent{}}))
}
