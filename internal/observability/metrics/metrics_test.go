package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestChatbotMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewChatbotMetrics(reg)
	m.ObserveTurn("message", "greeting", 0.01)
	m.ObserveTurn("message", "greeting", 0.02)
	m.ObserveTurn("tag", "suppliers", 0.05)
	m.ObserveFailure("message")
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	byName := map[string]*dto.MetricFamily{}
	for _, f := range families {
		byName[f.GetName()] = f
	}

	turns := byName["vendorconnect_chatbot_turns_total"]
	if turns == nil {
		t.Fatal("expected turns_total to be registered")
	}
	var greetings float64
	for _, metric := range turns.GetMetric() {
		labels := map[string]string{}
		for _, l := range metric.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		if labels["source"] == "message" && labels["intent"] == "greeting" {
			greetings = metric.GetCounter().GetValue()
		}
	}
	if greetings != 2 {
		t.Fatalf("expected 2 greeting turns, got %v", greetings)
	}

	failures := byName["vendorconnect_chatbot_failures_total"]
	if failures == nil || failures.GetMetric()[0].GetCounter().GetValue() != 1 {
		t.Fatalf("expected one failure, got %v", failures)
	}

	latency := byName["vendorconnect_chatbot_turn_latency_seconds"]
	if latency == nil {
		t.Fatal("expected latency histogram")
	}
	var samples uint64
	for _, metric := range latency.GetMetric() {
		samples += metric.GetHistogram().GetSampleCount()
	}
	if samples != 3 {
		t.Fatalf("expected 3 latency samples, got %d", samples)
	}

	sessions := byName["vendorconnect_webchat_active_sessions"]
	if sessions == nil || sessions.GetMetric()[0].GetGauge().GetValue() != 1 {
		t.Fatalf("expected one active session, got %v", sessions)
	}
}

func TestChatbotMetricsNilSafe(t *testing.T) {
	var m *ChatbotMetrics
	m.ObserveTurn("message", "unclear", 0.1)
	m.ObserveFailure("tag")
	m.SessionOpened()
	m.SessionClosed()
}

func TestChatbotMetricsDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewChatbotMetrics(reg)
	defer func() {
		if recover() == nil {
			t.Fatal("expected second registration on the same registry to panic")
		}
	}()
	NewChatbotMetrics(reg)
}
