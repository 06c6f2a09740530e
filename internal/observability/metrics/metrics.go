package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatbotMetrics exposes counters/histograms for chat turns.
type ChatbotMetrics struct {
	turnsTotal     *prometheus.CounterVec
	failuresTotal  *prometheus.CounterVec
	turnLatency    *prometheus.HistogramVec
	activeSessions prometheus.Gauge
}

func NewChatbotMetrics(reg prometheus.Registerer) *ChatbotMetrics {
	m := &ChatbotMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vendorconnect",
			Subsystem: "chatbot",
			Name:      "turns_total",
			Help:      "Total chat turns served, by entry point and served intent",
		}, []string{"source", "intent"}),
		failuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vendorconnect",
			Subsystem: "chatbot",
			Name:      "failures_total",
			Help:      "Chat turns that ended in the generic failure reply",
		}, []string{"source"}),
		turnLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vendorconnect",
			Subsystem: "chatbot",
			Name:      "turn_latency_seconds",
			Help:      "Latency of chat turn processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vendorconnect",
			Subsystem: "webchat",
			Name:      "active_sessions",
			Help:      "Open chat widget WebSocket sessions",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.failuresTotal, m.turnLatency, m.activeSessions)
	return m
}

// ObserveTurn records a served turn. source is "message" or "tag".
func (m *ChatbotMetrics) ObserveTurn(source, intent string, seconds float64) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(source, intent).Inc()
	m.turnLatency.WithLabelValues(source).Observe(seconds)
}

func (m *ChatbotMetrics) ObserveFailure(source string) {
	if m == nil {
		return
	}
	m.failuresTotal.WithLabelValues(source).Inc()
}

func (m *ChatbotMetrics) SessionOpened() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

func (m *ChatbotMetrics) SessionClosed() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}
