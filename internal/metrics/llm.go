package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"resume-optimizer/pkg/llmprovider"
)

func init() {
	register(
		llmCallLatencyMs,
		llmTokensTotal,
		websearchRequestsTotal,
	)
}

var (
	llmCallLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_call_latency_ms",
			Help:    "LLM call latency distribution in milliseconds.",
			Buckets: []float64{50, 100, 200, 400, 800, 1600, 3000, 5000, 10000, 30000},
		},
		[]string{"provider", "model", "success"},
	)

	llmTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Tokens consumed per provider/model, split by input and output.",
		},
		[]string{"provider", "model", "kind"},
	)

	websearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websearch_requests_total",
			Help: "Web searches by the provider that answered.",
		},
		[]string{"provider"},
	)
)

// Recorder forwards agent, LLM and search events to the Prometheus
// collectors. The zero value is ready to use.
type Recorder struct{}

func NewRecorder() Recorder { return Recorder{} }

// ObserveGeneration implements llmprovider.Observer.
func (Recorder) ObserveGeneration(provider, model string, usage *llmprovider.Usage, latency time.Duration, err error) {
	llmCallLatencyMs.WithLabelValues(norm(provider), norm(model), strconv.FormatBool(err == nil)).
		Observe(float64(latency.Milliseconds()))
	if usage == nil {
		return
	}
	llmTokensTotal.WithLabelValues(norm(provider), norm(model), "input").Add(float64(usage.InputTokens))
	llmTokensTotal.WithLabelValues(norm(provider), norm(model), "output").Add(float64(usage.OutputTokens))
}

// ObserveSearch implements websearch.Observer.
func (Recorder) ObserveSearch(provider string) {
	websearchRequestsTotal.WithLabelValues(norm(provider)).Inc()
}
