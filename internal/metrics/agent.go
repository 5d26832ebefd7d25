package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		agentRunsTotal,
		agentSteps,
		agentToolCallsTotal,
		agentToolLatencyMs,
	)
}

var (
	agentRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_runs_total",
			Help: "Agent runs by outcome.",
		},
		[]string{"outcome"},
	)

	agentSteps = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "agent_steps",
			Help:    "Model invocations per agent run.",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 8, 10, 15},
		},
	)

	agentToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_tool_calls_total",
			Help: "Tool executions by tool name and outcome.",
		},
		[]string{"tool", "ok"},
	)

	agentToolLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agent_tool_latency_ms",
			Help:    "Tool execution latency in milliseconds.",
			Buckets: []float64{1, 5, 25, 100, 250, 500, 1000, 2500, 5000, 15000},
		},
		[]string{"tool"},
	)
)

// ObserveRun implements orchestrator.RunObserver.
func (Recorder) ObserveRun(outcome string, steps int) {
	agentRunsTotal.WithLabelValues(norm(outcome)).Inc()
	agentSteps.Observe(float64(steps))
}

// ObserveToolCall implements agent.ToolObserver.
func (Recorder) ObserveToolCall(tool string, ok bool, latency time.Duration) {
	agentToolCallsTotal.WithLabelValues(norm(tool), strconv.FormatBool(ok)).Inc()
	agentToolLatencyMs.WithLabelValues(norm(tool)).Observe(float64(latency.Milliseconds()))
}
