package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry 应用自有指标注册表
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rfrnce",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rfrnce",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rfrnce",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms ~ 2.5s
		},
		[]string{"method", "route"},
	)

	enrichmentRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rfrnce",
			Subsystem: "enrichment",
			Name:      "runs_total",
			Help:      "Product enrichment pipeline runs by terminal outcome.",
		},
		[]string{"outcome"},
	)

	enrichmentDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rfrnce",
			Subsystem: "enrichment",
			Name:      "run_duration_seconds",
			Help:      "Wall time of product enrichment pipeline runs.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10), // 0.5s ~ 256s
		},
	)

	enrichmentInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rfrnce",
			Subsystem: "enrichment",
			Name:      "inflight_runs",
			Help:      "Enrichment pipelines currently running in this process.",
		},
	)

	externalCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rfrnce",
			Subsystem: "external",
			Name:      "calls_total",
			Help:      "Calls to third-party services by outcome.",
		},
		[]string{"service", "outcome"},
	)

	externalDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rfrnce",
			Subsystem: "external",
			Name:      "call_duration_seconds",
			Help:      "Duration of calls to third-party services.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 11), // 0.25s ~ 256s
		},
		[]string{"service"},
	)

	reportGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rfrnce",
			Subsystem: "report",
			Name:      "generations_total",
			Help:      "Report generation attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		enrichmentRuns,
		enrichmentDuration,
		enrichmentInFlight,
		externalCalls,
		externalDuration,
		reportGenerations,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler 暴露已注册指标
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// HTTPRequestStarted 记录请求进入
func HTTPRequestStarted() {
	httpInFlight.Inc()
}

// RecordHTTPRequest 记录请求完成
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	httpInFlight.Dec()
	if route == "" {
		route = "unmatched"
	}
	method = strings.ToUpper(method)
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// EnrichmentStarted 补全任务开始
func EnrichmentStarted() {
	enrichmentInFlight.Inc()
}

// RecordEnrichment 补全任务结束
func RecordEnrichment(outcome string, duration time.Duration) {
	enrichmentInFlight.Dec()
	if outcome == "" {
		outcome = "unknown"
	}
	enrichmentRuns.WithLabelValues(outcome).Inc()
	enrichmentDuration.Observe(duration.Seconds())
}

// RecordExternalCall 记录第三方服务调用
func RecordExternalCall(service, outcome string, duration time.Duration) {
	if duration <= 0 {
		duration = time.Millisecond
	}
	externalCalls.WithLabelValues(service, outcome).Inc()
	externalDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// RecordReport 记录报告生成结果
func RecordReport(outcome string) {
	reportGenerations.WithLabelValues(outcome).Inc()
}
