package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lovemypet",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lovemypet",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	petTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lovemypet",
			Subsystem: "pets",
			Name:      "status_transitions_total",
			Help:      "Pet status transitions by source and target status.",
		},
		[]string{"from", "to"},
	)

	notificationsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lovemypet",
			Subsystem: "notifications",
			Name:      "published_total",
			Help:      "Notifications published, by outcome.",
		},
		[]string{"result"},
	)

	aiGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lovemypet",
			Subsystem: "assistant",
			Name:      "generations_total",
			Help:      "Generated drafts by kind and outcome.",
		},
		[]string{"kind", "result"},
	)

	feedItems = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lovemypet",
			Subsystem: "feed",
			Name:      "items",
			Help:      "Number of items in composed feeds.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
		[]string{"page"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequests,
		httpDuration,
		petTransitions,
		notificationsPublished,
		aiGenerations,
		feedItems,
	)
}

// Middleware records request count and latency per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler exposes the registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}

func RecordTransition(from, to string) {
	petTransitions.WithLabelValues(from, to).Inc()
}

func RecordNotification(err error) {
	if err != nil {
		notificationsPublished.WithLabelValues("error").Inc()
		return
	}
	notificationsPublished.WithLabelValues("ok").Inc()
}

func RecordGeneration(kind string, ok bool) {
	result := "fallback"
	if ok {
		result = "ok"
	}
	aiGenerations.WithLabelValues(kind, result).Inc()
}

func RecordFeed(page string, n int) {
	feedItems.WithLabelValues(page).Observe(float64(n))
}
