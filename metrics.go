package socialmanager

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eringen/socialmanager/pipeline"
)

var postsDesc = prometheus.NewDesc(
	"socialmanager_posts",
	"Number of stored posts by status",
	[]string{"status"},
	nil,
)

// Metrics holds the collectors of one App. Each App has its own registry so
// several can live in one process.
type Metrics struct {
	Registry *prometheus.Registry

	buttons  *prometheus.CounterVec
	warnings prometheus.Counter
	renders  *prometheus.CounterVec
}

// NewMetrics creates the render metrics and the Go runtime collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		buttons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "socialmanager_buttons_rendered_total",
			Help: "Share buttons rendered into served markup, by context",
		}, []string{"context"}),
		warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "socialmanager_markup_warnings_total",
			Help: "Parser diagnostics raised while inserting share buttons",
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "socialmanager_renders_total",
			Help: "Post bodies passed through the share pipeline, by page kind",
		}, []string{"kind"}),
	}
	m.Registry.MustRegister(
		m.buttons,
		m.warnings,
		m.renders,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe records the outcome of one pipeline run.
func (m *Metrics) Observe(kind string, res pipeline.Result) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(kind).Inc()
	m.buttons.WithLabelValues("content").Add(float64(res.ContentButtons))
	m.buttons.WithLabelValues("image").Add(float64(res.ImageButtons))
	m.warnings.Add(float64(len(res.Warnings)))
}

// postCollector reads post counts from the store on each scrape.
type postCollector struct {
	store *Store
}

func (c *postCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- postsDesc
}

func (c *postCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.store.CountPosts()
	if err != nil {
		return
	}
	for status, n := range counts {
		ch <- prometheus.MustNewConstMetric(postsDesc, prometheus.GaugeValue, float64(n), status)
	}
}

func (a *App) handleMetrics(c echo.Context) error {
	if !IsAdmin(c) {
		return c.NoContent(http.StatusForbidden)
	}
	h := promhttp.HandlerFor(a.Metrics.Registry, promhttp.HandlerOpts{})
	h.ServeHTTP(c.Response(), c.Request())
	return nil
}
