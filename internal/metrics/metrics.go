// Package metrics exposes Prometheus collectors for the storefront. A nil
// *Storefront is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"zebaish/internal/notice"
)

// Storefront records storefront activity.
type Storefront struct {
	catalogLoads *prometheus.CounterVec
	notices      *prometheus.CounterVec
	cartOps      *prometheus.CounterVec
	checkouts    prometheus.Counter
	orderValue   prometheus.Counter
	requests     *prometheus.HistogramVec
}

// NewStorefront registers the storefront metrics on the provided registerer.
func NewStorefront(reg prometheus.Registerer) *Storefront {
	if reg == nil {
		return &Storefront{}
	}
	s := &Storefront{
		catalogLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zebaish_catalog_loads_total",
			Help: "Catalog loads by the tier that satisfied them.",
		}, []string{"tier"}),
		notices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zebaish_notices_total",
			Help: "Notices shown to shoppers and admins.",
		}, []string{"kind"}),
		cartOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zebaish_cart_operations_total",
			Help: "Cart operations by kind and whether they changed the cart.",
		}, []string{"op", "applied"}),
		checkouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zebaish_checkouts_total",
			Help: "Completed checkouts.",
		}),
		orderValue: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zebaish_order_value_total",
			Help: "Sum of checked-out order totals in whole rupees.",
		}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "zebaish_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(s.catalogLoads, s.notices, s.cartOps, s.checkouts, s.orderValue, s.requests)
	return s
}

// IncCatalogLoad counts a catalog load from the named tier.
func (s *Storefront) IncCatalogLoad(tier string) {
	if s == nil || s.catalogLoads == nil {
		return
	}
	s.catalogLoads.WithLabelValues(normalizeLabel(tier)).Inc()
}

// IncCartOp counts a cart operation.
func (s *Storefront) IncCartOp(op string, applied bool) {
	if s == nil || s.cartOps == nil {
		return
	}
	s.cartOps.WithLabelValues(normalizeLabel(op), strconv.FormatBool(applied)).Inc()
}

// ObserveCheckout counts a checkout and adds its total to the order value.
func (s *Storefront) ObserveCheckout(total int64) {
	if s == nil || s.checkouts == nil {
		return
	}
	s.checkouts.Inc()
	s.orderValue.Add(float64(total))
}

// ObserveRequest records the duration of one HTTP request. route should be
// the matched route pattern, not the raw path.
func (s *Storefront) ObserveRequest(method, route string, status int, d time.Duration) {
	if s == nil || s.requests == nil {
		return
	}
	s.requests.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Observe(d.Seconds())
}

// Notices wraps next so that every notice is counted by kind before being
// passed on.
func (s *Storefront) Notices(next notice.Sink) notice.Sink {
	if next == nil {
		next = notice.Discard
	}
	return countingSink{metrics: s, next: next}
}

type countingSink struct {
	metrics *Storefront
	next    notice.Sink
}

func (c countingSink) Notify(n notice.Notice) {
	if c.metrics != nil && c.metrics.notices != nil {
		c.metrics.notices.WithLabelValues(normalizeLabel(string(n.Kind))).Inc()
	}
	c.next.Notify(n)
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
