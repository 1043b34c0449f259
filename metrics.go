package strata

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsMiddleware records resolutions, constructions and open scopes.
type MetricsMiddleware struct {
	resolutions   *prometheus.CounterVec
	constructions *prometheus.CounterVec
	activeScopes  *prometheus.GaugeVec
}

// NewMetricsMiddleware creates metrics middleware and registers its
// collectors with reg.
func NewMetricsMiddleware(reg prometheus.Registerer) (*MetricsMiddleware, error) {
	m := &MetricsMiddleware{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "strata",
			Name:      "resolutions_total",
			Help:      "Binding resolutions by requesting scope and outcome.",
		}, []string{"scope", "binding", "result"}),
		constructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "strata",
			Name:      "constructions_total",
			Help:      "Values built by a factory, by owning scope.",
		}, []string{"scope", "binding"}),
		activeScopes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "strata",
			Name:      "active_scopes",
			Help:      "Child scopes currently open, by tag.",
		}, []string{"scope"}),
	}

	for _, c := range []prometheus.Collector{m.resolutions, m.constructions, m.activeScopes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// BeforeResolve implements Middleware.
func (m *MetricsMiddleware) BeforeResolve(ctx context.Context, r Resolver, key BindingKey) error {
	return nil
}

// AfterResolve implements Middleware.
func (m *MetricsMiddleware) AfterResolve(ctx context.Context, r Resolver, key BindingKey, instance any, err error) error {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.resolutions.WithLabelValues(string(r.Tag()), key.String(), result).Inc()
	return nil
}

// Constructed implements Middleware.
func (m *MetricsMiddleware) Constructed(ctx context.Context, owner Resolver, key BindingKey) {
	m.constructions.WithLabelValues(string(owner.Tag()), key.String()).Inc()
}

// ScopeBegan implements Middleware.
func (m *MetricsMiddleware) ScopeBegan(ctx context.Context, s Scope) {
	m.activeScopes.WithLabelValues(string(s.Tag())).Inc()
}

// ScopeEnded implements Middleware.
func (m *MetricsMiddleware) ScopeEnded(ctx context.Context, s Scope, err error) {
	if s.Parent() == nil {
		return
	}
	m.activeScopes.WithLabelValues(string(s.Tag())).Dec()
}
