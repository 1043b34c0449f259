package strata

import (
	"context"

	"go.uber.org/zap"
)

// LoggingMiddleware logs scope lifetimes and constructions at debug level
// and failed resolutions at warn level.
type LoggingMiddleware struct {
	logger *zap.Logger
}

// NewLoggingMiddleware creates logging middleware. A nil logger logs nothing.
func NewLoggingMiddleware(logger *zap.Logger) *LoggingMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingMiddleware{logger: logger.Named("strata")}
}

// BeforeResolve implements Middleware.
func (m *LoggingMiddleware) BeforeResolve(ctx context.Context, r Resolver, key BindingKey) error {
	return nil
}

// AfterResolve implements Middleware.
func (m *LoggingMiddleware) AfterResolve(ctx context.Context, r Resolver, key BindingKey, instance any, err error) error {
	if err != nil {
		m.logger.Warn("resolve failed",
			zap.String("binding", key.String()),
			zap.String("scope", string(r.Tag())),
			zap.String("scope_id", r.ID()),
			zap.Error(err),
		)
	}
	return nil
}

// Constructed implements Middleware.
func (m *LoggingMiddleware) Constructed(ctx context.Context, owner Resolver, key BindingKey) {
	m.logger.Debug("constructed",
		zap.String("binding", key.String()),
		zap.String("scope", string(owner.Tag())),
		zap.String("scope_id", owner.ID()),
	)
}

// ScopeBegan implements Middleware.
func (m *LoggingMiddleware) ScopeBegan(ctx context.Context, s Scope) {
	m.logger.Debug("scope began",
		zap.String("scope", string(s.Tag())),
		zap.String("scope_id", s.ID()),
	)
}

// ScopeEnded implements Middleware.
func (m *LoggingMiddleware) ScopeEnded(ctx context.Context, s Scope, err error) {
	if err != nil {
		m.logger.Warn("scope ended with errors",
			zap.String("scope", string(s.Tag())),
			zap.String("scope_id", s.ID()),
			zap.Error(err),
		)
		return
	}

	m.logger.Debug("scope ended",
		zap.String("scope", string(s.Tag())),
		zap.String("scope_id", s.ID()),
	)
}
