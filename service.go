package tplpack

import (
	"context"
	"fmt"
	"time"
)

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
}

// WithTimeout sets the render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("tplpack: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithEngine replaces the default Chrome-backed render engine, e.g. for
// tests or an out-of-process engine.
func WithEngine(engine RenderEngine) Option {
	return func(s *Service) {
		s.engine = engine
	}
}

// Service orchestrates rendering of template packages. Conversion
// itself (Export, Import, CollectAssets, Pack/Unpack) is pure and needs
// no service; the service exists to own the render engine's lifecycle.
type Service struct {
	cfg    serviceConfig
	engine RenderEngine
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithEngine).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = newChromeEngine(s.cfg.timeout)
	}
	return s
}

// Render validates the package and hands it to the engine together
// with the data object for binding resolution.
func (s *Service) Render(ctx context.Context, pkg *Package, data map[string]any) ([]byte, error) {
	if pkg == nil || pkg.Root == nil {
		return nil, ErrNilRoot
	}
	if err := pkg.Settings.Validate(); err != nil {
		return nil, err
	}

	pdf, err := s.engine.Render(ctx, pkg, data)
	if err != nil {
		return nil, fmt.Errorf("rendering package %q: %w", pkg.Manifest.Name, err)
	}
	return pdf, nil
}

// Close releases engine resources (the headless browser).
func (s *Service) Close() error {
	if s.engine != nil {
		return s.engine.Close()
	}
	return nil
}
