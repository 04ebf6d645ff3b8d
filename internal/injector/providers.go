package injector

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zeusync/property/internal/config"
	"github.com/zeusync/property/internal/core/observability/log"
	"github.com/zeusync/property/pkg/property/builder"
	"github.com/zeusync/property/pkg/property/factory"
)

// ConfigPath is the location of the YAML configuration file.
type ConfigPath string

// Runtime bundles the wired components used by the command line tools.
type Runtime struct {
	Config     config.Config
	Log        log.Log
	Prometheus *prometheus.Registry
	Registry   *factory.Registry
	Builders   *builder.Builders
}

var ProviderSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvidePrometheusRegistry,
	ProvideMetrics,
	ProvideRegistry,
	ProvideBuilders,
	wire.Struct(new(Runtime), "*"),
)

func ProvideConfig(path ConfigPath) (config.Config, error) {
	return config.Load(string(path))
}

func ProvideLogger(cfg config.Config) (log.Log, func(), error) {
	logger, err := log.NewFromConfig(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func ProvidePrometheusRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// ProvideMetrics returns nil when metrics are disabled; the registry accepts a
// nil *factory.Metrics.
func ProvideMetrics(cfg config.Config, reg *prometheus.Registry) (*factory.Metrics, error) {
	if !cfg.Registry.Metrics {
		return nil, nil
	}
	return factory.NewMetrics(reg)
}

// ProvideRegistry returns a registry holding the built-in factories, frozen
// unless the configuration says otherwise.
func ProvideRegistry(cfg config.Config, logger log.Log, metrics *factory.Metrics) (*factory.Registry, error) {
	registry := factory.NewRegistry(factory.WithLogger(logger), factory.WithMetrics(metrics))
	if err := factory.RegisterBuiltins(registry); err != nil {
		return nil, err
	}
	if cfg.Registry.Freeze {
		registry.Freeze()
	}
	return registry, nil
}

func ProvideBuilders(registry *factory.Registry, logger log.Log) *builder.Builders {
	return builder.New(builder.WithRegistry(registry), builder.WithLogger(logger))
}
