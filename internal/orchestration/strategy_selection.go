package orchestration

import (
	"github.com/agbru/fibbench/internal/bench"
	"github.com/agbru/fibbench/internal/config"
	"github.com/agbru/fibbench/internal/fibonacci"
)

// GetStrategiesToRun returns fresh instances of the strategies selected by
// cfg.Algo, in the order they were named ("all" keeps registration order).
// Unknown keys are skipped; config validation rejects them earlier.
func GetStrategiesToRun(cfg config.AppConfig, factory fibonacci.Factory) []fibonacci.Strategy {
	keys := cfg.SelectedAlgos(factory.List())
	strategies := make([]fibonacci.Strategy, 0, len(keys))
	for _, k := range keys {
		if s, err := factory.Get(k); err == nil {
			strategies = append(strategies, s)
		}
	}
	return strategies
}

// BenchConfig derives the driver configuration of one strategy.
func BenchConfig(cfg config.AppConfig, key string) bench.Config {
	return bench.Config{
		N:          cfg.N,
		Iterations: cfg.IterationsFor(key),
		Warmup:     cfg.Warmup,
		BatchSize:  cfg.BatchSize,
	}
}
