// Package savekitfx provides an fx module for a savekit client.
package savekitfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/forgeyard/savekit"
	"github.com/forgeyard/savekit/internal/codec/zlibcodec"
	"github.com/forgeyard/savekit/internal/stats"
	"github.com/forgeyard/savekit/internal/stats/logger"
)

// Config holds configuration for the savekit client.
type Config struct {
	// CompressionLevel is the zlib level for encoding export strings.
	// Default is best compression (9).
	CompressionLevel int
}

// Module provides a savekit client.
// Requires a *zap.Logger to be provided.
var Module = fx.Module("savekit",
	fx.Provide(
		newStatsCollector,
		newClient,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("savekit.stats"))
}

// Params holds dependencies for creating the client.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
}

// Result holds the provided client.
type Result struct {
	fx.Out

	Client *savekit.Client
}

func newClient(p Params) (Result, error) {
	level := p.Config.CompressionLevel
	if level == 0 {
		level = zlibcodec.BestCompression
	}

	client, err := savekit.New(
		savekit.WithCompressionLevel(level),
		savekit.WithStats(p.Collector),
		savekit.WithLogger(p.Logger.Named("savekit")),
	)
	if err != nil {
		return Result{}, err
	}

	return Result{Client: client}, nil
}
