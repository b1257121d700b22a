package app

import (
	"log/slog"

	"gd_auction/internal/infra"
	"gd_auction/internal/infra/storage"
	"gd_auction/internal/service"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config     *infra.Config
	Journal    *storage.Journal
	Simulation *service.Simulation
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize loads the config at path, installs the logger, opens the trade
// journal and assembles the simulation.
func (b *Bootstrap) Initialize(path string) error {
	// 1. Load Config
	cfg, err := infra.LoadConfig(path)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)
	slog.Info("🚀 Bootstrapping GD auction...", slog.String("config", path))

	// 3. Initialize Journal (in-memory)
	journal, err := storage.NewJournal()
	if err != nil {
		return err
	}
	b.Journal = journal
	slog.Info("✅ Trade journal initialized")

	// 4. Assemble Simulation
	opts := service.OptionsFromConfig(cfg)
	b.Simulation = service.NewSimulation(opts, journal, infra.GlobalMetrics)
	slog.Info("✅ Simulation ready",
		slog.String("run_id", b.Simulation.RunID()),
		slog.Uint64("seed", opts.Seed),
		slog.Int("memory", opts.Memory),
		slog.Bool("carry_history", opts.CarryHistory),
	)

	return nil
}

// Shutdown releases resources acquired by Initialize.
func (b *Bootstrap) Shutdown() {
	if b.Journal != nil {
		if err := b.Journal.Close(); err != nil {
			slog.Warn("Failed to close journal", slog.Any("error", err))
		}
	}
}
