package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gd_auction/internal/app"
	"gd_auction/internal/infra"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the simulation config")
	flag.Parse()

	// 1. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(*configPath); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer bootstrap.Shutdown()

	// 2. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Run
	sim := bootstrap.Simulation
	results, err := sim.Run(ctx)
	if err != nil {
		slog.Error("Simulation stopped early", slog.Any("error", err), slog.Int("rounds_completed", len(results)))
	}

	// 4. Report
	report, err := sim.Report(results)
	if err != nil {
		slog.Error("Failed to build report", slog.Any("error", err))
	}
	slog.Info("📊 Run summary",
		slog.String("run_id", report.RunID),
		slog.Int("rounds", report.Rounds),
		slog.Int("trades", report.Trades),
		slog.String("mean_price", report.MeanPrice.String()),
		slog.Int64("surplus", report.Surplus),
		slog.Int64("max_surplus", report.MaxSurplus),
		slog.String("efficiency", report.Efficiency.String()),
		slog.Any("per_round", report.PerRound),
	)
	slog.Info("Metrics", slog.Any("snapshot", infra.GlobalMetrics.Snapshot()))

	slog.Info("👋 Done")
}
