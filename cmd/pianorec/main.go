package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/leandrodaf/pianorec/internal/config"
	"github.com/leandrodaf/pianorec/internal/logger"
	"github.com/leandrodaf/pianorec/sdk/contracts"
	"github.com/leandrodaf/pianorec/sdk/recorder"
)

func main() {
	log := logger.NewZapLogger()
	cfg := config.FromEnv()

	rec, err := recorder.New(
		contracts.WithLogger(log),
		contracts.WithBaseDir(cfg.BaseDir),
		contracts.WithPortHint(cfg.PortHint),
		contracts.WithSessionTimeout(cfg.SessionTimeout),
		contracts.WithIdlePollInterval(cfg.IdlePollInterval),
		contracts.WithShortcutTimeout(cfg.ShortcutTimeout),
		contracts.WithReservedNotes(cfg.LowNote, cfg.HighNote),
		contracts.WithTicksPerBeat(cfg.TicksPerBeat),
		contracts.WithTempo(cfg.TempoUS),
	)
	if err != nil {
		log.Fatal("failed to initialize recorder", log.Field().Error("error", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("pianorec starting",
		log.Field().String("baseDir", cfg.BaseDir),
		log.Field().String("portHint", cfg.PortHint))

	if err := rec.Run(ctx); err != nil {
		log.Error("recorder stopped with error", log.Field().Error("error", err))
	}
}
