package main

import (
	"context"
	"time"

	"github.com/leandrodaf/pianorec/internal/logger"
	"github.com/leandrodaf/pianorec/sdk/contracts"
	"github.com/leandrodaf/pianorec/sdk/recorder"
)

func main() {
	log := logger.NewZapLogger()

	rec, err := recorder.New(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.DebugLevel),
		contracts.WithBaseDir("./recordings"),
		contracts.WithPortHint("piano"),
		contracts.WithSessionTimeout(10*time.Second),
	)
	if err != nil {
		log.Error("failed to initialize recorder", log.Field().Error("error", err))
		return
	}

	// Record until interrupted; every pause longer than the session timeout
	// closes the current file and a new keystroke opens the next one.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := rec.Run(ctx); err != nil {
		log.Error("recorder stopped with error", log.Field().Error("error", err))
	}
}
