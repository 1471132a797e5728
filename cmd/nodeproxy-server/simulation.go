package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
)

// Standard refs of the server variables the command maintains.
var (
	refServiceLevel = model.StandardRef(2267)
	refStartTime    = model.StandardRef(2257)
	refCurrentTime  = model.StandardRef(2258)
)

const simulationInterval = 5 * time.Second

// bindServerStatus stamps StartTime and makes CurrentTime track the wall
// clock. Spaces without a ServerStatus are left alone.
func bindServerStatus(space *model.Space, startedAt time.Time) {
	if e, err := space.Lookup(refStartTime); err == nil {
		e.SetValueInternal(startedAt)
	}
	if e, err := space.Lookup(refCurrentTime); err == nil {
		e.SetReadHook(func() any { return time.Now().UTC() })
	}
}

// runSimulation walks ServiceLevel down and back up so clients observe
// changing values after a Refresh.
func runSimulation(ctx context.Context, logger *slog.Logger, space *model.Space) {
	level, err := space.Lookup(refServiceLevel)
	if err != nil {
		logger.Warn("[SIM] no ServiceLevel variable, simulation disabled", "ref", refServiceLevel)
		return
	}

	ticker := time.NewTicker(simulationInterval)
	defer ticker.Stop()

	logger.Info("[SIM] simulation started")
	var step int
	for {
		select {
		case <-ctx.Done():
			logger.Info("[SIM] simulation stopped")
			return
		case <-ticker.C:
			step++
			v := serviceLevelAt(step)
			level.SetValueInternal(v)
			logger.Debug("[SIM] service level", "value", v)
		}
	}
}

// serviceLevelAt returns a triangle wave between 155 and 255 with a period
// of 20 steps.
func serviceLevelAt(step int) uint8 {
	phase := step % 20
	if phase > 10 {
		phase = 20 - phase
	}
	return uint8(255 - phase*10)
}
