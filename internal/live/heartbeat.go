package live

import (
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/logger"
)

const defaultHeartbeatSchedule = "@every 30s"

// Keeper runs the registry heartbeat on a fixed schedule, keeping idle
// connections alive through intermediaries and pruning broken pipes the
// client never explicitly disconnected.
type Keeper struct {
	registry *Registry
	cron     *cron.Cron
	schedule string
	log      *zap.Logger
}

// KeeperOption customises the Keeper.
type KeeperOption func(*Keeper)

// WithSchedule overrides the cron specification for the heartbeat sweep.
func WithSchedule(spec string) KeeperOption {
	return func(k *Keeper) {
		if spec != "" {
			k.schedule = spec
		}
	}
}

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) KeeperOption {
	return func(k *Keeper) {
		if c != nil {
			k.cron = c
		}
	}
}

// NewKeeper constructs a heartbeat keeper for the registry.
func NewKeeper(registry *Registry, opts ...KeeperOption) (*Keeper, error) {
	if registry == nil {
		return nil, errors.New("live: keeper requires a registry")
	}

	k := &Keeper{
		registry: registry,
		cron:     cron.New(),
		schedule: defaultHeartbeatSchedule,
		log:      logger.WithModule("live"),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

// Start schedules the heartbeat sweep and starts the cron runner.
func (k *Keeper) Start() error {
	if _, err := k.cron.AddFunc(k.schedule, k.Sweep); err != nil {
		return fmt.Errorf("live: schedule heartbeat %q: %w", k.schedule, err)
	}
	k.cron.Start()
	k.log.Info("heartbeat keeper started", zap.String("schedule", k.schedule))
	return nil
}

// Stop halts the cron runner and waits for an in-flight sweep to finish.
func (k *Keeper) Stop() {
	ctx := k.cron.Stop()
	<-ctx.Done()
}

// Sweep runs one heartbeat pass over all registered channels.
func (k *Keeper) Sweep() {
	if pruned := k.registry.Heartbeat(); pruned > 0 {
		k.log.Info("heartbeat pruned channels", zap.Int("pruned", pruned))
	}
}
