package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/pixil98/go-log"
	"github.com/pixil98/go-service"
	"github.com/veildrift/go-incursion/internal/driver"
	"github.com/veildrift/go-incursion/internal/messaging"
	"github.com/veildrift/go-incursion/internal/mission"
	"github.com/veildrift/go-incursion/internal/scheduler"
	"github.com/veildrift/go-incursion/internal/sim"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}
	logger := log.NewLogger()

	// Load definitions and populate the world. Bad definitions are
	// reported and skipped; only an unusable world stops startup.
	res, err := cfg.Storage.BuildWorld()
	if err != nil {
		if res == nil {
			return nil, fmt.Errorf("building world: %w", err)
		}
		logger.WithError(err).Warn("some definitions were skipped")
	}

	sched := scheduler.New(res.Store, cfg.Scheduler.opts()...)
	if err := sched.Initialize(); err != nil {
		if errors.Is(err, scheduler.ErrNoCharactersAvailable) {
			return nil, fmt.Errorf("initializing scheduler: %w", err)
		}
		logger.WithError(err).Warn("some characters were not scheduled")
	}

	spec, err := cfg.Storage.BuildMission()
	if err != nil {
		return nil, fmt.Errorf("selecting mission: %w", err)
	}
	m, err := mission.Init(res.Store, spec, res.Resolve)
	if err != nil {
		return nil, fmt.Errorf("initializing mission: %w", err)
	}

	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	runnerOpts, err := cfg.Decision.opts()
	if err != nil {
		return nil, err
	}
	runner := sim.NewRunner(res.Store, sched, m, messaging.NewPublisher(natsServer), natsServer, runnerOpts...)

	tickInterval, err := time.ParseDuration(cfg.TickInterval)
	if err != nil {
		return nil, fmt.Errorf("parsing tick_interval: %w", err)
	}
	simDriver := driver.NewSimDriver(
		[]driver.Manager{runner},
		driver.WithTickLength(tickInterval),
	)

	return service.WorkerList{
		"nats":   natsServer,
		"driver": simDriver,
	}, nil
}
