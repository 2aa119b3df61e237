package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/veildrift/go-incursion/internal/scheduler"
	"github.com/veildrift/go-incursion/internal/sim"
)

type Config struct {
	TickInterval string          `json:"tick_interval"`
	Storage      StorageConfig   `json:"storage"`
	Nats         NatsConfig      `json:"nats"`
	Scheduler    SchedulerConfig `json:"scheduler"`
	Decision     DecisionConfig  `json:"decision"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		el.Add(fmt.Errorf("parsing tick_interval: %w", err))
	} else if d <= 0 {
		el.Add(fmt.Errorf("tick_interval must be positive"))
	}

	el.Add(c.Storage.Validate())
	el.Add(c.Nats.Validate())
	el.Add(c.Scheduler.Validate())
	el.Add(c.Decision.Validate())

	return el.Err()
}

type SchedulerConfig struct {
	TickCeiling int `json:"tick_ceiling"`
}

func (c *SchedulerConfig) Validate() error {
	el := errors.NewErrorList()

	if c.TickCeiling < 0 {
		el.Add(fmt.Errorf("tick_ceiling must not be negative"))
	}

	return el.Err()
}

func (c *SchedulerConfig) opts() []scheduler.Opt {
	var opts []scheduler.Opt
	if c.TickCeiling > 0 {
		opts = append(opts, scheduler.WithTickCeiling(c.TickCeiling))
	}
	return opts
}

type DecisionConfig struct {
	Timeout string `json:"timeout"`
}

func (c *DecisionConfig) Validate() error {
	el := errors.NewErrorList()

	if c.Timeout != "" {
		_, err := time.ParseDuration(c.Timeout)
		if err != nil {
			el.Add(fmt.Errorf("parsing timeout: %w", err))
		}
	}

	return el.Err()
}

func (c *DecisionConfig) opts() ([]sim.RunnerOpt, error) {
	var opts []sim.RunnerOpt
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parsing timeout: %w", err)
		}
		opts = append(opts, sim.WithDecisionTimeout(d))
	}
	return opts, nil
}
