package driver

import (
	"context"
	"time"
)

const (
	DefaultTickLength = time.Second
)

type Manager interface {
	Tick(context.Context) error
}

// SimDriver paces the simulation in real time. Each wall-clock tick gives
// every manager one chance to advance; a manager returning an error stops
// the driver.
type SimDriver struct {
	tickLength time.Duration
	managers   []Manager
}

func NewSimDriver(managers []Manager, opts ...SimDriverOpt) *SimDriver {
	d := &SimDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *SimDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

func (d *SimDriver) Tick(ctx context.Context) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
