package services

import (
	"errors"
	"fmt"
	"time"

	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/workforce"
)

// ErrCapacityExhausted is returned when an active maintenance window has
// reduced the branch's capacity to zero.
var ErrCapacityExhausted = errors.New("branch capacity exhausted by maintenance")

// Capacity is the effective capacity of a branch at one instant.
type Capacity struct {
	factor float64
	window *alert.MaintenanceWindow
}

// FullCapacity applies when no maintenance window is active.
func FullCapacity() Capacity {
	return Capacity{factor: 1}
}

func (c Capacity) Factor() float64 {
	return c.factor
}

// Window is the most restrictive active maintenance window, if any.
func (c Capacity) Window() *alert.MaintenanceWindow {
	return c.window
}

func (c Capacity) Check() error {
	if c.window != nil && c.window.BlocksAssignment() {
		return fmt.Errorf("%w: until %s", ErrCapacityExhausted, c.window.EndsAt().Format(time.RFC3339))
	}
	return nil
}

// MaxLoad is the worker's maximum load scaled by the capacity factor.
func (c Capacity) MaxLoad(w *workforce.Worker) int {
	if c.window == nil {
		return w.MaxLoad()
	}
	return c.window.ScaleLoad(w.MaxLoad())
}

// CapacityGuard reads branch capacity from MAINTENANCE alerts.
type CapacityGuard struct{}

func NewCapacityGuard() CapacityGuard {
	return CapacityGuard{}
}

// Evaluate returns the capacity at now given the branch's alerts. Only OPEN
// MAINTENANCE alerts whose window covers now count; the lowest factor wins.
// A maintenance alert with a malformed window is an error.
func (g CapacityGuard) Evaluate(alerts []*alert.Alert, now time.Time) (Capacity, error) {
	capacity := FullCapacity()

	for _, a := range alerts {
		if a.Type() != alert.TypeMaintenance || !a.IsOpen() {
			continue
		}

		w, err := a.MaintenanceWindow()
		if err != nil {
			return Capacity{}, fmt.Errorf("maintenance alert %s: %w", a.ID(), err)
		}
		if !w.Covers(now) {
			continue
		}

		if capacity.window == nil || w.CapacityFactor() < capacity.factor {
			capacity = Capacity{factor: w.CapacityFactor(), window: &w}
		}
	}

	return capacity, nil
}
