package alert

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"courierops/internal/pkg/errs"
)

// MaintenanceWindow limits a branch's capacity between StartsAt and EndsAt.
// A zero capacity factor blocks new assignments; a factor between 0 and 1
// scales each worker's maximum load.
type MaintenanceWindow struct {
	startsAt       time.Time
	endsAt         time.Time
	capacityFactor float64
}

func NewMaintenanceWindow(startsAt, endsAt time.Time, capacityFactor float64) (MaintenanceWindow, error) {
	var err error
	if startsAt.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError(ContextStartsAt))
	}
	if endsAt.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError(ContextEndsAt))
	}
	if err == nil && !endsAt.After(startsAt) {
		err = errs.NewValueIsInvalidErrorWithCause("maintenance window is invalid", errors.New("ends_at must be after starts_at"))
	}
	if math.IsNaN(capacityFactor) || capacityFactor < 0 || capacityFactor > 1 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError(ContextCapacityFactor, capacityFactor, 0, 1))
	}
	if err != nil {
		return MaintenanceWindow{}, err
	}

	return MaintenanceWindow{startsAt: startsAt.UTC(), endsAt: endsAt.UTC(), capacityFactor: capacityFactor}, nil
}

// MaintenanceWindowFromContext validates the loosely typed context of a
// MAINTENANCE alert. Times are RFC 3339 strings.
func MaintenanceWindowFromContext(c Context) (MaintenanceWindow, error) {
	startsAt, startErr := contextTime(c, ContextStartsAt)
	endsAt, endErr := contextTime(c, ContextEndsAt)
	factor, factorErr := contextFloat(c, ContextCapacityFactor)
	if err := errors.Join(startErr, endErr, factorErr); err != nil {
		return MaintenanceWindow{}, err
	}
	return NewMaintenanceWindow(startsAt, endsAt, factor)
}

func (w MaintenanceWindow) StartsAt() time.Time     { return w.startsAt }
func (w MaintenanceWindow) EndsAt() time.Time       { return w.endsAt }
func (w MaintenanceWindow) CapacityFactor() float64 { return w.capacityFactor }

// Covers reports whether t falls in [StartsAt, EndsAt).
func (w MaintenanceWindow) Covers(t time.Time) bool {
	return !t.Before(w.startsAt) && t.Before(w.endsAt)
}

func (w MaintenanceWindow) BlocksAssignment() bool {
	return w.capacityFactor == 0
}

// ScaleLoad applies the capacity factor to a worker's maximum load.
func (w MaintenanceWindow) ScaleLoad(maxLoad int) int {
	return int(math.Floor(float64(maxLoad) * w.capacityFactor))
}

func (w MaintenanceWindow) Context() Context {
	return Context{
		ContextStartsAt:       w.startsAt.Format(time.RFC3339),
		ContextEndsAt:         w.endsAt.Format(time.RFC3339),
		ContextCapacityFactor: w.capacityFactor,
	}
}

func contextTime(c Context, key string) (time.Time, error) {
	raw, ok := c[key].(string)
	if !ok || raw == "" {
		return time.Time{}, errs.NewValueIsRequiredError(key)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return t, nil
}

func contextFloat(c Context, key string) (float64, error) {
	switch v := c[key].(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
		}
		return f, nil
	case nil:
		return 0, errs.NewValueIsRequiredError(key)
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause(key, fmt.Errorf("unsupported type %T", v))
	}
}
