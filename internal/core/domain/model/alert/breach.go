package alert

import (
	"errors"
	"time"

	"courierops/internal/core/domain/model/kernel"
)

// SLABreach is one finding of the SLA monitor. It is raised once and fanned
// out to an alert per target branch.
type SLABreach struct {
	Type           Type
	Severity       Severity
	TargetBranches []kernel.UUID
	Context        Context
	Message        string
}

// Alerts builds one OPEN alert per distinct target branch.
func (b SLABreach) Alerts(at time.Time) ([]*Alert, error) {
	if len(b.TargetBranches) == 0 {
		return nil, errors.New("sla breach has no target branches")
	}

	out := make([]*Alert, 0, len(b.TargetBranches))
	seen := make(map[kernel.UUID]struct{}, len(b.TargetBranches))
	for _, branchID := range b.TargetBranches {
		if _, dup := seen[branchID]; dup {
			continue
		}
		seen[branchID] = struct{}{}

		a, err := NewAlert(branchID, b.Type, b.Severity, b.Context, b.Message, nil, at)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
