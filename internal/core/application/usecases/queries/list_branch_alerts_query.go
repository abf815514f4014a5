package queries

import (
	"errors"
	"strings"
	"time"

	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/guard"
)

var ErrListBranchAlertsQueryIsNotConstructed = errors.New(
	"ListBranchAlertsQuery must be created via NewListBranchAlertsQuery constructor",
)

// AllStatuses lifts the status filter of ListBranchAlertsQuery.
const AllStatuses = "ALL"

type ListBranchAlertsQuery struct {
	actor     branch.Actor
	branchID  kernel.UUID
	status    *alert.Status
	alertType *alert.Type

	guard guard.ConstructorGuard
}

// NewListBranchAlertsQuery lists OPEN alerts unless status says otherwise;
// AllStatuses lists both. An empty alertType lists every type.
func NewListBranchAlertsQuery(
	actor branch.Actor,
	branchID kernel.UUID,
	status string,
	alertType string,
) (ListBranchAlertsQuery, error) {
	q := ListBranchAlertsQuery{guard: guard.NewConstructorGuard()}

	var statusErr, typeErr error
	switch raw := strings.TrimSpace(status); {
	case raw == "":
		open := alert.StatusOpen
		q.status = &open
	case strings.EqualFold(raw, AllStatuses):
	default:
		st, err := alert.ParseStatus(raw)
		statusErr = err
		q.status = &st
	}
	if strings.TrimSpace(alertType) != "" {
		t, err := alert.ParseType(alertType)
		typeErr = err
		q.alertType = &t
	}

	if err := errors.Join(actor.Validate(), branchID.Validate(), statusErr, typeErr); err != nil {
		return ListBranchAlertsQuery{}, err
	}
	q.actor = actor
	q.branchID = branchID

	return q, nil
}

func (q ListBranchAlertsQuery) Validate() error {
	return q.guard.Validate(ErrListBranchAlertsQueryIsNotConstructed)
}

type BranchAlertView struct {
	ID          kernel.UUID
	Type        alert.Type
	Severity    alert.Severity
	Status      alert.Status
	Message     string
	Context     map[string]any
	TriggeredAt time.Time
	ResolvedAt  *time.Time
	ResolvedBy  *kernel.UUID
}
