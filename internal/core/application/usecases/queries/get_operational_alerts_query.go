package queries

import (
	"errors"
	"time"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/errs"
	"courierops/internal/pkg/guard"
)

var ErrGetOperationalAlertsQueryIsNotConstructed = errors.New(
	"GetOperationalAlertsQuery must be created via NewGetOperationalAlertsQuery constructor",
)

// GetOperationalAlertsQuery builds the ranked dashboard list for one branch
// as of a point in time.
type GetOperationalAlertsQuery struct {
	actor    branch.Actor
	branchID kernel.UUID
	asOf     time.Time

	guard guard.ConstructorGuard
}

func NewGetOperationalAlertsQuery(actor branch.Actor, branchID kernel.UUID, asOf time.Time) (GetOperationalAlertsQuery, error) {
	var asOfErr error
	if asOf.IsZero() {
		asOfErr = errs.NewValueIsRequiredError("as of")
	}
	if err := errors.Join(actor.Validate(), branchID.Validate(), asOfErr); err != nil {
		return GetOperationalAlertsQuery{}, err
	}

	return GetOperationalAlertsQuery{
		actor:    actor,
		branchID: branchID,
		asOf:     asOf,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetOperationalAlertsQuery) Validate() error {
	return q.guard.Validate(ErrGetOperationalAlertsQueryIsNotConstructed)
}
