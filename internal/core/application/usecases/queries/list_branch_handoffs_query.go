// Package queries contains the read side: branch handoff manifests, alert
// lists, the operational alert dashboard and shipment history. Handlers read
// with raw SQL and never go through the unit of work.
package queries

import (
	"errors"
	"strings"
	"time"

	"courierops/internal/core/domain/model/branch"
	"courierops/internal/core/domain/model/handoff"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/pkg/guard"
)

var ErrListBranchHandoffsQueryIsNotConstructed = errors.New(
	"ListBranchHandoffsQuery must be created via NewListBranchHandoffsQuery constructor",
)

// ListBranchHandoffsQuery lists the handoffs a branch is party to.
//
// Example:
//
//	query, err := NewListBranchHandoffsQuery(actor, branchID, "approved", "inbound")
//	if err != nil {
//	    return err
//	}
//	lines, err := handler.Handle(ctx, query)
type ListBranchHandoffsQuery struct {
	actor     branch.Actor
	branchID  kernel.UUID
	status    *handoff.Status
	direction handoff.Direction

	guard guard.ConstructorGuard
}

// NewListBranchHandoffsQuery builds the query. An empty status lists every
// status; an empty direction lists inbound and outbound handoffs.
func NewListBranchHandoffsQuery(
	actor branch.Actor,
	branchID kernel.UUID,
	status string,
	direction string,
) (ListBranchHandoffsQuery, error) {
	var statusErr error
	var parsed *handoff.Status
	if strings.TrimSpace(status) != "" {
		st, err := handoff.ParseStatus(status)
		statusErr = err
		parsed = &st
	}
	dir, dirErr := handoff.ParseDirection(direction)

	if err := errors.Join(actor.Validate(), branchID.Validate(), statusErr, dirErr); err != nil {
		return ListBranchHandoffsQuery{}, err
	}

	return ListBranchHandoffsQuery{
		actor:     actor,
		branchID:  branchID,
		status:    parsed,
		direction: dir,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListBranchHandoffsQuery) Validate() error {
	return q.guard.Validate(ErrListBranchHandoffsQueryIsNotConstructed)
}

// HandoffManifestLine is one handoff as seen from the queried branch.
// Direction is inbound when the branch is the destination.
type HandoffManifestLine struct {
	ID                kernel.UUID
	ShipmentID        kernel.UUID
	TrackingNumber    string
	Direction         handoff.Direction
	OriginBranchID    kernel.UUID
	DestBranchID      kernel.UUID
	Status            handoff.Status
	RequestedBy       kernel.UUID
	ApprovedBy        *kernel.UUID
	ExpectedHandOffAt time.Time
}

// HandoffManifestHeader is the column order manifest renderers use.
func HandoffManifestHeader() []string {
	return []string{
		"handoff_id",
		"tracking_number",
		"direction",
		"origin_branch_id",
		"dest_branch_id",
		"status",
		"requested_by",
		"approved_by",
		"expected_hand_off_at",
	}
}

// ManifestRow renders the line in HandoffManifestHeader order.
func (l HandoffManifestLine) ManifestRow() []string {
	approvedBy := ""
	if l.ApprovedBy != nil {
		approvedBy = l.ApprovedBy.String()
	}

	return []string{
		l.ID.String(),
		l.TrackingNumber,
		string(l.Direction),
		l.OriginBranchID.String(),
		l.DestBranchID.String(),
		l.Status.String(),
		l.RequestedBy.String(),
		approvedBy,
		l.ExpectedHandOffAt.UTC().Format(time.RFC3339),
	}
}
