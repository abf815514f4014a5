package queries

import (
	"context"

	"courierops/internal/core/domain/model/shipment"
	"courierops/internal/core/domain/services"
	"courierops/internal/core/ports"

	"gorm.io/gorm"
)

// GetOperationalAlertsQueryHandler counts the branch's signals in one pass
// over shipments and hands them to the AlertAggregator.
//
// A shipment counts towards the branch when the branch is either party,
// except for pickups (origin only) and deliveries and COD (destination only).
type GetOperationalAlertsQueryHandler struct {
	db         *gorm.DB
	branches   ports.BranchDirectory
	aggregator services.AlertAggregator
}

func NewGetOperationalAlertsQueryHandler(
	db *gorm.DB,
	branches ports.BranchDirectory,
	aggregator services.AlertAggregator,
) GetOperationalAlertsQueryHandler {
	return GetOperationalAlertsQueryHandler{db: db, branches: branches, aggregator: aggregator}
}

func (h GetOperationalAlertsQueryHandler) Handle(
	ctx context.Context,
	query GetOperationalAlertsQuery,
) ([]services.OperationalAlert, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeRead(ctx, h.branches, query.actor, query.branchID); err != nil {
		return nil, err
	}

	inProgress := make([]shipment.Status, 0)
	for _, st := range shipment.Statuses() {
		if st.IsInProgress() {
			inProgress = append(inProgress, st)
		}
	}

	var snap services.BranchSnapshot
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (
				WHERE current_status = ANY(@open)
				  AND expected_delivery_date IS NOT NULL
				  AND expected_delivery_date < @now
			) AS sla_breached,
			COUNT(*) FILTER (
				WHERE has_exception AND current_status = @exception
			) AS open_exceptions,
			COUNT(*) FILTER (
				WHERE current_status = ANY(@in_progress)
				  AND status_changed_at <= @stuck_before
			) AS stuck,
			COUNT(*) FILTER (
				WHERE origin_branch_id = @branch
				  AND current_status = ANY(@awaiting_pickup)
				  AND (stage_times->>'BOOKED')::timestamptz <= @booked_before
			) AS awaiting_pickup,
			COUNT(*) FILTER (
				WHERE dest_branch_id = @branch
				  AND current_status = @delivered
				  AND cod_amount > 0
				  AND NOT cod_collected
			) AS cod_awaiting,
			COUNT(*) FILTER (
				WHERE dest_branch_id = @branch
				  AND current_status = @out_for_delivery
			) AS out_for_delivery
		FROM shipments
		WHERE origin_branch_id = @branch OR dest_branch_id = @branch
	`, map[string]any{
		"branch":           query.branchID.Bytes(),
		"now":              query.asOf,
		"open":             codes(shipment.OpenStatuses()),
		"exception":        shipment.Exception.String(),
		"in_progress":      codes(inProgress),
		"stuck_before":     query.asOf.Add(-services.StuckThreshold),
		"awaiting_pickup":  codes([]shipment.Status{shipment.Booked, shipment.PickupScheduled}),
		"booked_before":    query.asOf.Add(-services.AwaitingPickupThreshold),
		"delivered":        shipment.Delivered.String(),
		"out_for_delivery": shipment.OutForDelivery.String(),
	}).Row().Scan(
		&snap.SLABreached,
		&snap.OpenExceptions,
		&snap.Stuck,
		&snap.AwaitingPickup,
		&snap.CODAwaiting,
		&snap.OutForDelivery,
	)
	if err != nil {
		return nil, err
	}

	return h.aggregator.Aggregate(query.branchID, snap), nil
}
