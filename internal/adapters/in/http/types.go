package http

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Request and response bodies of api/openapi.yaml. Field names and tags
// follow the document.

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ActorParams carries the headers that identify who is calling and for
// which branch.
type ActorParams struct {
	XActorID  openapi_types.UUID `json:"X-Actor-ID"`
	XBranchID openapi_types.UUID `json:"X-Branch-ID"`
}

type ListBranchHandoffsParams struct {
	ActorParams

	Status    *string `form:"status,omitempty" json:"status,omitempty"`
	Direction *string `form:"direction,omitempty" json:"direction,omitempty"`
}

type ListBranchAlertsParams struct {
	ActorParams

	Status *string `form:"status,omitempty" json:"status,omitempty"`
	Type   *string `form:"type,omitempty" json:"type,omitempty"`
}

type BookShipmentRequest struct {
	TrackingNumber       string             `json:"tracking_number"`
	DestBranchID         openapi_types.UUID `json:"dest_branch_id"`
	ExpectedDeliveryDate *time.Time         `json:"expected_delivery_date,omitempty"`
	CODAmount            int64              `json:"cod_amount,omitempty"`
}

type ShipmentCreated struct {
	ID openapi_types.UUID `json:"id"`
}

type ScanRequest struct {
	TrackingNumber string     `json:"tracking_number"`
	Mode           string     `json:"mode"`
	ScannedAt      *time.Time `json:"scanned_at,omitempty"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

type StatusResult struct {
	Status string `json:"status"`
}

type AssignRequest struct {
	WorkerID *openapi_types.UUID `json:"worker_id,omitempty"`
}

type AssignResult struct {
	WorkerID openapi_types.UUID `json:"worker_id"`
	Status   string             `json:"status"`
}

type ReasonRequest struct {
	Reason string `json:"reason,omitempty"`
}

type RerouteRequest struct {
	DestBranchID         openapi_types.UUID `json:"dest_branch_id"`
	Reason               string             `json:"reason"`
	ExpectedDeliveryDate *time.Time         `json:"expected_delivery_date,omitempty"`
}

type RaiseAlertRequest struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type AlertRaised struct {
	AlertID openapi_types.UUID `json:"alert_id"`
	Created bool               `json:"created"`
}

type AlertResolved struct {
	Resolved bool `json:"resolved"`
}

type HandoffRequest struct {
	ShipmentID        openapi_types.UUID `json:"shipment_id"`
	DestBranchID      openapi_types.UUID `json:"dest_branch_id"`
	ExpectedHandOffAt time.Time          `json:"expected_hand_off_at"`
}

type HandoffCreated struct {
	ID openapi_types.UUID `json:"id"`
}

type HandoffLine struct {
	ID                openapi_types.UUID  `json:"id"`
	ShipmentID        openapi_types.UUID  `json:"shipment_id"`
	TrackingNumber    string              `json:"tracking_number"`
	Direction         string              `json:"direction"`
	OriginBranchID    openapi_types.UUID  `json:"origin_branch_id"`
	DestBranchID      openapi_types.UUID  `json:"dest_branch_id"`
	Status            string              `json:"status"`
	RequestedBy       openapi_types.UUID  `json:"requested_by"`
	ApprovedBy        *openapi_types.UUID `json:"approved_by,omitempty"`
	ExpectedHandOffAt time.Time           `json:"expected_hand_off_at"`
}

type BranchAlert struct {
	ID          openapi_types.UUID  `json:"id"`
	Type        string              `json:"type"`
	Severity    string              `json:"severity"`
	Status      string              `json:"status"`
	Message     string              `json:"message"`
	Context     map[string]any      `json:"context"`
	TriggeredAt time.Time           `json:"triggered_at"`
	ResolvedAt  *time.Time          `json:"resolved_at,omitempty"`
	ResolvedBy  *openapi_types.UUID `json:"resolved_by,omitempty"`
}

type OperationalAlert struct {
	Key         string `json:"key"`
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	ActionLabel string `json:"action_label"`
	ActionRoute string `json:"action_route"`
	Count       int    `json:"count"`
}

type MaintenanceRequest struct {
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	CapacityFactor float64   `json:"capacity_factor"`
	Message        string    `json:"message,omitempty"`
}

type ShipmentHistory struct {
	ShipmentID     openapi_types.UUID `json:"shipment_id"`
	TrackingNumber string             `json:"tracking_number"`
	OriginBranchID openapi_types.UUID `json:"origin_branch_id"`
	DestBranchID   openapi_types.UUID `json:"dest_branch_id"`
	Status         string             `json:"status"`
	Scans          []ScanRecord       `json:"scans"`
	Transitions    []TransitionRecord `json:"transitions"`
}

type ScanRecord struct {
	ID        openapi_types.UUID `json:"id"`
	Mode      string             `json:"mode"`
	BranchID  openapi_types.UUID `json:"branch_id"`
	ActorID   openapi_types.UUID `json:"actor_id"`
	ScannedAt time.Time          `json:"scanned_at"`
	Latitude  *float64           `json:"latitude,omitempty"`
	Longitude *float64           `json:"longitude,omitempty"`
	Notes     string             `json:"notes,omitempty"`
}

type TransitionRecord struct {
	ID         openapi_types.UUID `json:"id"`
	From       string             `json:"from"`
	To         string             `json:"to"`
	ActorID    openapi_types.UUID `json:"actor_id"`
	Trigger    string             `json:"trigger"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type MonitorReport struct {
	Skipped          bool `json:"skipped"`
	ShipmentsChecked int  `json:"shipments_checked"`
	HandoffsChecked  int  `json:"handoffs_checked"`
	AlertsRaised     int  `json:"alerts_raised"`
	AlertsExisting   int  `json:"alerts_existing"`
	Failures         int  `json:"failures"`
}
