// Package commands holds the write side: one command and one handler per
// operation. Every handler validates its command, checks the actor's branch
// membership, then runs inside a single unit of work so that either all rows
// are written or none are.
package commands

import (
	"context"

	"courierops/internal/core/ports"
)

// Each handler depends on the narrowest unit of work it needs.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	JournalRepoFactory interface {
		JournalRepository() ports.JournalRepository
	}

	HandoffRepoFactory interface {
		HandoffRepository() ports.HandoffRepository
	}

	AlertRepoFactory interface {
		AlertRepository() ports.AlertRepository
	}

	WorkforceFactory interface {
		WorkforceDirectory() ports.WorkforceDirectory
	}

	// ShipmentUoW covers operations that touch the shipment header only
	// (booking, hold, release, reroute).
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// TransitionUoW covers status changes, which also append to the journal.
	TransitionUoW interface {
		TxManager
		ShipmentRepoFactory
		JournalRepoFactory
	}

	TransitionUoWFactory interface {
		Create() TransitionUoW
	}

	// AssignUoW adds the workforce and the branch's maintenance alerts.
	AssignUoW interface {
		TxManager
		ShipmentRepoFactory
		JournalRepoFactory
		AlertRepoFactory
		WorkforceFactory
	}

	AssignUoWFactory interface {
		Create() AssignUoW
	}

	HandoffUoW interface {
		TxManager
		ShipmentRepoFactory
		HandoffRepoFactory
	}

	HandoffUoWFactory interface {
		Create() HandoffUoW
	}

	AlertUoW interface {
		TxManager
		ShipmentRepoFactory
		AlertRepoFactory
	}

	AlertUoWFactory interface {
		Create() AlertUoW
	}

	// MonitorUoW reads shipments and handoffs and writes alerts.
	MonitorUoW interface {
		TxManager
		ShipmentRepoFactory
		HandoffRepoFactory
		AlertRepoFactory
	}

	MonitorUoWFactory interface {
		Create() MonitorUoW
	}
)
