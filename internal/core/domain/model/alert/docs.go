// Package alert holds BranchAlert records raised by the SLA monitor or by
// staff, the SLABreach that fans one finding out to several branches, and the
// MaintenanceWindow read from MAINTENANCE alert context.
//
// At most one OPEN alert exists per (branch, type, dedupe key). The key is
// derived from the context: the shipment or handoff the alert is about, or
// the start of a maintenance window.
package alert
