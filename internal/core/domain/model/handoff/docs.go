// Package handoff models the two-branch custody transfer workflow:
// PENDING -> APPROVED -> COMPLETED, or PENDING -> REJECTED.
//
// The origin (the branch holding custody) requests; only the destination
// decides and completes.
package handoff
