// Package branch models who is acting and on behalf of which branch.
//
// Branch isolation is enforced by the aggregates themselves: every
// branch-scoped mutation takes an Actor and rejects it with
// ErrUnauthorizedBranchActor unless the actor's branch is the party the
// operation concerns. Membership and capabilities are resolved by the
// ports.BranchDirectory before an Actor reaches the domain.
package branch
