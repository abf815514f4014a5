// Package services contains the stateless domain services that coordinate
// several aggregates: worker selection, maintenance capacity checks, SLA
// evaluation and the operational alert ranking.
package services
