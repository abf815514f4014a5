// Package kernel holds the value objects shared by every aggregate:
// UUID identifiers, scan GeoPoints and the DomainEvent contract the unit of
// work uses to dispatch events after commit.
package kernel
