// Package shipment holds the Shipment aggregate and its status model.
//
// The status vocabulary, forward lifecycle, terminal set and transition graph
// are package-level tables built once and exposed through copying accessors.
// ParseStatus is the single entry point for historical free-text values.
// Scan rules map a (ScanMode, Status) pair to the next status and to the
// branch that must be scanning.
package shipment
