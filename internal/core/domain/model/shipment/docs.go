// Package shipment contains the Shipment aggregate and its vocabulary.
//
// A Shipment moves a set of items from a pickup address to a delivery address,
// carried either by the internal fleet (carrier type internal) or by a third
// party (external). Every shipment has a unique human readable reference,
// a status governed by the state machine in status.go, and an append-only
// tracking history.
//
// The aggregate records domain events (CreatedEvent, DriverAssignedEvent,
// StatusChangedEvent) which are persisted to the outbox in the same
// transaction as the shipment itself and dispatched afterwards.
package shipment
