// Package services provides domain services that work across several
// aggregates of the fulfillment domain.
//
// The package includes:
//   - RouteMatcher: resolves a price and ETA from the route template catalog
//   - DriverSelector: picks the least loaded eligible driver for an internal shipment
//   - CarrierStatusMapper: translates external carrier callbacks into the shipment vocabulary
package services
