// Package driver models members of the internal delivery fleet.
//
// A Driver carries the vehicle it operates, an availability status and two
// delivery counters. The counters feed the load-balancing rule of the driver
// selector: among eligible drivers the one with the fewest deliveries is picked.
package driver
