// Package kernel holds the value objects shared by every aggregate of the
// fulfillment domain: identifiers, the metadata extension bag, transport modes,
// service levels and the caller principal.
package kernel
