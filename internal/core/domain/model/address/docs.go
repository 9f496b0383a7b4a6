// Package address models the postal addresses a shipment is picked up from and delivered to.
//
// An Address is created fresh for every shipment and never shared or updated afterwards,
// so the aggregate exposes getters only.
package address
