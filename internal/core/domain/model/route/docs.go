// Package route models the admin-managed pricing table used to quote shipments.
//
// A Template is keyed by origin city, destination city, transport mode and
// service level, and holds an ordered list of weight brackets. Brackets may
// overlap or leave gaps; callers take the first one that contains the weight.
package route
