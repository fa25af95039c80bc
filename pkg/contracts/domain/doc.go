// Package domain defines the typed record contracts shared by the
// cleaning pipeline, the aggregation layer, and the HTTP transport.
//
// The two datasets keep separate strongly-typed structs (VehicleRecord for
// the mainstream EPA source, SportsRecord for the curated sports source)
// with explicit optional fields instead of an open-ended dynamic map.
// Truly open-vocabulary values (fuel type labels) remain plain strings.
package domain
