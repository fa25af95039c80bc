// Package reconcile merges the performance-classified subset of the
// mainstream dataset into the independently curated sports dataset.
//
// The curated source carries pricing and torque data that the mainstream
// source lacks, so when both sources describe the same vehicle (same
// make, model, year) the record with a price wins. The merge is
// deterministic: ties are broken by source, curated before derived, and
// within a source by input order.
package reconcile

import (
	"log/slog"

	"autotrends/pkg/contracts/domain"
)

// Result summarizes a merge for observability. Dropped records are a
// data-quality count, not an error.
type Result struct {
	CuratedIn         int `json:"curated_in"`
	DerivedIn         int `json:"derived_in"`
	MergedOut         int `json:"merged_out"`
	Collisions        int `json:"collisions"`
	DroppedNoYear     int `json:"dropped_no_year"`
	CuratedDuplicates int `json:"curated_duplicates"`
}

// MapToSports maps a performance-classified mainstream record into the
// sports schema. Torque and price have no mainstream source column and
// stay nil.
func MapToSports(r domain.VehicleRecord) domain.SportsRecord {
	return domain.SportsRecord{
		Make:        r.Make,
		Model:       r.Model,
		Year:        r.Year,
		EngineSize:  r.EngineDisplacement,
		Horsepower:  r.HorsepowerEst,
		ZeroToSixty: r.ZeroToSixtyEst,
		CombinedMPG: r.CombinedMPG,
	}
}

// MapAllToSports maps a slice of performance-classified mainstream
// records into the sports schema, preserving order.
func MapAllToSports(records []domain.VehicleRecord) []domain.SportsRecord {
	out := make([]domain.SportsRecord, 0, len(records))
	for _, r := range records {
		out = append(out, MapToSports(r))
	}
	return out
}

// Merge combines the curated sports collection with mainstream-derived
// sports records into a single collection with unique natural keys.
//
// Resolution per colliding key:
//  1. a record with a non-nil price beats one without;
//  2. otherwise the curated record beats the derived one;
//  3. within one source the first occurrence wins.
//
// Records missing a year are dropped and counted. Inputs are not mutated.
func Merge(curated, derived []domain.SportsRecord, logger *slog.Logger) ([]domain.SportsRecord, Result) {
	if logger == nil {
		logger = slog.Default()
	}

	res := Result{CuratedIn: len(curated), DerivedIn: len(derived)}

	merged := make([]domain.SportsRecord, 0, len(curated)+len(derived))
	index := make(map[domain.NaturalKey]int, len(curated)+len(derived))

	keep := func(r domain.SportsRecord, fromCurated bool) {
		if r.Year == 0 {
			res.DroppedNoYear++
			return
		}
		key := r.Key()
		at, seen := index[key]
		if !seen {
			index[key] = len(merged)
			merged = append(merged, r)
			return
		}
		if fromCurated {
			res.CuratedDuplicates++
		} else {
			res.Collisions++
		}
		// The incumbent loses only to a challenger that has a price when
		// the incumbent does not. Everything else keeps the earlier
		// record, which also keeps curated ahead of derived.
		if !merged[at].HasPrice() && r.HasPrice() {
			merged[at] = r
		}
	}

	for _, r := range curated {
		keep(r, true)
	}
	for _, r := range derived {
		keep(r, false)
	}

	res.MergedOut = len(merged)

	logger.Info("reconciled sports datasets",
		slog.Int("curated_in", res.CuratedIn),
		slog.Int("derived_in", res.DerivedIn),
		slog.Int("merged_out", res.MergedOut),
		slog.Int("collisions", res.Collisions),
		slog.Int("dropped_no_year", res.DroppedNoYear))

	return merged, res
}
