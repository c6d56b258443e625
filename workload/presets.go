// Package workload holds the named workload presets.
package workload

import (
	"github.com/hhkbp2/mapbench"
)

const (
	presetCapacityLog2 = 24
)

// ReadHeavy mostly reads a map which is 80% full.
func ReadHeavy(threads int) *mapbench.Workload {
	mix := mapbench.Mix{Read: 98, Insert: 1, Remove: 1}
	return mapbench.NewWorkload(threads, mix).
		SetInitialCapacityLog2(presetCapacityLog2).
		SetPrefillFraction(0.8)
}

// Exchange inserts and removes at the same rate, keeping the map size
// around its prefill.
func Exchange(threads int) *mapbench.Workload {
	mix := mapbench.Mix{Read: 10, Insert: 40, Remove: 40, Update: 10}
	return mapbench.NewWorkload(threads, mix).
		SetInitialCapacityLog2(presetCapacityLog2).
		SetPrefillFraction(0.8)
}

// RapidGrow mostly inserts into an empty map.
func RapidGrow(threads int) *mapbench.Workload {
	mix := mapbench.Mix{Read: 5, Insert: 80, Remove: 5, Update: 10}
	return mapbench.NewWorkload(threads, mix).
		SetInitialCapacityLog2(presetCapacityLog2).
		SetPrefillFraction(0.0)
}

// ReadOnly only reads a full map.
func ReadOnly(threads int) *mapbench.Workload {
	return mapbench.NewWorkload(threads, mapbench.Mix{Read: 1}).
		SetInitialCapacityLog2(presetCapacityLog2).
		SetPrefillFraction(1.0)
}

// InsertOnly only inserts into an empty map.
func InsertOnly(threads int) *mapbench.Workload {
	return mapbench.NewWorkload(threads, mapbench.Mix{Insert: 1}).
		SetInitialCapacityLog2(presetCapacityLog2).
		SetPrefillFraction(0.0)
}

func InsertHeavy(threads int) *mapbench.Workload {
	return mapbench.NewWorkload(threads, mapbench.InsertHeavyMix()).
		SetInitialCapacityLog2(presetCapacityLog2)
}

// UpdateHeavy runs the update heavy mix for one and a half times the
// capacity against a map which is 60% full.
func UpdateHeavy(threads int) *mapbench.Workload {
	return mapbench.NewWorkload(threads, mapbench.UpdateHeavyMix()).
		SetInitialCapacityLog2(presetCapacityLog2).
		SetPrefillFraction(0.6).
		SetOperations(1.5)
}

var (
	presets = map[string]mapbench.MakeWorkloadFunc{
		"read-heavy":   ReadHeavy,
		"exchange":     Exchange,
		"rapid-grow":   RapidGrow,
		"read-only":    ReadOnly,
		"insert-only":  InsertOnly,
		"insert-heavy": InsertHeavy,
		"update-heavy": UpdateHeavy,
	}
)

// AddWorkloads registers every preset into mapbench.Workloads.
func AddWorkloads() {
	for name, f := range presets {
		mapbench.Workloads[name] = f
	}
}
