package systems

import "math/rand"

// RandRange returns a uniform float in [lo, hi). Returns lo when the range is empty.
func RandRange(rng *rand.Rand, lo, hi float32) float32 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float32()*(hi-lo)
}

// RandRange64 is RandRange for float64 bounds, used for timer delays.
func RandRange64(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// Choose picks a uniformly random element. Panics on an empty slice.
func Choose[T any](rng *rand.Rand, items []T) T {
	if len(items) == 0 {
		panic("systems: Choose from empty slice")
	}
	return items[rng.Intn(len(items))]
}
