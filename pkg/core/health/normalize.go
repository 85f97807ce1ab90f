package health

// Benchmark-anchored normalization curves. Both map the at-benchmark value to
// 50 and are monotonic in the ratio value/benchmark; the exact shape is
// policy, anchored so a company exactly at industry average scores the
// midpoint rather than the ceiling.

// higherBetter scores ratios where exceeding the benchmark is good (margins,
// returns, coverage, turnover). Linear up to the benchmark, half slope up to
// 2x benchmark, then diminishing returns toward (never reaching) 100.
//
//	r = value/benchmark
//	r <= 1:      50*r
//	1 < r <= 2:  50 + 25*(r-1)      (2x benchmark -> 75)
//	r > 2:       75 + 25*(1 - 2/r)  (asymptote 100)
func higherBetter(value, benchmark float64) float64 {
	if value <= 0 {
		return 0
	}
	r := value / benchmark
	switch {
	case r <= 1:
		return clamp(50 * r)
	case r <= 2:
		return clamp(50 + 25*(r-1))
	default:
		return clamp(75 + 25*(1-2/r))
	}
}

// lowerBetter scores ratios where growth past the benchmark is bad (days
// outstanding, leverage, cash conversion cycle). Zero or negative values are
// best-case (a negative cash conversion cycle means suppliers finance the
// working capital).
//
//	r = value/benchmark
//	r <= 0:  100
//	r <= 1:  100 - 50*r
//	r > 1:   50/r  (asymptote 0)
func lowerBetter(value, benchmark float64) float64 {
	if value <= 0 {
		return 100
	}
	r := value / benchmark
	if r <= 1 {
		return clamp(100 - 50*r)
	}
	return clamp(50 / r)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
