package util

import "runtime"

// GetOptimalPoolSize returns the worker count for CPU-bound fan-out.
//
// Formula: min(max(runtime.NumCPU() * 2, 4), 32)
//
// Used for:
//   - concurrent category generation
//   - parser pool size for section rewriting
func GetOptimalPoolSize() int {
	poolSize := runtime.NumCPU() * 2
	if poolSize < 4 {
		poolSize = 4
	}
	if poolSize > 32 {
		poolSize = 32
	}
	return poolSize
}

// GetOptimalPoolSizeWithOverride returns override when positive, otherwise
// GetOptimalPoolSize().
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
