// internal/runutil/runutil.go
package runutil

import "runtime"

// EffectiveWorkers returns the worker count to use: n when positive,
// otherwise the number of CPUs.
func EffectiveWorkers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}

