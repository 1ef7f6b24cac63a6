// internal/runutil/runutil.go
package runutil

import "runtime"

// EffectiveThreads maps the --threads value to a worker count:
// 0 (or negative) means all CPUs.
func EffectiveThreads(threads int) int {
	if threads <= 0 {
		return runtime.NumCPU()
	}
	return threads
}

// WriterBuffer sizes the channel between the pipeline and a writer.
func WriterBuffer(threads int) int {
	return EffectiveThreads(threads) * 4
}
