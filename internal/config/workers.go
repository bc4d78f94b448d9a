package config

import "runtime"

// maxWorkerCount bounds the default worker pool size even on large
// machines; routes are independent but there is no benefit scaling
// past a modest cap for a batch job this size (§5: "N <= logical
// cores").
const maxWorkerCount = 8

func defaultWorkerCount() int {
	n := runtime.NumCPU()
	if n > maxWorkerCount {
		return maxWorkerCount
	}
	if n < 1 {
		return 1
	}
	return n
}
