package lib

/* thread.go contains functions useful for multi-threading. */

import (
	"runtime"
)

// SetThreads sets the number of threads used for evaluation. n = -1 uses
// one thread per core.
func SetThreads(n int) {
	if n == -1 {
		runtime.GOMAXPROCS(runtime.NumCPU())
		return
	}
	if n > runtime.NumCPU() {
		ExternalErrorf("%d threads requested, but your system only has %d "+
			"cores. If you want music-eos to use the maximum number of "+
			"threads, set Threads = -1.", n, runtime.NumCPU())
	}

	runtime.GOMAXPROCS(n)
}
