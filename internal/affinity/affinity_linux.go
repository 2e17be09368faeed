//go:build linux

package affinity

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// Pin locks the calling goroutine to its OS thread and restricts that thread
// to cpu. The caller must call Release from the same goroutine.
func Pin(cpu int) (*Pinned, error) {
	if cpu < 0 {
		return nil, fmt.Errorf("invalid cpu %d", cpu)
	}
	runtime.LockOSThread()

	var previous unix.CPUSet
	if err := unix.SchedGetaffinity(0, &previous); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("reading cpu affinity: %w", err)
	}
	if !previous.IsSet(cpu) {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("cpu %d is not available to this process (%d usable)", cpu, previous.Count())
	}

	var set unix.CPUSet
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("pinning to cpu %d: %w", cpu, err)
	}

	return &Pinned{CPU: cpu, release: func() error {
		defer runtime.UnlockOSThread()
		if err := unix.SchedSetaffinity(0, &previous); err != nil {
			return fmt.Errorf("restoring cpu affinity: %w", err)
		}
		return nil
	}}, nil
}
