// Package affinity pins the calling goroutine's OS thread to a single CPU so
// that consecutive timed calls do not migrate between cores.
package affinity

import "errors"

// ErrUnsupported is returned by Pin on platforms without thread affinity.
var ErrUnsupported = errors.New("cpu pinning is not supported on this platform")

// Pinned is the handle returned by Pin. Release unlocks the OS thread and
// restores the previous CPU set where the platform allows it.
type Pinned struct {
	CPU     int
	release func() error
}

// Release undoes Pin. It is safe to call on a nil *Pinned.
func (p *Pinned) Release() error {
	if p == nil || p.release == nil {
		return nil
	}
	err := p.release()
	p.release = nil
	return err
}
