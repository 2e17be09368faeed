//go:build !linux

package affinity

// Pin always fails on this platform.
func Pin(cpu int) (*Pinned, error) {
	return nil, ErrUnsupported
}
