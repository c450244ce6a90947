//go:build !linux

package sched

func setRoundRobin(priority int) error {
	return ErrUnsupported
}
