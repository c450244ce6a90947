//go:build linux

package sched

import "golang.org/x/sys/unix"

// setRoundRobin applies SCHED_RR to the calling process (pid 0).
func setRoundRobin(priority int) error {
	param := unix.SchedParam{Priority: int32(priority)}
	return unix.SchedSetscheduler(0, unix.SCHED_RR, &param)
}
