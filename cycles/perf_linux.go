//go:build linux
// +build linux

package cycles

import (
	"encoding/binary"
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// perfCounter reads the hardware CPU-cycle counter of the calling thread.
// The opening goroutine stays locked to its OS thread until Close, because
// the kernel counts per thread and a migrated goroutine would read a
// counter that is not advancing with it.
type perfCounter struct {
	fd  int
	buf [8]byte
}

func newPerf() (Counter, error) {
	runtime.LockOSThread()

	attr := &unix.PerfEventAttr{
		Type:   unix.PERF_TYPE_HARDWARE,
		Size:   uint32(unsafe.Sizeof(unix.PerfEventAttr{})),
		Config: unix.PERF_COUNT_HW_CPU_CYCLES,
		Bits:   unix.PerfBitDisabled | unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
	}
	fd, err := unix.PerfEventOpen(attr, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("cycles: perf_event_open: %w", err)
	}
	if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_RESET, 0); err != nil {
		unix.Close(fd)
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("cycles: reset perf counter: %w", err)
	}
	if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_ENABLE, 0); err != nil {
		unix.Close(fd)
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("cycles: enable perf counter: %w", err)
	}
	return &perfCounter{fd: fd}, nil
}

// Ticks returns the cycle count, or 0 if the read fails. A failed read
// shows up downstream as a zero-length or backwards interval and is
// flagged there.
func (p *perfCounter) Ticks() uint64 {
	n, err := unix.Read(p.fd, p.buf[:])
	if err != nil || n != len(p.buf) {
		return 0
	}
	return binary.NativeEndian.Uint64(p.buf[:])
}

func (p *perfCounter) Name() string { return string(Perf) }
func (p *perfCounter) Unit() string { return "cycles" }

func (p *perfCounter) Close() error {
	if p.fd < 0 {
		return nil
	}
	unix.IoctlSetInt(p.fd, unix.PERF_EVENT_IOC_DISABLE, 0)
	err := unix.Close(p.fd)
	p.fd = -1
	runtime.UnlockOSThread()
	return err
}
