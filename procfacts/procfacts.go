// Package procfacts attaches the current process's resource usage to an open
// measurement, so payloads can correlate slow operations with memory or CPU
// pressure.
package procfacts

import (
	"os"
	"strconv"

	"github.com/shirou/gopsutil/process"

	"github.com/sarchlab/perftrack/measure"
)

// Add records the current process's resident set size, virtual memory size,
// and CPU percentage as facts on m. Adding to a disabled measurement costs
// only the gopsutil lookups.
func Add(m measure.Measurement) error {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return err
	}

	memInfo, err := proc.MemoryInfo()
	if err != nil {
		return err
	}

	m.AddValue("ProcessRSS", "bytes", int64(memInfo.RSS))
	m.AddValue("ProcessVMS", "bytes", int64(memInfo.VMS))

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		return err
	}

	m.AddFact("ProcessCPUPercent",
		strconv.FormatFloat(cpuPercent, 'f', 2, 64))

	return nil
}
