// Package sysmon samples host-wide CPU and memory usage for the dashboard
// gauges. Sampling is best effort: when gopsutil cannot read a metric the
// corresponding field stays zero rather than failing the refresh.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one host-wide usage snapshot. Both fields are percentages in
// [0, 100].
type Stats struct {
	CPUPercent float64
	MemPercent float64
}

// Sample reads current host CPU and memory utilisation. The CPU figure is
// the delta since the previous call (gopsutil interval 0), so the first
// sample a process takes reads as zero.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
	}
	return s
}
