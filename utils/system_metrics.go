package utils

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// GetCPUUsage returns host CPU usage in percent since the previous call.
// It does not block; the first call after start-up reports 0.
func GetCPUUsage() float64 {
	percentage, err := cpu.Percent(0, false)
	if err != nil || len(percentage) == 0 {
		return 0
	}
	return percentage[0]
}

// GetMemoryUsage returns host memory usage in percent.
func GetMemoryUsage() float64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0
	}
	return vm.UsedPercent
}
