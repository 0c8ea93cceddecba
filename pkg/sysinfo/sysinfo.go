// Package sysinfo samples host CPU and memory usage for the hello
// endpoint's load report.
package sysinfo

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// LoadData is the host load snapshot returned by the API. Percentages are
// 0-100, byte counts are absolute.
type LoadData struct {
	CPUUsage    float64 `json:"cpu_usage"`
	MemoryUsage float64 `json:"memory_usage"`
	TotalMemory uint64  `json:"total_memory"`
	UsedMemory  uint64  `json:"used_memory"`
}

// Sampler reads host load. Split behind an interface so handlers can be
// tested without touching /proc.
type Sampler interface {
	Sample(ctx context.Context) (LoadData, error)
}

type hostSampler struct{}

// NewSampler returns a Sampler backed by gopsutil.
func NewSampler() Sampler {
	return hostSampler{}
}

// Sample reads instantaneous CPU utilization and virtual memory stats.
// The CPU percentage is since the previous call (interval 0), so the first
// sample after boot can read as zero.
func (hostSampler) Sample(ctx context.Context) (LoadData, error) {
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return LoadData{}, err
	}
	var cpuUsage float64
	if len(percents) > 0 {
		cpuUsage = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return LoadData{}, err
	}

	return LoadData{
		CPUUsage:    cpuUsage,
		MemoryUsage: vm.UsedPercent,
		TotalMemory: vm.Total,
		UsedMemory:  vm.Used,
	}, nil
}
