package infrastructure

import (
	"runtime"
	"time"
)

// RuntimeStats is a snapshot of process resource usage for health reports
type RuntimeStats struct {
	Uptime         string `json:"uptime"`
	Goroutines     int    `json:"goroutines"`
	HeapAllocBytes uint64 `json:"heap_alloc_bytes"`
	SysBytes       uint64 `json:"sys_bytes"`
	GCCount        uint32 `json:"gc_count"`
	CPUCount       int    `json:"cpu_count"`
}

// CollectRuntimeStats reads the Go runtime counters
func CollectRuntimeStats(start time.Time) RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return RuntimeStats{
		Uptime:         time.Since(start).Round(time.Second).String(),
		Goroutines:     runtime.NumGoroutine(),
		HeapAllocBytes: mem.HeapAlloc,
		SysBytes:       mem.Sys,
		GCCount:        mem.NumGC,
		CPUCount:       runtime.NumCPU(),
	}
}
